package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sunpeak-rentals/scheduling-backend/internal/attention"
	"github.com/sunpeak-rentals/scheduling-backend/internal/auth"
	"github.com/sunpeak-rentals/scheduling-backend/internal/pkg/response"
)

type Handler struct {
	service attention.Service
}

func NewHandler(service attention.Service) *Handler {
	return &Handler{service: service}
}

// Flag raises an item manually. Automation raises its own items through
// the service directly.
func (h *Handler) Flag(c *gin.Context) {
	var req FlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, suppressed, err := h.service.Flag(
		c.Request.Context(),
		req.BookingID,
		attention.Type(req.Type),
		attention.Priority(req.Priority),
		req.Note,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := NewItemResponse(item)
	resp.Suppressed = suppressed
	status := http.StatusCreated
	if suppressed {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewItemResponse(item))
}

// ListPending returns the open worklist, most urgent and oldest first.
func (h *Handler) ListPending(c *gin.Context) {
	items, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = NewItemResponse(item)
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// ListForBooking returns every item ever raised for one booking,
// resolved ones included.
func (h *Handler) ListForBooking(c *gin.Context) {
	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	items, err := h.service.ListForBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = NewItemResponse(item)
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *Handler) Counts(c *gin.Context) {
	counts, err := h.service.CountsByPriority(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

func (h *Handler) Start(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.service.Start(c.Request.Context(), id, auth.GetOperatorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewItemResponse(item))
}

func (h *Handler) Resolve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.Resolve(c.Request.Context(), id, auth.GetOperatorID(c), req.Action, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewItemResponse(item))
}

func (h *Handler) Dismiss(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DismissRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.Dismiss(c.Request.Context(), id, auth.GetOperatorID(c), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewItemResponse(item))
}

func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attention item id"})
		return "", false
	}
	return id, true
}
