package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sunpeak-rentals/scheduling-backend/internal/automation"
	"github.com/sunpeak-rentals/scheduling-backend/internal/pkg/response"
)

type Handler struct {
	service automation.Service
}

func NewHandler(service automation.Service) *Handler {
	return &Handler{service: service}
}

// Run triggers one processor pass. External schedulers call this on a
// fixed interval; calling it more often than necessary is harmless.
func (h *Handler) Run(c *gin.Context) {
	result, err := h.service.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logs returns the audit trail of automated decisions for one booking.
func (h *Handler) Logs(c *gin.Context) {
	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	entries, err := h.service.LogsForBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]LogEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = NewLogEntryResponse(e)
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}
