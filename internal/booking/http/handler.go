package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sunpeak-rentals/scheduling-backend/internal/availability"
	availhttp "github.com/sunpeak-rentals/scheduling-backend/internal/availability/http"
	"github.com/sunpeak-rentals/scheduling-backend/internal/booking"
	"github.com/sunpeak-rentals/scheduling-backend/internal/ledger"
	"github.com/sunpeak-rentals/scheduling-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	create := booking.CreateRequest{
		ProductID:     req.ProductID,
		SlotID:        req.SlotID,
		SubtotalCents: req.SubtotalCents,
		DepositCents:  req.DepositCents,
		DepositPaid:   req.DepositPaid,
	}
	var ok bool
	if req.EventDate != "" {
		if create.EventDate, ok = parseDate(c, "event_date", req.EventDate); !ok {
			return
		}
	}
	if req.DeliveryDate != "" {
		if create.DeliveryDate, ok = parseDate(c, "delivery_date", req.DeliveryDate); !ok {
			return
		}
	}
	if req.PickupDate != "" {
		if create.PickupDate, ok = parseDate(c, "pickup_date", req.PickupDate); !ok {
			return
		}
	}

	b, err := h.service.Create(c.Request.Context(), create)
	if err != nil {
		h.bookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	filter := booking.Filter{
		Status:    c.Query("status"),
		ProductID: c.Query("product_id"),
	}
	if v := c.Query("from"); v != "" {
		t, ok := parseDate(c, "from", v)
		if !ok {
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, ok := parseDate(c, "to", v)
		if !ok {
			return
		}
		filter.To = &t
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]BookingResponse, len(items))
	for i, b := range items {
		out[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(out, filter.Page, filter.PageSize, total))
}

func (h *Handler) Deliver(c *gin.Context) {
	h.lifecycle(c, h.service.MarkDelivered)
}

func (h *Handler) PickUp(c *gin.Context) {
	h.lifecycle(c, h.service.MarkPickedUp)
}

func (h *Handler) Complete(c *gin.Context) {
	h.lifecycle(c, h.service.Complete)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, booking.CancelRequest{
		Reason:            req.Reason,
		RefundAmountCents: req.RefundAmountCents,
		RefundMethod:      req.RefundMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) RecordPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.RecordPayment(c.Request.Context(), id, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// RefreshPayment re-reads the payment provider's view of the booking and
// updates the paid flags.
func (h *Handler) RefreshPayment(c *gin.Context) {
	h.lifecycle(c, h.service.RefreshPaymentStatus)
}

func (h *Handler) lifecycle(c *gin.Context, fn func(context.Context, string) (*booking.Booking, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) bookingError(c *gin.Context, err error) {
	var dre *availability.DateRuleError
	switch {
	case errors.As(err, &dre):
		c.JSON(http.StatusUnprocessableEntity, availhttp.NewDateRuleErrorResponse(dre))
	case errors.Is(err, ledger.ErrConflict),
		errors.Is(err, availability.ErrNoSelection):
		c.JSON(http.StatusConflict, gin.H{"error": "requested resources are no longer available"})
	default:
		response.Error(c, err)
	}
}

func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return "", false
	}
	return id, true
}

func parseDate(c *gin.Context, name, v string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
