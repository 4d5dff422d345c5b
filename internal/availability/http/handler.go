package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sunpeak-rentals/scheduling-backend/internal/availability"
	"github.com/sunpeak-rentals/scheduling-backend/internal/product"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Slots answers slot-based availability for ?product_id=...&date=YYYY-MM-DD.
func (h *Handler) Slots(c *gin.Context) {
	productID := c.Query("product_id")
	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
		return
	}

	date, ok := parseDate(c, "date")
	if !ok {
		return
	}

	slots, err := h.service.CheckSlots(c.Request.Context(), productID, date)
	if err != nil {
		h.availabilityError(c, err)
		return
	}

	items := make([]SlotAvailabilityResponse, len(slots))
	for i, sa := range slots {
		items[i] = NewSlotAvailabilityResponse(sa)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// DayRental answers day-rental availability for
// ?product_id=...&delivery_date=YYYY-MM-DD&pickup_date=YYYY-MM-DD.
func (h *Handler) DayRental(c *gin.Context) {
	productID := c.Query("product_id")
	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
		return
	}

	deliveryDate, ok := parseDate(c, "delivery_date")
	if !ok {
		return
	}
	pickupDate, ok := parseDate(c, "pickup_date")
	if !ok {
		return
	}

	result, err := h.service.CheckDayRental(c.Request.Context(), productID, deliveryDate, pickupDate)
	if err != nil {
		h.availabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDayRentalAvailabilityResponse(result))
}

// EarliestDate returns the first date a new booking could target under
// the current lead-time and cutoff rules.
func (h *Handler) EarliestDate(c *gin.Context) {
	earliest := h.service.EarliestBookableDate()
	c.JSON(http.StatusOK, gin.H{"earliest_available": earliest.Format("2006-01-02")})
}

func (h *Handler) availabilityError(c *gin.Context, err error) {
	var dre *availability.DateRuleError
	switch {
	case errors.As(err, &dre):
		c.JSON(http.StatusUnprocessableEntity, NewDateRuleErrorResponse(dre))
	case errors.Is(err, product.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, availability.ErrProductInactive),
		errors.Is(err, availability.ErrWrongMode),
		errors.Is(err, availability.ErrNoActiveSlots),
		errors.Is(err, availability.ErrInvalidDates):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check availability"})
	}
}

func parseDate(c *gin.Context, param string) (time.Time, bool) {
	v := c.Query(param)
	if v == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": param + " is required"})
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": param + " must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
