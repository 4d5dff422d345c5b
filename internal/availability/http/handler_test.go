package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpeak-rentals/scheduling-backend/internal/availability"
)

type stubService struct {
	availability.Service
	slots    []availability.SlotAvailability
	slotsErr error
}

func (s stubService) CheckSlots(context.Context, string, time.Time) ([]availability.SlotAvailability, error) {
	return s.slots, s.slotsErr
}

func newTestRouter(svc availability.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	noAuth := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), noAuth)
	return r
}

const productID = "3f1f9a68-7a9f-4a86-9f0a-6f9f38c9f001"

func TestSlotsEndpoint(t *testing.T) {
	t.Run("returns slot list", func(t *testing.T) {
		r := newTestRouter(stubService{slots: []availability.SlotAvailability{
			{SlotID: "slot-1", Label: "Midday", Available: true},
		}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/availability/slots?product_id="+productID+"&date=2026-06-10", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Items []SlotAvailabilityResponse `json:"items"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Items, 1)
		assert.Equal(t, "slot-1", body.Items[0].SlotID)
		assert.True(t, body.Items[0].Available)
	})

	t.Run("date rule violations map to 422 with the earliest date", func(t *testing.T) {
		loc, err := time.LoadLocation("America/Chicago")
		require.NoError(t, err)

		r := newTestRouter(stubService{slotsErr: &availability.DateRuleError{
			Rule:              availability.RuleCutoff,
			Message:           "next-day bookings close at 12:00",
			EarliestAvailable: time.Date(2026, 6, 12, 0, 0, 0, 0, loc),
		}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/availability/slots?product_id="+productID+"&date=2026-06-11", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body DateRuleErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "cutoff", body.Rule)
		assert.Equal(t, "2026-06-12", body.EarliestAvailable)
	})

	t.Run("missing date is a 400", func(t *testing.T) {
		r := newTestRouter(stubService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/availability/slots?product_id="+productID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed product id is a 400", func(t *testing.T) {
		r := newTestRouter(stubService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/availability/slots?product_id=abc&date=2026-06-10", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
