package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sunpeak-rentals/scheduling-backend/internal/ledger"
)

type Handler struct {
	repo ledger.Repository
}

func NewHandler(repo ledger.Repository) *Handler {
	return &Handler{repo: repo}
}

// ListForResource returns the blocks of a resource intersecting [from, to).
// Defaults to the next 14 days when the range is omitted.
func (h *Handler) ListForResource(c *gin.Context) {
	resourceID := c.Param("id")
	if _, err := uuid.Parse(resourceID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	from := time.Now().UTC()
	to := from.AddDate(0, 0, 14)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
			return
		}
		to = t
	}
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be before to"})
		return
	}

	blocks, err := h.repo.BlocksFor(c.Request.Context(), resourceID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list blocks"})
		return
	}

	items := make([]BlockResponse, len(blocks))
	for i, b := range blocks {
		items[i] = NewBlockResponse(b)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
