package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sunpeak-rentals/scheduling-backend/internal/resource"
)

type Handler struct {
	service resource.Service
}

func NewHandler(service resource.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	filter := resource.Filter{
		Kind:       c.Query("kind"),
		ProductID:  c.Query("product_id"),
		ActiveOnly: c.Query("active") == "true",
	}

	resources, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list resources"})
		return
	}

	items := make([]ResourceResponse, len(resources))
	for i, r := range resources {
		items[i] = NewResourceResponse(r)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get resource"})
		return
	}

	c.JSON(http.StatusOK, NewResourceResponse(r))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateResourceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), resource.CreateRequest{
		Kind:      body.Kind,
		ProductID: body.ProductID,
		Name:      body.Name,
		Capacity:  body.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, resource.ErrEmptyName),
			errors.Is(err, resource.ErrInvalidKind),
			errors.Is(err, resource.ErrAssetNeedsProd):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create resource"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewResourceResponse(r))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateResourceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	r, err := h.service.Update(c.Request.Context(), id, resource.UpdateRequest{
		Name:     body.Name,
		Capacity: body.Capacity,
		IsActive: body.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, resource.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, resource.ErrEmptyName), errors.Is(err, resource.ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update resource"})
		}
		return
	}

	c.JSON(http.StatusOK, NewResourceResponse(r))
}
