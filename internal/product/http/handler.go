package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sunpeak-rentals/scheduling-backend/internal/product"
)

type Handler struct {
	service product.Service
}

func NewHandler(service product.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	products, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	items := make([]ProductResponse, len(products))
	for i, p := range products {
		items[i] = NewProductResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get product"})
		return
	}

	c.JSON(http.StatusOK, NewProductResponse(p))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateProductRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), product.CreateRequest{
		Name:                body.Name,
		SchedulingMode:      body.SchedulingMode,
		SetupMinutes:        body.SetupMinutes,
		TeardownMinutes:     body.TeardownMinutes,
		TravelBufferMinutes: body.TravelBufferMinutes,
		CleaningMinutes:     body.CleaningMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, product.ErrEmptyName), errors.Is(err, product.ErrInvalidMode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewProductResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateProductRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, product.UpdateRequest{
		Name:                body.Name,
		SetupMinutes:        body.SetupMinutes,
		TeardownMinutes:     body.TeardownMinutes,
		TravelBufferMinutes: body.TravelBufferMinutes,
		CleaningMinutes:     body.CleaningMinutes,
		IsActive:            body.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, product.ErrEmptyName), errors.Is(err, product.ErrNoActiveSlots):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, NewProductResponse(p))
}

func (h *Handler) AddSlot(c *gin.Context) {
	productID := c.Param("id")
	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SlotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	slot, err := h.service.AddSlot(c.Request.Context(), productID, product.SlotRequest{
		Label:      body.Label,
		StartLocal: body.StartLocal,
		EndLocal:   body.EndLocal,
		IsActive:   body.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, product.ErrInvalidSlotTime):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add slot"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewSlotResponse(slot))
}

func (h *Handler) UpdateSlot(c *gin.Context) {
	productID := c.Param("id")
	slotID := c.Param("slotId")
	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	if _, err := uuid.Parse(slotID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SlotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	slot, err := h.service.UpdateSlot(c.Request.Context(), productID, slotID, product.SlotRequest{
		Label:      body.Label,
		StartLocal: body.StartLocal,
		EndLocal:   body.EndLocal,
		IsActive:   body.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound), errors.Is(err, product.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, product.ErrInvalidSlotTime):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update slot"})
		}
		return
	}

	c.JSON(http.StatusOK, NewSlotResponse(slot))
}

func (h *Handler) RemoveSlot(c *gin.Context) {
	productID := c.Param("id")
	slotID := c.Param("slotId")
	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	if _, err := uuid.Parse(slotID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.RemoveSlot(c.Request.Context(), productID, slotID); err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound), errors.Is(err, product.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove slot"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
