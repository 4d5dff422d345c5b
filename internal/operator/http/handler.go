package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunpeak-rentals/scheduling-backend/internal/auth"
	"github.com/sunpeak-rentals/scheduling-backend/internal/operator"
)

type Handler struct {
	service    operator.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service operator.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
	}
}

// Login authenticates an operator using email and password.
// On success, it returns a JWT access token and the operator profile.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	o, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, operator.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, operator.ErrInactiveOperator):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		}
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(o.ID, o.Email, o.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		Operator:    NewOperatorResponse(o),
	})
}

// Me returns the authenticated operator's profile.
func (h *Handler) Me(c *gin.Context) {
	id := auth.GetOperatorID(c)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, operator.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "operator not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get operator"})
		return
	}

	c.JSON(http.StatusOK, NewOperatorResponse(o))
}

// Create registers a new operator account. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var req CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	o, err := h.service.Create(c.Request.Context(), operator.CreateRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		IsAdmin:     req.IsAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, operator.ErrEmailAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, NewOperatorResponse(o))
}

// List returns all operator accounts. Admin only.
func (h *Handler) List(c *gin.Context) {
	operators, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list operators"})
		return
	}

	items := make([]OperatorResponse, len(operators))
	for i, o := range operators {
		items[i] = NewOperatorResponse(o)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
