package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunpeak-rentals/scheduling-backend/internal/pkg/apperror"
)

// ErrorResponse is the JSON body sent for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error response. AppErrors carry their own
// status code and message; anything else becomes a 500 without leaking
// the underlying error text.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
