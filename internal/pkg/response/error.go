package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lenditapp/lendit-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends a JSON error response.
// Business-rule errors (AppError) keep their status code and message;
// anything else is a store-level or programming failure and is masked as 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	_ = c.Error(err) // surfaces in the request log
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
