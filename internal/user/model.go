package user

import (
	"net/http"
	"time"

	"github.com/lenditapp/lendit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailTaken      = apperror.New(http.StatusConflict, "email already in use")
	ErrEmailRequired   = apperror.New(http.StatusBadRequest, "email is required")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "name is required")
	ErrNothingToUpdate = apperror.New(http.StatusBadRequest, "no fields to update")
)

// User is a marketplace participant: an item owner, a booker, or both.
type User struct {
	ID        string // UUID
	Name      string
	Email     string
	CreatedAt time.Time
}
