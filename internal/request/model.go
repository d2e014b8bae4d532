package request

import (
	"net/http"
	"time"

	"github.com/lenditapp/lendit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
	ErrNotRequester        = apperror.New(http.StatusForbidden, "only the requester can modify this request")
)

// ItemRequest is a "looking for X" post. Owners may list items in answer to
// it; such items carry the request's id.
type ItemRequest struct {
	ID          string // UUID
	RequesterID string
	Description string
	CreatedAt   time.Time
}

// Filter defines parameters for listing item requests.
type Filter struct {
	Keyword  string
	Page     int
	PageSize int
}
