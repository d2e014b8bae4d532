package item

import (
	"context"
	"net/http"
	"time"

	"github.com/lenditapp/lendit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "item not found")
	ErrNotOwner             = apperror.New(http.StatusForbidden, "only the owner can edit this item")
	ErrNameRequired         = apperror.New(http.StatusBadRequest, "item name cannot be empty")
	ErrDescriptionRequired  = apperror.New(http.StatusBadRequest, "item description cannot be empty")
	ErrAvailabilityRequired = apperror.New(http.StatusBadRequest, "item availability must be specified")
	ErrNothingToUpdate      = apperror.New(http.StatusBadRequest, "no fields to update")
	ErrRequestNotFound      = apperror.New(http.StatusNotFound, "item request not found")
	ErrCommentTextRequired  = apperror.New(http.StatusBadRequest, "comment text cannot be empty")
	ErrCommentNotAllowed    = apperror.New(http.StatusBadRequest,
		"you can only comment on items you have actually rented in the past")
)

// Item is a thing offered for lending. Only available items can be booked.
type Item struct {
	ID          string // UUID
	OwnerID     string
	Name        string
	Description string
	Available   bool
	RequestID   *string // set when the item answers an item request
	CreatedAt   time.Time
}

// Comment is feedback left by a booker after a completed rental.
// Immutable once created.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// BookingRef is the read-only slice of a booking the item views need:
// the last completed and next planned rental shown to owners.
type BookingRef struct {
	ID       string
	BookerID string
	Start    time.Time
	End      time.Time
}

// BookingReader is the view of the booking store consumed by the item
// service. Implemented by the booking package; declared here to keep the
// dependency one-directional.
type BookingReader interface {
	// LastApproved returns the most recent approved booking with start <= now,
	// or nil when there is none.
	LastApproved(ctx context.Context, itemID string, now time.Time) (*BookingRef, error)
	// NextApproved returns the closest approved booking with start > now,
	// or nil when there is none.
	NextApproved(ctx context.Context, itemID string, now time.Time) (*BookingRef, error)
	// HasFinishedApproved reports whether the user holds at least one approved
	// booking of the item whose rental period has fully elapsed.
	HasFinishedApproved(ctx context.Context, bookerID, itemID string, now time.Time) (bool, error)
}

// RequestDirectory checks that a referenced item request exists.
type RequestDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}
