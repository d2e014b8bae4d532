package booking

import (
	"net/http"
	"time"

	"github.com/lenditapp/lendit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrAccessDenied     = apperror.New(http.StatusForbidden, "only the booker or the item owner can view this booking")
	ErrNotOwner         = apperror.New(http.StatusForbidden, "only the item owner can approve or reject a booking")
	ErrAlreadyProcessed = apperror.New(http.StatusConflict, "booking has already been approved or rejected")
	ErrItemNotAvailable = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrOwnItem          = apperror.New(http.StatusForbidden, "owners cannot book their own items")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "item is already booked for this time")
	ErrMissingTime      = apperror.New(http.StatusBadRequest, "start and end times are required")
	ErrEndBeforeStart   = apperror.New(http.StatusBadRequest, "end time must be after start time")
	ErrStartInPast      = apperror.New(http.StatusBadRequest, "start time cannot be in the past")
	ErrEndInPast        = apperror.New(http.StatusBadRequest, "end time cannot be in the past")
	ErrInvalidState     = apperror.New(http.StatusBadRequest, "unknown booking state")
	ErrInvalidPaging    = apperror.New(http.StatusBadRequest, "invalid pagination parameters")
)

// Status is the lifecycle state of a booking. WAITING is the initial state;
// APPROVED and REJECTED are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a time-bounded reservation of an item, held as the half-open
// interval [Start, End). Names and the owner id are denormalized from the
// users and items tables for response shaping.
type Booking struct {
	ID         string // UUID
	ItemID     string
	ItemName   string
	BookerID   string
	BookerName string
	OwnerID    string
	Start      time.Time
	End        time.Time
	Status     Status
	CreatedAt  time.Time
}

// State is a temporal/status bucket used to scope booking listings.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState converts a request parameter into a State.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	default:
		return "", ErrInvalidState
	}
}

// Filter defines parameters for listing bookings. Exactly one of BookerID
// and OwnerID is set; time bounds and status come from the requested State.
type Filter struct {
	BookerID string
	OwnerID  string
	Status   Status

	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time

	Limit  int
	Offset int
}

// stateFilter translates a listing State into store query bounds evaluated
// against now. The buckets are mutually exclusive classifications, each
// mapping to exactly one query.
func stateFilter(state State, now time.Time) Filter {
	var f Filter
	switch state {
	case StateCurrent:
		// start <= now < end
		f.StartBefore = &now
		f.EndAfter = &now
	case StatePast:
		f.EndBefore = &now
	case StateFuture:
		f.StartAfter = &now
	case StateWaiting:
		f.Status = StatusWaiting
	case StateRejected:
		f.Status = StatusRejected
	}
	return f
}
