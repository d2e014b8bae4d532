package booking

import (
	"context"
	"time"

	"github.com/lenditapp/lendit-backend/internal/item"
	"github.com/lenditapp/lendit-backend/internal/metrics"
	"github.com/lenditapp/lendit-backend/internal/user"
)

type CreateRequest struct {
	ItemID string
	Start  time.Time
	End    time.Time
}

// UserDirectory is the slice of the user service the booking engine needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemCatalog is the slice of the item service the booking engine needs.
// Items are read-only input here.
type ItemCatalog interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type Service interface {
	// Create admits a booking request: precondition checks run in order and
	// the first failure wins. On success the booking is persisted WAITING.
	Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error)

	// Decide performs the WAITING -> APPROVED/REJECTED transition.
	// Only the item owner may call it; repeat decisions fail.
	Decide(ctx context.Context, callerID, bookingID string, approved bool) (*Booking, error)

	// GetByID returns the booking to its booker or the item owner.
	GetByID(ctx context.Context, callerID, bookingID string) (*Booking, error)

	ListByBooker(ctx context.Context, bookerID string, state State, from, size int) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID string, state State, from, size int) ([]*Booking, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	items ItemCatalog
	now   func() time.Time
}

func NewService(repo Repository, users UserDirectory, items ItemCatalog) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		now:   time.Now,
	}
}

func (s *service) Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, ErrItemNotAvailable
	}
	if it.OwnerID == bookerID {
		return nil, ErrOwnItem
	}

	if err := ValidateInterval(req.Start, req.End, s.now()); err != nil {
		return nil, err
	}

	// Fast-path check; Create re-runs it inside the insert transaction.
	conflict, err := s.repo.HasApprovedOverlap(ctx, req.ItemID, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrTimeConflict
	}

	b := &Booking{
		ItemID:   req.ItemID,
		BookerID: bookerID,
		Start:    req.Start,
		End:      req.End,
		Status:   StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	metrics.IncBookingCreated()

	// Re-read to pick up the denormalized item and booker names.
	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) Decide(ctx context.Context, callerID, bookingID string, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	if b.Status != StatusWaiting {
		return nil, ErrAlreadyProcessed
	}

	status := StatusRejected
	if approved {
		status = StatusApproved
	}

	// The conditional update closes the window between the read above and
	// a concurrent decision on the same booking.
	if err := s.repo.SetStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	metrics.IncBookingDecided(approved)

	b.Status = status
	return b, nil
}

func (s *service) GetByID(ctx context.Context, callerID, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != callerID && b.OwnerID != callerID {
		return nil, ErrAccessDenied
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID string, state State, from, size int) ([]*Booking, error) {
	f, err := s.listFilter(ctx, bookerID, state, from, size)
	if err != nil {
		return nil, err
	}
	f.BookerID = bookerID
	return s.repo.List(ctx, f)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, state State, from, size int) ([]*Booking, error) {
	f, err := s.listFilter(ctx, ownerID, state, from, size)
	if err != nil {
		return nil, err
	}
	f.OwnerID = ownerID
	return s.repo.List(ctx, f)
}

func (s *service) listFilter(ctx context.Context, subjectID string, state State, from, size int) (Filter, error) {
	if from < 0 || size <= 0 {
		return Filter{}, ErrInvalidPaging
	}
	if _, err := s.users.GetByID(ctx, subjectID); err != nil {
		return Filter{}, err
	}

	f := stateFilter(state, s.now())
	f.Limit = size
	f.Offset = from
	return f, nil
}
