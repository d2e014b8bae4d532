package booking

import (
	"context"
	"time"

	"github.com/lenditapp/lendit-backend/internal/item"
)

// ItemBookings adapts the booking store to the read-only view the item
// service needs: last/next rental on owner views and comment eligibility.
type ItemBookings struct {
	repo Repository
}

func NewItemBookings(repo Repository) *ItemBookings {
	return &ItemBookings{repo: repo}
}

func (ib *ItemBookings) LastApproved(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, error) {
	b, err := ib.repo.FindLastApprovedByItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return toRef(b), nil
}

func (ib *ItemBookings) NextApproved(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, error) {
	b, err := ib.repo.FindNextApprovedByItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return toRef(b), nil
}

// HasFinishedApproved reports whether the user holds an approved booking of
// the item whose rental period has fully elapsed. Only such users may
// comment; WAITING and REJECTED bookings never qualify, nor do rentals
// still in progress.
func (ib *ItemBookings) HasFinishedApproved(ctx context.Context, bookerID, itemID string, now time.Time) (bool, error) {
	bookings, err := ib.repo.FindApprovedByBookerAndItem(ctx, bookerID, itemID)
	if err != nil {
		return false, err
	}
	for _, b := range bookings {
		if b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func toRef(b *Booking) *item.BookingRef {
	if b == nil {
		return nil
	}
	return &item.BookingRef{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
