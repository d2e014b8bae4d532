package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasFinishedApproved(t *testing.T) {
	ctx := context.Background()
	now := baseTime

	tests := []struct {
		name     string
		bookings []*Booking
		want     bool
	}{
		{"no approved bookings", []*Booking{}, false},
		{"rental still in progress", []*Booking{
			{Start: at(-1), End: at(1), Status: StatusApproved},
		}, false},
		{"rental ends exactly now", []*Booking{
			{Start: at(-1), End: now, Status: StatusApproved},
		}, false},
		{"one finished rental", []*Booking{
			{Start: at(-2), End: at(-1), Status: StatusApproved},
		}, true},
		{"finished among ongoing", []*Booking{
			{Start: at(-1), End: at(1), Status: StatusApproved},
			{Start: at(-4), End: at(-3), Status: StatusApproved},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			repo.On("FindApprovedByBookerAndItem", ctx, bookerID, itemID).Return(tt.bookings, nil)

			got, err := NewItemBookings(repo).HasFinishedApproved(ctx, bookerID, itemID, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLastAndNextApproved(t *testing.T) {
	ctx := context.Background()
	now := baseTime

	t.Run("maps the booking to a ref", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("FindLastApprovedByItem", ctx, itemID, now).Return(&Booking{
			ID: bookID, BookerID: bookerID, Start: at(-2), End: at(-1),
		}, nil)

		ref, err := NewItemBookings(repo).LastApproved(ctx, itemID, now)
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, bookID, ref.ID)
		assert.Equal(t, bookerID, ref.BookerID)
	})

	t.Run("no upcoming rental yields nil", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("FindNextApprovedByItem", ctx, itemID, now).Return(nil, nil)

		ref, err := NewItemBookings(repo).NextApproved(ctx, itemID, now)
		require.NoError(t, err)
		assert.Nil(t, ref)
	})
}
