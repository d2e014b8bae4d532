package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lenditapp/lendit-backend/internal/item"
	"github.com/lenditapp/lendit-backend/internal/user"
)

type MockRepo struct{ mock.Mock }
type MockUsers struct{ mock.Mock }
type MockItems struct{ mock.Mock }

func (m *MockRepo) Create(ctx context.Context, b *Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepo) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Booking), args.Error(1)
}

func (m *MockRepo) HasApprovedOverlap(ctx context.Context, itemID string, start, end time.Time) (bool, error) {
	args := m.Called(ctx, itemID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) SetStatus(ctx context.Context, id string, status Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockRepo) FindLastApprovedByItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepo) FindNextApprovedByItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepo) FindApprovedByBookerAndItem(ctx context.Context, bookerID, itemID string) ([]*Booking, error) {
	args := m.Called(ctx, bookerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Booking), args.Error(1)
}

func (m *MockUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockItems) GetByID(ctx context.Context, id string) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

const (
	ownerID  = "11111111-1111-1111-1111-111111111111"
	bookerID = "22222222-2222-2222-2222-222222222222"
	otherID  = "33333333-3333-3333-3333-333333333333"
	itemID   = "44444444-4444-4444-4444-444444444444"
	bookID   = "55555555-5555-5555-5555-555555555555"
)

func newTestService(repo *MockRepo, users *MockUsers, items *MockItems) *service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		now:   func() time.Time { return baseTime },
	}
}

func availableItem() *item.Item {
	return &item.Item{ID: itemID, OwnerID: ownerID, Name: "drill", Available: true}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	req := CreateRequest{ItemID: itemID, Start: at(1), End: at(2)}

	t.Run("persists a waiting booking", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		users.On("GetByID", ctx, bookerID).Return(&user.User{ID: bookerID, Name: "Bea"}, nil)
		items.On("GetByID", ctx, itemID).Return(availableItem(), nil)
		repo.On("HasApprovedOverlap", ctx, itemID, req.Start, req.End).Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(b *Booking) bool {
			return b.ItemID == itemID && b.BookerID == bookerID && b.Status == StatusWaiting
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*Booking).ID = bookID
		}).Return(nil)
		repo.On("GetByID", ctx, bookID).Return(&Booking{
			ID: bookID, ItemID: itemID, ItemName: "drill",
			BookerID: bookerID, BookerName: "Bea", OwnerID: ownerID,
			Start: req.Start, End: req.End, Status: StatusWaiting,
		}, nil)

		b, err := svc.Create(ctx, bookerID, req)
		require.NoError(t, err)
		assert.Equal(t, StatusWaiting, b.Status)
		assert.Equal(t, "drill", b.ItemName)
		repo.AssertExpectations(t)
	})

	t.Run("unknown booker fails before the item lookup", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		users.On("GetByID", ctx, bookerID).Return(nil, user.ErrNotFound)

		_, err := svc.Create(ctx, bookerID, req)
		assert.ErrorIs(t, err, user.ErrNotFound)
		items.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown item", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		users.On("GetByID", ctx, bookerID).Return(&user.User{ID: bookerID}, nil)
		items.On("GetByID", ctx, itemID).Return(nil, item.ErrNotFound)

		_, err := svc.Create(ctx, bookerID, req)
		assert.ErrorIs(t, err, item.ErrNotFound)
	})

	t.Run("unavailable item wins over other failures", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		it := availableItem()
		it.Available = false
		users.On("GetByID", ctx, ownerID).Return(&user.User{ID: ownerID}, nil)
		items.On("GetByID", ctx, itemID).Return(it, nil)

		// The caller is also the owner, but availability is checked first.
		_, err := svc.Create(ctx, ownerID, req)
		assert.ErrorIs(t, err, ErrItemNotAvailable)
	})

	t.Run("owners cannot book their own items", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		users.On("GetByID", ctx, ownerID).Return(&user.User{ID: ownerID}, nil)
		items.On("GetByID", ctx, itemID).Return(availableItem(), nil)

		_, err := svc.Create(ctx, ownerID, req)
		assert.ErrorIs(t, err, ErrOwnItem)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid interval never reaches the store", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		users.On("GetByID", ctx, bookerID).Return(&user.User{ID: bookerID}, nil)
		items.On("GetByID", ctx, itemID).Return(availableItem(), nil)

		_, err := svc.Create(ctx, bookerID, CreateRequest{ItemID: itemID, Start: at(2), End: at(1)})
		assert.ErrorIs(t, err, ErrEndBeforeStart)
		repo.AssertNotCalled(t, "HasApprovedOverlap", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("approved overlap blocks admission", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		users.On("GetByID", ctx, bookerID).Return(&user.User{ID: bookerID}, nil)
		items.On("GetByID", ctx, itemID).Return(availableItem(), nil)
		repo.On("HasApprovedOverlap", ctx, itemID, req.Start, req.End).Return(true, nil)

		_, err := svc.Create(ctx, bookerID, req)
		assert.ErrorIs(t, err, ErrTimeConflict)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDecideBooking(t *testing.T) {
	ctx := context.Background()

	waiting := func() *Booking {
		return &Booking{
			ID: bookID, ItemID: itemID, BookerID: bookerID, OwnerID: ownerID,
			Start: at(1), End: at(2), Status: StatusWaiting,
		}
	}

	t.Run("owner approves", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		repo.On("GetByID", ctx, bookID).Return(waiting(), nil)
		repo.On("SetStatus", ctx, bookID, StatusApproved).Return(nil)

		b, err := svc.Decide(ctx, ownerID, bookID, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, b.Status)
	})

	t.Run("owner rejects", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		repo.On("GetByID", ctx, bookID).Return(waiting(), nil)
		repo.On("SetStatus", ctx, bookID, StatusRejected).Return(nil)

		b, err := svc.Decide(ctx, ownerID, bookID, false)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, b.Status)
	})

	t.Run("booker cannot decide", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		repo.On("GetByID", ctx, bookID).Return(waiting(), nil)

		_, err := svc.Decide(ctx, bookerID, bookID, true)
		assert.ErrorIs(t, err, ErrNotOwner)
		repo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repeat decision", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		done := waiting()
		done.Status = StatusApproved
		repo.On("GetByID", ctx, bookID).Return(done, nil)

		_, err := svc.Decide(ctx, ownerID, bookID, true)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	})

	t.Run("lost race surfaces as already processed", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		repo.On("GetByID", ctx, bookID).Return(waiting(), nil)
		repo.On("SetStatus", ctx, bookID, StatusApproved).Return(ErrAlreadyProcessed)

		_, err := svc.Decide(ctx, ownerID, bookID, true)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	})
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	stored := &Booking{ID: bookID, BookerID: bookerID, OwnerID: ownerID, Status: StatusWaiting}

	repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
	svc := newTestService(repo, users, items)
	repo.On("GetByID", ctx, bookID).Return(stored, nil)

	for _, allowed := range []string{bookerID, ownerID} {
		b, err := svc.GetByID(ctx, allowed, bookID)
		require.NoError(t, err)
		assert.Equal(t, bookID, b.ID)
	}

	_, err := svc.GetByID(ctx, otherID, bookID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects invalid paging", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		_, err := svc.ListByBooker(ctx, bookerID, StateAll, -1, 10)
		assert.ErrorIs(t, err, ErrInvalidPaging)

		_, err = svc.ListByBooker(ctx, bookerID, StateAll, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidPaging)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown subject", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		users.On("GetByID", ctx, otherID).Return(nil, user.ErrNotFound)

		_, err := svc.ListByOwner(ctx, otherID, StateAll, 0, 10)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("scopes to the booker", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		users.On("GetByID", ctx, bookerID).Return(&user.User{ID: bookerID}, nil)
		repo.On("List", ctx, mock.MatchedBy(func(f Filter) bool {
			return f.BookerID == bookerID && f.OwnerID == "" && f.Limit == 5 && f.Offset == 10
		})).Return([]*Booking{}, nil)

		_, err := svc.ListByBooker(ctx, bookerID, StateAll, 10, 5)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("scopes to the owner with state bounds", func(t *testing.T) {
		repo, users, items := new(MockRepo), new(MockUsers), new(MockItems)
		svc := newTestService(repo, users, items)

		users.On("GetByID", ctx, ownerID).Return(&user.User{ID: ownerID}, nil)
		repo.On("List", ctx, mock.MatchedBy(func(f Filter) bool {
			return f.OwnerID == ownerID && f.BookerID == "" &&
				f.StartBefore != nil && f.EndAfter != nil &&
				f.StartBefore.Equal(baseTime) && f.EndAfter.Equal(baseTime)
		})).Return([]*Booking{}, nil)

		_, err := svc.ListByOwner(ctx, ownerID, StateCurrent, 0, 10)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
