package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Create(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepo) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepo) List(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) Update(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

const userID = "11111111-1111-1111-1111-111111111111"

func strPtr(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the email", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo)

		repo.On("EmailTaken", ctx, "ann@example.com", "").Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Name == "Ann" && u.Email == "ann@example.com"
		})).Return(nil)

		u, err := svc.Create(ctx, CreateRequest{Name: " Ann ", Email: " ANN@Example.com "})
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", u.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo)

		repo.On("EmailTaken", ctx, "ann@example.com", "").Return(true, nil)

		_, err := svc.Create(ctx, CreateRequest{Name: "Ann", Email: "ann@example.com"})
		assert.ErrorIs(t, err, ErrEmailTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := NewService(new(MockRepo))

		_, err := svc.Create(ctx, CreateRequest{Name: "", Email: "ann@example.com"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = svc.Create(ctx, CreateRequest{Name: "Ann", Email: "  "})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	stored := func() *User {
		return &User{ID: userID, Name: "Ann", Email: "ann@example.com"}
	}

	t.Run("partial name update keeps the email", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, userID).Return(stored(), nil)
		repo.On("Update", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Name == "Anna" && u.Email == "ann@example.com"
		})).Return(nil)

		u, err := svc.Update(ctx, userID, UpdateRequest{Name: strPtr("Anna")})
		require.NoError(t, err)
		assert.Equal(t, "Anna", u.Name)
	})

	t.Run("email change checks uniqueness excluding self", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, userID).Return(stored(), nil)
		repo.On("EmailTaken", ctx, "anna@example.com", userID).Return(true, nil)

		_, err := svc.Update(ctx, userID, UpdateRequest{Email: strPtr("anna@example.com")})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("same email skips the uniqueness check", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, userID).Return(stored(), nil)
		repo.On("Update", ctx, mock.Anything).Return(nil)

		_, err := svc.Update(ctx, userID, UpdateRequest{Email: strPtr("ANN@example.com")})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "EmailTaken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty patch", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, userID).Return(stored(), nil)

		_, err := svc.Update(ctx, userID, UpdateRequest{})
		assert.ErrorIs(t, err, ErrNothingToUpdate)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, userID).Return(nil, ErrNotFound)

		_, err := svc.Update(ctx, userID, UpdateRequest{Name: strPtr("Anna")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("existing user", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, userID).Return(&User{ID: userID}, nil)
		repo.On("Delete", ctx, userID).Return(nil)

		assert.NoError(t, svc.Delete(ctx, userID))
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, userID).Return(nil, ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, userID), ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
