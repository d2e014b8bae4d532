package item

import (
	"context"
	"strings"
	"time"

	"github.com/lenditapp/lendit-backend/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// Details is an item together with its comment log and, for the owner,
// the last completed and next planned rentals.
type Details struct {
	Item        *Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []*Comment
}

// UserDirectory is the slice of the user service the item service needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, callerID, itemID string, req UpdateRequest) (*Details, error)
	// GetByID returns the item with comments; booking info is attached only
	// when the caller is the owner.
	GetByID(ctx context.Context, itemID, callerID string) (*Details, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Details, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    UserDirectory
	bookings BookingReader
	requests RequestDirectory
	now      func() time.Time
}

func NewService(
	repo Repository,
	comments CommentRepository,
	users UserDirectory,
	bookings BookingReader,
	requests RequestDirectory,
) Service {
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		bookings: bookings,
		requests: requests,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailabilityRequired
	}

	if req.RequestID != nil {
		exists, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrRequestNotFound
		}
	}

	it := &Item{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Available:   *req.Available,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, callerID, itemID string, req UpdateRequest) (*Details, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if it.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	updated := false

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		it.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		it.Description = strings.TrimSpace(*req.Description)
		updated = true
	}
	if req.Available != nil {
		it.Available = *req.Available
		updated = true
	}

	if !updated {
		return nil, ErrNothingToUpdate
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	return s.details(ctx, it, true)
}

func (s *service) GetByID(ctx context.Context, itemID, callerID string) (*Details, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// Upcoming and previous rentals are the owner's business only.
	return s.details(ctx, it, it.OwnerID == callerID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*Details, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]string, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}

	allComments, err := s.comments.ListByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[string][]*Comment, len(items))
	for _, cm := range allComments {
		commentsByItem[cm.ItemID] = append(commentsByItem[cm.ItemID], cm)
	}

	now := s.now()
	result := make([]*Details, 0, len(items))
	for _, it := range items {
		last, err := s.bookings.LastApproved(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextApproved(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		result = append(result, &Details{
			Item:        it,
			LastBooking: last,
			NextBooking: next,
			Comments:    commentsByItem[it.ID],
		})
	}
	return result, nil
}

func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return s.repo.SearchAvailable(ctx, strings.TrimSpace(text))
}

func (s *service) AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentTextRequired
	}

	ok, err := s.bookings.HasFinishedApproved(ctx, authorID, itemID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentNotAllowed
	}

	cm := &Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       strings.TrimSpace(text),
	}

	if err := s.comments.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *service) details(ctx context.Context, it *Item, forOwner bool) (*Details, error) {
	comments, err := s.comments.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}

	d := &Details{Item: it, Comments: comments}

	if forOwner {
		now := s.now()
		if d.LastBooking, err = s.bookings.LastApproved(ctx, it.ID, now); err != nil {
			return nil, err
		}
		if d.NextBooking, err = s.bookings.NextApproved(ctx, it.ID, now); err != nil {
			return nil, err
		}
	}

	return d, nil
}
