package request

import (
	"context"
	"strings"

	"github.com/lenditapp/lendit-backend/internal/item"
	"github.com/lenditapp/lendit-backend/internal/user"
)

type CreateRequest struct {
	Description string
}

type UpdateRequest struct {
	Description *string
}

// Details is an item request together with the items offered in answer.
type Details struct {
	Request *ItemRequest
	Items   []*item.Item
}

// UserDirectory is the slice of the user service the request service needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, requesterID string, req CreateRequest) (*ItemRequest, error)
	GetByID(ctx context.Context, id string) (*Details, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*Details, error)
	List(ctx context.Context, filter Filter) ([]*Details, int, error)
	Update(ctx context.Context, callerID, id string, req UpdateRequest) (*Details, error)
	Delete(ctx context.Context, callerID, id string) error
}

type service struct {
	repo  Repository
	users UserDirectory
	items item.Repository
}

func NewService(repo Repository, users UserDirectory, items item.Repository) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
	}
}

func (s *service) Create(ctx context.Context, requesterID string, req CreateRequest) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	ir := &ItemRequest{
		RequesterID: requesterID,
		Description: strings.TrimSpace(req.Description),
	}

	if err := s.repo.Create(ctx, ir); err != nil {
		return nil, err
	}
	return ir, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Details, error) {
	ir, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, ir)
}

func (s *service) ListByRequester(ctx context.Context, requesterID string) ([]*Details, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.detailsList(ctx, requests)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Details, int, error) {
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	details, err := s.detailsList(ctx, requests)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *service) Update(ctx context.Context, callerID, id string, req UpdateRequest) (*Details, error) {
	ir, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ir.RequesterID != callerID {
		return nil, ErrNotRequester
	}

	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		ir.Description = strings.TrimSpace(*req.Description)
		if err := s.repo.Update(ctx, ir); err != nil {
			return nil, err
		}
	}

	return s.withItems(ctx, ir)
}

func (s *service) Delete(ctx context.Context, callerID, id string) error {
	ir, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if ir.RequesterID != callerID {
		return ErrNotRequester
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) withItems(ctx context.Context, ir *ItemRequest) (*Details, error) {
	items, err := s.items.ListByRequest(ctx, ir.ID)
	if err != nil {
		return nil, err
	}
	return &Details{Request: ir, Items: items}, nil
}

func (s *service) detailsList(ctx context.Context, requests []*ItemRequest) ([]*Details, error) {
	result := make([]*Details, 0, len(requests))
	for _, ir := range requests {
		d, err := s.withItems(ctx, ir)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}
