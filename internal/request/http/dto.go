package http

import (
	"time"

	"github.com/lenditapp/lendit-backend/internal/request"
)

type ItemRequestResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	RequesterID string          `json:"requesterId"`
	Created     time.Time       `json:"created"`
	Items       []AnswerItemTag `json:"items"`
}

// AnswerItemTag is the short shape of an item offered in answer to a request.
type AnswerItemTag struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"ownerId"`
}

func NewItemRequestResponse(d *request.Details) ItemRequestResponse {
	items := make([]AnswerItemTag, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, AnswerItemTag{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID})
	}
	return ItemRequestResponse{
		ID:          d.Request.ID,
		Description: d.Request.Description,
		RequesterID: d.Request.RequesterID,
		Created:     d.Request.CreatedAt,
		Items:       items,
	}
}

type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type UpdateItemRequestRequest struct {
	Description *string `json:"description"`
}

// ListItemRequestsRequest defines query parameters for GET /requests/all.
type ListItemRequestsRequest struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}
