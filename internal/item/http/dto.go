package http

import (
	"time"

	"github.com/lenditapp/lendit-backend/internal/item"
)

// ItemResponse mirrors the marketplace API shape for items. Booking info is
// present only on owner views.
type ItemResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	OwnerID     string            `json:"ownerId"`
	RequestID   *string           `json:"requestId,omitempty"`
	LastBooking *BookingTag       `json:"lastBooking"`
	NextBooking *BookingTag       `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

// ItemTag is a brief representation of an item embedded in other responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookingTag is the short booking shape attached to owner item views.
type BookingTag struct {
	ID       string    `json:"id"`
	BookerID string    `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
		Comments:    []CommentResponse{},
	}
}

func NewItemDetailsResponse(d *item.Details) ItemResponse {
	resp := NewItemResponse(d.Item)
	resp.LastBooking = newBookingTag(d.LastBooking)
	resp.NextBooking = newBookingTag(d.NextBooking)
	for _, cm := range d.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(cm))
	}
	return resp
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: cm.AuthorName,
		Created:    cm.CreatedAt,
	}
}

func newBookingTag(ref *item.BookingRef) *BookingTag {
	if ref == nil {
		return nil
	}
	return &BookingTag{
		ID:       ref.ID,
		BookerID: ref.BookerID,
		Start:    ref.Start,
		End:      ref.End,
	}
}

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"requestId" binding:"omitempty,uuid"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
