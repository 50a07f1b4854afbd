package http

import (
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/timestamp"
)

// ItemResponse is the plain item shape, also embedded in item request responses.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
	}
}

func NewItemListResponse(items []*item.Item) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i, it := range items {
		res[i] = NewItemResponse(it)
	}
	return res
}

type BookingBriefResponse struct {
	ID       int64          `json:"id"`
	BookerID int64          `json:"bookerId"`
	Start    timestamp.Time `json:"start"`
	End      timestamp.Time `json:"end"`
}

func newBookingBriefResponse(b *item.BookingBrief) *BookingBriefResponse {
	if b == nil {
		return nil
	}
	return &BookingBriefResponse{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    timestamp.From(b.Start),
		End:      timestamp.From(b.End),
	}
}

type CommentResponse struct {
	ID         int64          `json:"id"`
	Text       string         `json:"text"`
	AuthorName string         `json:"authorName"`
	Created    timestamp.Time `json:"created"`
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    timestamp.From(c.Created),
	}
}

// ItemDetailsResponse is returned by GET /items and GET /items/:id.
type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingBriefResponse `json:"lastBooking"`
	NextBooking *BookingBriefResponse `json:"nextBooking"`
	Comments    []CommentResponse     `json:"comments"`
}

func NewItemDetailsResponse(d *item.Details) ItemDetailsResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = NewCommentResponse(c)
	}
	return ItemDetailsResponse{
		ItemResponse: NewItemResponse(&d.Item),
		LastBooking:  newBookingBriefResponse(d.LastBooking),
		NextBooking:  newBookingBriefResponse(d.NextBooking),
		Comments:     comments,
	}
}

// CreateItemRequest defines the payload for POST /items.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,min=1"`
}

// UpdateItemRequest defines fields allowed to be updated via PATCH /items/:id.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CommentRequest defines the payload for POST /items/:id/comment.
type CommentRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

// SearchQuery binds GET /items/search.
type SearchQuery struct {
	Text string `form:"text"`
	request.PageParams
}
