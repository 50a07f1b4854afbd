package http

import (
	itemhttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/timestamp"
)

type RequestResponse struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description"`
	RequestorID int64                   `json:"requestorId"`
	Created     timestamp.Time          `json:"created"`
	Items       []itemhttp.ItemResponse `json:"items"`
}

func NewRequestResponse(r *itemrequest.WithItems) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     timestamp.From(r.Created),
		Items:       itemhttp.NewItemListResponse(r.Items),
	}
}

func NewRequestListResponse(list []*itemrequest.WithItems) []RequestResponse {
	res := make([]RequestResponse, len(list))
	for i, r := range list {
		res[i] = NewRequestResponse(r)
	}
	return res
}

// CreateRequestRequest defines the payload for POST /requests.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required,notblank"`
}
