package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/timestamp"
)

// ListBookingsRequest defines query parameters for GET /bookings and GET /bookings/owner.
type ListBookingsRequest struct {
	State string `form:"state"`
	request.PageParams
}

// StatusRequest defines query parameters for PATCH /bookings/:id.
type StatusRequest struct {
	Approved *bool `form:"approved" binding:"required"`
}

type CreateBookingRequest struct {
	ItemID int64           `json:"itemId" binding:"required,min=1"`
	Start  *timestamp.Time `json:"start" binding:"required,futureorpresent"`
	End    *timestamp.Time `json:"end" binding:"required,futureorpresent"`
}

// RegisterValidations adds the startbeforeend struct rule for CreateBookingRequest.
func RegisterValidations(v *validator.Validate) {
	v.RegisterStructValidation(startBeforeEnd, CreateBookingRequest{})
}

func startBeforeEnd(sl validator.StructLevel) {
	r := sl.Current().Interface().(CreateBookingRequest)
	if r.Start == nil || r.End == nil {
		return
	}
	if !r.Start.Before(r.End.Time) {
		sl.ReportError(r.End, "End", "end", "startbeforeend", "")
	}
}

type UserTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64          `json:"id"`
	Start  timestamp.Time `json:"start"`
	End    timestamp.Time `json:"end"`
	Status string         `json:"status"`
	Booker UserTag        `json:"booker"`
	Item   ItemTag        `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  timestamp.From(b.Start),
		End:    timestamp.From(b.End),
		Status: string(b.Status),
		Booker: UserTag{ID: b.BookerID, Name: b.BookerName},
		Item:   ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}

func NewBookingListResponse(list []*booking.Booking) []BookingResponse {
	res := make([]BookingResponse, len(list))
	for i, b := range list {
		res[i] = NewBookingResponse(b)
	}
	return res
}
