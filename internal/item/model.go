package item

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item not found")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "only the owner can edit item")
	ErrRequestNotFound     = apperror.New(http.StatusNotFound, "item request not found")
	ErrNotBooked           = apperror.New(http.StatusBadRequest, "You haven't booked this item yet.")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name can't be empty")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description can't be empty")
	ErrAvailableRequired   = apperror.New(http.StatusBadRequest, "available can't be null")
	ErrTextRequired        = apperror.New(http.StatusBadRequest, "text can't be empty")
)

// Item is a thing a user offers for sharing. Only available items can be booked.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64 // the item request this item answers, if any
}

// Comment is feedback left by a user who has finished a booking of the item.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

// BookingBrief is the part of an approved booking shown on an item card.
type BookingBrief struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

// Details is an item enriched for display.
// LastBooking and NextBooking are only filled for the item owner.
type Details struct {
	Item
	LastBooking *BookingBrief
	NextBooking *BookingBrief
	Comments    []*Comment
}
