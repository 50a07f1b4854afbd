package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrOwnItem          = apperror.Wrap(ErrPermissionDenied, http.StatusForbidden, "owner can't book own item")
	ErrNotAvailable     = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrNotWaiting       = apperror.New(http.StatusBadRequest, "can only approve/reject while WAITING")
	ErrDatesRequired    = apperror.New(http.StatusBadRequest, "start and end are required")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start must be before end")
	ErrStartInPast      = apperror.New(http.StatusBadRequest, "start must be in the present or future")
	ErrUnknownState     = apperror.New(http.StatusBadRequest, "Unknown state")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Booking struct {
	ID          int64
	Start       time.Time
	End         time.Time
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Status      Status
}

// ListFilter selects bookings either by booker or by item owner.
type ListFilter struct {
	BookerID int64
	OwnerID  int64
	State    State
	Now      time.Time
	From     int
	Size     int
}
