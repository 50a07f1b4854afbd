package booking

import (
	"context"
	"errors"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	UpdateStatus(ctx context.Context, actorID, bookingID int64, approved bool) (*Booking, error)
	GetByID(ctx context.Context, actorID, bookingID int64) (*Booking, error)
	ListByBooker(ctx context.Context, actorID int64, state State, from, size int) ([]*Booking, error)
	ListByOwner(ctx context.Context, actorID int64, state State, from, size int) ([]*Booking, error)
}

type service struct {
	repo        Repository
	userService user.Service
	itemService item.Service
	now         func() time.Time
}

func NewService(repo Repository, userService user.Service, itemService item.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
		itemService: itemService,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	// 1. Booker must exist
	booker, err := s.userService.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	// 2. Validate time range
	if err := ValidateRange(req.Start, req.End, s.now()); err != nil {
		return nil, err
	}

	// 3. Item must exist and belong to someone else
	it, err := s.itemService.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID == bookerID {
		return nil, ErrOwnItem
	}
	if !it.Available {
		return nil, apperror.Detail(ErrNotAvailable, "Item with ID: %d is not available for booking.", it.ID)
	}

	// 4. Create booking awaiting the owner's decision
	b := &Booking{
		Start:       req.Start.UTC(),
		End:         req.End.UTC(),
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Status:      StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) UpdateStatus(ctx context.Context, actorID, bookingID int64, approved bool) (*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Only the item owner decides
	if b.ItemOwnerID != actorID {
		return nil, ErrPermissionDenied
	}

	next, err := Transition(b.Status, approved)
	if err != nil {
		return nil, err
	}

	// Conditional update: a concurrent decision wins the race and this one fails
	if err := s.repo.UpdateStatus(ctx, b.ID, StatusWaiting, next); err != nil {
		if errors.Is(err, ErrNotWaiting) {
			return nil, apperror.Detail(ErrNotWaiting, "Booking with ID: %d has already been decided.", b.ID)
		}
		return nil, err
	}

	b.Status = next
	metrics.IncBookingTransition(string(next))
	return b, nil
}

func (s *service) GetByID(ctx context.Context, actorID, bookingID int64) (*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != actorID && b.ItemOwnerID != actorID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, actorID int64, state State, from, size int) ([]*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ListFilter{BookerID: actorID, State: state, Now: s.now(), From: from, Size: size})
}

func (s *service) ListByOwner(ctx context.Context, actorID int64, state State, from, size int) ([]*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ListFilter{OwnerID: actorID, State: state, Now: s.now(), From: from, Size: size})
}

func (s *service) get(ctx context.Context, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperror.Detail(ErrNotFound, "Booking with ID: %d not found.", id)
	}
	return b, err
}
