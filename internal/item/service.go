package item

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// BookingLookup exposes the booking facts the item module needs.
type BookingLookup interface {
	// ApprovedByItems returns approved bookings per item, ordered by start ascending.
	ApprovedByItems(ctx context.Context, itemIDs []int64) (map[int64][]BookingBrief, error)
	// HasFinishedBooking reports whether bookerID holds an approved booking of itemID that ended before now.
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

// RequestChecker verifies item request references.
type RequestChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, actorID, itemID int64, req UpdateRequest) (*Item, error)
	// Get returns the bare item without permission checks.
	Get(ctx context.Context, itemID int64) (*Item, error)
	GetByID(ctx context.Context, actorID, itemID int64) (*Details, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*Details, error)
	ListByRequests(ctx context.Context, requestIDs []int64) (map[int64][]*Item, error)
	Search(ctx context.Context, actorID int64, text string, from, size int) ([]*Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
}

type service struct {
	repo        Repository
	comments    CommentRepository
	userService user.Service
	requests    RequestChecker
	bookings    BookingLookup
	now         func() time.Time
}

func NewService(
	repo Repository,
	comments CommentRepository,
	userService user.Service,
	requests RequestChecker,
	bookings BookingLookup,
) Service {
	return &service{
		repo:        repo,
		comments:    comments,
		userService: userService,
		requests:    requests,
		bookings:    bookings,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	if req.RequestID != nil {
		ok, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.Detail(ErrRequestNotFound, "Request with ID: %d not found.", *req.RequestID)
		}
	}

	it := &Item{
		Name:        name,
		Description: description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, actorID, itemID int64, req UpdateRequest) (*Item, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	it, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actorID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		it.Description = strings.TrimSpace(*req.Description)
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Get(ctx context.Context, itemID int64) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if errors.Is(err, ErrNotFound) {
		return nil, apperror.Detail(ErrNotFound, "Item with ID: %d not found.", itemID)
	}
	return it, err
}

func (s *service) GetByID(ctx context.Context, actorID, itemID int64) (*Details, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	it, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	list, err := s.enrich(ctx, []*Item{it}, it.OwnerID == actorID)
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*Details, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, items, true)
}

func (s *service) ListByRequests(ctx context.Context, requestIDs []int64) (map[int64][]*Item, error) {
	if len(requestIDs) == 0 {
		return map[int64][]*Item{}, nil
	}

	items, err := s.repo.ListByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]*Item, len(requestIDs))
	for _, it := range items {
		if it.RequestID != nil {
			grouped[*it.RequestID] = append(grouped[*it.RequestID], it)
		}
	}
	return grouped, nil
}

func (s *service) Search(ctx context.Context, actorID int64, text string, from, size int) ([]*Item, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text, from, size)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	author, err := s.userService.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	if _, err := s.Get(ctx, itemID); err != nil {
		return nil, err
	}

	now := s.now()
	booked, err := s.bookings.HasFinishedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, ErrNotBooked
	}

	comment := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// enrich attaches comments to every item and, when withBookings is set,
// the last and next approved bookings relative to now.
func (s *service) enrich(ctx context.Context, items []*Item, withBookings bool) ([]*Details, error) {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	result := make([]*Details, len(items))
	if len(items) == 0 {
		return result, nil
	}

	comments, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	var bookings map[int64][]BookingBrief
	if withBookings {
		bookings, err = s.bookings.ApprovedByItems(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	for i, it := range items {
		d := &Details{Item: *it, Comments: comments[it.ID]}
		if d.Comments == nil {
			d.Comments = []*Comment{}
		}
		if withBookings {
			d.LastBooking, d.NextBooking = lastAndNext(bookings[it.ID], now)
		}
		result[i] = d
	}
	return result, nil
}

// lastAndNext picks, from bookings ordered by start ascending, the latest one
// that started at or before now and the earliest one starting after now.
func lastAndNext(bookings []BookingBrief, now time.Time) (last, next *BookingBrief) {
	for i := range bookings {
		b := bookings[i]
		if b.Start.After(now) {
			if next == nil {
				next = &b
			}
			continue
		}
		last = &b
	}
	return last, next
}
