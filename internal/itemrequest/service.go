package itemrequest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, requestorID int64, from, size int) ([]*WithItems, error)
	ListOthers(ctx context.Context, userID int64, from, size int) ([]*WithItems, error)
	GetByID(ctx context.Context, userID, id int64) (*WithItems, error)
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

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*ItemRequest, error) {
	if _, err := s.userService.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	req := &ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     s.now().Truncate(time.Second),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requestorID int64, from, size int) ([]*WithItems, error) {
	return s.list(ctx, requestorID, false, from, size)
}

func (s *service) ListOthers(ctx context.Context, userID int64, from, size int) ([]*WithItems, error) {
	return s.list(ctx, userID, true, from, size)
}

func (s *service) GetByID(ctx context.Context, userID, id int64) (*WithItems, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperror.Detail(ErrNotFound, "Request with ID: %d not found.", id)
	}
	if err != nil {
		return nil, err
	}

	list, err := s.attachItems(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (s *service) list(ctx context.Context, userID int64, others bool, from, size int) ([]*WithItems, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.List(ctx, userID, others, from, size)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, reqs)
}

func (s *service) attachItems(ctx context.Context, reqs []*ItemRequest) ([]*WithItems, error) {
	ids := make([]int64, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}

	byRequest, err := s.itemService.ListByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*WithItems, len(reqs))
	for i, r := range reqs {
		items := byRequest[r.ID]
		if items == nil {
			items = []*item.Item{}
		}
		result[i] = &WithItems{ItemRequest: *r, Items: items}
	}
	return result, nil
}
