package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type fakeUsers map[int64]*user.User

func (f fakeUsers) Create(context.Context, string, string) (*user.User, error) { return nil, nil }
func (f fakeUsers) Update(context.Context, int64, user.UpdateRequest) (*user.User, error) {
	return nil, nil
}
func (f fakeUsers) List(context.Context) ([]*user.User, error) { return nil, nil }
func (f fakeUsers) Delete(context.Context, int64) error          { return nil }
func (f fakeUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

// stubItems only answers Get.
type stubItems struct {
	item.Service
	items map[int64]*item.Item
}

func (s stubItems) Get(_ context.Context, id int64) (*item.Item, error) {
	if it, ok := s.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, item.ErrNotFound
}

// memRepo is an in-memory Repository with the same conditional status update.
type memRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*Booking
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: make(map[int64]*Booking)}
}

func (r *memRepo) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) List(_ context.Context, f ListFilter) ([]*Booking, error) {
	r.mu.Lock()
	var all []*Booking
	for _, b := range r.bookings {
		if (f.BookerID == 0 || b.BookerID == f.BookerID) && (f.OwnerID == 0 || b.ItemOwnerID == f.OwnerID) {
			cp := *b
			all = append(all, &cp)
		}
	}
	r.mu.Unlock()

	matched := Filter(all, f.State, f.Now)
	if f.From >= len(matched) {
		return nil, nil
	}
	end := min(f.From+f.Size, len(matched))
	return matched[f.From:end], nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id int64, from, to Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return ErrNotWaiting
	}
	b.Status = to
	return nil
}

func (r *memRepo) ListApprovedByItems(context.Context, []int64) ([]*Booking, error) {
	return nil, nil
}

func (r *memRepo) HasFinished(context.Context, int64, int64, time.Time) (bool, error) {
	return false, nil
}

func newTestService() (*service, *memRepo) {
	repo := newMemRepo()
	users := fakeUsers{
		1: {ID: 1, Name: "Booker"},
		2: {ID: 2, Name: "Owner"},
		3: {ID: 3, Name: "Stranger"},
	}
	items := stubItems{items: map[int64]*item.Item{
		5: {ID: 5, Name: "Drill", Available: true, OwnerID: 2},
		6: {ID: 6, Name: "Saw", Available: false, OwnerID: 2},
	}}
	svc := NewService(repo, users, items).(*service)
	svc.now = func() time.Time { return T }
	return svc, repo
}

func tomorrow() CreateRequest {
	return CreateRequest{ItemID: 5, Start: T.Add(24 * time.Hour), End: T.Add(48 * time.Hour)}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _ := newTestService()
		b, err := svc.Create(ctx, 1, tomorrow())
		require.NoError(t, err)
		assert.Equal(t, StatusWaiting, b.Status)
		assert.Equal(t, int64(1), b.BookerID)
		assert.Equal(t, "Drill", b.ItemName)
		assert.NotZero(t, b.ID)
	})

	t.Run("OwnerCannotBookOwnItem", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(ctx, 2, tomorrow())
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("StartNotBeforeEnd", func(t *testing.T) {
		svc, _ := newTestService()
		req := tomorrow()
		req.End = req.Start
		_, err := svc.Create(ctx, 1, req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("StartInPast", func(t *testing.T) {
		svc, _ := newTestService()
		req := tomorrow()
		req.Start = T.Add(-time.Hour)
		_, err := svc.Create(ctx, 1, req)
		assert.ErrorIs(t, err, ErrStartInPast)
	})

	t.Run("ItemUnavailable", func(t *testing.T) {
		svc, _ := newTestService()
		req := tomorrow()
		req.ItemID = 6
		_, err := svc.Create(ctx, 1, req)
		assert.ErrorIs(t, err, ErrNotAvailable)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		svc, _ := newTestService()
		req := tomorrow()
		req.ItemID = 99
		_, err := svc.Create(ctx, 1, req)
		assert.ErrorIs(t, err, item.ErrNotFound)
	})

	t.Run("UnknownBooker", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(ctx, 42, tomorrow())
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerApprovesOnce", func(t *testing.T) {
		svc, _ := newTestService()
		b, err := svc.Create(ctx, 1, tomorrow())
		require.NoError(t, err)

		approved, err := svc.UpdateStatus(ctx, 2, b.ID, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)

		_, err = svc.UpdateStatus(ctx, 2, b.ID, false)
		assert.ErrorIs(t, err, ErrNotWaiting)
		assert.Contains(t, err.Error(), string(StatusApproved))
	})

	t.Run("Reject", func(t *testing.T) {
		svc, _ := newTestService()
		b, err := svc.Create(ctx, 1, tomorrow())
		require.NoError(t, err)

		rejected, err := svc.UpdateStatus(ctx, 2, b.ID, false)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, rejected.Status)
	})

	t.Run("BookerCannotDecide", func(t *testing.T) {
		svc, _ := newTestService()
		b, err := svc.Create(ctx, 1, tomorrow())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, 1, b.ID, true)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Missing", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.UpdateStatus(ctx, 2, 77, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ConcurrentDecisions", func(t *testing.T) {
		svc, repo := newTestService()
		b, err := svc.Create(ctx, 1, tomorrow())
		require.NoError(t, err)

		const n = 8
		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = svc.UpdateStatus(ctx, 2, b.ID, i%2 == 0)
			}()
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, ErrNotWaiting)
		}
		assert.Equal(t, 1, succeeded)

		stored, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.NotEqual(t, StatusWaiting, stored.Status)
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	b, err := svc.Create(ctx, 1, tomorrow())
	require.NoError(t, err)

	for _, actor := range []int64{1, 2} {
		got, err := svc.GetByID(ctx, actor, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	}

	_, err = svc.GetByID(ctx, 3, b.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.GetByID(ctx, 1, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Lists(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	// Seed directly to place bookings around T.
	seed := []*Booking{
		{Start: T.Add(-3 * time.Hour), End: T.Add(-2 * time.Hour), ItemID: 5, ItemOwnerID: 2, BookerID: 1, Status: StatusApproved},
		{Start: T.Add(-time.Hour), End: T.Add(time.Hour), ItemID: 5, ItemOwnerID: 2, BookerID: 1, Status: StatusApproved},
		{Start: T.Add(time.Hour), End: T.Add(2 * time.Hour), ItemID: 5, ItemOwnerID: 2, BookerID: 1, Status: StatusWaiting},
		{Start: T.Add(2 * time.Hour), End: T.Add(3 * time.Hour), ItemID: 5, ItemOwnerID: 2, BookerID: 3, Status: StatusRejected},
	}
	for _, b := range seed {
		require.NoError(t, repo.Create(ctx, b))
	}

	mine, err := svc.ListByBooker(ctx, 1, StateAll, 0, 10)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, int64(3), mine[0].ID, "newest start first")

	current, err := svc.ListByBooker(ctx, 1, StateCurrent, 0, 10)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, int64(2), current[0].ID)

	owned, err := svc.ListByOwner(ctx, 2, StateRejected, 0, 10)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, int64(4), owned[0].ID)

	page, err := svc.ListByOwner(ctx, 2, StateAll, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, []int64{3, 2}, []int64{page[0].ID, page[1].ID})

	_, err = svc.ListByOwner(ctx, 42, StateAll, 0, 10)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
