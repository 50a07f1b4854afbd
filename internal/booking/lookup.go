package booking

import (
	"context"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
)

type itemLookup struct {
	repo Repository
}

// NewItemLookup exposes booking data to the item service.
func NewItemLookup(repo Repository) item.BookingLookup {
	return &itemLookup{repo: repo}
}

func (l *itemLookup) ApprovedByItems(ctx context.Context, itemIDs []int64) (map[int64][]item.BookingBrief, error) {
	bookings, err := l.repo.ListApprovedByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]item.BookingBrief, len(itemIDs))
	for _, b := range bookings {
		grouped[b.ItemID] = append(grouped[b.ItemID], item.BookingBrief{
			ID:       b.ID,
			BookerID: b.BookerID,
			Start:    b.Start,
			End:      b.End,
		})
	}
	return grouped, nil
}

func (l *itemLookup) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	return l.repo.HasFinished(ctx, bookerID, itemID, now)
}
