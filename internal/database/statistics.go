package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const upsertOrderStatistic = `
INSERT INTO order_statistics (restaurant_id, item_id, stat_date, quantity_sold, order_count)
VALUES ($1, $2, $3, $4, 1)
ON CONFLICT (restaurant_id, item_id, stat_date)
DO UPDATE SET
    quantity_sold = order_statistics.quantity_sold + EXCLUDED.quantity_sold,
    order_count   = order_statistics.order_count + 1
`

type UpsertOrderStatisticParams struct {
	RestaurantID uuid.UUID
	ItemID       uuid.UUID
	StatDate     time.Time
	Quantity     int64
}

// UpsertOrderStatistic adds quantity to quantity_sold and 1 to order_count for
// the (restaurant, item, date) counter row, creating it on first sale. The
// increment happens inside a single statement so concurrent completions
// touching the same counter cannot lose updates.
func (q *Queries) UpsertOrderStatistic(ctx context.Context, arg UpsertOrderStatisticParams) error {
	_, err := q.db.Exec(ctx, upsertOrderStatistic, arg.RestaurantID, arg.ItemID, arg.StatDate, arg.Quantity)
	return err
}

const listStatisticsByRange = `
SELECT s.item_id, i.name AS item_name, s.stat_date, s.quantity_sold, s.order_count
FROM order_statistics s
JOIN items i ON i.id = s.item_id
WHERE s.restaurant_id = $1
  AND s.stat_date >= $2
  AND s.stat_date <= $3
ORDER BY s.stat_date, s.item_id
`

type ListStatisticsByRangeParams struct {
	RestaurantID uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
}

type ListStatisticsByRangeRow struct {
	ItemID       uuid.UUID
	ItemName     string
	StatDate     time.Time
	QuantitySold int64
	OrderCount   int64
}

// ListStatisticsByRange returns counter rows with stat_date in the inclusive
// [StartDate, EndDate] range.
func (q *Queries) ListStatisticsByRange(ctx context.Context, arg ListStatisticsByRangeParams) ([]ListStatisticsByRangeRow, error) {
	rows, err := q.db.Query(ctx, listStatisticsByRange, arg.RestaurantID, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var stats []ListStatisticsByRangeRow
	for rows.Next() {
		var s ListStatisticsByRangeRow
		if err := rows.Scan(&s.ItemID, &s.ItemName, &s.StatDate, &s.QuantitySold, &s.OrderCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
