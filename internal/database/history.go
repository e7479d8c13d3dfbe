package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createOrderHistory = `
INSERT INTO order_history (restaurant_id, table_number, ordered_at, completed_at)
VALUES ($1, $2, $3, $4)
RETURNING id, restaurant_id, table_number, ordered_at, completed_at
`

type CreateOrderHistoryParams struct {
	RestaurantID uuid.UUID
	TableNumber  int32
	OrderedAt    time.Time
	CompletedAt  time.Time
}

func (q *Queries) CreateOrderHistory(ctx context.Context, arg CreateOrderHistoryParams) (OrderHistory, error) {
	row := q.db.QueryRow(ctx, createOrderHistory, arg.RestaurantID, arg.TableNumber, arg.OrderedAt, arg.CompletedAt)
	var h OrderHistory
	err := row.Scan(&h.ID, &h.RestaurantID, &h.TableNumber, &h.OrderedAt, &h.CompletedAt)
	return h, err
}

const createOrderItemHistory = `
INSERT INTO order_item_history (order_history_id, item_id, quantity, special_note)
VALUES ($1, $2, $3, $4)
RETURNING id, order_history_id, item_id, quantity, special_note
`

type CreateOrderItemHistoryParams struct {
	OrderHistoryID uuid.UUID
	ItemID         uuid.UUID
	Quantity       int32
	SpecialNote    pgtype.Text
}

func (q *Queries) CreateOrderItemHistory(ctx context.Context, arg CreateOrderItemHistoryParams) (OrderItemHistory, error) {
	row := q.db.QueryRow(ctx, createOrderItemHistory, arg.OrderHistoryID, arg.ItemID, arg.Quantity, arg.SpecialNote)
	var h OrderItemHistory
	err := row.Scan(&h.ID, &h.OrderHistoryID, &h.ItemID, &h.Quantity, &h.SpecialNote)
	return h, err
}

const listOrderHistoryByRestaurant = `
SELECT id, restaurant_id, table_number, ordered_at, completed_at
FROM order_history
WHERE restaurant_id = $1
ORDER BY completed_at DESC
`

func (q *Queries) ListOrderHistoryByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]OrderHistory, error) {
	rows, err := q.db.Query(ctx, listOrderHistoryByRestaurant, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var history []OrderHistory
	for rows.Next() {
		var h OrderHistory
		if err := rows.Scan(&h.ID, &h.RestaurantID, &h.TableNumber, &h.OrderedAt, &h.CompletedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

const listOrderItemHistoryByOrder = `
SELECT oih.id, oih.order_history_id, oih.item_id, oih.quantity, oih.special_note, i.name AS item_name, c.name AS category_name
FROM order_item_history oih
JOIN items i ON i.id = oih.item_id
JOIN categories c ON c.id = i.category_id
WHERE oih.order_history_id = $1
ORDER BY oih.id
`

type ListOrderItemHistoryByOrderRow struct {
	ID             uuid.UUID
	OrderHistoryID uuid.UUID
	ItemID         uuid.UUID
	Quantity       int32
	SpecialNote    pgtype.Text
	ItemName       string
	CategoryName   string
}

func (q *Queries) ListOrderItemHistoryByOrder(ctx context.Context, orderHistoryID uuid.UUID) ([]ListOrderItemHistoryByOrderRow, error) {
	rows, err := q.db.Query(ctx, listOrderItemHistoryByOrder, orderHistoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListOrderItemHistoryByOrderRow
	for rows.Next() {
		var h ListOrderItemHistoryByOrderRow
		if err := rows.Scan(&h.ID, &h.OrderHistoryID, &h.ItemID, &h.Quantity, &h.SpecialNote, &h.ItemName, &h.CategoryName); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

const salesSummary = `
SELECT oih.item_id, i.name AS item_name, c.name AS category_name, SUM(oih.quantity)::bigint AS total_sold
FROM order_history oh
JOIN order_item_history oih ON oih.order_history_id = oh.id
JOIN items i ON i.id = oih.item_id
JOIN categories c ON c.id = i.category_id
WHERE oh.restaurant_id = $1
  AND oh.completed_at >= $2
  AND oh.completed_at < $3
GROUP BY oih.item_id, i.name, c.name
ORDER BY total_sold DESC
`

type SalesSummaryParams struct {
	RestaurantID uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
}

type SalesSummaryRow struct {
	ItemID       uuid.UUID
	ItemName     string
	CategoryName string
	TotalSold    int64
}

// SalesSummary recomputes per-item totals straight from the archival tables.
// EndDate is exclusive.
func (q *Queries) SalesSummary(ctx context.Context, arg SalesSummaryParams) ([]SalesSummaryRow, error) {
	rows, err := q.db.Query(ctx, salesSummary, arg.RestaurantID, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var summary []SalesSummaryRow
	for rows.Next() {
		var s SalesSummaryRow
		if err := rows.Scan(&s.ItemID, &s.ItemName, &s.CategoryName, &s.TotalSold); err != nil {
			return nil, err
		}
		summary = append(summary, s)
	}
	return summary, rows.Err()
}
