package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createOrder = `
INSERT INTO orders (restaurant_id, table_number, status)
VALUES ($1, $2, 'pending')
RETURNING id, restaurant_id, table_number, status, created_at, updated_at
`

type CreateOrderParams struct {
	RestaurantID uuid.UUID
	TableNumber  int32
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder, arg.RestaurantID, arg.TableNumber)
	var o Order
	err := row.Scan(&o.ID, &o.RestaurantID, &o.TableNumber, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

const createOrderItem = `
INSERT INTO order_items (order_id, item_id, quantity, special_note)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, item_id, quantity, special_note
`

type CreateOrderItemParams struct {
	OrderID     uuid.UUID
	ItemID      uuid.UUID
	Quantity    int32
	SpecialNote pgtype.Text
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem, arg.OrderID, arg.ItemID, arg.Quantity, arg.SpecialNote)
	var oi OrderItem
	err := row.Scan(&oi.ID, &oi.OrderID, &oi.ItemID, &oi.Quantity, &oi.SpecialNote)
	return oi, err
}

const listOrdersByRestaurant = `
SELECT id, restaurant_id, table_number, status, created_at, updated_at
FROM orders
WHERE restaurant_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListOrdersByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrdersByRestaurant, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.RestaurantID, &o.TableNumber, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const getOrder = `
SELECT id, restaurant_id, table_number, status, created_at, updated_at
FROM orders
WHERE id = $1
`

// GetOrder is deliberately unscoped: the status-transition path needs to tell
// "order does not exist" (404) apart from "order belongs to another
// restaurant" (403).
func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, getOrder, id)
	var o Order
	err := row.Scan(&o.ID, &o.RestaurantID, &o.TableNumber, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

const listOrderItemsByOrder = `
SELECT oi.id, oi.order_id, oi.item_id, oi.quantity, oi.special_note, i.name AS item_name, i.price AS item_price
FROM order_items oi
JOIN items i ON i.id = oi.item_id
WHERE oi.order_id = $1
ORDER BY oi.id
`

type ListOrderItemsByOrderRow struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ItemID      uuid.UUID
	Quantity    int32
	SpecialNote pgtype.Text
	ItemName    string
	ItemPrice   pgtype.Numeric
}

func (q *Queries) ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]ListOrderItemsByOrderRow, error) {
	rows, err := q.db.Query(ctx, listOrderItemsByOrder, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListOrderItemsByOrderRow
	for rows.Next() {
		var oi ListOrderItemsByOrderRow
		if err := rows.Scan(&oi.ID, &oi.OrderID, &oi.ItemID, &oi.Quantity, &oi.SpecialNote, &oi.ItemName, &oi.ItemPrice); err != nil {
			return nil, err
		}
		items = append(items, oi)
	}
	return items, rows.Err()
}

const updateOrderStatus = `
UPDATE orders
SET status = $3, updated_at = now()
WHERE id = $1 AND restaurant_id = $2
RETURNING id, restaurant_id, table_number, status, created_at, updated_at
`

type UpdateOrderStatusParams struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Status       string
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.RestaurantID, arg.Status)
	var o Order
	err := row.Scan(&o.ID, &o.RestaurantID, &o.TableNumber, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

const deleteOrder = `
DELETE FROM orders
WHERE id = $1 AND restaurant_id = $2
RETURNING id
`

type DeleteOrderParams struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
}

func (q *Queries) DeleteOrder(ctx context.Context, arg DeleteOrderParams) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, deleteOrder, arg.ID, arg.RestaurantID)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}
