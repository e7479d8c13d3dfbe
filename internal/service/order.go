package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/enum"
)

// Errors returned by the order service.
var (
	ErrEmptyItems         = errors.New("items are required")
	ErrInvalidTableNumber = errors.New("table_number must be a positive integer")
	ErrInvalidQuantity    = errors.New("quantity must be > 0")
	ErrInvalidItemID      = errors.New("invalid item_id")
	ErrItemNotFound       = errors.New("item not found in restaurant")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrOrderForbidden     = errors.New("order belongs to another restaurant")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods the order lifecycle needs.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetItemForOrder(ctx context.Context, arg database.GetItemForOrderParams) (database.GetItemForOrderRow, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.ListOrderItemsByOrderRow, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	DeleteOrder(ctx context.Context, arg database.DeleteOrderParams) (uuid.UUID, error)
	UpsertOrderStatistic(ctx context.Context, arg database.UpsertOrderStatisticParams) error
	CreateOrderHistory(ctx context.Context, arg database.CreateOrderHistoryParams) (database.OrderHistory, error)
	CreateOrderItemHistory(ctx context.Context, arg database.CreateOrderItemHistoryParams) (database.OrderItemHistory, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx), so the
// service can run multi-row writes inside a single transaction.
type NewOrderStore func(db database.DBTX) OrderStore

// CreateOrderRequest is the validated input for placing an order.
type CreateOrderRequest struct {
	RestaurantID uuid.UUID
	TableNumber  int32
	Items        []CreateOrderLineRequest
}

// CreateOrderLineRequest is a single cart line.
type CreateOrderLineRequest struct {
	ItemID      string
	Quantity    int32
	SpecialNote string
}

// CreateOrderResult is the created order with its lines and item data.
type CreateOrderResult struct {
	Order database.Order
	Items []database.ListOrderItemsByOrderRow
}

// StatusUpdateResult reports the outcome of a status transition. For the
// terminal transition the live order is gone and History carries the archive
// row instead.
type StatusUpdateResult struct {
	Completed bool
	Order     database.Order
	Items     []database.ListOrderItemsByOrderRow
	History   database.OrderHistory
}

// OrderService handles order placement, status transitions, completion
// archival, and cancellation.
type OrderService struct {
	pool     TxBeginner
	store    OrderStore
	newStore NewOrderStore
	now      func() time.Time
}

// NewOrderService creates a new OrderService. store runs single-statement
// reads and writes against the pool; newStore builds a store bound to a
// transaction for the multi-row paths.
func NewOrderService(pool TxBeginner, store OrderStore, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, store: store, newStore: newStore, now: time.Now}
}

type processedLine struct {
	itemID   uuid.UUID
	item     database.GetItemForOrderRow
	quantity int32
	note     pgtype.Text
}

// CreateOrder validates the cart and persists the order with its lines in a
// single transaction. Every referenced item must resolve inside the ordering
// restaurant.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	if req.TableNumber <= 0 {
		return nil, ErrInvalidTableNumber
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for i, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}
		if _, err := uuid.Parse(line.ItemID); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidItemID)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	var lines []processedLine
	for i, line := range req.Items {
		itemID := uuid.MustParse(line.ItemID)
		item, err := store.GetItemForOrder(ctx, database.GetItemForOrderParams{
			ID:           itemID,
			RestaurantID: req.RestaurantID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrItemNotFound)
			}
			return nil, fmt.Errorf("items[%d]: get item: %w", i, err)
		}

		note := pgtype.Text{}
		if line.SpecialNote != "" {
			note = pgtype.Text{String: line.SpecialNote, Valid: true}
		}
		lines = append(lines, processedLine{
			itemID:   itemID,
			item:     item,
			quantity: line.Quantity,
			note:     note,
		})
	}

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		RestaurantID: req.RestaurantID,
		TableNumber:  req.TableNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	var rows []database.ListOrderItemsByOrderRow
	for _, line := range lines {
		oi, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:     order.ID,
			ItemID:      line.itemID,
			Quantity:    line.quantity,
			SpecialNote: line.note,
		})
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
		rows = append(rows, database.ListOrderItemsByOrderRow{
			ID:          oi.ID,
			OrderID:     oi.OrderID,
			ItemID:      oi.ItemID,
			Quantity:    oi.Quantity,
			SpecialNote: oi.SpecialNote,
			ItemName:    line.item.Name,
			ItemPrice:   line.item.Price,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &CreateOrderResult{Order: order, Items: rows}, nil
}

// UpdateStatus moves an order through pending -> preparing -> ready ->
// completed. Non-terminal statuses just overwrite the column. "completed"
// archives the order: statistics counters are incremented per line, the order
// and lines are copied into history, and the live rows are removed, all in
// one transaction. A second completion of the same order finds no live row
// and reports pgx.ErrNoRows.
func (s *OrderService) UpdateStatus(ctx context.Context, restaurantID, orderID uuid.UUID, status string) (*StatusUpdateResult, error) {
	if !isValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.RestaurantID != restaurantID {
		return nil, ErrOrderForbidden
	}

	if status != enum.OrderStatusCompleted {
		updated, err := s.store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
			ID:           orderID,
			RestaurantID: restaurantID,
			Status:       status,
		})
		if err != nil {
			return nil, err
		}
		items, err := s.store.ListOrderItemsByOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return &StatusUpdateResult{Order: updated, Items: items}, nil
	}

	history, err := s.completeOrderTx(ctx, order)
	if err != nil {
		return nil, err
	}
	return &StatusUpdateResult{Completed: true, History: history}, nil
}

// completeOrderTx runs the archival transaction: counters, history copies,
// then deletion of the live order. Any failure rolls the whole thing back and
// leaves the order untouched.
func (s *OrderService) completeOrderTx(ctx context.Context, order database.Order) (database.OrderHistory, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.OrderHistory{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	lines, err := store.ListOrderItemsByOrder(ctx, order.ID)
	if err != nil {
		return database.OrderHistory{}, fmt.Errorf("archive order: list items: %w", err)
	}

	// Counters are keyed by the date the order was placed, not completed.
	statDate := truncateToDate(order.CreatedAt)
	for _, line := range lines {
		err := store.UpsertOrderStatistic(ctx, database.UpsertOrderStatisticParams{
			RestaurantID: order.RestaurantID,
			ItemID:       line.ItemID,
			StatDate:     statDate,
			Quantity:     int64(line.Quantity),
		})
		if err != nil {
			return database.OrderHistory{}, fmt.Errorf("archive order: update statistics: %w", err)
		}
	}

	history, err := store.CreateOrderHistory(ctx, database.CreateOrderHistoryParams{
		RestaurantID: order.RestaurantID,
		TableNumber:  order.TableNumber,
		OrderedAt:    order.CreatedAt,
		CompletedAt:  s.now(),
	})
	if err != nil {
		return database.OrderHistory{}, fmt.Errorf("archive order: create history: %w", err)
	}

	for _, line := range lines {
		_, err := store.CreateOrderItemHistory(ctx, database.CreateOrderItemHistoryParams{
			OrderHistoryID: history.ID,
			ItemID:         line.ItemID,
			Quantity:       line.Quantity,
			SpecialNote:    line.SpecialNote,
		})
		if err != nil {
			return database.OrderHistory{}, fmt.Errorf("archive order: create history item: %w", err)
		}
	}

	// Order items cascade with the order row.
	if _, err := store.DeleteOrder(ctx, database.DeleteOrderParams{
		ID:           order.ID,
		RestaurantID: order.RestaurantID,
	}); err != nil {
		return database.OrderHistory{}, fmt.Errorf("archive order: delete live order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.OrderHistory{}, fmt.Errorf("archive order: commit tx: %w", err)
	}

	return history, nil
}

// Delete cancels a live order: hard delete, no archival, no statistics.
func (s *OrderService) Delete(ctx context.Context, restaurantID, orderID uuid.UUID) error {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.RestaurantID != restaurantID {
		return ErrOrderForbidden
	}
	_, err = s.store.DeleteOrder(ctx, database.DeleteOrderParams{
		ID:           orderID,
		RestaurantID: restaurantID,
	})
	return err
}

func isValidStatus(s string) bool {
	switch s {
	case enum.OrderStatusPending, enum.OrderStatusPreparing,
		enum.OrderStatusReady, enum.OrderStatusCompleted:
		return true
	}
	return false
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
