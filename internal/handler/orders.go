package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/enum"
	"github.com/menulink/api/internal/service"
)

// OrderStore defines the database methods needed to list live orders.
type OrderStore interface {
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (database.Restaurant, error)
	ListOrdersByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.ListOrderItemsByOrderRow, error)
}

// OrderLifecycle is the service slice driving placement, status transitions
// and cancellation. Satisfied by *service.OrderService.
type OrderLifecycle interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.CreateOrderResult, error)
	UpdateStatus(ctx context.Context, restaurantID, orderID uuid.UUID, status string) (*service.StatusUpdateResult, error)
	Delete(ctx context.Context, restaurantID, orderID uuid.UUID) error
}

// OrderHandler handles the owner-facing order endpoints.
type OrderHandler struct {
	store  OrderStore
	orders OrderLifecycle
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore, orders OrderLifecycle) *OrderHandler {
	return &OrderHandler{store: store, orders: orders}
}

type createOrderRequest struct {
	TableNumber int32                    `json:"table_number"`
	Items       []createOrderLineRequest `json:"items"`
}

type createOrderLineRequest struct {
	ItemID      string `json:"item_id"`
	Quantity    int32  `json:"quantity"`
	SpecialNote string `json:"special_note"`
}

type orderLineResponse struct {
	ID          uuid.UUID `json:"id"`
	ItemID      uuid.UUID `json:"item_id"`
	ItemName    string    `json:"item_name"`
	ItemPrice   string    `json:"item_price"`
	Quantity    int32     `json:"quantity"`
	SpecialNote string    `json:"special_note,omitempty"`
}

type orderResponse struct {
	ID          uuid.UUID           `json:"id"`
	TableNumber int32               `json:"table_number"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Items       []orderLineResponse `json:"items"`
}

func toOrderResponse(o database.Order, lines []database.ListOrderItemsByOrderRow) orderResponse {
	resp := orderResponse{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       []orderLineResponse{},
	}
	for _, line := range lines {
		resp.Items = append(resp.Items, orderLineResponse{
			ID:          line.ID,
			ItemID:      line.ItemID,
			ItemName:    line.ItemName,
			ItemPrice:   numericToString(line.ItemPrice),
			Quantity:    line.Quantity,
			SpecialNote: line.SpecialNote.String,
		})
	}
	return resp
}

// List returns live orders newest first, each with its lines.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, []orderResponse{})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	orders, err := h.store.ListOrdersByRestaurant(r.Context(), restaurant.ID)
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		lines, err := h.store.ListOrderItemsByOrder(r.Context(), o.ID)
		if err != nil {
			log.Printf("ERROR: list order items for %s: %v", o.ID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		out = append(out, toOrderResponse(o, lines))
	}

	writeJSON(w, http.StatusOK, out)
}

// Create places an order on behalf of the restaurant (counter orders).
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "create a restaurant first"})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	placeOrder(w, r, h.orders, restaurant.ID, req)
}

// UpdateStatus moves an order through its lifecycle. The terminal status
// archives the order and answers with the archive row.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "create a restaurant first"})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	orderID, err := uuidParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.orders.UpdateStatus(r.Context(), restaurant.ID, orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		case errors.Is(err, pgx.ErrNoRows):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		case errors.Is(err, service.ErrOrderForbidden):
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "order belongs to another restaurant"})
		case req.Status == enum.OrderStatusCompleted:
			log.Printf("ERROR: complete order %s: %v", orderID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to archive order"})
		default:
			log.Printf("ERROR: update order status %s: %v", orderID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	if result.Completed {
		writeJSON(w, http.StatusOK, orderHistoryResponse{
			ID:          result.History.ID,
			TableNumber: result.History.TableNumber,
			Status:      enum.OrderStatusCompleted,
			OrderedAt:   result.History.OrderedAt,
			CompletedAt: result.History.CompletedAt,
			Items:       []orderHistoryLineResponse{},
		})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(result.Order, result.Items))
}

// Delete cancels a live order.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "create a restaurant first"})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	orderID, err := uuidParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	if err := h.orders.Delete(r.Context(), restaurant.ID, orderID); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		case errors.Is(err, service.ErrOrderForbidden):
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "order belongs to another restaurant"})
		default:
			log.Printf("ERROR: cancel order %s: %v", orderID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "order cancelled"})
}

// placeOrder runs the shared create-order flow for the owner and table-side
// entry points.
func placeOrder(w http.ResponseWriter, r *http.Request, orders OrderLifecycle, restaurantID uuid.UUID, req createOrderRequest) {
	svcReq := service.CreateOrderRequest{
		RestaurantID: restaurantID,
		TableNumber:  req.TableNumber,
	}
	for _, line := range req.Items {
		svcReq.Items = append(svcReq.Items, service.CreateOrderLineRequest{
			ItemID:      line.ItemID,
			Quantity:    line.Quantity,
			SpecialNote: line.SpecialNote,
		})
	}

	result, err := orders.CreateOrder(r.Context(), svcReq)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrEmptyItems),
			errors.Is(err, service.ErrInvalidTableNumber),
			errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrInvalidItemID):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: create order: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(result.Order, result.Items))
}
