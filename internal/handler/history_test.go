package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/enum"
	"github.com/menulink/api/internal/handler"
	"github.com/menulink/api/internal/middleware"
)

type mockHistoryStore struct {
	restaurants map[uuid.UUID]database.Restaurant // keyed by owner ID
	history     []database.OrderHistory
	lines       map[uuid.UUID][]database.ListOrderItemHistoryByOrderRow
}

func newMockHistoryStore() *mockHistoryStore {
	return &mockHistoryStore{
		restaurants: make(map[uuid.UUID]database.Restaurant),
		lines:       make(map[uuid.UUID][]database.ListOrderItemHistoryByOrderRow),
	}
}

func (m *mockHistoryStore) GetRestaurantByOwner(_ context.Context, ownerID uuid.UUID) (database.Restaurant, error) {
	r, ok := m.restaurants[ownerID]
	if !ok {
		return database.Restaurant{}, pgx.ErrNoRows
	}
	return r, nil
}

func (m *mockHistoryStore) ListOrderHistoryByRestaurant(_ context.Context, restaurantID uuid.UUID) ([]database.OrderHistory, error) {
	var result []database.OrderHistory
	for _, oh := range m.history {
		if oh.RestaurantID == restaurantID {
			result = append(result, oh)
		}
	}
	return result, nil
}

func (m *mockHistoryStore) ListOrderItemHistoryByOrder(_ context.Context, orderHistoryID uuid.UUID) ([]database.ListOrderItemHistoryByOrderRow, error) {
	return m.lines[orderHistoryID], nil
}

func setupHistoryRouter(store *mockHistoryStore) *chi.Mux {
	h := handler.NewHistoryHandler(store)
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testJWTSecret))
		r.Get("/order-history", h.List)
	})
	return r
}

func TestHistoryList_NoRestaurant(t *testing.T) {
	router := setupHistoryRouter(newMockHistoryStore())

	rr := doAuthRequest(t, router, "GET", "/order-history", uuid.New(), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if resp := decodeList(t, rr); len(resp) != 0 {
		t.Errorf("expected empty list, got %d", len(resp))
	}
}

func TestHistoryList_Valid(t *testing.T) {
	store := newMockHistoryStore()
	ownerID := uuid.New()
	restaurantID := uuid.New()
	store.restaurants[ownerID] = database.Restaurant{ID: restaurantID, OwnerID: ownerID, Name: "Test"}

	historyID := uuid.New()
	orderedAt := time.Date(2026, 8, 28, 19, 30, 0, 0, time.UTC)
	store.history = append(store.history, database.OrderHistory{
		ID:           historyID,
		RestaurantID: restaurantID,
		TableNumber:  4,
		OrderedAt:    orderedAt,
		CompletedAt:  orderedAt.Add(40 * time.Minute),
	})
	store.lines[historyID] = []database.ListOrderItemHistoryByOrderRow{
		{
			ItemID:       uuid.New(),
			ItemName:     "Nasi Goreng",
			CategoryName: "Mains",
			Quantity:     2,
			SpecialNote:  pgtype.Text{String: "extra spicy", Valid: true},
		},
		{
			ItemID:       uuid.New(),
			ItemName:     "Es Teh",
			CategoryName: "Drinks",
			Quantity:     1,
		},
	}

	router := setupHistoryRouter(store)
	rr := doAuthRequest(t, router, "GET", "/order-history", ownerID, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeList(t, rr)
	if len(resp) != 1 {
		t.Fatalf("expected 1 archived order, got %d", len(resp))
	}
	if resp[0]["status"] != enum.OrderStatusCompleted {
		t.Errorf("status: got %v, want %s", resp[0]["status"], enum.OrderStatusCompleted)
	}
	if resp[0]["table_number"] != float64(4) {
		t.Errorf("table_number: got %v", resp[0]["table_number"])
	}
	items := resp[0]["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["item_name"] != "Nasi Goreng" || first["category_name"] != "Mains" {
		t.Errorf("line: got %v", first)
	}
	if first["special_note"] != "extra spicy" {
		t.Errorf("special_note: got %v", first["special_note"])
	}
}

func TestHistoryList_ScopedToOwner(t *testing.T) {
	store := newMockHistoryStore()

	otherOwner := uuid.New()
	otherRestaurant := uuid.New()
	store.restaurants[otherOwner] = database.Restaurant{ID: otherRestaurant, OwnerID: otherOwner}
	store.history = append(store.history, database.OrderHistory{
		ID:           uuid.New(),
		RestaurantID: otherRestaurant,
		TableNumber:  1,
	})

	ownerID := uuid.New()
	store.restaurants[ownerID] = database.Restaurant{ID: uuid.New(), OwnerID: ownerID}

	router := setupHistoryRouter(store)
	rr := doAuthRequest(t, router, "GET", "/order-history", ownerID, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if resp := decodeList(t, rr); len(resp) != 0 {
		t.Errorf("expected no foreign history, got %d", len(resp))
	}
}
