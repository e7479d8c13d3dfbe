package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/handler"
	"github.com/menulink/api/internal/middleware"
	"github.com/menulink/api/internal/service"
)

type mockStatsRestaurantStore struct {
	restaurants map[uuid.UUID]database.Restaurant // keyed by owner ID
}

func (m *mockStatsRestaurantStore) GetRestaurantByOwner(_ context.Context, ownerID uuid.UUID) (database.Restaurant, error) {
	r, ok := m.restaurants[ownerID]
	if !ok {
		return database.Restaurant{}, pgx.ErrNoRows
	}
	return r, nil
}

type mockSummarizer struct {
	summaryFn func(ctx context.Context, restaurantID uuid.UUID, period, startStr, endStr string) (*service.Summary, error)
}

func (m *mockSummarizer) Summary(ctx context.Context, restaurantID uuid.UUID, period, startStr, endStr string) (*service.Summary, error) {
	return m.summaryFn(ctx, restaurantID, period, startStr, endStr)
}

func setupStatisticsRouter(store *mockStatsRestaurantStore, stats handler.StatisticsSummarizer) *chi.Mux {
	h := handler.NewStatisticsHandler(store, stats)
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testJWTSecret))
		r.Get("/statistics", h.Summary)
	})
	return r
}

func TestStatistics_NoRestaurant(t *testing.T) {
	store := &mockStatsRestaurantStore{restaurants: map[uuid.UUID]database.Restaurant{}}
	stats := &mockSummarizer{
		summaryFn: func(_ context.Context, _ uuid.UUID, _, _, _ string) (*service.Summary, error) {
			t.Fatal("summarizer must not be called without a restaurant")
			return nil, nil
		},
	}

	router := setupStatisticsRouter(store, stats)
	rr := doAuthRequest(t, router, "GET", "/statistics", uuid.New(), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeObj(t, rr)
	if resp["total_orders"] != float64(0) {
		t.Errorf("total_orders: got %v, want 0", resp["total_orders"])
	}
	if items, ok := resp["top_items"].([]interface{}); !ok || len(items) != 0 {
		t.Errorf("top_items: got %v, want empty list", resp["top_items"])
	}
}

func TestStatistics_Valid(t *testing.T) {
	ownerID := uuid.New()
	restaurantID := uuid.New()
	store := &mockStatsRestaurantStore{restaurants: map[uuid.UUID]database.Restaurant{
		ownerID: {ID: restaurantID, OwnerID: ownerID, Name: "Test"},
	}}

	var gotRestaurant uuid.UUID
	var gotPeriod string
	stats := &mockSummarizer{
		summaryFn: func(_ context.Context, rid uuid.UUID, period, _, _ string) (*service.Summary, error) {
			gotRestaurant = rid
			gotPeriod = period
			return &service.Summary{
				TotalOrders: 42,
				TopItems: []service.TopItem{
					{ItemID: uuid.New(), Name: "Nasi Goreng", Count: 30},
				},
			}, nil
		},
	}

	router := setupStatisticsRouter(store, stats)
	rr := doAuthRequest(t, router, "GET", "/statistics?period=this_week", ownerID, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if gotRestaurant != restaurantID {
		t.Errorf("restaurant: got %s, want %s", gotRestaurant, restaurantID)
	}
	if gotPeriod != "this_week" {
		t.Errorf("period: got %q, want this_week", gotPeriod)
	}

	resp := decodeObj(t, rr)
	if resp["total_orders"] != float64(42) {
		t.Errorf("total_orders: got %v, want 42", resp["total_orders"])
	}
	items := resp["top_items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 top item, got %d", len(items))
	}
	if top := items[0].(map[string]interface{}); top["name"] != "Nasi Goreng" {
		t.Errorf("top item: got %v", top)
	}
}

func TestStatistics_InvalidPeriod(t *testing.T) {
	ownerID := uuid.New()
	store := &mockStatsRestaurantStore{restaurants: map[uuid.UUID]database.Restaurant{
		ownerID: {ID: uuid.New(), OwnerID: ownerID},
	}}
	stats := &mockSummarizer{
		summaryFn: func(_ context.Context, _ uuid.UUID, _, _, _ string) (*service.Summary, error) {
			return nil, service.ErrInvalidPeriod
		},
	}

	router := setupStatisticsRouter(store, stats)
	rr := doAuthRequest(t, router, "GET", "/statistics?period=last_year", ownerID, nil)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestStatistics_NoToken(t *testing.T) {
	store := &mockStatsRestaurantStore{restaurants: map[uuid.UUID]database.Restaurant{}}
	stats := &mockSummarizer{
		summaryFn: func(_ context.Context, _ uuid.UUID, _, _, _ string) (*service.Summary, error) {
			return nil, nil
		},
	}

	router := setupStatisticsRouter(store, stats)
	rr := doRequest(t, router, "GET", "/statistics", nil)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
