package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/menulink/api/internal/database"
)

// ReportStore defines the database methods needed by the reports handler.
type ReportStore interface {
	GetRestaurantByOwner(ctx context.Context, ownerID uuid.UUID) (database.Restaurant, error)
	SalesSummary(ctx context.Context, arg database.SalesSummaryParams) ([]database.SalesSummaryRow, error)
}

// ReportHandler recomputes sales reports from the archival tables.
type ReportHandler struct {
	store ReportStore
	now   func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(store ReportStore) *ReportHandler {
	return &ReportHandler{store: store, now: time.Now}
}

type salesReportItem struct {
	ItemID       uuid.UUID `json:"item_id"`
	ItemName     string    `json:"item_name"`
	CategoryName string    `json:"category_name"`
	TotalSold    int64     `json:"total_sold"`
}

type salesReportResponse struct {
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Items     []salesReportItem `json:"items"`
}

// SalesSummary answers GET /reports/sales-summary. Unlike the dashboard
// counters, this reads the history tables directly.
func (h *ReportHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	restaurant, err := callerRestaurant(r, h.store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, salesReportResponse{Items: []salesReportItem{}})
			return
		}
		log.Printf("ERROR: get restaurant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	q := r.URL.Query()
	start, end, err := resolveReportFilter(q.Get("filter"), q.Get("start_date"), q.Get("end_date"), h.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// The query treats the end bound as exclusive.
	rows, err := h.store.SalesSummary(r.Context(), database.SalesSummaryParams{
		RestaurantID: restaurant.ID,
		StartDate:    start,
		EndDate:      end.AddDate(0, 0, 1),
	})
	if err != nil {
		log.Printf("ERROR: sales summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := salesReportResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Items:     []salesReportItem{},
	}
	for _, row := range rows {
		resp.Items = append(resp.Items, salesReportItem{
			ItemID:       row.ItemID,
			ItemName:     row.ItemName,
			CategoryName: row.CategoryName,
			TotalSold:    row.TotalSold,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// resolveReportFilter maps the filter onto an inclusive [start, end] date
// range. Custom dates default to today.
func resolveReportFilter(filter, startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch filter {
	case "", "today":
		return today, today, nil
	case "this_month":
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(0, 1, -1), nil
	case "custom":
		start, end := today, today
		var err error
		if startStr != "" {
			start, err = time.ParseInLocation("2006-01-02", startStr, now.Location())
			if err != nil {
				return time.Time{}, time.Time{}, errors.New("invalid start_date")
			}
		}
		if endStr != "" {
			end, err = time.ParseInLocation("2006-01-02", endStr, now.Location())
			if err != nil {
				return time.Time{}, time.Time{}, errors.New("invalid end_date")
			}
		}
		if start.After(end) {
			return time.Time{}, time.Time{}, errors.New("start_date must not be after end_date")
		}
		return start, end, nil
	}
	return time.Time{}, time.Time{}, errors.New("invalid filter")
}
