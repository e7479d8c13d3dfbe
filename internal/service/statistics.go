package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/enum"
)

var ErrInvalidPeriod = errors.New("invalid period")

// StatisticsStore defines the DB methods the statistics summary needs.
// Satisfied by *database.Queries.
type StatisticsStore interface {
	ListStatisticsByRange(ctx context.Context, arg database.ListStatisticsByRangeParams) ([]database.ListStatisticsByRangeRow, error)
}

// TopItem is one entry in the dashboard ranking.
type TopItem struct {
	ItemID uuid.UUID `json:"item_id"`
	Name   string    `json:"name"`
	Count  int64     `json:"count"`
}

// Summary is the aggregated dashboard view over the counter rows.
type Summary struct {
	TotalOrders int64     `json:"total_orders"`
	TopItems    []TopItem `json:"top_items"`
}

// StatisticsService aggregates the precomputed per-(restaurant, item, date)
// counters into dashboard numbers.
type StatisticsService struct {
	store StatisticsStore
	now   func() time.Time
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(store StatisticsStore) *StatisticsService {
	return &StatisticsService{store: store, now: time.Now}
}

// Summary resolves the period to a date range, sums order_count for
// total_orders, and ranks items by summed quantity_sold, keeping the top 5.
// Ties keep the stable row order of the underlying query.
func (s *StatisticsService) Summary(ctx context.Context, restaurantID uuid.UUID, period, startStr, endStr string) (*Summary, error) {
	start, end, err := resolvePeriod(period, startStr, endStr, s.now())
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListStatisticsByRange(ctx, database.ListStatisticsByRangeParams{
		RestaurantID: restaurantID,
		StartDate:    start,
		EndDate:      end,
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{TopItems: []TopItem{}}
	totals := make(map[uuid.UUID]*TopItem)
	var ranked []*TopItem
	for _, row := range rows {
		summary.TotalOrders += row.OrderCount
		entry, ok := totals[row.ItemID]
		if !ok {
			entry = &TopItem{ItemID: row.ItemID, Name: row.ItemName}
			totals[row.ItemID] = entry
			ranked = append(ranked, entry)
		}
		entry.Count += row.QuantitySold
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	for _, entry := range ranked {
		summary.TopItems = append(summary.TopItems, *entry)
	}

	return summary, nil
}

// resolvePeriod maps a named period onto an inclusive [start, end] date
// range. Weeks start on Monday. Custom ranges parse YYYY-MM-DD and default
// to today.
func resolvePeriod(period, startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case "", enum.PeriodToday:
		return today, today, nil
	case enum.PeriodThisWeek:
		weekday := int(today.Weekday())
		if weekday == 0 { // Sunday
			weekday = 7
		}
		start := today.AddDate(0, 0, -(weekday - 1))
		return start, start.AddDate(0, 0, 6), nil
	case enum.PeriodThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end := start.AddDate(0, 1, -1)
		return start, end, nil
	case enum.PeriodCustom:
		start, end := today, today
		var err error
		if startStr != "" {
			start, err = time.ParseInLocation("2006-01-02", startStr, now.Location())
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", ErrInvalidPeriod)
			}
		}
		if endStr != "" {
			end, err = time.ParseInLocation("2006-01-02", endStr, now.Location())
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", ErrInvalidPeriod)
			}
		}
		if start.After(end) {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date after end_date: %w", ErrInvalidPeriod)
		}
		return start, end, nil
	}
	return time.Time{}, time.Time{}, ErrInvalidPeriod
}
