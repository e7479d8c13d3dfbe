package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/menulink/api/internal/database"
	"github.com/menulink/api/internal/enum"
)

type mockStatsStore struct {
	rows     []database.ListStatisticsByRangeRow
	err      error
	lastArgs database.ListStatisticsByRangeParams
}

func (m *mockStatsStore) ListStatisticsByRange(_ context.Context, arg database.ListStatisticsByRangeParams) ([]database.ListStatisticsByRangeRow, error) {
	m.lastArgs = arg
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func statRow(itemID uuid.UUID, name string, date time.Time, sold, orders int64) database.ListStatisticsByRangeRow {
	return database.ListStatisticsByRangeRow{
		ItemID:       itemID,
		ItemName:     name,
		StatDate:     date,
		QuantitySold: sold,
		OrderCount:   orders,
	}
}

func TestSummary_AggregatesAcrossDays(t *testing.T) {
	day1 := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	nasiID, tehID := uuid.New(), uuid.New()

	store := &mockStatsStore{rows: []database.ListStatisticsByRangeRow{
		statRow(nasiID, "Nasi Goreng", day1, 5, 3),
		statRow(tehID, "Es Teh", day1, 8, 4),
		statRow(nasiID, "Nasi Goreng", day2, 7, 2),
	}}
	svc := NewStatisticsService(store)

	summary, err := svc.Summary(context.Background(), uuid.New(), enum.PeriodThisWeek, "", "")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.TotalOrders != 9 {
		t.Errorf("total_orders: got %d, want 9", summary.TotalOrders)
	}
	if len(summary.TopItems) != 2 {
		t.Fatalf("expected 2 top items, got %d", len(summary.TopItems))
	}
	// Nasi Goreng sums to 12, Es Teh to 8.
	if summary.TopItems[0].ItemID != nasiID || summary.TopItems[0].Count != 12 {
		t.Errorf("top[0]: got %+v, want nasi with count 12", summary.TopItems[0])
	}
	if summary.TopItems[1].ItemID != tehID || summary.TopItems[1].Count != 8 {
		t.Errorf("top[1]: got %+v, want teh with count 8", summary.TopItems[1])
	}
}

func TestSummary_KeepsTopFive(t *testing.T) {
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	store := &mockStatsStore{}
	for i := int64(1); i <= 7; i++ {
		store.rows = append(store.rows, statRow(uuid.New(), "Item", day, i*10, 1))
	}
	svc := NewStatisticsService(store)

	summary, err := svc.Summary(context.Background(), uuid.New(), enum.PeriodToday, "", "")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if len(summary.TopItems) != 5 {
		t.Fatalf("expected top 5, got %d", len(summary.TopItems))
	}
	for i := 1; i < len(summary.TopItems); i++ {
		if summary.TopItems[i].Count > summary.TopItems[i-1].Count {
			t.Errorf("ranking not descending at %d: %d > %d", i, summary.TopItems[i].Count, summary.TopItems[i-1].Count)
		}
	}
	if summary.TopItems[0].Count != 70 {
		t.Errorf("top item count: got %d, want 70", summary.TopItems[0].Count)
	}
}

func TestSummary_EmptyRange(t *testing.T) {
	svc := NewStatisticsService(&mockStatsStore{})

	summary, err := svc.Summary(context.Background(), uuid.New(), enum.PeriodToday, "", "")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalOrders != 0 {
		t.Errorf("total_orders: got %d, want 0", summary.TotalOrders)
	}
	if summary.TopItems == nil || len(summary.TopItems) != 0 {
		t.Errorf("top_items must be an empty slice, got %#v", summary.TopItems)
	}
}

func TestSummary_PassesResolvedRange(t *testing.T) {
	store := &mockStatsStore{}
	svc := NewStatisticsService(store)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC) // a Wednesday
	}

	if _, err := svc.Summary(context.Background(), uuid.New(), enum.PeriodThisWeek, "", ""); err != nil {
		t.Fatalf("Summary: %v", err)
	}

	wantStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // Monday
	wantEnd := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)   // Sunday
	if !store.lastArgs.StartDate.Equal(wantStart) {
		t.Errorf("start: got %v, want %v", store.lastArgs.StartDate, wantStart)
	}
	if !store.lastArgs.EndDate.Equal(wantEnd) {
		t.Errorf("end: got %v, want %v", store.lastArgs.EndDate, wantEnd)
	}
}

// --- resolvePeriod tests ---

func TestResolvePeriod_DefaultsToToday(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	for _, period := range []string{"", enum.PeriodToday} {
		start, end, err := resolvePeriod(period, "", "", now)
		if err != nil {
			t.Fatalf("resolvePeriod(%q): %v", period, err)
		}
		if !start.Equal(today) || !end.Equal(today) {
			t.Errorf("resolvePeriod(%q): got [%v, %v], want today", period, start, end)
		}
	}
}

func TestResolvePeriod_WeekStartsMonday(t *testing.T) {
	// 2026-08-30 is a Sunday; the week still starts on the prior Monday.
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	start, end, err := resolvePeriod(enum.PeriodThisWeek, "", "", now)
	if err != nil {
		t.Fatalf("resolvePeriod: %v", err)
	}

	wantStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start: got %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end: got %v, want %v", end, wantEnd)
	}
}

func TestResolvePeriod_ThisMonth(t *testing.T) {
	now := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

	start, end, err := resolvePeriod(enum.PeriodThisMonth, "", "", now)
	if err != nil {
		t.Fatalf("resolvePeriod: %v", err)
	}

	if !start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", start)
	}
	if !end.Equal(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end: got %v", end)
	}
}

func TestResolvePeriod_Custom(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

	start, end, err := resolvePeriod(enum.PeriodCustom, "2026-08-01", "2026-08-15", now)
	if err != nil {
		t.Fatalf("resolvePeriod: %v", err)
	}
	if !start.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", start)
	}
	if !end.Equal(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end: got %v", end)
	}
}

func TestResolvePeriod_CustomDefaultsToToday(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	start, end, err := resolvePeriod(enum.PeriodCustom, "", "", now)
	if err != nil {
		t.Fatalf("resolvePeriod: %v", err)
	}
	if !start.Equal(today) || !end.Equal(today) {
		t.Errorf("got [%v, %v], want today", start, end)
	}
}

func TestResolvePeriod_CustomInvalidDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

	if _, _, err := resolvePeriod(enum.PeriodCustom, "30-08-2026", "", now); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("bad start_date: expected ErrInvalidPeriod, got %v", err)
	}
	if _, _, err := resolvePeriod(enum.PeriodCustom, "", "not-a-date", now); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("bad end_date: expected ErrInvalidPeriod, got %v", err)
	}
}

func TestResolvePeriod_CustomStartAfterEnd(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

	if _, _, err := resolvePeriod(enum.PeriodCustom, "2026-08-20", "2026-08-10", now); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestResolvePeriod_UnknownPeriod(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

	if _, _, err := resolvePeriod("last_year", "", "", now); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}
