package enum

// ── Order state machine (CHECK constrained in DB) ──

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
)

// ── Image kinds served from storage (path allowlist) ──

const (
	ImageKindItems    = "items"
	ImageKindProfiles = "profiles"
)

// ── Statistics periods ──

const (
	PeriodToday     = "today"
	PeriodThisWeek  = "this_week"
	PeriodThisMonth = "this_month"
	PeriodCustom    = "custom"
)
