package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordEvent stores a live action (login, logout, break) for the caller
	RecordEvent(ctx context.Context, req RecordEventRequest) (EventResponse, error)

	// SubmitRegularization stores a retroactive session claim awaiting approval
	SubmitRegularization(ctx context.Context, req SubmitRegularizationRequest) (EventResponse, error)

	// ReviewRegularization approves or rejects a pending regularization (manager)
	ReviewRegularization(ctx context.Context, req ReviewRegularizationRequest) (EventResponse, error)

	// GetHistory returns events grouped by local day for the requested period
	GetHistory(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)

	// GetSummary returns aggregate statistics for the requested period
	GetSummary(ctx context.Context, filter HistoryFilter) (SummaryResponse, error)

	// GetToday returns today's live activity feed
	GetToday(ctx context.Context, filter WorkerScope) (TodayResponse, error)

	// GetOverview returns summaries for the standard dashboard ranges
	GetOverview(ctx context.Context, filter WorkerScope) (OverviewResponse, error)

	// GetDurationLabel returns the net worked time of a single local day
	GetDurationLabel(ctx context.Context, req DurationRequest) (DurationResponse, error)
}
