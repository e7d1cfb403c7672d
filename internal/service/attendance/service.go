package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// TxRunner runs fn inside a transaction, passing a context that carries it.
type TxRunner func(ctx context.Context, fn func(txCtx context.Context) error) error

// noTx runs fn directly; used when no database is wired (tests, CLI).
func noTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type AttendanceServiceImpl struct {
	attendance.EventRepository
	withTx     TxRunner
	reconciler *Reconciler
	recorder   metrics.Recorder
}

func NewAttendanceService(
	eventRepo attendance.EventRepository,
	withTx TxRunner,
	reconciler *Reconciler,
	recorder metrics.Recorder,
) attendance.AttendanceService {
	if withTx == nil {
		withTx = noTx
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AttendanceServiceImpl{
		EventRepository: eventRepo,
		withTx:          withTx,
		reconciler:      reconciler,
		recorder:        recorder,
	}
}

// scopedUserID returns whose events the caller may read. Reading another
// worker needs perm; a caller's own events need nothing more.
func scopedUserID(claims user.Claims, scope attendance.WorkerScope, perm user.Permission) (string, error) {
	if scope.WorkerID == nil || *scope.WorkerID == "" || *scope.WorkerID == claims.UserID {
		return claims.UserID, nil
	}
	if !user.HasPermission(claims.Role, perm) {
		return "", attendance.ErrForbiddenWorkerScope
	}
	return *scope.WorkerID, nil
}

func (a *AttendanceServiceImpl) loadEvents(ctx context.Context, scope attendance.WorkerScope, perm user.Permission) ([]attendance.Event, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	userID, err := scopedUserID(claims, scope, perm)
	if err != nil {
		return nil, err
	}

	events, err := a.EventRepository.ListByUser(ctx, userID, claims.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	return events, nil
}

func (a *AttendanceServiceImpl) queryFromFilter(filter attendance.HistoryFilter) (Query, error) {
	name, err := attendance.ParseRangeName(filter.Range)
	if err != nil {
		return Query{}, err
	}
	q := Query{Range: name, Now: a.reconciler.Now()}
	if name == attendance.RangeCustom {
		var start, end time.Time
		if filter.StartDate != nil {
			start, _ = validator.IsValidDate(*filter.StartDate)
		}
		if filter.EndDate != nil {
			end, _ = validator.IsValidDate(*filter.EndDate)
		}
		custom := NewCustomRange(start, end, a.reconciler.Location())
		q.Custom = &custom
	}
	return q, nil
}

func (a *AttendanceServiceImpl) resolvedBounds(q Query) (*string, *string) {
	r, ok := a.reconciler.Resolve(q)
	if !ok {
		return nil, nil
	}
	start := r.Start.Format("2006-01-02")
	end := r.End.Format("2006-01-02")
	return &start, &end
}

func newSummaryResponse(name attendance.RangeName, s Summary, start, end *string) attendance.SummaryResponse {
	return attendance.SummaryResponse{
		Range:            string(name),
		StartDate:        start,
		EndDate:          end,
		DaysCount:        s.DaysCount,
		RegularizedCount: s.RegularizedCount,
		VerifiedCount:    s.VerifiedCount,
		TotalHours:       s.TotalHours,
		TotalHoursLabel:  s.TotalHoursLabel(),
		DroppedSessions:  s.DroppedSessions,
		NegativeSessions: s.NegativeSessions,
	}
}

// RecordEvent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordEvent(ctx context.Context, req attendance.RecordEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	action, err := attendance.ParseAction(req.Action)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	if !action.IsLive() {
		return attendance.EventResponse{}, attendance.ErrRegularizationViaRecord
	}

	created, err := a.EventRepository.Create(ctx, attendance.Event{
		UserID:    claims.UserID,
		CompanyID: claims.CompanyID,
		Timestamp: a.reconciler.Now().UTC(),
		Action:    action,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	a.recorder.RecordEventStored(string(action))
	return attendance.NewEventResponse(created), nil
}

// SubmitRegularization implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SubmitRegularization(ctx context.Context, req attendance.SubmitRegularizationRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	loginOffset, _ := validator.IsValidClock(req.LoginTime)
	logoutOffset, _ := validator.IsValidClock(req.LogoutTime)

	// The claimed clock times are wall-clock in the company's zone.
	day := dateIn(date, a.reconciler.Location())
	loginAt := day.Add(loginOffset).UTC()
	logoutAt := day.Add(logoutOffset).UTC()
	status := attendance.ApprovalPending

	created, err := a.EventRepository.Create(ctx, attendance.Event{
		UserID:         claims.UserID,
		CompanyID:      claims.CompanyID,
		Timestamp:      day.UTC(),
		Action:         attendance.ActionRegularization,
		ApprovalStatus: &status,
		LoginTime:      &loginAt,
		LogoutTime:     &logoutAt,
		Notes:          req.Notes,
	})
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create regularization: %w", err)
	}

	a.recorder.RecordEventStored(string(attendance.ActionRegularization))
	return attendance.NewEventResponse(created), nil
}

// ReviewRegularization implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ReviewRegularization(ctx context.Context, req attendance.ReviewRegularizationRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	if !claims.CanApprove() {
		return attendance.EventResponse{}, user.ErrManagerAccessRequired
	}

	var reviewed attendance.Event
	err = a.withTx(ctx, func(txCtx context.Context) error {
		event, err := a.EventRepository.GetByID(txCtx, req.ID, claims.CompanyID)
		if err != nil {
			return err
		}
		if event.Action != attendance.ActionRegularization {
			return attendance.ErrNotRegularization
		}
		if event.ApprovalStatus != nil && *event.ApprovalStatus != attendance.ApprovalPending {
			return attendance.ErrAlreadyReviewed
		}

		status := attendance.ApprovalRejected
		if req.Approve {
			status = attendance.ApprovalApproved
		}
		now := a.reconciler.Now().UTC()
		event.ApprovalStatus = &status
		event.ReviewedBy = &claims.UserID
		event.ReviewedAt = &now
		if req.Notes != nil {
			event.Notes = req.Notes
		}

		if err := a.EventRepository.UpdateReview(txCtx, event); err != nil {
			return fmt.Errorf("failed to update regularization review: %w", err)
		}
		reviewed = event
		return nil
	})
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return attendance.NewEventResponse(reviewed), nil
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}
	q, err := a.queryFromFilter(filter)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	events, err := a.loadEvents(ctx, filter.WorkerScope, user.PermissionAttendanceViewAll)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	days := a.reconciler.History(events, q)
	start, end := a.resolvedBounds(q)

	resp := attendance.HistoryResponse{
		Range:     string(q.Range),
		StartDate: start,
		EndDate:   end,
		Days:      make([]attendance.DayHistoryResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, attendance.DayHistoryResponse{
			Date:        d.Day.String(),
			Label:       d.Day.Label(),
			Duration:    d.Tally.Label(),
			WorkedHours: d.Tally.FractionalHours(),
			Events:      attendance.NewEventResponses(d.Events),
		})
	}
	resp.DaysCount = len(resp.Days)

	return resp, nil
}

// GetSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummary(ctx context.Context, filter attendance.HistoryFilter) (attendance.SummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}
	q, err := a.queryFromFilter(filter)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	events, err := a.loadEvents(ctx, filter.WorkerScope, user.PermissionReportsView)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	start, end := a.resolvedBounds(q)
	return newSummaryResponse(q.Range, a.reconciler.Summary(events, q), start, end), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, scope attendance.WorkerScope) (attendance.TodayResponse, error) {
	events, err := a.loadEvents(ctx, scope, user.PermissionAttendanceViewAll)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	now := a.reconciler.Now()
	today, tally := a.reconciler.TodayAt(events, now)
	return attendance.TodayResponse{
		Date:     now.Format("2006-01-02"),
		Duration: tally.Label(),
		Events:   attendance.NewEventResponses(today),
	}, nil
}

// GetOverview implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetOverview(ctx context.Context, scope attendance.WorkerScope) (attendance.OverviewResponse, error) {
	events, err := a.loadEvents(ctx, scope, user.PermissionReportsView)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}

	now := a.reconciler.Now()
	summaries, err := a.reconciler.OverviewAt(ctx, events, now)
	if err != nil {
		return attendance.OverviewResponse{}, fmt.Errorf("failed to build attendance overview: %w", err)
	}

	build := func(name attendance.RangeName) attendance.SummaryResponse {
		start, end := a.resolvedBounds(Query{Range: name, Now: now})
		return newSummaryResponse(name, summaries[name], start, end)
	}

	return attendance.OverviewResponse{
		Today:     build(attendance.RangeToday),
		ThisWeek:  build(attendance.RangeThisWeek),
		ThisMonth: build(attendance.RangeThisMonth),
		LastMonth: build(attendance.RangeLastMonth),
		AllTime:   build(attendance.RangeAllTime),
	}, nil
}

// GetDurationLabel implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDurationLabel(ctx context.Context, req attendance.DurationRequest) (attendance.DurationResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DurationResponse{}, err
	}

	events, err := a.loadEvents(ctx, req.WorkerScope, user.PermissionAttendanceViewAll)
	if err != nil {
		return attendance.DurationResponse{}, err
	}

	day, _ := validator.IsValidDate(req.Date)
	return attendance.DurationResponse{
		Date:     req.Date,
		Duration: a.reconciler.DayDuration(events, day).Label(),
	}, nil
}
