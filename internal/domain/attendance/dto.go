package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// EVENT DTOs
// ========================================

type RecordEventRequest struct {
	Action    string   `json:"action"`
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lng,omitempty"`
}

func (r *RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	action, err := ParseAction(strings.TrimSpace(r.Action))
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: login, logout, break_started, break_ended",
		})
	} else if !action.IsLive() {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "regularization must be submitted through /regularizations",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "lat",
			Message: "lat must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "lng",
			Message: "lng must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EventResponse is the JSON shape of an attendance event. Exported event
// files read by the CLI use the same shape.
type EventResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	Timestamp      string   `json:"timestamp"`
	Action         string   `json:"action"`
	ApprovalStatus *string  `json:"approval_status,omitempty"`
	LoginTime      *string  `json:"login_time,omitempty"`
	LogoutTime     *string  `json:"logout_time,omitempty"`
	Latitude       *float64 `json:"lat,omitempty"`
	Longitude      *float64 `json:"lng,omitempty"`
	ReviewedBy     *string  `json:"reviewed_by,omitempty"`
	ReviewedAt     *string  `json:"reviewed_at,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func parseTimePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := validator.IsValidDateTime(*s)
	if !ok {
		return nil
	}
	return &t
}

// NewEventResponse converts an event into its wire shape.
func NewEventResponse(e Event) EventResponse {
	resp := EventResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		Action:     string(e.Action),
		LoginTime:  timePtrToString(e.LoginTime),
		LogoutTime: timePtrToString(e.LogoutTime),
		Latitude:   e.Latitude,
		Longitude:  e.Longitude,
		ReviewedBy: e.ReviewedBy,
		ReviewedAt: timePtrToString(e.ReviewedAt),
		Notes:      e.Notes,
	}
	if !e.Timestamp.IsZero() {
		resp.Timestamp = e.Timestamp.Format(time.RFC3339)
	}
	if e.ApprovalStatus != nil {
		status := string(*e.ApprovalStatus)
		resp.ApprovalStatus = &status
	}
	return resp
}

// NewEventResponses converts a slice of events, never returning nil.
func NewEventResponses(events []Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventResponse(e))
	}
	return out
}

// ToEvent converts the wire shape back into an Event. An unparseable
// timestamp yields a zero Timestamp, which reconciliation skips; an unknown
// action is an error.
func (r EventResponse) ToEvent() (Event, error) {
	action, err := ParseAction(r.Action)
	if err != nil {
		return Event{}, err
	}

	e := Event{
		ID:         r.ID,
		UserID:     r.UserID,
		Action:     action,
		LoginTime:  parseTimePtr(r.LoginTime),
		LogoutTime: parseTimePtr(r.LogoutTime),
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		ReviewedBy: r.ReviewedBy,
		ReviewedAt: parseTimePtr(r.ReviewedAt),
		Notes:      r.Notes,
	}
	if ts, ok := validator.IsValidDateTime(r.Timestamp); ok {
		e.Timestamp = ts
	}
	if r.ApprovalStatus != nil {
		status := ApprovalStatus(*r.ApprovalStatus)
		e.ApprovalStatus = &status
	}
	return e, nil
}

// ========================================
// REGULARIZATION DTOs
// ========================================

type SubmitRegularizationRequest struct {
	Date       string  `json:"date"`        // YYYY-MM-DD
	LoginTime  string  `json:"login_time"`  // HH:MM
	LogoutTime string  `json:"logout_time"` // HH:MM
	Notes      *string `json:"notes,omitempty"`
}

func (r *SubmitRegularizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	login, loginOK := validator.IsValidClock(r.LoginTime)
	if !loginOK {
		errs = append(errs, validator.ValidationError{
			Field:   "login_time",
			Message: "login_time must be in HH:MM format",
		})
	}

	logout, logoutOK := validator.IsValidClock(r.LogoutTime)
	if !logoutOK {
		errs = append(errs, validator.ValidationError{
			Field:   "logout_time",
			Message: "logout_time must be in HH:MM format",
		})
	}

	if loginOK && logoutOK && logout <= login {
		errs = append(errs, validator.ValidationError{
			Field:   "logout_time",
			Message: "logout_time must be after login_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ReviewRegularizationRequest approves or rejects a pending regularization
type ReviewRegularizationRequest struct {
	ID      string  `json:"-"`
	Approve bool    `json:"-"`
	Notes   *string `json:"notes,omitempty"` // Required when rejecting
}

func (r *ReviewRegularizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if !r.Approve && (r.Notes == nil || validator.IsEmpty(*r.Notes)) {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// QUERY DTOs
// ========================================

// WorkerScope selects whose events are read. Nil WorkerID means the caller.
type WorkerScope struct {
	WorkerID *string `json:"worker_id,omitempty"`
}

type HistoryFilter struct {
	WorkerScope
	Range     string  `json:"range"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD, custom only
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD, custom only
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Range == "" {
		f.Range = string(RangeAllTime)
	}
	if _, err := ParseRangeName(f.Range); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "range",
			Message: "range must be one of: " + strings.Join(RangeNames(), ", "),
		})
	}

	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != nil && *f.StartDate != "" {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DurationRequest struct {
	WorkerScope
	Date string `json:"date"` // YYYY-MM-DD
}

func (r *DurationRequest) Validate() error {
	if _, valid := validator.IsValidDate(r.Date); !valid {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return nil
}

// ========================================
// REPORT DTOs
// ========================================

type DayHistoryResponse struct {
	Date        string          `json:"date"`         // Format: "2006-01-02"
	Label       string          `json:"label"`        // Format: "Mon, 02 Jan 2006"
	Duration    string          `json:"duration"`     // Format: "8h 30m"
	WorkedHours float64         `json:"worked_hours"` // hours + minutes/60
	Events      []EventResponse `json:"events"`
}

type HistoryResponse struct {
	Range     string               `json:"range"`
	StartDate *string              `json:"start_date,omitempty"`
	EndDate   *string              `json:"end_date,omitempty"`
	DaysCount int                  `json:"days_count"`
	Days      []DayHistoryResponse `json:"days"`
}

type SummaryResponse struct {
	Range            string  `json:"range"`
	StartDate        *string `json:"start_date,omitempty"`
	EndDate          *string `json:"end_date,omitempty"`
	DaysCount        int     `json:"days_count"`
	RegularizedCount int     `json:"regularized_count"`
	VerifiedCount    int     `json:"verified_count"`
	TotalHours       float64 `json:"total_hours"`
	TotalHoursLabel  string  `json:"total_hours_label"` // Format: "120h 54m"
	DroppedSessions  int     `json:"dropped_sessions"`
	NegativeSessions int     `json:"negative_sessions"`
}

type TodayResponse struct {
	Date     string          `json:"date"`
	Duration string          `json:"duration"`
	Events   []EventResponse `json:"events"`
}

type OverviewResponse struct {
	Today     SummaryResponse `json:"today"`
	ThisWeek  SummaryResponse `json:"this_week"`
	ThisMonth SummaryResponse `json:"this_month"`
	LastMonth SummaryResponse `json:"last_month"`
	AllTime   SummaryResponse `json:"all_time"`
}

type DurationResponse struct {
	Date     string `json:"date"`
	Duration string `json:"duration"`
}
