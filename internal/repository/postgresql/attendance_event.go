package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `
	id, user_id, company_id, timestamp, action, approval_status,
	login_time, logout_time, latitude, longitude,
	reviewed_by, reviewed_at, notes, created_at
`

type eventRepository struct {
	db *database.DB
}

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var (
		e      attendance.Event
		action string
		status *string
	)
	err := row.Scan(
		&e.ID, &e.UserID, &e.CompanyID, &e.Timestamp, &action, &status,
		&e.LoginTime, &e.LogoutTime, &e.Latitude, &e.Longitude,
		&e.ReviewedBy, &e.ReviewedAt, &e.Notes, &e.CreatedAt,
	)
	if err != nil {
		return attendance.Event{}, err
	}

	e.Action = attendance.Action(action)
	if status != nil {
		s := attendance.ApprovalStatus(*status)
		e.ApprovalStatus = &s
	}
	return e, nil
}

// Create implements attendance.EventRepository.
func (r *eventRepository) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	if event.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Event{}, fmt.Errorf("failed to generate event id: %w", err)
		}
		event.ID = id.String()
	}

	var status *string
	if event.ApprovalStatus != nil {
		s := string(*event.ApprovalStatus)
		status = &s
	}

	query := `
		INSERT INTO attendance_events (
			id, user_id, company_id, timestamp, action, approval_status,
			login_time, logout_time, latitude, longitude, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.UserID,
		event.CompanyID,
		event.Timestamp,
		string(event.Action),
		status,
		event.LoginTime,
		event.LogoutTime,
		event.Latitude,
		event.Longitude,
		event.Notes,
	).Scan(&event.CreatedAt)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return event, nil
}

// GetByID implements attendance.EventRepository.
func (r *eventRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE id = $1 AND company_id = $2
	`

	event, err := scanEvent(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get attendance event: %w", err)
	}

	return event, nil
}

// ListByUser implements attendance.EventRepository.
func (r *eventRepository) ListByUser(ctx context.Context, userID string, companyID string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE user_id = $1 AND company_id = $2
	`

	rows, err := q.Query(ctx, query, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	events := make([]attendance.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance events: %w", err)
	}

	return events, nil
}

// UpdateReview implements attendance.EventRepository.
func (r *eventRepository) UpdateReview(ctx context.Context, event attendance.Event) error {
	q := GetQuerier(ctx, r.db)

	var status *string
	if event.ApprovalStatus != nil {
		s := string(*event.ApprovalStatus)
		status = &s
	}

	// Only a pending regularization may be reviewed; the guard makes the
	// check and the write a single statement.
	query := `
		UPDATE attendance_events
		SET approval_status = $1, reviewed_by = $2, reviewed_at = $3, notes = $4
		WHERE id = $5 AND company_id = $6
			AND (approval_status IS NULL OR approval_status = 'Pending')
	`

	tag, err := q.Exec(ctx, query, status, event.ReviewedBy, event.ReviewedAt, event.Notes, event.ID, event.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update attendance event review: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	err = q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM attendance_events WHERE id = $1 AND company_id = $2)`,
		event.ID, event.CompanyID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check attendance event: %w", err)
	}
	if !exists {
		return attendance.ErrEventNotFound
	}
	return attendance.ErrAlreadyReviewed
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepository{db: db}
}
