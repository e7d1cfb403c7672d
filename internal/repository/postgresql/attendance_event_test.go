package postgresql_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL and applies migrations. Tests are
// skipped when no database is configured.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, database.RunMigrations(dsn))

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	return db
}

func TestEventRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewEventRepository(db)
	ctx := context.Background()

	companyID := uuid.NewString()
	userID := uuid.NewString()
	ts := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, attendance.Event{
		UserID:    userID,
		CompanyID: companyID,
		Timestamp: ts,
		Action:    attendance.ActionLogin,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	events, err := repo.ListByUser(ctx, userID, companyID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, attendance.ActionLogin, events[0].Action)
	assert.True(t, events[0].Timestamp.Equal(ts))
	assert.Nil(t, events[0].ApprovalStatus)

	other, err := repo.ListByUser(ctx, userID, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestEventRepository_ReviewInTransaction(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewEventRepository(db)
	ctx := context.Background()

	companyID := uuid.NewString()
	status := attendance.ApprovalPending
	login := time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC)
	logout := login.Add(8 * time.Hour)

	created, err := repo.Create(ctx, attendance.Event{
		UserID:         uuid.NewString(),
		CompanyID:      companyID,
		Timestamp:      login,
		Action:         attendance.ActionRegularization,
		ApprovalStatus: &status,
		LoginTime:      &login,
		LogoutTime:     &logout,
	})
	require.NoError(t, err)

	reviewer := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	approved := attendance.ApprovalApproved

	err = postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		event, err := repo.GetByID(txCtx, created.ID, companyID)
		if err != nil {
			return err
		}
		event.ApprovalStatus = &approved
		event.ReviewedBy = &reviewer
		event.ReviewedAt = &now
		return repo.UpdateReview(txCtx, event)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID, companyID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved())
	require.NotNil(t, got.LoginTime)
	assert.True(t, got.LoginTime.Equal(login))
	assert.Equal(t, reviewer, *got.ReviewedBy)
}

func TestEventRepository_UpdateReviewOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewEventRepository(db)
	ctx := context.Background()

	companyID := uuid.NewString()
	pending := attendance.ApprovalPending
	login := time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC)
	logout := login.Add(8 * time.Hour)

	created, err := repo.Create(ctx, attendance.Event{
		UserID:         uuid.NewString(),
		CompanyID:      companyID,
		Timestamp:      login,
		Action:         attendance.ActionRegularization,
		ApprovalStatus: &pending,
		LoginTime:      &login,
		LogoutTime:     &logout,
	})
	require.NoError(t, err)

	approved := attendance.ApprovalApproved
	first := created
	first.ApprovalStatus = &approved
	require.NoError(t, repo.UpdateReview(ctx, first))

	// A reviewer that read the event while it was still pending.
	rejected := attendance.ApprovalRejected
	second := created
	second.ApprovalStatus = &rejected
	assert.ErrorIs(t, repo.UpdateReview(ctx, second), attendance.ErrAlreadyReviewed)

	got, err := repo.GetByID(ctx, created.ID, companyID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved())

	missing := created
	missing.ID = uuid.NewString()
	assert.ErrorIs(t, repo.UpdateReview(ctx, missing), attendance.ErrEventNotFound)
}

func TestEventRepository_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewEventRepository(db)
	ctx := context.Background()

	companyID := uuid.NewString()
	userID := uuid.NewString()
	boom := errors.New("boom")

	err := postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		if _, err := repo.Create(txCtx, attendance.Event{
			UserID:    userID,
			CompanyID: companyID,
			Timestamp: time.Now().UTC(),
			Action:    attendance.ActionLogin,
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	events, err := repo.ListByUser(ctx, userID, companyID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewEventRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, attendance.ErrEventNotFound)
}
