package leads_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight/website/pkg/leads"
)

// noString is how an empty optional column reaches the driver.
var noString *string

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *leads.PostgresStore) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, leads.NewPostgresStore(mock)
}

func TestPostgresStore_Insert(t *testing.T) {
	t.Parallel()

	t.Run("inserts and returns lead", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		createdAt := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
		phone := "+1 555 0100"

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO leads")).
			WithArgs(
				pgxmock.AnyArg(), "Jane", "jane@example.com", &phone, noString, noString, noString,
				"hello there", false, noString, "pending",
			).
			WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

		lead, err := store.Insert(context.Background(), leads.NewLead{
			Name:    "Jane",
			Email:   "jane@example.com",
			Phone:   phone,
			Message: "hello there",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, lead.ID)
		assert.Equal(t, leads.SyncPending, lead.HubspotSyncStatus)
		assert.Equal(t, createdAt, lead.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("suspicious lead", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		reason := leads.SuspicionRateLimit

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO leads")).
			WithArgs(
				pgxmock.AnyArg(), "Jane", "jane@example.com", noString, noString, noString, noString,
				"hello there", true, &reason, "pending",
			).
			WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		lead, err := store.Insert(context.Background(), leads.NewLead{
			Name:              "Jane",
			Email:             "jane@example.com",
			Message:           "hello there",
			IsSuspicious:      true,
			SuspicionReason:   leads.SuspicionRateLimit,
			HubspotSyncStatus: leads.SyncPending,
		})
		require.NoError(t, err)
		require.NotNil(t, lead.SuspicionReason)
		assert.Equal(t, "rate_limit", *lead.SuspicionReason)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO leads")).
			WillReturnError(errors.New("connection refused"))

		_, err := store.Insert(context.Background(), leads.NewLead{Name: "Jane"})
		assert.ErrorIs(t, err, leads.ErrStoreRequest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Update(t *testing.T) {
	t.Parallel()

	t.Run("updates sync columns", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		contactID := "hs-42"
		now := time.Now()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET")).
			WithArgs("lead-1", &contactID, "synced", &now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := store.Update(context.Background(), "lead-1", leads.Patch{
			HubspotContactID:       &contactID,
			HubspotSyncStatus:      leads.SyncSynced,
			HubspotLastSyncAttempt: &now,
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing lead", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET")).
			WithArgs("missing", pgxmock.AnyArg(), "needs_sync", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		now := time.Now()
		err := store.Update(context.Background(), "missing", leads.Patch{
			HubspotSyncStatus:      leads.SyncNeedsSync,
			HubspotLastSyncAttempt: &now,
		})
		assert.ErrorIs(t, err, leads.ErrLeadNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		t.Parallel()

		mock, store := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET")).
			WillReturnError(errors.New("timeout"))

		err := store.Update(context.Background(), "lead-1", leads.Patch{HubspotSyncStatus: leads.SyncSynced})
		assert.ErrorIs(t, err, leads.ErrStoreRequest)
	})
}

func TestPostgresStore_Healthcheck(t *testing.T) {
	t.Parallel()

	mock, _ := newMockStore(t)
	assert.NoError(t, leads.NewPostgresStore(mock).Healthcheck(context.Background()))
}
