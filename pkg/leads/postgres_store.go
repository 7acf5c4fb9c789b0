package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/northlight/website/pkg/pg"
)

// DB is the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const insertLeadQuery = `INSERT INTO leads (
	id, name, email, phone, company, marketing_spend, hear_about_us, message,
	is_suspicious, suspicion_reason, hubspot_sync_status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING created_at`

const updateLeadQuery = `UPDATE leads SET
	hubspot_contact_id = COALESCE($2, hubspot_contact_id),
	hubspot_sync_status = COALESCE(NULLIF($3, ''), hubspot_sync_status),
	hubspot_last_sync_attempt = COALESCE($4, hubspot_last_sync_attempt)
WHERE id = $1`

// PostgresStore stores leads in a Postgres "leads" table created by the
// bundled migrations.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a Postgres backed Store.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert creates a lead with a new random id.
func (s *PostgresStore) Insert(ctx context.Context, lead NewLead) (*Lead, error) {
	id := uuid.NewString()
	status := lead.HubspotSyncStatus
	if status == "" {
		status = SyncPending
	}

	var createdAt time.Time
	err := s.db.QueryRow(ctx, insertLeadQuery,
		id,
		lead.Name,
		lead.Email,
		nullString(lead.Phone),
		nullString(lead.Company),
		nullString(lead.MarketingSpend),
		nullString(lead.HearAboutUs),
		lead.Message,
		lead.IsSuspicious,
		nullString(lead.SuspicionReason),
		string(status),
	).Scan(&createdAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNoRowReturned
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreRequest, err)
	}

	return lead.stored(id, createdAt), nil
}

// Update applies patch to the lead with the given id.
func (s *PostgresStore) Update(ctx context.Context, id string, patch Patch) error {
	tag, err := s.db.Exec(ctx, updateLeadQuery,
		id,
		patch.HubspotContactID,
		string(patch.HubspotSyncStatus),
		patch.HubspotLastSyncAttempt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreRequest, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// Healthcheck pings the database.
func (s *PostgresStore) Healthcheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
