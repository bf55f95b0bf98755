package store

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vibecoding/landing-service/internal/models"
)

// schemaSQL is embedded so the service can self-bootstrap its database schema.
//
//go:embed schema.sql
var schemaSQL string

// Conflict sentinels. Handlers translate these per endpoint: duplicate phone
// becomes 409, a duplicate webhook event id becomes an idempotent 200.
var (
	ErrDuplicatePhone   = errors.New("phone already registered")
	ErrDuplicateEventID = errors.New("event id already recorded")
)

// PostgresStore is the durable persistence layer for leads and event logs.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema() error {
	_, err := p.pool.Exec(context.Background(), schemaSQL)
	return err
}

// Ping is used by the readiness endpoint to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// CreateLead inserts a new lead with a generated id.
//
// Phone uniqueness is enforced by the database constraint, so concurrent
// submissions of the same phone resolve to exactly one success; the rest
// observe ErrDuplicatePhone.
func (p *PostgresStore) CreateLead(ctx context.Context, name, phone string) (models.Lead, error) {
	lead := models.Lead{
		ID:    uuid.New().String(),
		Name:  name,
		Phone: phone,
	}

	err := p.pool.QueryRow(ctx, `
		INSERT INTO leads(id, name, phone)
		VALUES ($1,$2,$3)
		RETURNING created_at
	`, lead.ID, lead.Name, lead.Phone).Scan(&lead.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.Lead{}, ErrDuplicatePhone
		}
		return models.Lead{}, err
	}

	return lead, nil
}

// FindLeadByID returns the lead or (nil, nil) when no row matches.
func (p *PostgresStore) FindLeadByID(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	err := p.pool.QueryRow(ctx, `
		SELECT id, name, phone, created_at
		FROM leads
		WHERE id=$1
	`, id).Scan(&lead.ID, &lead.Name, &lead.Phone, &lead.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &lead, nil
}

// CreateEventLog appends one audit record.
//
// The id is the primary key: when the caller supplies an external event id,
// redelivered events collide on it and surface as ErrDuplicateEventID, which
// is what makes webhook ingestion idempotent without a dedup table.
func (p *PostgresStore) CreateEventLog(ctx context.Context, e models.NewEventLog) (models.EventLog, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Source == "" {
		e.Source = "app"
	}

	row := models.EventLog{
		ID:      e.ID,
		Type:    e.Type,
		Source:  e.Source,
		Payload: e.Payload,
		LeadID:  e.LeadID,
	}

	err := p.pool.QueryRow(ctx, `
		INSERT INTO event_logs(id, type, source, payload, lead_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, row.ID, row.Type, row.Source, e.Payload, e.LeadID).Scan(&row.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.EventLog{}, ErrDuplicateEventID
		}
		return models.EventLog{}, err
	}

	return row, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
