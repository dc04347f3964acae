package postgres_adapter

import (
	"context"
	"fmt"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createLeadsTable = `
CREATE TABLE IF NOT EXISTS site_leads (
	id               UUID PRIMARY KEY,
	kind             TEXT NOT NULL,
	name             TEXT NOT NULL,
	email            TEXT NOT NULL,
	phone            TEXT NOT NULL DEFAULT '',
	message          TEXT NOT NULL DEFAULT '',
	property_slug    TEXT NOT NULL DEFAULT '',
	property_address TEXT NOT NULL DEFAULT '',
	property_type    TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL
)`

// PostgresLeadRepository - реализация порта для PostgreSQL.
type PostgresLeadRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLeadRepository(pool *pgxpool.Pool) (*PostgresLeadRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresLeadRepository{pool: pool}, nil
}

// EnsureSchema создает таблицу заявок, если ее еще нет.
func (r *PostgresLeadRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createLeadsTable); err != nil {
		return fmt.Errorf("failed to create site_leads table: %w", err)
	}
	return nil
}

// Save добавляет запись в site_leads.
func (r *PostgresLeadRepository) Save(ctx context.Context, lead domain.Lead) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresLeadRepository",
		"method":    "Save",
		"lead_id":   lead.ID,
		"kind":      lead.Kind,
	})

	query := `INSERT INTO site_leads
		(id, kind, name, email, phone, message, property_slug, property_address, property_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		lead.ID, string(lead.Kind), lead.Name, lead.Email, lead.Phone, lead.Message,
		lead.PropertySlug, lead.PropertyAddress, lead.PropertyType, lead.CreatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to insert lead", err, nil)
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	repoLogger.Debug("Lead saved", nil)
	return nil
}
