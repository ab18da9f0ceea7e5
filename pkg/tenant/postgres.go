package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinicore/pkg/slug"
)

// PostgresProvider loads organizations from the organizacoes table.
// Identifiers that parse as UUIDs are looked up by primary key; anything
// else is normalized and looked up by slug.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider returns a Provider backed by the given pool.
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

const orgColumns = `id, slug, nome, plano_id, ativo, created_at`

func (p *PostgresProvider) GetByIdentifier(ctx context.Context, identifier string) (*Organization, error) {
	if identifier == "" {
		return nil, ErrInvalidIdentifier
	}

	var row pgx.Row
	if id, err := uuid.Parse(identifier); err == nil {
		row = p.pool.QueryRow(ctx,
			`SELECT `+orgColumns+` FROM organizacoes WHERE id = $1`, id)
	} else {
		row = p.pool.QueryRow(ctx,
			`SELECT `+orgColumns+` FROM organizacoes WHERE slug = $1`, slug.Make(identifier))
	}

	var (
		org    Organization
		planID *string
	)
	if err := row.Scan(&org.ID, &org.Slug, &org.Name, &planID, &org.Active, &org.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	if planID != nil {
		org.PlanID = *planID
	}
	return &org, nil
}
