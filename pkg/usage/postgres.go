package usage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCounters implements the quota counting rules over the clinic
// schema. Every query filters by organizacao_id; monthly kinds additionally
// filter by creation timestamp at or after the start of the current month.
type PostgresCounters struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// PostgresCountersOption configures a PostgresCounters instance.
type PostgresCountersOption func(*PostgresCounters)

// WithClock overrides the time source used to compute the monthly window.
// Intended for tests.
func WithClock(now func() time.Time) PostgresCountersOption {
	return func(c *PostgresCounters) {
		if now != nil {
			c.now = now
		}
	}
}

// NewPostgresCounters returns counters backed by the given connection pool.
func NewPostgresCounters(pool *pgxpool.Pool, opts ...PostgresCountersOption) *PostgresCounters {
	c := &PostgresCounters{
		pool: pool,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Patients counts all patient rows owned by the tenant.
func (c *PostgresCounters) Patients(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return c.count(ctx, `SELECT COUNT(*) FROM pacientes WHERE organizacao_id = $1`, tenantID)
}

// StaffUsers counts all staff accounts owned by the tenant.
func (c *PostgresCounters) StaffUsers(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return c.count(ctx, `SELECT COUNT(*) FROM usuarios WHERE organizacao_id = $1`, tenantID)
}

// MonthlyAppointments counts appointments created in the current calendar
// month, using the local wall clock of the configured time source.
func (c *PostgresCounters) MonthlyAppointments(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	err := c.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM agendamentos WHERE organizacao_id = $1 AND created_at >= $2`,
		tenantID, MonthStart(c.now()),
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// MonthlyMessages always reports zero: there is no messages table yet, and
// fabricating a count would silently enforce (or bypass) a quota nobody can
// reason about. TODO: design the assistant messages table, then count here.
func (c *PostgresCounters) MonthlyMessages(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return 0, nil
}

// RegisterAll wires every counting rule into the registry.
func (c *PostgresCounters) RegisterAll(r CounterRegistry) {
	r.Register(ResourcePatients, c.Patients)
	r.Register(ResourceStaffUsers, c.StaffUsers)
	r.Register(ResourceMonthlyAppointments, c.MonthlyAppointments)
	r.Register(ResourceMonthlyMessages, c.MonthlyMessages)
}

func (c *PostgresCounters) count(ctx context.Context, query string, tenantID uuid.UUID) (int64, error) {
	var n int64
	if err := c.pool.QueryRow(ctx, query, tenantID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
