package plan

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads the plan catalog from the planos table. One row per
// plan: boolean columns for features, nullable integer columns for maxima
// (NULL means unlimited).
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource returns a Source backed by the given connection pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

const planColumns = `id, nome, descricao, publico,
	integracao_whatsapp, assistente_ia, relatorios_avancados,
	agendamento_online, prontuario_eletronico,
	max_pacientes, max_usuarios, max_agendamentos_mes, max_mensagens_mes`

// Load returns every plan in the catalog.
func (s *PostgresSource) Load(ctx context.Context) (map[string]Plan, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+planColumns+` FROM planos`)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	defer rows.Close()

	plans := make(map[string]Plan)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadPlans, err)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		plans[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	return plans, nil
}

// Get returns the plan with the given ID, or ErrPlanNotFound.
func (s *PostgresSource) Get(ctx context.Context, planID string) (Plan, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+planColumns+` FROM planos WHERE id = $1`, planID)
	if err != nil {
		return Plan{}, errors.Join(ErrFailedToLoadPlans, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Plan{}, errors.Join(ErrFailedToLoadPlans, err)
		}
		return Plan{}, ErrPlanNotFound
	}
	p, err := scanPlan(rows)
	if err != nil {
		return Plan{}, errors.Join(ErrFailedToLoadPlans, err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// scanPlan maps one planos row to a Plan. Feature columns become entries in
// Features when true; NULL maxima are simply not added to Limits, which the
// evaluator reads as Unlimited.
func scanPlan(row pgx.Row) (Plan, error) {
	var (
		p           Plan
		description *string

		whatsapp, ai, reports, booking, records bool

		maxPatients, maxStaff, maxAppointments, maxMessages *int64
	)

	if err := row.Scan(
		&p.ID, &p.Name, &description, &p.Public,
		&whatsapp, &ai, &reports, &booking, &records,
		&maxPatients, &maxStaff, &maxAppointments, &maxMessages,
	); err != nil {
		return Plan{}, err
	}

	if description != nil {
		p.Description = *description
	}

	features := map[FeatureKey]bool{
		FeatureWhatsApp:          whatsapp,
		FeatureAIAssistant:       ai,
		FeatureAdvancedReports:   reports,
		FeatureOnlineBooking:     booking,
		FeatureElectronicRecords: records,
	}
	for _, key := range FeatureKeys() {
		if features[key] {
			p.Features = append(p.Features, key)
		}
	}

	p.Limits = make(map[LimitKey]int64)
	limits := map[LimitKey]*int64{
		LimitPatients:            maxPatients,
		LimitStaffUsers:          maxStaff,
		LimitMonthlyAppointments: maxAppointments,
		LimitMonthlyMessages:     maxMessages,
	}
	for key, max := range limits {
		if max != nil {
			p.Limits[key] = *max
		}
	}

	return p, nil
}
