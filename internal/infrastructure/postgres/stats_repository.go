package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura sobre la vista unida del libro de asignaciones.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de reportes.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// LedgerReport devuelve la vista unida cliente/cuenta/servicio/perfil/asignación
// que consumen los exportadores externos. Solo asignaciones activas sobre cuentas activas.
func (r *StatsRepo) LedgerReport(ctx context.Context) ([]repository.LedgerRow, error) {
	const query = `
	SELECT
	    asg.id,
	    cu.name,
	    cu.phone,
	    s.name,
	    a.name,
	    a.email,
	    asg.profile_number,
	    asg.profile_label,
	    asg.price,
	    asg.contracted_at,
	    asg.expires_at
	FROM assignments asg
	JOIN customers        cu ON cu.id = asg.customer_id
	JOIN account_profiles p  ON p.id  = asg.profile_id
	JOIN accounts         a  ON a.id  = p.account_id
	JOIN services         s  ON s.id  = a.service_id
	WHERE asg.active AND a.active
	ORDER BY cu.name, s.name, a.sequence_number, asg.profile_number`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stats.LedgerReport: %w", err)
	}
	defer rows.Close()

	var results []repository.LedgerRow
	for rows.Next() {
		var row repository.LedgerRow
		if err := rows.Scan(
			&row.AssignmentID,
			&row.CustomerName,
			&row.CustomerPhone,
			&row.ServiceName,
			&row.AccountName,
			&row.AccountEmail,
			&row.ProfileNumber,
			&row.ProfileLabel,
			&row.Price,
			&row.ContractedAt,
			&row.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("stats.LedgerReport scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// MonthlyRevenue agrupa ingresos por mes de contratación y gastos por mes de alta
// de la cuenta, para el año dado. Utilidad y margen se derivan de los totales.
func (r *StatsRepo) MonthlyRevenue(ctx context.Context, year int) ([]repository.MonthlySummary, error) {
	const query = `
	WITH revenue AS (
	    SELECT EXTRACT(MONTH FROM contracted_at)::INT AS month,
	           SUM(price)                             AS total,
	           COUNT(*)                               AS assignments
	    FROM assignments
	    WHERE active AND EXTRACT(YEAR FROM contracted_at)::INT = $1
	    GROUP BY 1
	),
	cost AS (
	    SELECT EXTRACT(MONTH FROM created_at)::INT                  AS month,
	           SUM(CASE WHEN base_cost > 0 THEN base_cost
	                    ELSE (SELECT monthly_price FROM services s WHERE s.id = a.service_id) END) AS total
	    FROM accounts a
	    WHERE active AND EXTRACT(YEAR FROM created_at)::INT = $1
	    GROUP BY 1
	)
	SELECT COALESCE(r.month, c.month)      AS month,
	       COALESCE(r.total, 0)            AS revenue,
	       COALESCE(c.total, 0)            AS cost,
	       COALESCE(r.assignments, 0)      AS assignments
	FROM revenue r
	FULL OUTER JOIN cost c ON c.month = r.month
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("stats.MonthlyRevenue: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlySummary
	for rows.Next() {
		var m repository.MonthlySummary
		m.Year = year
		if err := rows.Scan(&m.Month, &m.Revenue, &m.Cost, &m.Assignments); err != nil {
			return nil, fmt.Errorf("stats.MonthlyRevenue scan: %w", err)
		}
		m.Profit = m.Revenue.Sub(m.Cost)
		if m.Cost.GreaterThan(decimal.Zero) {
			m.MarginPct = m.Profit.Div(m.Cost).Mul(decimal.NewFromInt(100))
		} else {
			m.MarginPct = decimal.Zero
		}
		results = append(results, m)
	}
	return results, rows.Err()
}
