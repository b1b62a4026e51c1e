package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/Suscripciones-api/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// StatsUseCase agregados financieros y reportes de solo lectura.
type StatsUseCase struct {
	accounts    repository.AccountRepository
	assignments repository.AssignmentRepository
	stats       repository.StatsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(
	accounts repository.AccountRepository,
	assignments repository.AssignmentRepository,
	stats repository.StatsRepository,
) *StatsUseCase {
	return &StatsUseCase{accounts: accounts, assignments: assignments, stats: stats}
}

// Aggregate calcula gasto (suma del costo base de cuentas activas), ingreso
// (suma de precios de asignaciones activas), utilidad y margen. El margen se
// reporta "0" cuando el gasto es cero para no dividir entre cero.
func (uc *StatsUseCase) Aggregate() (*dto.StatsResponse, error) {
	accounts, err := uc.accounts.ListActive()
	if err != nil {
		return nil, err
	}
	assignments, err := uc.assignments.ListActive()
	if err != nil {
		return nil, err
	}

	cost := decimal.Zero
	for _, a := range accounts {
		cost = cost.Add(a.BaseCost)
	}
	revenue := decimal.Zero
	for _, s := range assignments {
		revenue = revenue.Add(s.Price)
	}
	profit := revenue.Sub(cost)
	margin := decimal.Zero
	if cost.IsPositive() {
		margin = profit.Div(cost).Mul(oneHundred)
	}

	return &dto.StatsResponse{
		TotalCost:         cost.StringFixed(2),
		TotalRevenue:      revenue.StringFixed(2),
		Profit:            profit.StringFixed(2),
		MarginPct:         margin.StringFixed(2),
		ActiveAccounts:    len(accounts),
		ActiveAssignments: len(assignments),
	}, nil
}

// LedgerReport arma la vista unida del libro para exportadores externos.
func (uc *StatsUseCase) LedgerReport(ctx context.Context) ([]dto.LedgerRowResponse, error) {
	rows, err := uc.stats.LedgerReport(ctx)
	if err != nil {
		return nil, err
	}
	today := schedule.LocalDate(time.Now())
	out := make([]dto.LedgerRowResponse, 0, len(rows))
	for _, r := range rows {
		status, _ := schedule.Status(r.ExpiresAt, today)
		out = append(out, dto.LedgerRowResponse{
			AssignmentID:  r.AssignmentID,
			CustomerName:  r.CustomerName,
			CustomerPhone: r.CustomerPhone,
			ServiceName:   r.ServiceName,
			AccountName:   r.AccountName,
			AccountEmail:  r.AccountEmail,
			ProfileNumber: r.ProfileNumber,
			ProfileLabel:  r.ProfileLabel,
			Price:         r.Price.StringFixed(2),
			ContractedAt:  r.ContractedAt,
			ExpiresAt:     r.ExpiresAt,
			ExpiryStatus:  status,
		})
	}
	return out, nil
}

// MonthlyRevenue resume ingresos y gastos por mes del año indicado.
func (uc *StatsUseCase) MonthlyRevenue(ctx context.Context, year int) ([]dto.MonthlySummaryResponse, error) {
	rows, err := uc.stats.MonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MonthlySummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlySummaryResponse{
			Year:        r.Year,
			Month:       r.Month,
			Revenue:     r.Revenue.StringFixed(2),
			Cost:        r.Cost.StringFixed(2),
			Profit:      r.Profit.StringFixed(2),
			MarginPct:   r.MarginPct.StringFixed(2),
			Assignments: r.Assignments,
		})
	}
	return out, nil
}
