package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow es la vista unida cliente/cuenta/servicio/perfil/asignación que
// consumen los exportadores externos (CSV, hojas de cálculo). El formato de
// salida es responsabilidad del colaborador, no de este servicio.
type LedgerRow struct {
	AssignmentID  string
	CustomerName  string
	CustomerPhone string
	ServiceName   string
	AccountName   string
	AccountEmail  string
	ProfileNumber int
	ProfileLabel  string
	Price         decimal.Decimal
	ContractedAt  time.Time
	ExpiresAt     *time.Time
}

// MonthlySummary resume ingresos/gastos/utilidad por mes de contratación.
type MonthlySummary struct {
	Year        int
	Month       int
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
	Profit      decimal.Decimal
	MarginPct   decimal.Decimal
	Assignments int
}

// StatsRepository consultas de solo lectura sobre la vista unida del libro.
type StatsRepository interface {
	LedgerReport(ctx context.Context) ([]LedgerRow, error)
	MonthlyRevenue(ctx context.Context, year int) ([]MonthlySummary, error)
}
