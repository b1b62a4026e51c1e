package dto

import "time"

// StatsResponse agregados globales de ingresos/gastos/utilidad.
// Con cero cuentas y cero asignaciones todos los montos son "0.00".
type StatsResponse struct {
	TotalCost         string `json:"total_cost"`
	TotalRevenue      string `json:"total_revenue"`
	Profit            string `json:"profit"`
	MarginPct         string `json:"margin_pct"`
	ActiveAccounts    int    `json:"active_accounts"`
	ActiveAssignments int    `json:"active_assignments"`
}

// MonthlySummaryResponse resumen por mes.
type MonthlySummaryResponse struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Revenue     string `json:"revenue"`
	Cost        string `json:"cost"`
	Profit      string `json:"profit"`
	MarginPct   string `json:"margin_pct"`
	Assignments int    `json:"assignments"`
}

// LedgerRowResponse fila de la vista unida para exportadores externos.
type LedgerRowResponse struct {
	AssignmentID  string     `json:"assignment_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	ServiceName   string     `json:"service_name"`
	AccountName   string     `json:"account_name"`
	AccountEmail  string     `json:"account_email"`
	ProfileNumber int        `json:"profile_number"`
	ProfileLabel  string     `json:"profile_label"`
	Price         string     `json:"price"`
	ContractedAt  time.Time  `json:"contracted_at"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	ExpiryStatus  string     `json:"expiry_status"`
}
