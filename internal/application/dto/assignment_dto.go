package dto

import "time"

// AssignRequest asigna un perfil libre a un cliente. Price vacío usa el precio
// de cliente de la cuenta; ExpiresAt vacío usa hoy + 1 mes calendario.
type AssignRequest struct {
	CustomerID string `json:"customer_id"`
	ExpiresAt  string `json:"expires_at"` // YYYY-MM-DD, opcional
	Price      string `json:"price"`      // decimal como string, opcional
}

// UpdateAssignmentRequest edición in situ: no toca ocupación ni fechas de alta.
type UpdateAssignmentRequest struct {
	CustomerID *string `json:"customer_id"`
	ExpiresAt  *string `json:"expires_at"`
	Price      *string `json:"price"`
}

// AssignmentResponse representación HTTP de una asignación.
type AssignmentResponse struct {
	ID            string     `json:"id"`
	CustomerID    string     `json:"customer_id"`
	ProfileID     string     `json:"profile_id"`
	AssignedAt    string     `json:"assigned_at"`   // fecha local YYYY-MM-DD
	ContractedAt  string     `json:"contracted_at"` // fecha local YYYY-MM-DD
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	ExpiryStatus  string     `json:"expiry_status"`
	DaysRemaining int        `json:"days_remaining"`
	ProfileNumber int        `json:"profile_number"`
	ProfileLabel  string     `json:"profile_label"`
	Pin           *string    `json:"pin,omitempty"`
	Price         string     `json:"price"`
	Active        bool       `json:"active"`
}

// ReconcileResponse resultado de la reconciliación de flags de ocupación.
type ReconcileResponse struct {
	Checked   int `json:"checked"`
	Corrected int `json:"corrected"`
}
