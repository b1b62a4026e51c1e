package dto

import "time"

// CreateAccountRequest alta de cuenta. SequenceNumber en cero pide recalcular
// el siguiente número libre en el momento del submit.
type CreateAccountRequest struct {
	ServiceID      string `json:"service_id"`
	SequenceNumber int    `json:"sequence_number"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Type           string `json:"type"` // privada | compartida | estandar
	ExpiresAt      string `json:"expires_at"`      // YYYY-MM-DD, opcional
	BaseCost       string `json:"base_cost"`       // decimal como string
	CustomerPrice  string `json:"customer_price"`  // vacío = base_cost * 1.2
	Active         *bool  `json:"active"`
}

// UpdateAccountRequest edición parcial de cuenta. Cambiar SequenceNumber
// re-deriva el nombre canónico y re-valida unicidad.
type UpdateAccountRequest struct {
	SequenceNumber *int    `json:"sequence_number"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	Type           *string `json:"type"`
	ExpiresAt      *string `json:"expires_at"`
	BaseCost       *string `json:"base_cost"`
	CustomerPrice  *string `json:"customer_price"`
	Active         *bool   `json:"active"`
}

// AccountResponse representación HTTP de una cuenta.
type AccountResponse struct {
	ID             string     `json:"id"`
	ServiceID      string     `json:"service_id"`
	Name           string     `json:"name"`
	SequenceNumber int        `json:"sequence_number"`
	Email          string     `json:"email"`
	Type           string     `json:"type"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	ExpiryStatus   string     `json:"expiry_status"`
	BaseCost       string     `json:"base_cost"`
	CustomerPrice  string     `json:"customer_price"`
	Active         bool       `json:"active"`
	ProfileCount   int        `json:"profile_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AccountListResponse listado paginado de cuentas.
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// UpdateProfileRequest edición de etiqueta y/o PIN de un perfil.
type UpdateProfileRequest struct {
	Label *string `json:"label"`
	Pin   *string `json:"pin"`
}

// ProfileResponse representación HTTP de un perfil de cuenta.
type ProfileResponse struct {
	ID        string  `json:"id"`
	AccountID string  `json:"account_id"`
	ServiceID string  `json:"service_id"`
	Number    int     `json:"number"`
	Label     string  `json:"label"`
	Pin       *string `json:"pin,omitempty"`
	Occupied  bool    `json:"occupied"`
	Editable  bool    `json:"editable"`
}

// ProfileInfoResponse vista unida del perfil con credenciales de la cuenta y
// la asignación activa (respaldo del diálogo de información del operador).
type ProfileInfoResponse struct {
	Profile         ProfileResponse     `json:"profile"`
	AccountName     string              `json:"account_name"`
	AccountEmail    string              `json:"account_email"`
	AccountPassword string              `json:"account_password"`
	ServiceName     string              `json:"service_name"`
	Assignment      *AssignmentResponse `json:"assignment,omitempty"`
	CustomerName    string              `json:"customer_name,omitempty"`
	CustomerPhone   string              `json:"customer_phone,omitempty"`
}
