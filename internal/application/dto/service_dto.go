package dto

import "time"

// CreateServiceRequest alta de servicio en el catálogo.
type CreateServiceRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	MonthlyPrice       string `json:"monthly_price"` // decimal como string
	ProfilesPerAccount int    `json:"profiles_per_account"`
	PinRequired        bool   `json:"pin_required"`
	EmailFormat        string `json:"email_format"`
}

// UpdateServiceRequest edición parcial de servicio.
type UpdateServiceRequest struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	MonthlyPrice       *string `json:"monthly_price"`
	ProfilesPerAccount *int    `json:"profiles_per_account"`
	PinRequired        *bool   `json:"pin_required"`
	EmailFormat        *string `json:"email_format"`
	Active             *bool   `json:"active"`
}

// ServiceResponse representación HTTP de un servicio.
type ServiceResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	MonthlyPrice       string    `json:"monthly_price"`
	ProfilesPerAccount int       `json:"profiles_per_account"`
	PinRequired        bool      `json:"pin_required"`
	EmailFormat        string    `json:"email_format"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ServiceListResponse listado paginado de servicios.
type ServiceListResponse struct {
	Items []ServiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NextNumberResponse número libre y credenciales recomendadas para una cuenta nueva.
// La contraseña se regenera en cada consulta; el cliente no debe cachearla.
type NextNumberResponse struct {
	SequenceNumber      int    `json:"sequence_number"`
	CanonicalName       string `json:"canonical_name"`
	RecommendedEmail    string `json:"recommended_email,omitempty"`
	RecommendedPassword string `json:"recommended_password"`
}
