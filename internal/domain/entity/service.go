package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service representa un producto vendible (plataforma de streaming u otro servicio por suscripción).
// EmailFormat es una plantilla con un solo '@'; el número de cuenta se inserta justo antes del '@'.
type Service struct {
	ID                 string
	Name               string
	Description        string
	MonthlyPrice       decimal.Decimal
	ProfilesPerAccount int // perfiles vendibles por cuenta compartida
	PinRequired        bool
	EmailFormat        string
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
