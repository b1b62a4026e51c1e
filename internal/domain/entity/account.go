package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta. "estandar" es un tercer nivel histórico con 4 perfiles fijos;
// no es un alias de "compartida" y se mantiene como valor propio.
const (
	AccountTypePrivate  = "privada"
	AccountTypeShared   = "compartida"
	AccountTypeStandard = "estandar"
)

// Account representa una credencial de suscripción comprada, perteneciente a un servicio.
// SequenceNumber es la fuente de verdad del número; Name (ej. "DISNEY-3") se deriva
// al crear/editar y se conserva solo para mostrar y validar unicidad.
type Account struct {
	ID             string
	ServiceID      string
	Name           string
	SequenceNumber int
	Email          string
	Password       string
	Type           string // privada | compartida | estandar
	ExpiresAt      *time.Time
	BaseCost       decimal.Decimal // lo que paga el operador
	CustomerPrice  decimal.Decimal // lo que se cobra por perfil
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPrivate indica si la cuenta es de tipo privada (un solo perfil usable).
func (a *Account) IsPrivate() bool {
	return a.Type == AccountTypePrivate
}
