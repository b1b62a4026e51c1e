package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assignment es el registro del libro de asignaciones: liga un cliente a un perfil
// por un precio y una ventana de tiempo. ProfileNumber, ProfileLabel y Pin son
// snapshots tomados al asignar; no siguen cambios posteriores del perfil.
// Invariante: a lo sumo una asignación con Active=true por perfil.
type Assignment struct {
	ID            string
	CustomerID    string
	ProfileID     string
	AssignedAt    time.Time // fecha local del operador, no UTC
	ContractedAt  time.Time
	ExpiresAt     *time.Time
	ProfileNumber int
	ProfileLabel  string
	Pin           *string
	Price         decimal.Decimal
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
