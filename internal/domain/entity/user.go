package entity

import "time"

// Roles de operador del back office.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User representa un operador del back office (no confundir con los perfiles vendibles).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
