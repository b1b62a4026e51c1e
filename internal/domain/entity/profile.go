package entity

import "time"

// Profile representa un perfil vendible dentro de una cuenta.
// Los perfiles de una cuenta se crean todos juntos (índices 1..N, sin huecos)
// y se eliminan todos juntos con la cuenta; nunca de forma individual.
type Profile struct {
	ID        string
	AccountID string
	ServiceID string // desnormalizado para filtrar por servicio sin join
	Number    int    // índice 1-based, único dentro de la cuenta
	Label     string // por defecto "Usuario <número>"
	Pin       *string
	Occupied  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
