package entity

import "time"

// Customer representa un comprador final.
// Name se guarda en mayúsculas (solo letras, espacios y acentos);
// Phone normalizado con prefijo de país +52; Code es un código numérico de 4 dígitos.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Code      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
