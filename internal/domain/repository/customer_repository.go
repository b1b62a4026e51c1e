package repository

import "github.com/jhoicas/Suscripciones-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
	// CountActiveAssignments cuenta asignaciones activas del cliente (guardia de borrado).
	CountActiveAssignments(customerID string) (int, error)
}
