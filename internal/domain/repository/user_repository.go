package repository

import "github.com/jhoicas/Suscripciones-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para operadores del back office.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
