package repository

import "github.com/jhoicas/Suscripciones-api/internal/domain/entity"

// ServiceRepository define el puerto de persistencia para Service (catálogo).
type ServiceRepository interface {
	Create(service *entity.Service) error
	GetByID(id string) (*entity.Service, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Service, error)
	Update(service *entity.Service) error
	Delete(id string) error
	CountAccounts(serviceID string) (int, error)
}
