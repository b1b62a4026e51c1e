package repository

import "github.com/jhoicas/Suscripciones-api/internal/domain/entity"

// AccountRepository define el puerto de persistencia para Account.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	// GetByServiceAndNumber busca por (servicio, número de secuencia); nil si no existe.
	GetByServiceAndNumber(serviceID string, sequenceNumber int) (*entity.Account, error)
	ListByService(serviceID string) ([]*entity.Account, error)
	List(limit, offset int) ([]*entity.Account, error)
	// ListActive devuelve todas las cuentas activas (lado de lectura de estadísticas).
	ListActive() ([]*entity.Account, error)
	Update(account *entity.Account) error
	Delete(id string) error
}
