package repository

import "github.com/jhoicas/Suscripciones-api/internal/domain/entity"

// ProfileRepository define el puerto de persistencia para Profile.
// Los perfiles se insertan en lote al crear la cuenta y se eliminan en lote
// al borrarla; no hay creación ni borrado individual.
type ProfileRepository interface {
	CreateBatch(profiles []*entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	ListByAccount(accountID string) ([]*entity.Profile, error)
	CountOccupiedByAccount(accountID string) (int, error)
	SetOccupied(id string, occupied bool) error
	UpdateLabelAndPin(id string, label string, pin *string) error
	DeleteByAccount(accountID string) error
	// ListAll devuelve todos los perfiles (reconciliación de ocupación).
	ListAll() ([]*entity.Profile, error)
}
