package repository

import "github.com/jhoicas/Suscripciones-api/internal/domain/entity"

// AssignmentRepository define el puerto de persistencia para el libro de asignaciones.
type AssignmentRepository interface {
	Create(assignment *entity.Assignment) error
	GetByID(id string) (*entity.Assignment, error)
	// GetActiveByProfile devuelve la asignación activa del perfil; nil si está libre.
	GetActiveByProfile(profileID string) (*entity.Assignment, error)
	ListActive() ([]*entity.Assignment, error)
	Update(assignment *entity.Assignment) error
	Delete(id string) error
}

// LedgerTx ejecuta la escritura del libro y el flag de ocupación del perfil
// como una sola operación lógica. El flag es una proyección cacheada del
// libro; nunca debe divergir de él dentro de una misma escritura.
type LedgerTx interface {
	// Assign inserta la asignación y marca el perfil como ocupado.
	Assign(assignment *entity.Assignment) error
	// Unassign elimina la asignación y marca el perfil como libre.
	Unassign(assignmentID, profileID string) error
}
