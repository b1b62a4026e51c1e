package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

var _ repository.LedgerTx = (*LedgerTx)(nil)

// LedgerTx ejecuta la escritura del libro de asignaciones y el flag de
// ocupación del perfil dentro de una misma transacción PostgreSQL: el flag es
// una proyección cacheada y no debe divergir del libro en una escritura.
type LedgerTx struct {
	pool *pgxpool.Pool
}

// NewLedgerTx construye el runner con el pool.
func NewLedgerTx(pool *pgxpool.Pool) *LedgerTx {
	return &LedgerTx{pool: pool}
}

// Assign inserta la asignación y marca el perfil como ocupado, atómicamente.
func (r *LedgerTx) Assign(assignment *entity.Assignment) error {
	return r.run(func(assignments *AssignmentRepo, profiles *ProfileRepo) error {
		if err := assignments.Create(assignment); err != nil {
			return err
		}
		return profiles.SetOccupied(assignment.ProfileID, true)
	})
}

// Unassign elimina la asignación y marca el perfil como libre, atómicamente.
func (r *LedgerTx) Unassign(assignmentID, profileID string) error {
	return r.run(func(assignments *AssignmentRepo, profiles *ProfileRepo) error {
		if err := assignments.Delete(assignmentID); err != nil {
			return err
		}
		return profiles.SetOccupied(profileID, false)
	})
}

func (r *LedgerTx) run(fn func(*AssignmentRepo, *ProfileRepo) error) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAssignmentRepository(tx), NewProfileRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
