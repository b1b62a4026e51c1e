package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación de AssignmentRepository (usable con pool o tx).
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `id, customer_id, profile_id, assigned_at, contracted_at, expires_at, profile_number, profile_label, pin, price, active, created_at, updated_at`

// Create persiste una asignación. El índice único parcial sobre (profile_id)
// WHERE active rechaza una segunda asignación activa sobre el mismo perfil.
func (r *AssignmentRepo) Create(assignment *entity.Assignment) error {
	query := `
		INSERT INTO assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		assignment.ID, assignment.CustomerID, assignment.ProfileID, assignment.AssignedAt,
		assignment.ContractedAt, assignment.ExpiresAt, assignment.ProfileNumber, assignment.ProfileLabel,
		assignment.Pin, assignment.Price, assignment.Active, assignment.CreatedAt, assignment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileOccupied
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación por ID.
func (r *AssignmentRepo) GetByID(id string) (*entity.Assignment, error) {
	return r.get(`SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id)
}

// GetActiveByProfile devuelve la asignación activa del perfil; nil si está libre.
func (r *AssignmentRepo) GetActiveByProfile(profileID string) (*entity.Assignment, error) {
	return r.get(`SELECT `+assignmentColumns+` FROM assignments WHERE profile_id = $1 AND active`, profileID)
}

func (r *AssignmentRepo) get(query string, args ...any) (*entity.Assignment, error) {
	var a entity.Assignment
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&a.ID, &a.CustomerID, &a.ProfileID, &a.AssignedAt, &a.ContractedAt, &a.ExpiresAt,
		&a.ProfileNumber, &a.ProfileLabel, &a.Pin, &a.Price, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &a, nil
}

// ListActive devuelve todas las asignaciones activas.
func (r *AssignmentRepo) ListActive() ([]*entity.Assignment, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+assignmentColumns+` FROM assignments WHERE active ORDER BY contracted_at`)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Assignment
	for rows.Next() {
		var a entity.Assignment
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.ProfileID, &a.AssignedAt, &a.ContractedAt,
			&a.ExpiresAt, &a.ProfileNumber, &a.ProfileLabel, &a.Pin, &a.Price, &a.Active,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update actualiza una asignación (edición in situ de cliente/vencimiento/precio).
func (r *AssignmentRepo) Update(assignment *entity.Assignment) error {
	query := `
		UPDATE assignments SET customer_id = $2, expires_at = $3, price = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		assignment.ID, assignment.CustomerID, assignment.ExpiresAt, assignment.Price, assignment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// Delete elimina una asignación por ID.
func (r *AssignmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}
