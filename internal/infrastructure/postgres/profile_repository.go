package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación de ProfileRepository (usable con pool o tx).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileColumns = `id, account_id, service_id, number, label, pin, occupied, created_at, updated_at`

// CreateBatch inserta los perfiles de una cuenta en lote (índices 1..N).
func (r *ProfileRepo) CreateBatch(profiles []*entity.Profile) error {
	query := `
		INSERT INTO account_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, p := range profiles {
		_, err := r.q.Exec(context.Background(), query,
			p.ID, p.AccountID, p.ServiceID, p.Number, p.Label, p.Pin, p.Occupied, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert profile %d: %w", p.Number, err)
		}
	}
	return nil
}

// GetByID obtiene un perfil por ID.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	var p entity.Profile
	err := r.q.QueryRow(context.Background(),
		`SELECT `+profileColumns+` FROM account_profiles WHERE id = $1`, id).Scan(
		&p.ID, &p.AccountID, &p.ServiceID, &p.Number, &p.Label, &p.Pin, &p.Occupied, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// ListByAccount lista los perfiles de una cuenta ordenados por índice.
func (r *ProfileRepo) ListByAccount(accountID string) ([]*entity.Profile, error) {
	return r.list(`SELECT `+profileColumns+` FROM account_profiles WHERE account_id = $1 ORDER BY number`, accountID)
}

// ListAll devuelve todos los perfiles (reconciliación de ocupación).
func (r *ProfileRepo) ListAll() ([]*entity.Profile, error) {
	return r.list(`SELECT ` + profileColumns + ` FROM account_profiles ORDER BY account_id, number`)
}

func (r *ProfileRepo) list(query string, args ...any) ([]*entity.Profile, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.ID, &p.AccountID, &p.ServiceID, &p.Number, &p.Label, &p.Pin,
			&p.Occupied, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountOccupiedByAccount cuenta perfiles ocupados de la cuenta (guardia de borrado).
func (r *ProfileRepo) CountOccupiedByAccount(accountID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM account_profiles WHERE account_id = $1 AND occupied`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count occupied profiles: %w", err)
	}
	return n, nil
}

// SetOccupied actualiza el flag de ocupación del perfil.
func (r *ProfileRepo) SetOccupied(id string, occupied bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE account_profiles SET occupied = $2, updated_at = $3 WHERE id = $1`,
		id, occupied, time.Now())
	if err != nil {
		return fmt.Errorf("set profile occupied: %w", err)
	}
	return nil
}

// UpdateLabelAndPin actualiza la etiqueta y el PIN del perfil.
func (r *ProfileRepo) UpdateLabelAndPin(id string, label string, pin *string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE account_profiles SET label = $2, pin = $3, updated_at = $4 WHERE id = $1`,
		id, label, pin, time.Now())
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// DeleteByAccount elimina todos los perfiles de la cuenta.
func (r *ProfileRepo) DeleteByAccount(accountID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM account_profiles WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("delete profiles by account: %w", err)
	}
	return nil
}
