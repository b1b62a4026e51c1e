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

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación de AccountRepository (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, service_id, name, sequence_number, email, password, type, expires_at, base_cost, customer_price, active, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(
		&a.ID, &a.ServiceID, &a.Name, &a.SequenceNumber, &a.Email, &a.Password, &a.Type,
		&a.ExpiresAt, &a.BaseCost, &a.CustomerPrice, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una nueva cuenta. El constraint único (service_id, sequence_number)
// es la última línea de defensa contra dos operadores eligiendo el mismo número.
func (r *AccountRepo) Create(account *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.ServiceID, account.Name, account.SequenceNumber, account.Email,
		account.Password, account.Type, account.ExpiresAt, account.BaseCost, account.CustomerPrice,
		account.Active, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountNameTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(context.Background(),
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// GetByServiceAndNumber busca por (servicio, número); nil si no existe.
func (r *AccountRepo) GetByServiceAndNumber(serviceID string, sequenceNumber int) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(context.Background(),
		`SELECT `+accountColumns+` FROM accounts WHERE service_id = $1 AND sequence_number = $2`,
		serviceID, sequenceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by number: %w", err)
	}
	return a, nil
}

// ListByService lista todas las cuentas de un servicio (escaneo de números usados).
func (r *AccountRepo) ListByService(serviceID string) ([]*entity.Account, error) {
	return r.list(`SELECT `+accountColumns+` FROM accounts WHERE service_id = $1 ORDER BY sequence_number`, serviceID)
}

// List lista cuentas con paginación.
func (r *AccountRepo) List(limit, offset int) ([]*entity.Account, error) {
	return r.list(`SELECT `+accountColumns+` FROM accounts ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
}

// ListActive devuelve todas las cuentas activas.
func (r *AccountRepo) ListActive() ([]*entity.Account, error) {
	return r.list(`SELECT ` + accountColumns + ` FROM accounts WHERE active ORDER BY name`)
}

func (r *AccountRepo) list(query string, args ...any) ([]*entity.Account, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.ServiceID, &a.Name, &a.SequenceNumber, &a.Email, &a.Password,
			&a.Type, &a.ExpiresAt, &a.BaseCost, &a.CustomerPrice, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update actualiza una cuenta.
func (r *AccountRepo) Update(account *entity.Account) error {
	query := `
		UPDATE accounts SET name = $2, sequence_number = $3, email = $4, password = $5, type = $6,
			expires_at = $7, base_cost = $8, customer_price = $9, active = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Name, account.SequenceNumber, account.Email, account.Password,
		account.Type, account.ExpiresAt, account.BaseCost, account.CustomerPrice,
		account.Active, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountNameTaken
		}
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// Delete elimina una cuenta por ID. Los perfiles deben borrarse antes (ver AccountUseCase).
func (r *AccountRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
