package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/Suscripciones-api/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

// AssignmentUseCase casos de uso del libro de asignaciones: asignar, liberar,
// editar in situ y reconciliar los flags de ocupación.
type AssignmentUseCase struct {
	assignments repository.AssignmentRepository
	profiles    repository.ProfileRepository
	accounts    repository.AccountRepository
	customers   repository.CustomerRepository
	services    repository.ServiceRepository
	ledger      repository.LedgerTx
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(
	assignments repository.AssignmentRepository,
	profiles repository.ProfileRepository,
	accounts repository.AccountRepository,
	customers repository.CustomerRepository,
	services repository.ServiceRepository,
	ledger repository.LedgerTx,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		assignments: assignments,
		profiles:    profiles,
		accounts:    accounts,
		customers:   customers,
		services:    services,
		ledger:      ledger,
	}
}

// Assign asigna un perfil libre a un cliente. Todas las precondiciones se
// verifican antes de escribir: perfil libre, perfil editable, cliente existente.
// Precio: explícito si es parseable, si no el precio cliente de la cuenta, si no 0.
// Fechas de asignación y contratación: hoy en calendario local del operador.
// Vencimiento por defecto: hoy + 1 mes calendario (ajustado al último día válido).
func (uc *AssignmentUseCase) Assign(profileID string, in dto.AssignRequest) (*dto.AssignmentResponse, error) {
	profile, err := uc.profiles.GetByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	account, err := uc.accounts.GetByID(profile.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta del perfil no encontrada", domain.ErrInvalidInput)
	}
	if !IsProfileEditable(account, profile) {
		return nil, fmt.Errorf("%w: perfil %d de %s", domain.ErrProfileNotEditable, profile.Number, account.Name)
	}
	if profile.Occupied {
		return nil, fmt.Errorf("%w: perfil %d de %s", domain.ErrProfileOccupied, profile.Number, account.Name)
	}
	// El flag podría estar desactualizado; el libro manda.
	if existing, err := uc.assignments.GetActiveByProfile(profileID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: perfil %d de %s", domain.ErrProfileOccupied, profile.Number, account.Name)
	}
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente no encontrado", domain.ErrInvalidInput)
	}

	price := account.CustomerPrice
	if in.Price != "" {
		if parsed, err := decimal.NewFromString(in.Price); err == nil {
			price = parsed
		}
	}

	today := schedule.LocalDate(time.Now())
	expiresAt, err := parseDate(in.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("%w: expires_at inválido (esperado YYYY-MM-DD)", domain.ErrInvalidInput)
	}
	if expiresAt == nil {
		def := schedule.AddCalendarMonths(today, 1)
		expiresAt = &def
	}

	now := time.Now()
	assignment := &entity.Assignment{
		ID:            uuid.New().String(),
		CustomerID:    customer.ID,
		ProfileID:     profile.ID,
		AssignedAt:    today,
		ContractedAt:  today,
		ExpiresAt:     expiresAt,
		ProfileNumber: profile.Number,
		ProfileLabel:  profile.Label,
		Pin:           profile.Pin,
		Price:         price,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.ledger.Assign(assignment); err != nil {
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

// Unassign libera el perfil: elimina su asignación activa y baja el flag de
// ocupación. Liberar un perfil ya libre es un error reportable, no un no-op.
func (uc *AssignmentUseCase) Unassign(profileID string) error {
	profile, err := uc.profiles.GetByID(profileID)
	if err != nil {
		return err
	}
	if profile == nil {
		return domain.ErrNotFound
	}
	assignment, err := uc.assignments.GetActiveByProfile(profileID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return fmt.Errorf("%w: perfil %d", domain.ErrProfileNotOccupied, profile.Number)
	}
	return uc.ledger.Unassign(assignment.ID, profile.ID)
}

// Update edita una asignación in situ: cliente, vencimiento y/o precio.
// No toca ocupación, ni fecha de asignación, ni fecha de contratación,
// ni crea una fila nueva en el libro.
func (uc *AssignmentUseCase) Update(id string, in dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	assignment, err := uc.assignments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, nil
	}
	if in.CustomerID != nil {
		customer, err := uc.customers.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: cliente no encontrado", domain.ErrInvalidInput)
		}
		assignment.CustomerID = customer.ID
	}
	if in.ExpiresAt != nil {
		expiresAt, err := parseDate(*in.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: expires_at inválido (esperado YYYY-MM-DD)", domain.ErrInvalidInput)
		}
		assignment.ExpiresAt = expiresAt
	}
	if in.Price != nil {
		price, err := decimal.NewFromString(*in.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: price inválido", domain.ErrInvalidInput)
		}
		assignment.Price = price
	}
	assignment.UpdatedAt = time.Now()
	if err := uc.assignments.Update(assignment); err != nil {
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

// ProfileInfo arma la vista unida del perfil: credenciales de la cuenta,
// servicio y asignación activa con su cliente, si la hay.
func (uc *AssignmentUseCase) ProfileInfo(profileID string) (*dto.ProfileInfoResponse, error) {
	profile, err := uc.profiles.GetByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	account, err := uc.accounts.GetByID(profile.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta del perfil no encontrada", domain.ErrInvalidInput)
	}
	service, err := uc.services.GetByID(profile.ServiceID)
	if err != nil {
		return nil, err
	}

	info := &dto.ProfileInfoResponse{
		Profile:         toProfileResponse(account, profile),
		AccountName:     account.Name,
		AccountEmail:    account.Email,
		AccountPassword: account.Password,
	}
	if service != nil {
		info.ServiceName = service.Name
	}

	assignment, err := uc.assignments.GetActiveByProfile(profileID)
	if err != nil {
		return nil, err
	}
	if assignment != nil {
		info.Assignment = toAssignmentResponse(assignment)
		if customer, err := uc.customers.GetByID(assignment.CustomerID); err == nil && customer != nil {
			info.CustomerName = customer.Name
			info.CustomerPhone = customer.Phone
		}
	}
	return info, nil
}

// Reconcile recalcula el flag de ocupación de cada perfil a partir del libro
// (existe asignación activa → ocupado) y corrige las divergencias.
func (uc *AssignmentUseCase) Reconcile() (*dto.ReconcileResponse, error) {
	profiles, err := uc.profiles.ListAll()
	if err != nil {
		return nil, err
	}
	active, err := uc.assignments.ListActive()
	if err != nil {
		return nil, err
	}
	occupied := make(map[string]bool, len(active))
	for _, a := range active {
		occupied[a.ProfileID] = true
	}

	resp := &dto.ReconcileResponse{Checked: len(profiles)}
	for _, p := range profiles {
		expected := occupied[p.ID]
		if p.Occupied != expected {
			if err := uc.profiles.SetOccupied(p.ID, expected); err != nil {
				return nil, err
			}
			resp.Corrected++
		}
	}
	return resp, nil
}

func toAssignmentResponse(a *entity.Assignment) *dto.AssignmentResponse {
	status, days := schedule.Status(a.ExpiresAt, time.Now())
	if status == schedule.StatusExpired {
		days = -days
	}
	return &dto.AssignmentResponse{
		ID:            a.ID,
		CustomerID:    a.CustomerID,
		ProfileID:     a.ProfileID,
		AssignedAt:    a.AssignedAt.Format("2006-01-02"),
		ContractedAt:  a.ContractedAt.Format("2006-01-02"),
		ExpiresAt:     a.ExpiresAt,
		ExpiryStatus:  status,
		DaysRemaining: days,
		ProfileNumber: a.ProfileNumber,
		ProfileLabel:  a.ProfileLabel,
		Pin:           a.Pin,
		Price:         a.Price.StringFixed(2),
		Active:        a.Active,
	}
}
