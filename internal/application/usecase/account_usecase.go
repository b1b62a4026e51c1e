package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/naming"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/Suscripciones-api/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

const (
	defaultProfilesPerAccount = 4
	standardProfileCount      = 4
)

// margen por defecto del precio cliente cuando no se indica: costo base × 1.2
var defaultPriceMarkup = decimal.NewFromFloat(1.2)

// AccountUseCase casos de uso de cuentas: numeración, creación con perfiles,
// edición y borrado con guardias.
type AccountUseCase struct {
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
	services repository.ServiceRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	services repository.ServiceRepository,
) *AccountUseCase {
	return &AccountUseCase{accounts: accounts, profiles: profiles, services: services}
}

// NextNumber calcula el siguiente número libre del servicio y las credenciales
// recomendadas. El número devuelto es informativo: Create lo recalcula en el
// submit para defenderse de dos operadores eligiendo el mismo.
func (uc *AccountUseCase) NextNumber(serviceID string) (*dto.NextNumberResponse, error) {
	service, err := uc.services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}
	next, err := uc.nextFreeNumber(serviceID)
	if err != nil {
		return nil, err
	}
	return &dto.NextNumberResponse{
		SequenceNumber:      next,
		CanonicalName:       naming.ComposeCanonicalName(service.Name, next),
		RecommendedEmail:    naming.RecommendEmail(service.EmailFormat, next),
		RecommendedPassword: naming.RecommendPassword(service.Name),
	}, nil
}

func (uc *AccountUseCase) nextFreeNumber(serviceID string) (int, error) {
	existing, err := uc.accounts.ListByService(serviceID)
	if err != nil {
		return 0, err
	}
	taken := make([]int, 0, len(existing))
	for _, a := range existing {
		n := a.SequenceNumber
		if n < 1 {
			// fila legada sin columna de número: extraer del nombre canónico
			n = naming.ParseSequenceNumber(a.Name)
		}
		taken = append(taken, n)
	}
	return naming.NextAvailableNumber(taken), nil
}

// ResolveProfileCount determina cuántos perfiles posee una cuenta del tipo dado.
// privada → siempre 1, ignore lo que configure el servicio; estandar → 4 fijos;
// compartida → lo configurado en el servicio (4 si no está definido).
func ResolveProfileCount(accountType string, service *entity.Service) int {
	switch accountType {
	case entity.AccountTypePrivate:
		return 1
	case entity.AccountTypeStandard:
		return standardProfileCount
	default:
		if service != nil && service.ProfilesPerAccount > 0 {
			return service.ProfilesPerAccount
		}
		return defaultProfilesPerAccount
	}
}

// IsProfileEditable indica si el perfil admite el flujo de asignación/info.
// En cuentas privadas solo el perfil 1 es usable; el resto queda bloqueado.
func IsProfileEditable(account *entity.Account, profile *entity.Profile) bool {
	if account.IsPrivate() {
		return profile.Number == 1
	}
	return true
}

// Create crea la cuenta y materializa sus perfiles. Contrato: o quedan la fila
// de cuenta y exactamente N filas de perfil, o ninguna. El almacén no ofrece
// transacción multi-tabla para esta operación, así que el fallo al crear
// perfiles se compensa borrando la cuenta recién insertada.
func (uc *AccountUseCase) Create(in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	service, err := uc.services.GetByID(in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, fmt.Errorf("%w: servicio no encontrado", domain.ErrInvalidInput)
	}

	accountType := in.Type
	switch accountType {
	case "":
		accountType = entity.AccountTypeShared
	case entity.AccountTypePrivate, entity.AccountTypeShared, entity.AccountTypeStandard:
	default:
		return nil, fmt.Errorf("%w: tipo de cuenta desconocido %q", domain.ErrInvalidInput, in.Type)
	}

	// Recalcular/validar el número en el submit, no solo al renderizar el formulario.
	number := in.SequenceNumber
	if number <= 0 {
		if number, err = uc.nextFreeNumber(in.ServiceID); err != nil {
			return nil, err
		}
	}
	existing, err := uc.accounts.GetByServiceAndNumber(in.ServiceID, number)
	if err != nil {
		return nil, err
	}
	name := naming.ComposeCanonicalName(service.Name, number)
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNameTaken, name)
	}

	baseCost, err := parseDecimal(in.BaseCost, service.MonthlyPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: base_cost inválido", domain.ErrInvalidInput)
	}
	customerPrice, err := parseDecimal(in.CustomerPrice, decimal.Zero)
	if err != nil {
		return nil, fmt.Errorf("%w: customer_price inválido", domain.ErrInvalidInput)
	}
	if customerPrice.IsZero() {
		if baseCost.GreaterThan(decimal.Zero) {
			customerPrice = baseCost.Mul(defaultPriceMarkup)
		} else {
			customerPrice = service.MonthlyPrice.Mul(defaultPriceMarkup)
		}
	}

	expiresAt, err := parseDate(in.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("%w: expires_at inválido (esperado YYYY-MM-DD)", domain.ErrInvalidInput)
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := time.Now()
	account := &entity.Account{
		ID:             uuid.New().String(),
		ServiceID:      in.ServiceID,
		Name:           name,
		SequenceNumber: number,
		Email:          in.Email,
		Password:       in.Password,
		Type:           accountType,
		ExpiresAt:      expiresAt,
		BaseCost:       baseCost,
		CustomerPrice:  customerPrice,
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.accounts.Create(account); err != nil {
		return nil, err
	}

	profileCount, err := uc.materializeProfiles(account, service)
	if err != nil {
		// Compensación: deshacer la cuenta recién creada antes de informar el fallo.
		if delErr := uc.accounts.Delete(account.ID); delErr != nil {
			return nil, fmt.Errorf("crear perfiles: %w (y la compensación falló: %v)", err, delErr)
		}
		return nil, fmt.Errorf("crear perfiles: %w", err)
	}

	resp := uc.toAccountResponse(account)
	resp.ProfileCount = profileCount
	return resp, nil
}

// materializeProfiles crea los perfiles 1..N de la cuenta. Si ya existen filas
// (doble submit), no crea nada y reutiliza el conteo existente.
func (uc *AccountUseCase) materializeProfiles(account *entity.Account, service *entity.Service) (int, error) {
	existing, err := uc.profiles.ListByAccount(account.ID)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return len(existing), nil
	}

	count := ResolveProfileCount(account.Type, service)
	now := time.Now()
	batch := make([]*entity.Profile, 0, count)
	for i := 1; i <= count; i++ {
		batch = append(batch, &entity.Profile{
			ID:        uuid.New().String(),
			AccountID: account.ID,
			ServiceID: account.ServiceID,
			Number:    i,
			Label:     fmt.Sprintf("Usuario %d", i),
			Pin:       nil,
			Occupied:  false,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := uc.profiles.CreateBatch(batch); err != nil {
		return 0, err
	}
	return count, nil
}

// GetByID obtiene una cuenta por ID.
func (uc *AccountUseCase) GetByID(id string) (*dto.AccountResponse, error) {
	account, err := uc.accounts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	resp := uc.toAccountResponse(account)
	if profiles, err := uc.profiles.ListByAccount(id); err == nil {
		resp.ProfileCount = len(profiles)
	}
	return resp, nil
}

// List lista cuentas con paginación.
func (uc *AccountUseCase) List(limit, offset int) (*dto.AccountListResponse, error) {
	list, err := uc.accounts.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *uc.toAccountResponse(a))
	}
	return &dto.AccountListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita una cuenta. Cambiar el número re-deriva el nombre canónico y
// re-valida unicidad excluyendo a la propia cuenta. No toca los perfiles.
func (uc *AccountUseCase) Update(id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := uc.accounts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	service, err := uc.services.GetByID(account.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, fmt.Errorf("%w: servicio de la cuenta no encontrado", domain.ErrInvalidInput)
	}

	if in.SequenceNumber != nil && *in.SequenceNumber != account.SequenceNumber {
		number := *in.SequenceNumber
		if number < 1 {
			return nil, fmt.Errorf("%w: sequence_number debe ser >= 1", domain.ErrInvalidInput)
		}
		other, err := uc.accounts.GetByServiceAndNumber(account.ServiceID, number)
		if err != nil {
			return nil, err
		}
		name := naming.ComposeCanonicalName(service.Name, number)
		if other != nil && other.ID != account.ID {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNameTaken, name)
		}
		account.SequenceNumber = number
		account.Name = name
	}
	if in.Email != nil {
		account.Email = *in.Email
	}
	if in.Password != nil {
		account.Password = *in.Password
	}
	if in.Type != nil {
		switch *in.Type {
		case entity.AccountTypePrivate, entity.AccountTypeShared, entity.AccountTypeStandard:
			account.Type = *in.Type
		default:
			return nil, fmt.Errorf("%w: tipo de cuenta desconocido %q", domain.ErrInvalidInput, *in.Type)
		}
	}
	if in.ExpiresAt != nil {
		expiresAt, err := parseDate(*in.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: expires_at inválido (esperado YYYY-MM-DD)", domain.ErrInvalidInput)
		}
		account.ExpiresAt = expiresAt
	}
	if in.BaseCost != nil {
		cost, err := parseDecimal(*in.BaseCost, decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: base_cost inválido", domain.ErrInvalidInput)
		}
		account.BaseCost = cost
	}
	if in.CustomerPrice != nil {
		price, err := parseDecimal(*in.CustomerPrice, decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: customer_price inválido", domain.ErrInvalidInput)
		}
		account.CustomerPrice = price
	}
	if in.Active != nil {
		account.Active = *in.Active
	}
	account.UpdatedAt = time.Now()
	if err := uc.accounts.Update(account); err != nil {
		return nil, err
	}
	return uc.toAccountResponse(account), nil
}

// Delete elimina la cuenta y todos sus perfiles. Precondición: cero perfiles
// ocupados. Se borran primero los perfiles y después la cuenta para no dejar
// perfiles colgantes si el segundo paso falla.
func (uc *AccountUseCase) Delete(id string) error {
	account, err := uc.accounts.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	occupied, err := uc.profiles.CountOccupiedByAccount(id)
	if err != nil {
		return err
	}
	if occupied > 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountHasUsers, account.Name)
	}
	if err := uc.profiles.DeleteByAccount(id); err != nil {
		return err
	}
	return uc.accounts.Delete(id)
}

// ListProfiles lista los perfiles de la cuenta con su flag de editabilidad.
func (uc *AccountUseCase) ListProfiles(accountID string) ([]dto.ProfileResponse, error) {
	account, err := uc.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	profiles, err := uc.profiles.ListByAccount(accountID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, toProfileResponse(account, p))
	}
	return items, nil
}

// UpdateProfile edita etiqueta y/o PIN de un perfil. En cuentas privadas solo
// el perfil 1 es editable. No toca los snapshots de asignaciones ya escritas.
func (uc *AccountUseCase) UpdateProfile(profileID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
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
	if !IsProfileEditable(account, profile) {
		return nil, fmt.Errorf("%w: perfil %d de %s", domain.ErrProfileNotEditable, profile.Number, account.Name)
	}
	if in.Label != nil {
		profile.Label = *in.Label
	}
	if in.Pin != nil {
		if *in.Pin == "" {
			profile.Pin = nil
		} else {
			profile.Pin = in.Pin
		}
	}
	if err := uc.profiles.UpdateLabelAndPin(profile.ID, profile.Label, profile.Pin); err != nil {
		return nil, err
	}
	resp := toProfileResponse(account, profile)
	return &resp, nil
}

func toProfileResponse(account *entity.Account, p *entity.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        p.ID,
		AccountID: p.AccountID,
		ServiceID: p.ServiceID,
		Number:    p.Number,
		Label:     p.Label,
		Pin:       p.Pin,
		Occupied:  p.Occupied,
		Editable:  IsProfileEditable(account, p),
	}
}

func (uc *AccountUseCase) toAccountResponse(a *entity.Account) *dto.AccountResponse {
	status, _ := schedule.Status(a.ExpiresAt, time.Now())
	return &dto.AccountResponse{
		ID:             a.ID,
		ServiceID:      a.ServiceID,
		Name:           a.Name,
		SequenceNumber: a.SequenceNumber,
		Email:          a.Email,
		Type:           a.Type,
		ExpiresAt:      a.ExpiresAt,
		ExpiryStatus:   status,
		BaseCost:       a.BaseCost.StringFixed(2),
		CustomerPrice:  a.CustomerPrice.StringFixed(2),
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// parseDate interpreta YYYY-MM-DD como fecha calendario local; "" → nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
