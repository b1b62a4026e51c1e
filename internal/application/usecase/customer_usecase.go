package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
	"golang.org/x/text/unicode/norm"
)

// prefijo de país por defecto de los teléfonos de clientes
const phonePrefix = "+52"

var (
	// solo letras (con acentos y ñ) y espacios; se valida después de normalizar a NFC
	customerNamePattern = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ ]+$`)
	customerCodePattern = regexp.MustCompile(`^\d{4}$`)
	nonDigits           = regexp.MustCompile(`\D`)
)

// CustomerUseCase casos de uso CRUD para clientes finales.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente con nombre, teléfono y código normalizados.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	phone, err := normalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}
	code, err := normalizeCode(in.Code)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Email:     strings.TrimSpace(in.Email),
		Code:      code,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un cliente normalizando los campos que cambian.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if in.Name != nil {
		name, err := normalizeName(*in.Name)
		if err != nil {
			return nil, err
		}
		customer.Name = name
	}
	if in.Phone != nil {
		phone, err := normalizePhone(*in.Phone)
		if err != nil {
			return nil, err
		}
		customer.Phone = phone
	}
	if in.Email != nil {
		customer.Email = strings.TrimSpace(*in.Email)
	}
	if in.Code != nil {
		code, err := normalizeCode(*in.Code)
		if err != nil {
			return nil, err
		}
		customer.Code = code
	}
	if in.Active != nil {
		customer.Active = *in.Active
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente. Bloqueado mientras tenga asignaciones activas.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	count, err := uc.repo.CountActiveAssignments(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", domain.ErrCustomerHasAssignments, customer.Name)
	}
	return uc.repo.Delete(id)
}

// normalizeName normaliza a NFC, valida letras/espacios/acentos y pasa a mayúsculas.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		return "", fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if !customerNamePattern.MatchString(name) {
		return "", fmt.Errorf("%w: el nombre solo admite letras y espacios", domain.ErrInvalidInput)
	}
	return strings.ToUpper(name), nil
}

// normalizePhone deja el teléfono con prefijo de país: conserva un +52 ya
// presente, completa el + de un 52 inicial y antepone +52 al resto.
func normalizePhone(phone string) (string, error) {
	digits := nonDigits.ReplaceAllString(phone, "")
	if digits == "" {
		return "", fmt.Errorf("%w: phone es requerido", domain.ErrInvalidInput)
	}
	if strings.HasPrefix(digits, "52") && len(digits) > 10 {
		return "+" + digits, nil
	}
	if len(digits) != 10 {
		return "", fmt.Errorf("%w: el teléfono debe tener 10 dígitos (o incluir el prefijo 52)", domain.ErrInvalidInput)
	}
	return phonePrefix + digits, nil
}

// normalizeCode valida el código de 4 dígitos; vacío es válido (opcional).
func normalizeCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", nil
	}
	if !customerCodePattern.MatchString(code) {
		return "", fmt.Errorf("%w: el código debe tener exactamente 4 dígitos", domain.ErrInvalidInput)
	}
	return code, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Code:      c.Code,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
