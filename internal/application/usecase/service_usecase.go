package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ServiceUseCase casos de uso CRUD para el catálogo de servicios.
type ServiceUseCase struct {
	repo repository.ServiceRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo}
}

// Create crea un nuevo servicio en el catálogo.
func (uc *ServiceUseCase) Create(in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if err := validateEmailFormat(in.EmailFormat); err != nil {
		return nil, err
	}
	price, err := parseDecimal(in.MonthlyPrice, decimal.Zero)
	if err != nil {
		return nil, fmt.Errorf("%w: monthly_price inválido", domain.ErrInvalidInput)
	}
	profiles := in.ProfilesPerAccount
	if profiles <= 0 {
		profiles = defaultProfilesPerAccount
	}

	now := time.Now()
	service := &entity.Service{
		ID:                 uuid.New().String(),
		Name:               name,
		Description:        in.Description,
		MonthlyPrice:       price,
		ProfilesPerAccount: profiles,
		PinRequired:        in.PinRequired,
		EmailFormat:        in.EmailFormat,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(service); err != nil {
		return nil, err
	}
	return toServiceResponse(service), nil
}

// GetByID obtiene un servicio por ID.
func (uc *ServiceUseCase) GetByID(id string) (*dto.ServiceResponse, error) {
	service, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, nil
	}
	return toServiceResponse(service), nil
}

// Update actualiza un servicio.
func (uc *ServiceUseCase) Update(id string, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	service, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		service.Name = name
	}
	if in.Description != nil {
		service.Description = *in.Description
	}
	if in.MonthlyPrice != nil {
		price, err := parseDecimal(*in.MonthlyPrice, decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("%w: monthly_price inválido", domain.ErrInvalidInput)
		}
		service.MonthlyPrice = price
	}
	if in.ProfilesPerAccount != nil && *in.ProfilesPerAccount > 0 {
		service.ProfilesPerAccount = *in.ProfilesPerAccount
	}
	if in.PinRequired != nil {
		service.PinRequired = *in.PinRequired
	}
	if in.EmailFormat != nil {
		if err := validateEmailFormat(*in.EmailFormat); err != nil {
			return nil, err
		}
		service.EmailFormat = *in.EmailFormat
	}
	if in.Active != nil {
		service.Active = *in.Active
	}
	service.UpdatedAt = time.Now()
	if err := uc.repo.Update(service); err != nil {
		return nil, err
	}
	return toServiceResponse(service), nil
}

// List lista servicios con paginación.
func (uc *ServiceUseCase) List(onlyActive bool, limit, offset int) (*dto.ServiceListResponse, error) {
	list, err := uc.repo.List(onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toServiceResponse(s))
	}
	return &dto.ServiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un servicio. Bloqueado mientras existan cuentas que lo referencien;
// para retirarlo del catálogo sin borrar historial, usar el flag activo.
func (uc *ServiceUseCase) Delete(id string) error {
	count, err := uc.repo.CountAccounts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrServiceHasAccounts
	}
	return uc.repo.Delete(id)
}

// validateEmailFormat exige exactamente un '@' en la plantilla (o plantilla vacía).
func validateEmailFormat(format string) error {
	if format == "" {
		return nil
	}
	if strings.Count(format, "@") != 1 {
		return fmt.Errorf("%w: email_format debe contener exactamente un '@'", domain.ErrInvalidInput)
	}
	return nil
}

func parseDecimal(s string, def decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return decimal.NewFromString(strings.TrimSpace(s))
}

func toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	if s == nil {
		return nil
	}
	return &dto.ServiceResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Description:        s.Description,
		MonthlyPrice:       s.MonthlyPrice.StringFixed(2),
		ProfilesPerAccount: s.ProfilesPerAccount,
		PinRequired:        s.PinRequired,
		EmailFormat:        s.EmailFormat,
		Active:             s.Active,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
