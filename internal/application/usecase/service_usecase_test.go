package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
)

func TestCreateService_Defaults(t *testing.T) {
	repo := newFakeServiceRepo()
	uc := usecase.NewServiceUseCase(repo)

	resp, err := uc.Create(dto.CreateServiceRequest{Name: "Netflix"})
	require.NoError(t, err)

	assert.Equal(t, "Netflix", resp.Name)
	assert.Equal(t, 4, resp.ProfilesPerAccount, "sin configuración explícita rigen 4 perfiles por cuenta")
	assert.Equal(t, "0.00", resp.MonthlyPrice)
	assert.True(t, resp.Active)
}

// La plantilla de email debe contener exactamente un '@' para poder insertar
// el número de secuencia antes de él.
func TestCreateService_PlantillaEmailInvalida(t *testing.T) {
	repo := newFakeServiceRepo()
	uc := usecase.NewServiceUseCase(repo)

	_, err := uc.Create(dto.CreateServiceRequest{Name: "Netflix", EmailFormat: "sin-arroba"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateServiceRequest{Name: "Netflix", EmailFormat: "a@b@c"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Borrar un servicio con cuentas existentes está bloqueado; para retirarlo
// del catálogo se usa el flag activo.
func TestDeleteService_BloqueadoConCuentas(t *testing.T) {
	repo := newFakeServiceRepo()
	uc := usecase.NewServiceUseCase(repo)

	created, err := uc.Create(dto.CreateServiceRequest{Name: "Netflix"})
	require.NoError(t, err)
	repo.accountCounts[created.ID] = 3

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrServiceHasAccounts)
}
