package usecase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

func buildCustomerUseCase() (*usecase.CustomerUseCase, *fakeCustomerRepo) {
	repo := newFakeCustomerRepo()
	return usecase.NewCustomerUseCase(repo), repo
}

// El nombre se normaliza a mayúsculas conservando acentos y el teléfono de 10
// dígitos recibe el prefijo de país.
func TestCreateCustomer_NormalizaNombreYTelefono(t *testing.T) {
	uc, _ := buildCustomerUseCase()

	resp, err := uc.Create(dto.CreateCustomerRequest{
		Name:  "  José Pérez  ",
		Phone: "55 1234 5678",
		Code:  "1234",
	})
	require.NoError(t, err)

	assert.Equal(t, "JOSÉ PÉREZ", resp.Name)
	assert.Equal(t, "+525512345678", resp.Phone)
	assert.Equal(t, "1234", resp.Code)
	assert.True(t, resp.Active)
}

// Un teléfono que ya trae el prefijo 52 no lo recibe dos veces.
func TestCreateCustomer_TelefonoConPrefijo(t *testing.T) {
	uc, _ := buildCustomerUseCase()

	resp, err := uc.Create(dto.CreateCustomerRequest{
		Name:  "Ana Ruiz",
		Phone: "+52 55 1234 5678",
	})
	require.NoError(t, err)
	assert.Equal(t, "+525512345678", resp.Phone)
}

func TestCreateCustomer_NombreConDigitos(t *testing.T) {
	uc, _ := buildCustomerUseCase()

	_, err := uc.Create(dto.CreateCustomerRequest{Name: "Cliente 1", Phone: "5512345678"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCustomer_TelefonoCorto(t *testing.T) {
	uc, _ := buildCustomerUseCase()

	_, err := uc.Create(dto.CreateCustomerRequest{Name: "Ana Ruiz", Phone: "12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El código es opcional pero si viene debe ser exactamente 4 dígitos.
func TestCreateCustomer_CodigoInvalido(t *testing.T) {
	uc, _ := buildCustomerUseCase()

	_, err := uc.Create(dto.CreateCustomerRequest{
		Name:  "Ana Ruiz",
		Phone: "5512345678",
		Code:  "12a4",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCustomer_CodigoVacio(t *testing.T) {
	uc, _ := buildCustomerUseCase()

	resp, err := uc.Create(dto.CreateCustomerRequest{Name: "Ana Ruiz", Phone: "5512345678"})
	require.NoError(t, err)
	assert.Empty(t, resp.Code)
}

// Borrar un cliente con asignaciones activas está bloqueado; primero hay que
// liberar sus perfiles.
func TestDeleteCustomer_BloqueadoConAsignaciones(t *testing.T) {
	uc, repo := buildCustomerUseCase()
	customer := &entity.Customer{ID: uuid.New().String(), Name: "MARÍA LÓPEZ", Active: true}
	require.NoError(t, repo.Create(customer))
	repo.activeAssignments[customer.ID] = 2

	err := uc.Delete(customer.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerHasAssignments)
	assert.Contains(t, repo.customers, customer.ID)
}

func TestDeleteCustomer_SinAsignaciones(t *testing.T) {
	uc, repo := buildCustomerUseCase()
	customer := &entity.Customer{ID: uuid.New().String(), Name: "MARÍA LÓPEZ", Active: true}
	require.NoError(t, repo.Create(customer))

	require.NoError(t, uc.Delete(customer.ID))
	assert.Empty(t, repo.customers)
}
