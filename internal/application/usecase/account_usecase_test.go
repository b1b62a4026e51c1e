package usecase_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func seedService(t *testing.T, repo *fakeServiceRepo, name string, profilesPerAccount int) *entity.Service {
	t.Helper()
	svc := &entity.Service{
		ID:                 uuid.New().String(),
		Name:               name,
		MonthlyPrice:       decimal.NewFromInt(120),
		ProfilesPerAccount: profilesPerAccount,
		EmailFormat:        "cuentas@midominio.com",
		Active:             true,
	}
	require.NoError(t, repo.Create(svc))
	return svc
}

func seedAccount(t *testing.T, repo *fakeAccountRepo, serviceID, name string, number int) *entity.Account {
	t.Helper()
	acc := &entity.Account{
		ID:             uuid.New().String(),
		ServiceID:      serviceID,
		Name:           name,
		SequenceNumber: number,
		Type:           entity.AccountTypeShared,
		BaseCost:       decimal.NewFromInt(100),
		CustomerPrice:  decimal.NewFromInt(150),
		Active:         true,
	}
	require.NoError(t, repo.Create(acc))
	return acc
}

func buildAccountUseCase() (*usecase.AccountUseCase, *fakeServiceRepo, *fakeAccountRepo, *fakeProfileRepo) {
	services := newFakeServiceRepo()
	accounts := newFakeAccountRepo()
	profiles := newFakeProfileRepo()
	uc := usecase.NewAccountUseCase(accounts, profiles, services)
	return uc, services, accounts, profiles
}

// ──────────────────────────────────────────────────────────────────────────────
// NextNumber
// ──────────────────────────────────────────────────────────────────────────────

// El siguiente número libre es el menor entero positivo no tomado, no máximo+1:
// con los números 1, 2 y 4 ocupados el hueco 3 se rellena primero.
func TestNextNumber_RellenaHuecos(t *testing.T) {
	uc, services, accounts, _ := buildAccountUseCase()
	svc := seedService(t, services, "Disney Plus", 4)
	for _, n := range []int{1, 2, 4} {
		seedAccount(t, accounts, svc.ID, "DISNEY-"+uuid.NewString()[:4], n)
	}

	resp, err := uc.NextNumber(svc.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.SequenceNumber)
	assert.Equal(t, "DISNEY-3", resp.CanonicalName)
	assert.Equal(t, "cuentas3@midominio.com", resp.RecommendedEmail)
	assert.Regexp(t, `^disney\d{6}$`, resp.RecommendedPassword,
		"la contraseña recomendada es el primer token del servicio más 6 dígitos")
}

// Filas legadas sin columna de número: el número se extrae del nombre canónico.
func TestNextNumber_FilasLegadasSinNumero(t *testing.T) {
	uc, services, accounts, _ := buildAccountUseCase()
	svc := seedService(t, services, "Netflix", 4)
	seedAccount(t, accounts, svc.ID, "NETFLIX-1", 0)

	resp, err := uc.NextNumber(svc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.SequenceNumber)
}

func TestNextNumber_ServicioInexistente(t *testing.T) {
	uc, _, _, _ := buildAccountUseCase()
	_, err := uc.NextNumber("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Una cuenta compartida materializa los perfiles configurados en el servicio,
// numerados 1..N con etiquetas "Usuario <i>" y todos libres.
func TestCreateAccount_CompartidaMaterializaPerfiles(t *testing.T) {
	uc, services, _, profiles := buildAccountUseCase()
	svc := seedService(t, services, "Max", 5)

	resp, err := uc.Create(dto.CreateAccountRequest{
		ServiceID: svc.ID,
		Type:      entity.AccountTypeShared,
		Email:     "cuentas1@midominio.com",
		Password:  "secreto",
	})
	require.NoError(t, err)

	assert.Equal(t, "MAX-1", resp.Name)
	assert.Equal(t, 1, resp.SequenceNumber)
	assert.Equal(t, 5, resp.ProfileCount)

	rows, err := profiles.ListByAccount(resp.ID)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, "Usuario 1", rows[0].Label)
	assert.Equal(t, "Usuario 5", rows[4].Label)
	for _, p := range rows {
		assert.False(t, p.Occupied)
	}
}

// Una cuenta privada tiene exactamente un perfil sin importar el servicio.
func TestCreateAccount_PrivadaUnSoloPerfil(t *testing.T) {
	uc, services, _, profiles := buildAccountUseCase()
	svc := seedService(t, services, "Netflix", 6)

	resp, err := uc.Create(dto.CreateAccountRequest{
		ServiceID: svc.ID,
		Type:      entity.AccountTypePrivate,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProfileCount)

	rows, _ := profiles.ListByAccount(resp.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Number)
}

// El número se revalida en el submit: si otra cuenta ya lo tomó, falla con el
// nombre canónico en conflicto y no se escribe nada.
func TestCreateAccount_NumeroDuplicado(t *testing.T) {
	uc, services, accounts, profiles := buildAccountUseCase()
	svc := seedService(t, services, "Disney Plus", 4)
	seedAccount(t, accounts, svc.ID, "DISNEY-1", 1)

	_, err := uc.Create(dto.CreateAccountRequest{
		ServiceID:      svc.ID,
		SequenceNumber: 1,
	})
	require.ErrorIs(t, err, domain.ErrAccountNameTaken)
	assert.Contains(t, err.Error(), "DISNEY-1")
	assert.Empty(t, profiles.profiles, "no debe quedar ningún perfil creado")
}

// Si la inserción de perfiles falla, la cuenta recién creada se deshace:
// o quedan cuenta + N perfiles, o nada.
func TestCreateAccount_CompensaSiFallanPerfiles(t *testing.T) {
	uc, services, accounts, profiles := buildAccountUseCase()
	svc := seedService(t, services, "Spotify", 4)
	profiles.failCreateBatch = errors.New("disco lleno")

	_, err := uc.Create(dto.CreateAccountRequest{ServiceID: svc.ID})
	require.Error(t, err)

	assert.Empty(t, accounts.accounts, "la cuenta huérfana debe compensarse con un borrado")
	assert.Len(t, accounts.deleted, 1)
}

func TestCreateAccount_TipoDesconocido(t *testing.T) {
	uc, services, _, _ := buildAccountUseCase()
	svc := seedService(t, services, "Netflix", 4)

	_, err := uc.Create(dto.CreateAccountRequest{ServiceID: svc.ID, Type: "familiar"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Sin precio cliente explícito se aplica el margen por defecto sobre el costo base.
func TestCreateAccount_PrecioPorDefectoConMargen(t *testing.T) {
	uc, services, _, _ := buildAccountUseCase()
	svc := seedService(t, services, "Netflix", 4)

	resp, err := uc.Create(dto.CreateAccountRequest{
		ServiceID: svc.ID,
		BaseCost:  "100",
	})
	require.NoError(t, err)
	assert.Equal(t, "100.00", resp.BaseCost)
	assert.Equal(t, "120.00", resp.CustomerPrice)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfiles
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProfile_EtiquetaYPin(t *testing.T) {
	uc, services, accounts, profiles := buildAccountUseCase()
	svc := seedService(t, services, "Netflix", 4)
	acc := seedAccount(t, accounts, svc.ID, "NETFLIX-1", 1)
	profileID := uuid.New().String()
	require.NoError(t, profiles.CreateBatch([]*entity.Profile{
		{ID: profileID, AccountID: acc.ID, ServiceID: svc.ID, Number: 1, Label: "Usuario 1"},
	}))

	label := "Papá"
	pin := "4321"
	resp, err := uc.UpdateProfile(profileID, dto.UpdateProfileRequest{Label: &label, Pin: &pin})
	require.NoError(t, err)
	assert.Equal(t, "Papá", resp.Label)
	require.NotNil(t, resp.Pin)
	assert.Equal(t, "4321", *resp.Pin)
}

// En cuentas privadas los perfiles distintos del 1 están bloqueados.
func TestUpdateProfile_BloqueadoEnPrivada(t *testing.T) {
	uc, services, accounts, profiles := buildAccountUseCase()
	svc := seedService(t, services, "Netflix", 4)
	acc := seedAccount(t, accounts, svc.ID, "NETFLIX-1", 1)
	acc.Type = entity.AccountTypePrivate
	require.NoError(t, accounts.Update(acc))
	profileID := uuid.New().String()
	require.NoError(t, profiles.CreateBatch([]*entity.Profile{
		{ID: profileID, AccountID: acc.ID, ServiceID: svc.ID, Number: 2, Label: "Usuario 2"},
	}))

	label := "Papá"
	_, err := uc.UpdateProfile(profileID, dto.UpdateProfileRequest{Label: &label})
	assert.ErrorIs(t, err, domain.ErrProfileNotEditable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

// Cambiar el número re-deriva el nombre canónico desde el servicio.
func TestUpdateAccount_CambioDeNumeroRederivaNombre(t *testing.T) {
	uc, services, accounts, _ := buildAccountUseCase()
	svc := seedService(t, services, "Disney Plus", 4)
	acc := seedAccount(t, accounts, svc.ID, "DISNEY-1", 1)

	n := 7
	resp, err := uc.Update(acc.ID, dto.UpdateAccountRequest{SequenceNumber: &n})
	require.NoError(t, err)
	assert.Equal(t, "DISNEY-7", resp.Name)
	assert.Equal(t, 7, resp.SequenceNumber)
}

// Mover la cuenta a un número ya tomado por otra es un conflicto.
func TestUpdateAccount_NumeroTomadoPorOtra(t *testing.T) {
	uc, services, accounts, _ := buildAccountUseCase()
	svc := seedService(t, services, "Disney Plus", 4)
	seedAccount(t, accounts, svc.ID, "DISNEY-1", 1)
	acc := seedAccount(t, accounts, svc.ID, "DISNEY-2", 2)

	n := 1
	_, err := uc.Update(acc.ID, dto.UpdateAccountRequest{SequenceNumber: &n})
	assert.ErrorIs(t, err, domain.ErrAccountNameTaken)
}

// Dejar el mismo número no dispara el chequeo de unicidad contra sí misma.
func TestUpdateAccount_MismoNumeroNoConflicta(t *testing.T) {
	uc, services, accounts, _ := buildAccountUseCase()
	svc := seedService(t, services, "Disney Plus", 4)
	acc := seedAccount(t, accounts, svc.ID, "DISNEY-2", 2)

	n := 2
	resp, err := uc.Update(acc.ID, dto.UpdateAccountRequest{SequenceNumber: &n})
	require.NoError(t, err)
	assert.Equal(t, "DISNEY-2", resp.Name)
}

// Borrar una cuenta con perfiles ocupados está bloqueado.
func TestDeleteAccount_BloqueadaConPerfilesOcupados(t *testing.T) {
	uc, services, accounts, profiles := buildAccountUseCase()
	svc := seedService(t, services, "Netflix", 4)
	acc := seedAccount(t, accounts, svc.ID, "NETFLIX-1", 1)
	require.NoError(t, profiles.CreateBatch([]*entity.Profile{
		{ID: uuid.New().String(), AccountID: acc.ID, ServiceID: svc.ID, Number: 1, Occupied: true},
	}))

	err := uc.Delete(acc.ID)
	assert.ErrorIs(t, err, domain.ErrAccountHasUsers)
	assert.Contains(t, accounts.accounts, acc.ID, "la cuenta debe seguir existiendo")
}

// Con todos los perfiles libres el borrado elimina perfiles y cuenta.
func TestDeleteAccount_EliminaPerfilesYCuenta(t *testing.T) {
	uc, services, accounts, profiles := buildAccountUseCase()
	svc := seedService(t, services, "Netflix", 4)
	acc := seedAccount(t, accounts, svc.ID, "NETFLIX-1", 1)
	require.NoError(t, profiles.CreateBatch([]*entity.Profile{
		{ID: uuid.New().String(), AccountID: acc.ID, ServiceID: svc.ID, Number: 1},
		{ID: uuid.New().String(), AccountID: acc.ID, ServiceID: svc.ID, Number: 2},
	}))

	require.NoError(t, uc.Delete(acc.ID))
	assert.Empty(t, accounts.accounts)
	assert.Empty(t, profiles.profiles)
}
