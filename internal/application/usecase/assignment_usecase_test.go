package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/schedule"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type assignmentFixture struct {
	uc          *usecase.AssignmentUseCase
	services    *fakeServiceRepo
	accounts    *fakeAccountRepo
	profiles    *fakeProfileRepo
	customers   *fakeCustomerRepo
	assignments *fakeAssignmentRepo

	service  *entity.Service
	account  *entity.Account
	profile  *entity.Profile
	customer *entity.Customer
}

// buildAssignmentFixture arma un servicio con una cuenta compartida, un perfil
// libre y un cliente listos para asignar.
func buildAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	f := &assignmentFixture{
		services:    newFakeServiceRepo(),
		accounts:    newFakeAccountRepo(),
		profiles:    newFakeProfileRepo(),
		customers:   newFakeCustomerRepo(),
		assignments: newFakeAssignmentRepo(),
	}
	f.uc = usecase.NewAssignmentUseCase(
		f.assignments, f.profiles, f.accounts, f.customers, f.services,
		&fakeLedger{assignments: f.assignments, profiles: f.profiles},
	)

	f.service = seedService(t, f.services, "Netflix", 4)
	f.account = seedAccount(t, f.accounts, f.service.ID, "NETFLIX-1", 1)
	f.profile = &entity.Profile{
		ID:        uuid.New().String(),
		AccountID: f.account.ID,
		ServiceID: f.service.ID,
		Number:    2,
		Label:     "Usuario 2",
	}
	require.NoError(t, f.profiles.CreateBatch([]*entity.Profile{f.profile}))
	f.customer = &entity.Customer{
		ID:     uuid.New().String(),
		Name:   "MARÍA LÓPEZ",
		Phone:  "+525512345678",
		Active: true,
	}
	require.NoError(t, f.customers.Create(f.customer))
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Assign
// ──────────────────────────────────────────────────────────────────────────────

// Camino feliz: el perfil queda ocupado, la asignación congela número y
// etiqueta del perfil, toma el precio de la cuenta y vence hoy + 1 mes.
func TestAssign_PerfilLibre(t *testing.T) {
	f := buildAssignmentFixture(t)

	resp, err := f.uc.Assign(f.profile.ID, dto.AssignRequest{CustomerID: f.customer.ID})
	require.NoError(t, err)

	assert.True(t, resp.Active)
	assert.Equal(t, f.customer.ID, resp.CustomerID)
	assert.Equal(t, 2, resp.ProfileNumber)
	assert.Equal(t, "Usuario 2", resp.ProfileLabel)
	assert.Equal(t, "150.00", resp.Price, "sin precio explícito rige el precio cliente de la cuenta")

	today := schedule.LocalDate(time.Now())
	assert.Equal(t, today.Format("2006-01-02"), resp.AssignedAt)
	assert.Equal(t, today.Format("2006-01-02"), resp.ContractedAt)
	require.NotNil(t, resp.ExpiresAt)
	assert.Equal(t, schedule.AddCalendarMonths(today, 1), *resp.ExpiresAt,
		"el vencimiento por defecto es hoy más un mes calendario")

	p, _ := f.profiles.GetByID(f.profile.ID)
	assert.True(t, p.Occupied, "el flag de ocupación debe subir junto con la escritura del libro")
}

// Un precio explícito parseable le gana al precio de la cuenta.
func TestAssign_PrecioExplicito(t *testing.T) {
	f := buildAssignmentFixture(t)

	resp, err := f.uc.Assign(f.profile.ID, dto.AssignRequest{
		CustomerID: f.customer.ID,
		Price:      "89.50",
	})
	require.NoError(t, err)
	assert.Equal(t, "89.50", resp.Price)
}

// Un perfil ya ocupado no admite segunda asignación.
func TestAssign_PerfilOcupado(t *testing.T) {
	f := buildAssignmentFixture(t)
	require.NoError(t, f.profiles.SetOccupied(f.profile.ID, true))

	_, err := f.uc.Assign(f.profile.ID, dto.AssignRequest{CustomerID: f.customer.ID})
	assert.ErrorIs(t, err, domain.ErrProfileOccupied)
}

// El flag puede estar desincronizado: si el libro registra una asignación
// activa, el perfil se trata como ocupado aunque el flag diga lo contrario.
func TestAssign_ElLibroManda(t *testing.T) {
	f := buildAssignmentFixture(t)
	require.NoError(t, f.assignments.Create(&entity.Assignment{
		ID:        uuid.New().String(),
		ProfileID: f.profile.ID,
		Active:    true,
		Price:     decimal.NewFromInt(100),
	}))

	_, err := f.uc.Assign(f.profile.ID, dto.AssignRequest{CustomerID: f.customer.ID})
	assert.ErrorIs(t, err, domain.ErrProfileOccupied)
}

// En cuentas privadas solo el perfil 1 es asignable.
func TestAssign_PerfilBloqueadoEnCuentaPrivada(t *testing.T) {
	f := buildAssignmentFixture(t)
	f.account.Type = entity.AccountTypePrivate
	require.NoError(t, f.accounts.Update(f.account))

	_, err := f.uc.Assign(f.profile.ID, dto.AssignRequest{CustomerID: f.customer.ID})
	assert.ErrorIs(t, err, domain.ErrProfileNotEditable)
}

func TestAssign_ClienteInexistente(t *testing.T) {
	f := buildAssignmentFixture(t)

	_, err := f.uc.Assign(f.profile.ID, dto.AssignRequest{CustomerID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, _ := f.profiles.GetByID(f.profile.ID)
	assert.False(t, p.Occupied, "ninguna precondición fallida debe dejar escrituras atrás")
}

// ──────────────────────────────────────────────────────────────────────────────
// Unassign
// ──────────────────────────────────────────────────────────────────────────────

func TestUnassign_LiberaPerfil(t *testing.T) {
	f := buildAssignmentFixture(t)
	resp, err := f.uc.Assign(f.profile.ID, dto.AssignRequest{CustomerID: f.customer.ID})
	require.NoError(t, err)

	require.NoError(t, f.uc.Unassign(f.profile.ID))

	p, _ := f.profiles.GetByID(f.profile.ID)
	assert.False(t, p.Occupied)
	gone, _ := f.assignments.GetByID(resp.ID)
	assert.Nil(t, gone, "la asignación debe eliminarse del libro")
}

// Liberar un perfil sin asignación activa es un error reportable, no un no-op.
func TestUnassign_PerfilLibreEsError(t *testing.T) {
	f := buildAssignmentFixture(t)

	err := f.uc.Unassign(f.profile.ID)
	assert.ErrorIs(t, err, domain.ErrProfileNotOccupied)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

// La edición es in situ: cambia cliente/precio/vencimiento sin tocar la
// ocupación ni las fechas de alta.
func TestUpdateAssignment_InSitu(t *testing.T) {
	f := buildAssignmentFixture(t)
	created, err := f.uc.Assign(f.profile.ID, dto.AssignRequest{CustomerID: f.customer.ID})
	require.NoError(t, err)

	other := &entity.Customer{ID: uuid.New().String(), Name: "PEDRO GARCÍA", Active: true}
	require.NoError(t, f.customers.Create(other))

	price := "200"
	expires := "2027-01-15"
	resp, err := f.uc.Update(created.ID, dto.UpdateAssignmentRequest{
		CustomerID: &other.ID,
		Price:      &price,
		ExpiresAt:  &expires,
	})
	require.NoError(t, err)

	assert.Equal(t, other.ID, resp.CustomerID)
	assert.Equal(t, "200.00", resp.Price)
	assert.Equal(t, created.AssignedAt, resp.AssignedAt, "la fecha de alta no cambia")
	assert.Equal(t, created.ContractedAt, resp.ContractedAt, "la fecha de contratación no cambia")

	p, _ := f.profiles.GetByID(f.profile.ID)
	assert.True(t, p.Occupied, "editar no libera el perfil")
}

// ──────────────────────────────────────────────────────────────────────────────
// ProfileInfo / Reconcile
// ──────────────────────────────────────────────────────────────────────────────

func TestProfileInfo_ConAsignacionActiva(t *testing.T) {
	f := buildAssignmentFixture(t)
	_, err := f.uc.Assign(f.profile.ID, dto.AssignRequest{CustomerID: f.customer.ID})
	require.NoError(t, err)

	info, err := f.uc.ProfileInfo(f.profile.ID)
	require.NoError(t, err)

	assert.Equal(t, "NETFLIX-1", info.AccountName)
	assert.Equal(t, "Netflix", info.ServiceName)
	require.NotNil(t, info.Assignment)
	assert.Equal(t, "MARÍA LÓPEZ", info.CustomerName)
	assert.Equal(t, "+525512345678", info.CustomerPhone)
}

func TestProfileInfo_PerfilLibre(t *testing.T) {
	f := buildAssignmentFixture(t)

	info, err := f.uc.ProfileInfo(f.profile.ID)
	require.NoError(t, err)
	assert.Nil(t, info.Assignment)
	assert.Empty(t, info.CustomerName)
}

// La reconciliación corrige flags divergentes en ambos sentidos: ocupado sin
// asignación y libre con asignación activa.
func TestReconcile_CorrigeDivergencias(t *testing.T) {
	f := buildAssignmentFixture(t)

	stale := &entity.Profile{
		ID:        uuid.New().String(),
		AccountID: f.account.ID,
		ServiceID: f.service.ID,
		Number:    3,
		Occupied:  true, // flag arriba sin respaldo en el libro
	}
	require.NoError(t, f.profiles.CreateBatch([]*entity.Profile{stale}))
	require.NoError(t, f.assignments.Create(&entity.Assignment{
		ID:        uuid.New().String(),
		ProfileID: f.profile.ID, // libro dice ocupado, flag dice libre
		Active:    true,
		Price:     decimal.NewFromInt(100),
	}))

	resp, err := f.uc.Reconcile()
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Checked)
	assert.Equal(t, 2, resp.Corrected)

	p1, _ := f.profiles.GetByID(f.profile.ID)
	assert.True(t, p1.Occupied)
	p2, _ := f.profiles.GetByID(stale.ID)
	assert.False(t, p2.Occupied)
}
