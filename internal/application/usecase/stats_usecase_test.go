package usecase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

func buildStatsUseCase() (*usecase.StatsUseCase, *fakeAccountRepo, *fakeAssignmentRepo) {
	accounts := newFakeAccountRepo()
	assignments := newFakeAssignmentRepo()
	uc := usecase.NewStatsUseCase(accounts, assignments, nil)
	return uc, accounts, assignments
}

func seedActiveAccount(t *testing.T, repo *fakeAccountRepo, baseCost int64, active bool) {
	t.Helper()
	require.NoError(t, repo.Create(&entity.Account{
		ID:       uuid.New().String(),
		Name:     uuid.NewString(),
		BaseCost: decimal.NewFromInt(baseCost),
		Active:   active,
	}))
}

func seedActiveAssignment(t *testing.T, repo *fakeAssignmentRepo, price int64, active bool) {
	t.Helper()
	require.NoError(t, repo.Create(&entity.Assignment{
		ID:     uuid.New().String(),
		Price:  decimal.NewFromInt(price),
		Active: active,
	}))
}

// Sin cuentas ni asignaciones todos los montos reportan cero, incluido el
// margen (sin división entre cero).
func TestAggregate_SinDatos(t *testing.T) {
	uc, _, _ := buildStatsUseCase()

	resp, err := uc.Aggregate()
	require.NoError(t, err)

	assert.Equal(t, "0.00", resp.TotalCost)
	assert.Equal(t, "0.00", resp.TotalRevenue)
	assert.Equal(t, "0.00", resp.Profit)
	assert.Equal(t, "0.00", resp.MarginPct)
	assert.Zero(t, resp.ActiveAccounts)
	assert.Zero(t, resp.ActiveAssignments)
}

// Gasto = costo base de cuentas activas; ingreso = precios de asignaciones
// activas; margen = utilidad / gasto × 100.
func TestAggregate_CalculaMargen(t *testing.T) {
	uc, accounts, assignments := buildStatsUseCase()
	seedActiveAccount(t, accounts, 100, true)
	seedActiveAccount(t, accounts, 100, true)
	seedActiveAssignment(t, assignments, 150, true)
	seedActiveAssignment(t, assignments, 150, true)

	resp, err := uc.Aggregate()
	require.NoError(t, err)

	assert.Equal(t, "200.00", resp.TotalCost)
	assert.Equal(t, "300.00", resp.TotalRevenue)
	assert.Equal(t, "100.00", resp.Profit)
	assert.Equal(t, "50.00", resp.MarginPct)
	assert.Equal(t, 2, resp.ActiveAccounts)
	assert.Equal(t, 2, resp.ActiveAssignments)
}

// Cuentas inactivas y asignaciones liberadas quedan fuera de los agregados.
func TestAggregate_IgnoraInactivos(t *testing.T) {
	uc, accounts, assignments := buildStatsUseCase()
	seedActiveAccount(t, accounts, 100, true)
	seedActiveAccount(t, accounts, 500, false)
	seedActiveAssignment(t, assignments, 150, true)
	seedActiveAssignment(t, assignments, 999, false)

	resp, err := uc.Aggregate()
	require.NoError(t, err)

	assert.Equal(t, "100.00", resp.TotalCost)
	assert.Equal(t, "150.00", resp.TotalRevenue)
	assert.Equal(t, 1, resp.ActiveAccounts)
	assert.Equal(t, 1, resp.ActiveAssignments)
}

// Con gasto cero el margen reporta cero aunque haya ingresos.
func TestAggregate_MargenConGastoCero(t *testing.T) {
	uc, _, assignments := buildStatsUseCase()
	seedActiveAssignment(t, assignments, 150, true)

	resp, err := uc.Aggregate()
	require.NoError(t, err)

	assert.Equal(t, "0.00", resp.TotalCost)
	assert.Equal(t, "150.00", resp.TotalRevenue)
	assert.Equal(t, "150.00", resp.Profit)
	assert.Equal(t, "0.00", resp.MarginPct)
}
