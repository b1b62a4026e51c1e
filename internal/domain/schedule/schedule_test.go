package schedule_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Suscripciones-api/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddCalendarMonths(t *testing.T) {
	cases := []struct {
		name     string
		from     time.Time
		months   int
		expected time.Time
	}{
		{"mes normal", date(2024, time.June, 10), 1, date(2024, time.July, 10)},
		{"31 ene a febrero bisiesto", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"31 ene a febrero no bisiesto", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"31 mar a 30 abr", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"cruce de año", date(2024, time.December, 15), 1, date(2025, time.January, 15)},
		{"doce meses", date(2024, time.February, 29), 12, date(2025, time.February, 28)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, schedule.AddCalendarMonths(tc.from, tc.months))
		})
	}
}

// Frontera de clasificación: hoy 2024-06-10; 3 días → por vencer, 4 → vigente, -1 → vencido.
func TestStatus(t *testing.T) {
	today := date(2024, time.June, 10)

	expiry := date(2024, time.June, 13)
	st, days := schedule.Status(&expiry, today)
	assert.Equal(t, schedule.StatusDueSoon, st)
	assert.Equal(t, 3, days)

	expiry = date(2024, time.June, 14)
	st, days = schedule.Status(&expiry, today)
	assert.Equal(t, schedule.StatusActive, st)
	assert.Equal(t, 4, days)

	expiry = date(2024, time.June, 9)
	st, days = schedule.Status(&expiry, today)
	assert.Equal(t, schedule.StatusExpired, st)
	assert.Equal(t, 1, days)

	expiry = date(2024, time.June, 10)
	st, days = schedule.Status(&expiry, today)
	assert.Equal(t, schedule.StatusDueSoon, st)
	assert.Equal(t, 0, days)

	st, _ = schedule.Status(nil, today)
	assert.Equal(t, schedule.StatusNoExpiry, st)
}

func TestDaysUntil_IgnoraHoraDelDia(t *testing.T) {
	today := time.Date(2024, time.June, 10, 23, 50, 0, 0, time.UTC)
	expiry := time.Date(2024, time.June, 13, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, 3, schedule.DaysUntil(expiry, today))
}
