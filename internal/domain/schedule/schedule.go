// Package schedule implementa la aritmética de fechas de vencimiento y su
// clasificación de urgencia. Todas las fechas se manejan como fecha calendario
// local del operador; cerca de medianoche una fecha UTC archivaría el registro
// en el día equivocado.
package schedule

import (
	"math"
	"time"
)

// Estados de vencimiento.
const (
	StatusExpired  = "vencido"
	StatusDueSoon  = "por_vencer" // faltan 0 a 3 días
	StatusActive   = "vigente"
	StatusNoExpiry = "sin_fecha" // sin fecha de vencimiento; nunca se trata como vencido
)

// LocalDate trunca t a su fecha calendario en su propia zona horaria.
func LocalDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddCalendarMonths suma n meses calendario ajustando el día al último válido
// del mes destino (31 ene + 1 mes → 28/29 feb, no un desborde a marzo).
// time.AddDate desborda, por eso el ajuste manual.
func AddCalendarMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()

	month := int(m) + n
	year := y + (month-1)/12
	month = (month-1)%12 + 1
	if month < 1 {
		month += 12
		year--
	}

	last := lastDayOfMonth(year, time.Month(month))
	if d > last {
		d = last
	}
	return time.Date(year, time.Month(month), d, 0, 0, 0, 0, t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// día 0 del mes siguiente = último día del mes
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Status clasifica una fecha de vencimiento respecto a "hoy":
// días restantes < 0 → vencido; 0..3 → por vencer; > 3 → vigente.
// expiry == nil → sin_fecha.
func Status(expiry *time.Time, today time.Time) (status string, days int) {
	if expiry == nil {
		return StatusNoExpiry, 0
	}
	d := DaysUntil(*expiry, today)
	switch {
	case d < 0:
		return StatusExpired, -d
	case d <= 3:
		return StatusDueSoon, d
	default:
		return StatusActive, d
	}
}

// DaysUntil devuelve la diferencia en días calendario entre expiry y today.
// Se redondea para absorber la hora ganada/perdida por cambios de horario.
func DaysUntil(expiry, today time.Time) int {
	e := LocalDate(expiry)
	t := LocalDate(today)
	return int(math.Round(e.Sub(t).Hours() / 24))
}
