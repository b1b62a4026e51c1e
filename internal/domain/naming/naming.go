// Package naming implementa las reglas de nombrado de cuentas: abreviatura del
// servicio, nombre canónico "ABREVIATURA-N", siguiente número libre y
// credenciales recomendadas (email y contraseña).
package naming

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// alias pares sustring→abreviatura, verificados en orden; gana la primera coincidencia.
// El orden importa: "amazon prime video" debe resolver a "Prime", no a "Amazon".
type alias struct {
	contains string
	short    string
}

var aliases = []alias{
	{"prime video", "Prime"},
	{"amazon prime", "Amazon"},
	{"disney plus", "Disney"},
	{"hbo max", "HBO"},
	{"youtube premium", "YouTube"},
	{"apple tv", "Apple"},
}

var tokenSplit = regexp.MustCompile(`[\s\-_]+`)

// Abbreviate deriva la abreviatura de un nombre de servicio. Primero se compara
// el nombre completo en minúsculas contra la tabla de alias; si ninguno aplica,
// se toma la primera palabra con la inicial en mayúscula. Pura y determinista;
// solo devuelve vacío si la entrada es vacía.
func Abbreviate(serviceName string) string {
	trimmed := strings.TrimSpace(serviceName)
	if trimmed == "" {
		return ""
	}

	lower := strings.ToLower(serviceName)
	for _, a := range aliases {
		if strings.Contains(lower, a.contains) {
			return a.short
		}
	}

	words := tokenSplit.Split(trimmed, -1)
	if len(words) == 0 || words[0] == "" {
		return serviceName
	}
	first := []rune(words[0])
	return strings.ToUpper(string(first[0])) + string(first[1:])
}

// ComposeCanonicalName arma el nombre canónico de cuenta: "ABREVIATURA-N" en mayúsculas.
func ComposeCanonicalName(serviceName string, sequenceNumber int) string {
	return strings.ToUpper(Abbreviate(serviceName)) + "-" + strconv.Itoa(sequenceNumber)
}

// ParseSequenceNumber extrae el número de un nombre canónico ("DISNEY-3" → 3).
// Devuelve 1 si el nombre no tiene segundo segmento numérico (filas legadas).
func ParseSequenceNumber(canonicalName string) int {
	parts := strings.Split(canonicalName, "-")
	if len(parts) < 2 {
		return 1
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// NextAvailableNumber devuelve el menor entero positivo que no aparece en taken,
// empezando en 1. Con cero cuentas devuelve 1.
func NextAvailableNumber(taken []int) int {
	used := make([]int, 0, len(taken))
	for _, n := range taken {
		if n >= 1 {
			used = append(used, n)
		}
	}
	sort.Ints(used)

	next := 1
	for _, n := range used {
		if n == next {
			next++
		} else if n > next {
			break
		}
	}
	return next
}

// RecommendEmail inserta el número de cuenta justo antes del primer '@' de la
// plantilla ("user@mail.com" + 7 → "user7@mail.com"). Plantilla sin '@' → vacío.
func RecommendEmail(format string, sequenceNumber int) string {
	at := strings.Index(format, "@")
	if at < 0 {
		return ""
	}
	return format[:at] + strconv.Itoa(sequenceNumber) + format[at:]
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// RecommendPassword propone una contraseña: primera palabra del servicio en
// minúsculas sin caracteres fuera de [a-z0-9], más 6 dígitos aleatorios
// (100000–999999). Cada llamada genera un sufijo nuevo; no cachear.
func RecommendPassword(serviceName string) string {
	first := strings.ToLower(strings.TrimSpace(serviceName))
	if fields := strings.Fields(first); len(fields) > 0 {
		first = fields[0]
	}
	first = nonAlnum.ReplaceAllString(first, "")

	return first + strconv.Itoa(randomSixDigits())
}

func randomSixDigits() int {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand solo falla si el sistema no tiene entropía disponible
		return 100000
	}
	return int(n.Int64()) + 100000
}
