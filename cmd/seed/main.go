// seed genera la migración SQL que puebla el catálogo de servicios a partir
// de un CSV (separado por ';', codificado en ISO-8859-1, como lo exportan las
// hojas de cálculo del back office).
//
// Columnas esperadas: nombre;descripcion;precio_mensual;perfiles;pin;plantilla_email
//
// Uso: go run ./cmd/seed [ruta/servicios.csv]
// Por defecto busca servicios.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/00002_seed_services.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type serviceRow struct {
	name        string
	description string
	price       decimal.Decimal
	profiles    int
	pinRequired bool
	emailFormat string
}

func main() {
	csvPath := "servicios.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = 6

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var rows []serviceRow
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue // cabecera
		}
		row, err := parseRow(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d: %v\n", i+1, err)
			os.Exit(1)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de servicios")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "00002_seed_services.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de servicios\n")
	out.WriteString("-- Generado desde " + filepath.Base(csvPath) + " por cmd/seed\n\n")
	out.WriteString("-- +goose Up\n")
	for _, r := range rows {
		fmt.Fprintf(out,
			"INSERT INTO services (id, name, description, monthly_price, profiles_per_account, pin_required, email_format, active, created_at, updated_at)\n"+
				"VALUES (gen_random_uuid(), '%s', '%s', %s, %d, %t, '%s', true, now(), now())\n"+
				"ON CONFLICT (name) DO UPDATE SET\n"+
				"  description = EXCLUDED.description,\n"+
				"  monthly_price = EXCLUDED.monthly_price,\n"+
				"  profiles_per_account = EXCLUDED.profiles_per_account,\n"+
				"  pin_required = EXCLUDED.pin_required,\n"+
				"  email_format = EXCLUDED.email_format;\n",
			escapeSQL(r.name), escapeSQL(r.description), r.price.StringFixed(2),
			r.profiles, r.pinRequired, escapeSQL(r.emailFormat))
	}
	out.WriteString("\n-- +goose Down\n")
	for _, r := range rows {
		fmt.Fprintf(out, "DELETE FROM services WHERE name = '%s';\n", escapeSQL(r.name))
	}

	fmt.Printf("Generado %s: %d servicios\n", outPath, len(rows))
}

func parseRow(rec []string) (serviceRow, error) {
	name := strings.TrimSpace(rec[0])
	if name == "" {
		return serviceRow{}, fmt.Errorf("nombre vacío")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
	if err != nil {
		return serviceRow{}, fmt.Errorf("precio inválido %q", rec[2])
	}
	profiles, err := strconv.Atoi(strings.TrimSpace(rec[3]))
	if err != nil || profiles < 1 {
		return serviceRow{}, fmt.Errorf("perfiles inválido %q", rec[3])
	}
	pin := strings.EqualFold(strings.TrimSpace(rec[4]), "si") ||
		strings.EqualFold(strings.TrimSpace(rec[4]), "true")
	emailFormat := strings.TrimSpace(rec[5])
	if emailFormat != "" && strings.Count(emailFormat, "@") != 1 {
		return serviceRow{}, fmt.Errorf("plantilla de email inválida %q", emailFormat)
	}
	return serviceRow{
		name:        name,
		description: strings.TrimSpace(rec[1]),
		price:       price,
		profiles:    profiles,
		pinRequired: pin,
		emailFormat: emailFormat,
	}, nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
