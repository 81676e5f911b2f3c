// seed_materials genera un script SQL para poblar el catálogo de materiales
// a partir de un XML exportado del ERP (típicamente codificado en ISO-8859-1).
//
// Uso: go run ./cmd/seed_materials [ruta/Materiales.xml]
// Por defecto busca Materiales.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_materials.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogo struct {
	Materiales []material `xml:"material"`
}

type material struct {
	Numero      string `xml:"numero,attr"`
	Descripcion string `xml:"descripcion,attr"`
	Alto        string `xml:"alto,attr"`
	Ancho       string `xml:"ancho,attr"`
	Peso        string `xml:"peso,attr"`
}

func main() {
	xmlPath := "Materiales.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var cat catalogo
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&cat); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	// Materiales únicos por número, ordenados para salida estable
	byNumber := make(map[string]material)
	for _, m := range cat.Materiales {
		num := strings.TrimSpace(m.Numero)
		if num == "" {
			continue
		}
		m.Numero = num
		byNumber[num] = m
	}
	var numbers []string
	for n := range byNumber {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)
	if len(numbers) == 0 {
		fmt.Fprintln(os.Stderr, "El XML no contiene materiales con número")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_materials.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo de materiales\n")
	out.WriteString("-- Generado desde " + filepath.Base(xmlPath) + " por cmd/seed_materials\n\n")

	out.WriteString("INSERT INTO materials (number, description, height, width, weight) VALUES\n")
	for i, n := range numbers {
		m := byNumber[n]
		sep := ","
		if i == len(numbers)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', %s, %s, %s)%s\n",
			escapeSQL(m.Numero), escapeSQL(strings.TrimSpace(m.Descripcion)),
			numOrZero(m.Alto), numOrZero(m.Ancho), numOrZero(m.Peso), sep)
	}
	out.WriteString("ON CONFLICT (number) DO UPDATE\n")
	out.WriteString("SET description = EXCLUDED.description, height = EXCLUDED.height,\n")
	out.WriteString("    width = EXCLUDED.width, weight = EXCLUDED.weight;\n")

	fmt.Printf("Generado %s: %d materiales\n", outPath, len(numbers))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// numOrZero deja pasar solo literales numéricos simples; lo demás va como 0.
func numOrZero(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "0"
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return "0"
		}
	}
	return s
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
