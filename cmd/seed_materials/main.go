// seed_materials gera o script SQL que cadastra o catálogo de materiais de uma secretaria
// a partir da planilha exportada pelo almoxarifado (CSV separado por ';').
//
// Uso: go run ./cmd/seed_materials -prefeitura <uuid> -secretaria <uuid> [-latin1] [catalogo.csv]
// Colunas: codigo;nome;unidade;categoria;estoque_minimo;quantidade
// Escreve: internal/infrastructure/postgres/migrations/900_seed_materiais.sql
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogItem struct {
	code, name, unit, category string
	minimum, onHand            int
}

func main() {
	prefeitura := flag.String("prefeitura", "", "UUID da prefeitura")
	secretaria := flag.String("secretaria", "", "UUID da secretaria")
	latin1 := flag.Bool("latin1", false, "o CSV está em ISO-8859-1 (exportação do Excel)")
	flag.Parse()

	if _, err := uuid.Parse(*prefeitura); err != nil {
		fmt.Fprintln(os.Stderr, "informe -prefeitura com um UUID válido")
		os.Exit(2)
	}
	if _, err := uuid.Parse(*secretaria); err != nil {
		fmt.Fprintln(os.Stderr, "informe -secretaria com um UUID válido")
		os.Exit(2)
	}
	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	items, skipped, err := parseCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ler CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "900_seed_materiais.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Criar arquivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, *prefeitura, *secretaria, items); err != nil {
		fmt.Fprintf(os.Stderr, "Gravar SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Gerado %s: %d materiais, %d linhas ignoradas\n", outPath, len(items), skipped)
}

// parseCatalog lê as linhas do catálogo. Linhas sem código ou nome, com números
// ilegíveis ou com código repetido são ignoradas e contadas em skipped.
func parseCatalog(r io.Reader) (items []catalogItem, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	seen := make(map[string]bool)
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		if line == 0 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "codigo") {
			continue
		}
		item, ok := parseRecord(rec)
		if !ok || seen[item.code] {
			skipped++
			continue
		}
		seen[item.code] = true
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].code < items[j].code })
	return items, skipped, nil
}

func parseRecord(rec []string) (catalogItem, bool) {
	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	number := func(i int) (int, bool) {
		s := field(i)
		if s == "" {
			return 0, true
		}
		n, err := strconv.Atoi(s)
		return n, err == nil && n >= 0
	}
	item := catalogItem{
		code:     strings.ToUpper(field(0)),
		name:     field(1),
		unit:     strings.ToUpper(field(2)),
		category: field(3),
	}
	if item.code == "" || item.name == "" {
		return catalogItem{}, false
	}
	if item.unit == "" {
		item.unit = "UN"
	}
	var ok bool
	if item.minimum, ok = number(4); !ok {
		return catalogItem{}, false
	}
	if item.onHand, ok = number(5); !ok {
		return catalogItem{}, false
	}
	return item, true
}

func writeSQL(w io.Writer, prefeitura, secretaria string, items []catalogItem) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de materiais da secretaria\n")
	b.WriteString("-- Gerado por cmd/seed_materials\n\n")
	for _, it := range items {
		fmt.Fprintf(&b, "INSERT INTO materiais (id, prefeitura_id, secretaria_id, codigo, nome, unidade, categoria, estoque_minimo, quantidade_estoque)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s', %d, %d)\n",
			uuid.New(), prefeitura, secretaria, escapeSQL(it.code), escapeSQL(it.name), escapeSQL(it.unit),
			escapeSQL(it.category), it.minimum, it.onHand)
		b.WriteString("ON CONFLICT (prefeitura_id, secretaria_id, codigo) DO UPDATE SET nome = EXCLUDED.nome;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
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
