package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/s0up4200/proxymakers/proxymakers"
)

// printer writes command results in the configured format
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) *printer {
	return &printer{format: format, w: w}
}

// print encodes v as json or yaml, or calls table for the default format
func (p *printer) print(v any, table func(w io.Writer)) error {
	switch p.format {
	case "json":
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		table(p.w)
		return nil
	}
}

// printKeyValues prints aligned key/value rows
func printKeyValues(w io.Writer, rows [][2]string) {
	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-*s  %s\n", width, row[0], row[1])
	}
}

// preferredColumns are shown first, in this order, when a record has them
var preferredColumns = []string{"order_id", "name", "service", "geo", "quantity", "status", "auto_renew", "schedule", "expires_at"}

// printRecords prints records as a table with one column per field
func printRecords(w io.Writer, records []proxymakers.Fields) {
	columns := recordColumns(records)
	if len(columns) == 0 {
		return
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
		for _, rec := range records {
			widths[i] = max(widths[i], len(rec.String(col)))
		}
	}

	total := 0
	for _, width := range widths {
		total += width + 2
	}

	for i, col := range columns {
		fmt.Fprintf(w, "%-*s  ", widths[i], strings.ToUpper(col))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("━", total))

	for _, rec := range records {
		for i, col := range columns {
			fmt.Fprintf(w, "%-*s  ", widths[i], rec.String(col))
		}
		fmt.Fprintln(w)
	}
}

// recordColumns orders known columns first and the rest alphabetically
func recordColumns(records []proxymakers.Fields) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			seen[k] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for _, col := range preferredColumns {
		if seen[col] {
			columns = append(columns, col)
			delete(seen, col)
		}
	}

	rest := make([]string, 0, len(seen))
	for col := range seen {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

// fieldRows turns a record into sorted key/value rows
func fieldRows(f proxymakers.Fields) [][2]string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][2]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, [2]string{k, f.String(k)})
	}
	return rows
}

func formatMoney(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
