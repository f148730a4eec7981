package importer

import (
	"fmt"
	"strings"
)

// table is a sheet with its header row indexed by lowercased column name.
type table struct {
	name   string
	header map[string]int
	rows   [][]string
}

func newTable(name string, rows [][]string) *table {
	t := &table{name: name, header: make(map[string]int), rows: rows}
	if len(rows) == 0 {
		return t
	}
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := t.header[key]; !dup {
			t.header[key] = i
		}
	}
	return t
}

// body is every row after the header.
func (t *table) body() [][]string {
	if len(t.rows) < 2 {
		return nil
	}
	return t.rows[1:]
}

func (t *table) optional(aliases []string) int {
	for _, a := range aliases {
		if i, ok := t.header[strings.ToLower(a)]; ok {
			return i
		}
	}
	return -1
}

func (t *table) require(aliases []string) (int, error) {
	if i := t.optional(aliases); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("sheet %s: missing column %q", t.name, aliases[0])
}

// cell returns the trimmed value at column i, or "" when the row is short or i < 0.
func (t *table) cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
