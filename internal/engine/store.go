package engine

import (
	"strings"
	"time"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Column holds one column in Struct-of-Arrays format: the raw cell text plus
// the parsed value for the column's Kind. Nums is only populated for numeric
// columns and Times only for date columns; Valid marks cells that parsed.
type Column struct {
	Name  string
	Kind  Kind
	Raw   []string
	Nums  []float64
	Times []time.Time
	Valid []bool
}

// Float returns the numeric value of row i. Cells of non-numeric columns are
// parsed on demand; missing or unparseable cells report false.
func (c *Column) Float(i int) (float64, bool) {
	if c.Kind == KindNumeric {
		return c.Nums[i], c.Valid[i]
	}
	return parseNumber(c.Raw[i])
}

// Time returns row i coerced to a time.
func (c *Column) Time(i int) (time.Time, bool) {
	if c.Kind == KindDate {
		return c.Times[i], c.Valid[i]
	}
	return parseDate(c.Raw[i])
}

// Missing reports whether row i is empty.
func (c *Column) Missing(i int) bool {
	return strings.TrimSpace(c.Raw[i]) == ""
}

// Value returns the trimmed raw text of row i.
func (c *Column) Value(i int) string {
	return strings.TrimSpace(c.Raw[i])
}

// Table is an immutable, rectangular set of columns.
type Table struct {
	Columns []*Column

	rows  int
	index map[string]int
}

// NewTable builds a table from a header row and data rows, inferring the
// kind of every column. Short rows are padded and long rows truncated to the
// header width.
func NewTable(headers []string, rows [][]string) *Table {
	t := &Table{
		Columns: make([]*Column, len(headers)),
		rows:    len(rows),
	}
	for j, name := range headers {
		raw := make([]string, len(rows))
		for i, row := range rows {
			if j < len(row) {
				raw[i] = row[j]
			}
		}
		t.Columns[j] = newColumn(name, raw)
	}
	t.buildIndex()
	return t
}

func newColumn(name string, raw []string) *Column {
	c := &Column{Name: name, Raw: raw, Kind: inferKind(raw)}
	switch c.Kind {
	case KindNumeric:
		c.Nums = make([]float64, len(raw))
		c.Valid = make([]bool, len(raw))
		for i, s := range raw {
			c.Nums[i], c.Valid[i] = parseNumber(s)
		}
	case KindDate:
		c.Times = make([]time.Time, len(raw))
		c.Valid = make([]bool, len(raw))
		for i, s := range raw {
			c.Times[i], c.Valid[i] = parseDate(s)
		}
	}
	return c
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Columns))
	for j, c := range t.Columns {
		// Duplicate headers resolve to the leftmost column.
		if _, ok := t.index[c.Name]; !ok {
			t.index[c.Name] = j
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		names[j] = c.Name
	}
	return names
}

// Column looks up a column by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	if t == nil {
		return nil, false
	}
	j, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.Columns[j], true
}

// Row returns the raw cells of row i in column order.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Raw[i]
	}
	return row
}

// Select returns a new table holding only the given rows, in the given order.
// Column kinds are kept from the source table.
func (t *Table) Select(rows []int) *Table {
	out := &Table{
		Columns: make([]*Column, len(t.Columns)),
		rows:    len(rows),
	}
	for j, c := range t.Columns {
		nc := &Column{Name: c.Name, Kind: c.Kind, Raw: make([]string, len(rows))}
		if c.Nums != nil {
			nc.Nums = make([]float64, len(rows))
		}
		if c.Times != nil {
			nc.Times = make([]time.Time, len(rows))
		}
		if c.Valid != nil {
			nc.Valid = make([]bool, len(rows))
		}
		for k, i := range rows {
			nc.Raw[k] = c.Raw[i]
			if nc.Nums != nil {
				nc.Nums[k] = c.Nums[i]
			}
			if nc.Times != nil {
				nc.Times[k] = c.Times[i]
			}
			if nc.Valid != nil {
				nc.Valid[k] = c.Valid[i]
			}
		}
		out.Columns[j] = nc
	}
	out.buildIndex()
	return out
}
