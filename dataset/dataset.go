package dataset

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================================
// DATASET — Immutable column-oriented table
// ============================================================================
// Loaded once at process start, then shared read-only across requests.
// Every cell carries an explicit kind tag so comparison code never has to
// guess what a value is mid-loop.
// ============================================================================

// Kind tags the inferred type of a single cell.
type Kind int

const (
	// Missing marks an absent value (empty field or NA token in the source).
	Missing Kind = iota
	// Number marks a cell whose source text parses as a float.
	Number
	// Text marks any other non-empty cell.
	Text
)

// MissingToken is the textual rendering of a missing cell. Chosen to match
// the rendering the original dataset tooling produced, so literal "nan"
// queries keep their historical meaning.
const MissingToken = "NaN"

// Cell is a single tagged value in a column.
type Cell struct {
	Kind Kind
	Num  float64 // valid when Kind == Number
	Raw  string  // source text, trimmed; empty when Kind == Missing
}

// String returns the display rendering of the cell.
func (c Cell) String() string {
	if c.Kind == Missing {
		return MissingToken
	}
	return c.Raw
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool { return c.Kind == Missing }

// Column is a named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// HasNumeric reports whether at least one cell in the column is numeric.
// Equality filters use this to decide between numeric and string comparison.
func (c *Column) HasNumeric() bool {
	for _, cell := range c.Cells {
		if cell.Kind == Number {
			return true
		}
	}
	return false
}

// Table is an immutable in-memory dataset: ordered named columns of equal
// length. Construct via Load or ParseCSV; never mutate after that — all
// readers share one instance without locking.
type Table struct {
	name  string
	cols  []Column
	index map[string]int    // canonical name → column position
	lower map[string]string // lowercase name → canonical name
	rows  int
}

// Name returns the dataset name the table was loaded under.
func (t *Table) Name() string { return t.name }

// NumRows returns the shared row count.
func (t *Table) NumRows() int { return t.rows }

// ColumnNames returns the column names in source order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column. The name must match exactly.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.cols[i], true
}

// HasColumn reports whether an exact column name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ResolveName matches a user-supplied name against real column names
// case-insensitively and returns the canonical name.
func (t *Table) ResolveName(name string) (string, bool) {
	canonical, ok := t.lower[strings.ToLower(name)]
	return canonical, ok
}

// ============================================================================
// CSV PARSING
// ============================================================================

// naTokens are source spellings treated as missing, matching the reference
// catalog's CSV conventions.
var naTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"NaN":  true,
	"nan":  true,
	"null": true,
}

// ParseCSV parses CSV bytes into an immutable Table. The first record is the
// header; every cell is classified as Number, Text, or Missing.
func ParseCSV(data []byte, name string) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %q: empty CSV", name)
	}

	headers := records[0]
	t := &Table{
		name:  name,
		cols:  make([]Column, len(headers)),
		index: make(map[string]int, len(headers)),
		lower: make(map[string]string, len(headers)),
		rows:  len(records) - 1,
	}

	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, fmt.Errorf("dataset %q: blank column name at position %d", name, i)
		}
		if _, dup := t.index[h]; dup {
			return nil, fmt.Errorf("dataset %q: duplicate column %q", name, h)
		}
		t.cols[i] = Column{Name: h, Cells: make([]Cell, 0, t.rows)}
		t.index[h] = i
		t.lower[strings.ToLower(h)] = h
	}

	for _, row := range records[1:] {
		for i := range t.cols {
			t.cols[i].Cells = append(t.cols[i].Cells, classify(row[i]))
		}
	}

	return t, nil
}

// classify converts one raw CSV field into a tagged Cell.
func classify(raw string) Cell {
	raw = strings.TrimSpace(raw)
	if naTokens[raw] {
		return Cell{Kind: Missing}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Cell{Kind: Number, Num: f, Raw: raw}
	}
	return Cell{Kind: Text, Raw: raw}
}
