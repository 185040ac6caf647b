package resolver

import (
	"strconv"
	"strings"

	"github.com/yosef-segev/Seaborn-Web-Explorer/dataset"
)

// ============================================================================
// RESOLVER — Column selection, filtering, and limiting over a Table
// ============================================================================
// Pure function of its inputs plus the shared immutable table: no I/O, no
// locks, safe to call from any number of concurrent requests.
//
// Pipeline:
//   1. Select columns (explicit list or defaults)
//   2. Build a row mask from the filter, on the FULL table
//   3. Coerce and apply the row limit
//   4. Prepend the synthetic "Rows" column
//   5. Zero rows → ErrNoRowsMatched
// ============================================================================

// DefaultLimit is the row limit used when the supplied limit is not numeric.
const DefaultLimit = 20

// defaultColumns is the column subset shown when no explicit list is given.
// Names missing from the table are silently dropped.
var defaultColumns = []string{"survived", "class", "sex", "age", "fare", "embarked"}

// Operators supported by the filter, in the order the UI offers them.
var Operators = []string{"==", "!=", "contains", ">", "<", ">=", "<="}

// ViewRequest carries the raw form state of one data-browsing request.
// All fields arrive as text; coercion and validation happen in Resolve.
type ViewRequest struct {
	Columns   string // comma-separated column list; empty → defaults
	FilterCol string // column to filter on; matched case-insensitively
	Op        string // one of Operators
	Value     string // comparison value, raw text
	Limit     string // row limit; non-numeric → DefaultLimit, clamped to ≥1
}

// View is a bounded, display-ready subset of a table: ordered column names
// and rows of pre-formatted strings, including the leading "Rows" column.
type View struct {
	Columns []string
	Rows    [][]string
}

// Resolve produces a validated, bounded view of the table, or one of the
// package's request-scoped errors.
func Resolve(t *dataset.Table, req ViewRequest) (*View, error) {
	selected, err := selectColumns(t, req.Columns)
	if err != nil {
		return nil, err
	}

	var mask []bool
	filterCol := strings.TrimSpace(req.FilterCol)
	value := strings.TrimSpace(req.Value)
	if filterCol != "" && value != "" {
		// The mask is built against the full table, so filtering by a
		// column outside the final selection stays legal.
		canonical, ok := t.ResolveName(filterCol)
		if !ok {
			return nil, &UnknownColumnError{Missing: []string{filterCol}}
		}
		col, _ := t.Column(canonical)
		mask, err = buildMask(col, req.Op, value)
		if err != nil {
			return nil, err
		}
	}

	limit := coerceLimit(req.Limit)

	view := project(t, selected, mask, limit)
	if len(view.Rows) == 0 {
		return nil, ErrNoRowsMatched
	}
	return view, nil
}

// ============================================================================
// COLUMN SELECTION
// ============================================================================

// selectColumns resolves the requested column list. Explicit names must match
// exactly; the default list is intersected with what the table actually has.
func selectColumns(t *dataset.Table, columns string) ([]string, error) {
	columns = strings.TrimSpace(columns)
	if columns == "" {
		present := make([]string, 0, len(defaultColumns))
		for _, name := range defaultColumns {
			if t.HasColumn(name) {
				present = append(present, name)
			}
		}
		return present, nil
	}

	var requested, missing []string
	for _, token := range strings.Split(columns, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		requested = append(requested, token)
		if !t.HasColumn(token) {
			missing = append(missing, token)
		}
	}
	if len(missing) > 0 {
		return nil, &UnknownColumnError{Missing: missing}
	}
	return requested, nil
}

// ============================================================================
// ROW MASK
// ============================================================================

// buildMask evaluates the filter against a source column and returns one
// boolean per source row.
func buildMask(col *dataset.Column, op, value string) ([]bool, error) {
	mask := make([]bool, len(col.Cells))

	switch op {
	case "contains":
		needle := strings.ToLower(value)
		for i, cell := range col.Cells {
			// Missing values never match, and never raise.
			if cell.IsMissing() {
				continue
			}
			mask[i] = strings.Contains(strings.ToLower(cell.String()), needle)
		}

	case "==", "!=":
		target, numErr := strconv.ParseFloat(value, 64)
		if numErr == nil && col.HasNumeric() {
			// Numeric mode. Non-numeric cells are not equal to any numeric
			// target: excluded under ==, included under !=.
			for i, cell := range col.Cells {
				eq := cell.Kind == dataset.Number && cell.Num == target
				if op == "==" {
					mask[i] = eq
				} else {
					mask[i] = !eq
				}
			}
		} else {
			// String mode: case-insensitive, whitespace-trimmed. Missing
			// cells render as the NaN token here, so a literal "nan" value
			// matches them — inherited behavior, kept for compatibility.
			right := strings.ToLower(value)
			for i, cell := range col.Cells {
				eq := strings.ToLower(strings.TrimSpace(cell.String())) == right
				if op == "==" {
					mask[i] = eq
				} else {
					mask[i] = !eq
				}
			}
		}

	case ">", "<", ">=", "<=":
		target, numErr := strconv.ParseFloat(value, 64)
		if numErr != nil {
			return nil, ErrInvalidFilter
		}
		for i, cell := range col.Cells {
			// Non-numeric cells never satisfy an ordering comparison.
			if cell.Kind != dataset.Number {
				continue
			}
			switch op {
			case ">":
				mask[i] = cell.Num > target
			case "<":
				mask[i] = cell.Num < target
			case ">=":
				mask[i] = cell.Num >= target
			case "<=":
				mask[i] = cell.Num <= target
			}
		}

	default:
		return nil, &InvalidOperatorError{Op: op}
	}

	return mask, nil
}

// ============================================================================
// PROJECTION
// ============================================================================

// coerceLimit converts the raw limit field to an effective row limit:
// non-numeric input falls back to DefaultLimit, anything below 1 clamps to 1.
func coerceLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

// project applies the mask and limit to the table and renders the selected
// columns as display strings, prepending the 1-based "Rows" column.
func project(t *dataset.Table, selected []string, mask []bool, limit int) *View {
	cols := make([]*dataset.Column, len(selected))
	for i, name := range selected {
		cols[i], _ = t.Column(name)
	}

	view := &View{Columns: append([]string{"Rows"}, selected...)}
	for row := 0; row < t.NumRows() && len(view.Rows) < limit; row++ {
		if mask != nil && !mask[row] {
			continue
		}
		out := make([]string, 0, len(cols)+1)
		out = append(out, strconv.Itoa(len(view.Rows)+1))
		for _, col := range cols {
			out = append(out, col.Cells[row].String())
		}
		view.Rows = append(view.Rows, out)
	}
	return view
}
