package reports

import (
	"sort"

	"github.com/yosef-segev/Seaborn-Web-Explorer/dataset"
)

// ============================================================================
// AGGREGATORS — column statistics for the canned reports
// ============================================================================
// Missing cells are skipped by every numeric aggregate, matching how the
// source dataset's NA values behave in the reference reports.
// ============================================================================

// GroupStat is one aggregated group: a label with a mean and a member count.
type GroupStat struct {
	Label string
	Mean  float64
	Count int
}

// mean averages the numeric cells of a column. Returns the number of cells
// that contributed alongside the mean; a column with no numeric cells
// averages to 0 over 0.
func mean(col *dataset.Column) (float64, int) {
	var sum float64
	var n int
	for _, cell := range col.Cells {
		if cell.Kind != dataset.Number {
			continue
		}
		sum += cell.Num
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// missingCount counts the missing cells of a column.
func missingCount(col *dataset.Column) int {
	var n int
	for _, cell := range col.Cells {
		if cell.IsMissing() {
			n++
		}
	}
	return n
}

// numericValues collects the numeric cells of a column, dropping the rest.
func numericValues(col *dataset.Column) []float64 {
	vals := make([]float64, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if cell.Kind == dataset.Number {
			vals = append(vals, cell.Num)
		}
	}
	return vals
}

// groupMean averages valueCol per distinct label of groupCol. Rows whose
// group label is missing are excluded; rows whose value is missing do not
// contribute to the mean but still count as group members in pandas terms,
// so the mean denominator tracks numeric rows only. Groups come back sorted
// by label.
func groupMean(groupCol, valueCol *dataset.Column) []GroupStat {
	type acc struct {
		sum   float64
		n     int
		total int
	}
	byLabel := make(map[string]*acc)
	for i, g := range groupCol.Cells {
		if g.IsMissing() {
			continue
		}
		label := g.String()
		a, ok := byLabel[label]
		if !ok {
			a = &acc{}
			byLabel[label] = a
		}
		a.total++
		if v := valueCol.Cells[i]; v.Kind == dataset.Number {
			a.sum += v.Num
			a.n++
		}
	}

	stats := make([]GroupStat, 0, len(byLabel))
	for label, a := range byLabel {
		s := GroupStat{Label: label, Count: a.total}
		if a.n > 0 {
			s.Mean = a.sum / float64(a.n)
		}
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Label < stats[j].Label })
	return stats
}

// valueCounts counts distinct non-missing values of a column, most frequent
// first (ties broken by label for stable output).
func valueCounts(col *dataset.Column) []GroupStat {
	counts := make(map[string]int)
	for _, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		counts[cell.String()]++
	}

	stats := make([]GroupStat, 0, len(counts))
	for label, n := range counts {
		stats = append(stats, GroupStat{Label: label, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Label < stats[j].Label
	})
	return stats
}

// reorder arranges stats into the given label order, dropping labels that
// are absent and appending any leftovers in their original order.
func reorder(stats []GroupStat, order []string) []GroupStat {
	byLabel := make(map[string]GroupStat, len(stats))
	for _, s := range stats {
		byLabel[s.Label] = s
	}

	out := make([]GroupStat, 0, len(stats))
	seen := make(map[string]bool, len(order))
	for _, label := range order {
		if s, ok := byLabel[label]; ok {
			out = append(out, s)
			seen[label] = true
		}
	}
	for _, s := range stats {
		if !seen[s.Label] {
			out = append(out, s)
		}
	}
	return out
}
