package reports

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/yosef-segev/Seaborn-Web-Explorer/dataset"
	"github.com/yosef-segev/Seaborn-Web-Explorer/resolver"
)

// ============================================================================
// REPORTS — Five fixed analysis questions over the shared dataset
// ============================================================================
// Each question computes one aggregate, writes one chart PNG under a fixed
// filename, and returns text or a renderable table. There is deliberately no
// shared abstraction across the five — they are report templates.
// ============================================================================

// ErrQuestionNotFound is returned for an unknown question id.
var ErrQuestionNotFound = errors.New("question not found")

// errColumnMissing marks a dataset that lacks a column a report needs.
var errColumnMissing = errors.New("required column missing from dataset")

// Report is the render-ready output of one question.
type Report struct {
	ID        int
	Title     string
	Text      string         // set for text results
	Table     *resolver.View // set for table results
	ChartFile string         // chart filename under the plots directory
}

// Question identifies one entry of the fixed menu.
type Question struct {
	ID    int
	Title string
}

// Runner executes the fixed questions against one immutable table.
type Runner struct {
	table    *dataset.Table
	plotsDir string
}

// NewRunner creates a Runner writing charts into plotsDir (created if absent).
func NewRunner(t *dataset.Table, plotsDir string) (*Runner, error) {
	if err := os.MkdirAll(plotsDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating plots dir")
	}
	return &Runner{table: t, plotsDir: plotsDir}, nil
}

// Questions returns the fixed menu in display order.
func (r *Runner) Questions() []Question {
	return []Question{
		{1, "Overall Survival Rate"},
		{2, "Survival Rate by Sex"},
		{3, "Survival Rate by Class"},
		{4, "Age Distribution"},
		{5, "Passengers by Embarkation Port"},
	}
}

// Run executes one question by id.
func (r *Runner) Run(id int) (*Report, error) {
	var (
		report *Report
		err    error
	)
	switch id {
	case 1:
		report, err = r.overallSurvival()
	case 2:
		report, err = r.survivalBySex()
	case 3:
		report, err = r.survivalByClass()
	case 4:
		report, err = r.ageDistribution()
	case 5:
		report, err = r.embarkationCounts()
	default:
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	report.ID = id
	log.Printf("📊 Report %d (%s) → %s", id, report.Title, report.ChartFile)
	return report, nil
}

func (r *Runner) column(name string) (*dataset.Column, error) {
	col, ok := r.table.Column(name)
	if !ok {
		return nil, errors.Wrapf(errColumnMissing, "column %q", name)
	}
	return col, nil
}

func (r *Runner) chartPath(filename string) string {
	return filepath.Join(r.plotsDir, filename)
}

// ============================================================================
// QUESTION 1 — Overall survival rate
// ============================================================================

func (r *Runner) overallSurvival() (*Report, error) {
	survived, err := r.column("survived")
	if err != nil {
		return nil, err
	}

	rate, _ := mean(survived)

	// Bar chart of survived value counts, in 0/1 index order.
	counts := reorder(valueCounts(survived), []string{"0", "1"})
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		switch c.Label {
		case "0":
			labels[i] = "No (0)"
		case "1":
			labels[i] = "Yes (1)"
		default:
			labels[i] = c.Label
		}
		values[i] = float64(c.Count)
	}

	const filename = "survival_overall.png"
	if err := saveBarChart(r.chartPath(filename), "Survival Count", "", "Passengers", labels, values, colorGreen); err != nil {
		return nil, err
	}

	return &Report{
		Title:     "Overall Survival Rate",
		Text:      fmt.Sprintf("Overall Survival Rate: %.2f%%", rate*100),
		ChartFile: filename,
	}, nil
}

// ============================================================================
// QUESTION 2 — Survival rate by sex
// ============================================================================

func (r *Runner) survivalBySex() (*Report, error) {
	sex, err := r.column("sex")
	if err != nil {
		return nil, err
	}
	survived, err := r.column("survived")
	if err != nil {
		return nil, err
	}

	stats := groupMean(sex, survived)

	table := &resolver.View{Columns: []string{"sex", "survived"}}
	labels := make([]string, len(stats))
	values := make([]float64, len(stats))
	for i, s := range stats {
		table.Rows = append(table.Rows, []string{s.Label, fmt.Sprintf("%.2f%%", s.Mean*100)})
		labels[i] = capitalize(s.Label)
		values[i] = s.Mean * 100
	}

	const filename = "survival_by_sex.png"
	if err := saveBarChart(r.chartPath(filename), "Survival Rate by Sex", "", "Survival Rate (%)", labels, values, colorBlue); err != nil {
		return nil, err
	}

	return &Report{
		Title:     "Survival Rate by Sex",
		Table:     table,
		ChartFile: filename,
	}, nil
}

// ============================================================================
// QUESTION 3 — Survival rate by class
// ============================================================================

// classOrder is the display order for the textual class column.
var classOrder = []string{"First", "Second", "Third"}

func (r *Runner) survivalByClass() (*Report, error) {
	// Prefer the textual "class" column; fall back to numeric "pclass".
	groupName := "class"
	if !r.table.HasColumn(groupName) {
		groupName = "pclass"
	}
	group, err := r.column(groupName)
	if err != nil {
		return nil, err
	}
	survived, err := r.column("survived")
	if err != nil {
		return nil, err
	}

	stats := groupMean(group, survived)
	if groupName == "class" {
		stats = reorder(stats, classOrder)
	}

	table := &resolver.View{Columns: []string{groupName, "survived"}}
	labels := make([]string, len(stats))
	values := make([]float64, len(stats))
	for i, s := range stats {
		table.Rows = append(table.Rows, []string{s.Label, fmt.Sprintf("%.2f%%", s.Mean*100)})
		labels[i] = s.Label
		values[i] = s.Mean * 100
	}

	const filename = "survival_by_class.png"
	if err := saveBarChart(r.chartPath(filename), "Survival Rate by Class", "", "Survival Rate (%)", labels, values, colorPurple); err != nil {
		return nil, err
	}

	return &Report{
		Title:     "Survival Rate by Class",
		Table:     table,
		ChartFile: filename,
	}, nil
}

// ============================================================================
// QUESTION 4 — Age distribution
// ============================================================================

func (r *Runner) ageDistribution() (*Report, error) {
	age, err := r.column("age")
	if err != nil {
		return nil, err
	}

	meanAge, _ := mean(age)
	missing := missingCount(age)

	const filename = "age_distribution.png"
	if err := saveHistogram(r.chartPath(filename), "Age Distribution", "Age", "Passengers", numericValues(age), 22); err != nil {
		return nil, err
	}

	return &Report{
		Title: "Age Distribution",
		Text: fmt.Sprintf("The mean age is %.2f years. There are %d missing values.",
			meanAge, missing),
		ChartFile: filename,
	}, nil
}

// ============================================================================
// QUESTION 5 — Passengers by embarkation port
// ============================================================================

func (r *Runner) embarkationCounts() (*Report, error) {
	embarked, err := r.column("embarked")
	if err != nil {
		return nil, err
	}

	counts := valueCounts(embarked)

	table := &resolver.View{Columns: []string{"Port", "Passenger Count"}}
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		table.Rows = append(table.Rows, []string{c.Label, fmt.Sprintf("%d", c.Count)})
		labels[i] = c.Label
		values[i] = float64(c.Count)
	}

	const filename = "embarked_counts.png"
	if err := saveBarChart(r.chartPath(filename), "Passengers by Embarkation Port", "Port (C, Q, S)", "Passengers", labels, values, colorTeal); err != nil {
		return nil, err
	}

	return &Report{
		Title:     "Passengers by Embarkation Port",
		Table:     table,
		ChartFile: filename,
	}, nil
}

// capitalize upper-cases the first letter of an ASCII label.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
