package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yosef-segev/Seaborn-Web-Explorer/reports"
	"github.com/yosef-segev/Seaborn-Web-Explorer/resolver"
)

// homePage feeds index.html.
type homePage struct {
	DatasetName string
}

// questionsPage feeds questions.html, for both the bare menu and a result.
type questionsPage struct {
	Questions   []reports.Question
	Instruction string
	QuestionID  int
	Title       string
	Text        string
	Table       *resolver.View
	PlotURL     string
}

// dataPage feeds data.html: the form, its echoed state, and either a
// resolved view or a single error line.
type dataPage struct {
	DatasetName string
	Operators   []string
	Form        resolver.ViewRequest
	Error       string
	Table       *resolver.View
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "index.html", homePage{DatasetName: s.table.Name()})
}

func (s *Server) handleQuestionsMenu(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "questions.html", questionsPage{
		Questions:   s.runner.Questions(),
		Instruction: "Please select a question from the menu to start the analysis.",
	})
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	page := questionsPage{Questions: s.runner.Questions()}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		id = 0 // falls through to the not-found rendering below
	}

	report, err := s.runner.Run(id)
	switch {
	case errors.Is(err, reports.ErrQuestionNotFound):
		page.Title = "Error"
		page.Text = "Question not found"
	case err != nil:
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	default:
		page.QuestionID = report.ID
		page.Title = report.Title
		page.Text = report.Text
		page.Table = report.Table
		page.PlotURL = "/static/plots/" + report.ChartFile
	}

	s.render(w, "questions.html", page)
}

func (s *Server) handleDataForm(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "data.html", dataPage{
		DatasetName: s.table.Name(),
		Operators:   resolver.Operators,
		Form:        resolver.ViewRequest{Op: "==", Limit: strconv.Itoa(resolver.DefaultLimit)},
	})
}

func (s *Server) handleDataQuery(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := resolver.ViewRequest{
		Columns:   r.PostFormValue("columns"),
		FilterCol: r.PostFormValue("filter_col"),
		Op:        r.PostFormValue("op"),
		Value:     r.PostFormValue("value"),
		Limit:     r.PostFormValue("limit"),
	}

	page := dataPage{
		DatasetName: s.table.Name(),
		Operators:   resolver.Operators,
		Form:        req, // echoed back so the form keeps its state
	}

	view, err := resolver.Resolve(s.table, req)
	if err != nil {
		page.Error = resolveErrorMessage(err)
	} else {
		page.Table = view
	}

	s.render(w, "data.html", page)
}

// resolveErrorMessage maps the resolver's error taxonomy to the single
// human-readable line the data page shows.
func resolveErrorMessage(err error) string {
	var unknown *resolver.UnknownColumnError
	var badOp *resolver.InvalidOperatorError
	switch {
	case errors.As(err, &unknown):
		return "Column(s) not found: " + strings.Join(unknown.Missing, ", ")
	case errors.As(err, &badOp):
		return "Invalid operator: " + badOp.Op
	case errors.Is(err, resolver.ErrInvalidFilter):
		return "Invalid filter (operator/value mismatch)."
	case errors.Is(err, resolver.ErrNoRowsMatched):
		return "No rows matched your filter. Try a different value/operator."
	default:
		return "Could not resolve your request."
	}
}
