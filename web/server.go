package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"github.com/yosef-segev/Seaborn-Web-Explorer/dataset"
	"github.com/yosef-segev/Seaborn-Web-Explorer/reports"
)

// ============================================================================
// WEB SERVER — routes, templates, and static assets
// ============================================================================
// Thin presentation layer: every route maps onto the dataset store, the
// resolver, or the report runner, and renders one of the embedded templates.
// ============================================================================

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/style.css
var styleCSS []byte

// Server wires the shared table, report runner, and templates into handlers.
type Server struct {
	table    *dataset.Table
	runner   *reports.Runner
	plotsDir string
	tmpl     *template.Template
}

// NewServer builds a Server. plotsDir is where the report runner writes its
// chart PNGs; it is served back under /static/plots/.
func NewServer(t *dataset.Table, runner *reports.Runner, plotsDir string) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}
	return &Server{table: t, runner: runner, plotsDir: plotsDir, tmpl: tmpl}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/questions", s.handleQuestionsMenu)
	r.Get("/questions/{id}", s.handleQuestion)
	r.Get("/data", s.handleDataForm)
	r.Post("/data", s.handleDataQuery)

	r.Get("/static/style.css", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Write(styleCSS)
	})
	r.Handle("/static/plots/*", http.StripPrefix("/static/plots/",
		http.FileServer(http.Dir(s.plotsDir))))

	return r
}

// render executes a template into a buffer first, so a failure becomes a
// clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("⚠️ Template %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
