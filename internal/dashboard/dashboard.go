package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var files embed.FS

// Page is one entry of the route table below /edgar.
type Page struct {
	Path  string // relative to the mount point
	Title string
	File  string
}

var Pages = []Page{
	{Path: "/", Title: "Edgar analytics", File: "index.html"},
	{Path: "/questions-bar-chart", Title: "Question answers", File: "questions_bar_chart.html"},
	{Path: "/exam-analytics", Title: "Exam analytics", File: "exam_analytics.html"},
	{Path: "/example", Title: "Example", File: "example.html"},
}

var notFound = Page{Title: "Page not found", File: "not_found.html"}

type view struct {
	Title   string
	APIBase string
	Nav     []Page
}

type renderer struct {
	apiBase string
	log     *slog.Logger
	pages   map[string]*template.Template
}

// Routes returns the dashboard router. apiBase prefixes every fetch the pages
// make against the reporting API; empty means same origin.
func Routes(apiBase string, log *slog.Logger) (*chi.Mux, error) {
	if log == nil {
		log = slog.Default()
	}
	rd := &renderer{apiBase: apiBase, log: log, pages: map[string]*template.Template{}}
	for _, p := range append(Pages, notFound) {
		t, err := template.ParseFS(files, "templates/layout.html", "templates/"+p.File)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.File, err)
		}
		rd.pages[p.File] = t
	}

	r := chi.NewRouter()
	for _, p := range Pages {
		r.Get(p.Path, rd.page(p, http.StatusOK))
	}
	r.NotFound(rd.page(notFound, http.StatusNotFound))
	return r, nil
}

// NotFoundHandler renders the dashboard 404 page for paths outside /edgar.
func NotFoundHandler(apiBase string, log *slog.Logger) (http.HandlerFunc, error) {
	r, err := Routes(apiBase, log)
	if err != nil {
		return nil, err
	}
	return func(w http.ResponseWriter, req *http.Request) {
		r.NotFoundHandler().ServeHTTP(w, req)
	}, nil
}

func (rd *renderer) page(p Page, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		err := rd.pages[p.File].ExecuteTemplate(&buf, "layout", view{Title: p.Title, APIBase: rd.apiBase, Nav: Pages})
		if err != nil {
			rd.log.Error("dashboard render", "page", p.File, "err", err)
			http.Error(w, "template error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = buf.WriteTo(w)
	}
}
