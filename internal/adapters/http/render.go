package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"octofit/internal/application/projections"
	"octofit/internal/observability"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pageNames are the templates rendered inside layout.html.
var pageNames = []string{"home", "users", "activities", "teams", "leaderboard", "workouts", "perf"}

// refreshSeconds is the auto-refresh delay of a page rendered while still loading.
const refreshSeconds = 2

// mdRenderer renders workout descriptions.
// Raw HTML in the input is omitted (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var funcMap = template.FuncMap{
	"markdown": renderMarkdown,
	"lower":    strings.ToLower,
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// pageData is the layout model; Data is the page-specific model.
type pageData struct {
	Title     string
	Active    string
	Nav       []navItem
	Year      int
	Refresh   int
	CSRFField template.HTML
	Data      any
}

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// render executes page into a buffer so template failures become a clean 500.
func (a *app) render(w http.ResponseWriter, r *http.Request, status int, page, title string, refresh bool, data any) {
	t, ok := a.pages[page]
	if !ok {
		internalError(w, fmt.Errorf("unknown page %q", page))
		return
	}
	pd := pageData{
		Title:     title,
		Active:    r.URL.Path,
		Nav:       navItems,
		Year:      a.now().Year(),
		CSRFField: csrf.TemplateField(r),
		Data:      data,
	}
	if refresh {
		pd.Refresh = refreshSeconds
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pd); err != nil {
		internalError(w, fmt.Errorf("render %s: %w", page, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderView renders a list page and counts the outcome.
func (a *app) renderView(w http.ResponseWriter, r *http.Request, page string, view projections.ListView, data any) {
	outcome := observability.OutcomeOK
	switch {
	case view.Loading:
		outcome = observability.OutcomeLoading
	case view.Err != "":
		outcome = observability.OutcomeError
	}
	observability.RecordPageRender(page, outcome)
	a.render(w, r, http.StatusOK, page, view.Title, view.Loading, data)
}
