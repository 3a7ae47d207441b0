package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/octofit/dashboard/internal/models"
	"github.com/octofit/dashboard/internal/resource"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"badgeClass": BadgeClass,
	}).ParseFS(templateFS, "templates/*.html"),
)

// Page is the render model of one view state
type Page struct {
	Meta         resource.Meta
	Phase        models.Phase
	Message      string
	ErrorKind    string
	Presentation resource.Presentation
	Total        int
}

// IsLoading reports whether the page shows the progress indicator.
// Idle renders as loading since a mounted view leaves Idle immediately.
func (p Page) IsLoading() bool {
	return p.Phase == models.PhaseIdle || p.Phase == models.PhaseLoading
}

// IsError reports whether the load failed
func (p Page) IsError() bool { return p.Phase == models.PhaseError }

// IsEmpty reports a successful load of zero records
func (p Page) IsEmpty() bool { return p.Phase == models.PhaseSuccess && p.Total == 0 }

// IsCards reports whether records render as a card grid
func (p Page) IsCards() bool { return p.Meta.Layout == resource.LayoutCards }

// ErrorText is the user-visible failure line, cause included verbatim
func (p Page) ErrorText() string {
	return fmt.Sprintf("Unable to load %s: %s", p.Meta.Noun, p.Message)
}

// Render writes the state fragment
func (p Page) Render(w io.Writer) error {
	return templates.ExecuteTemplate(w, "fragment", p)
}

// Snapshot is the JSON form of a page
type Snapshot struct {
	Resource  string `json:"resource"`
	State     string `json:"state"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"errorKind,omitempty"`
	Records   []any  `json:"records"`
	Total     int    `json:"total"`
}

// Snapshot converts the page to its JSON model
func (p Page) Snapshot() Snapshot {
	s := Snapshot{
		Resource:  string(p.Meta.Kind),
		State:     string(p.Phase),
		ErrorKind: p.ErrorKind,
		Records:   p.Presentation.Records,
		Total:     p.Total,
	}
	if p.IsError() {
		s.Error = p.ErrorText()
	}
	if s.Records == nil {
		s.Records = []any{}
	}
	return s
}

// Render writes the fragment of the view's current state
func (v *View) Render(w io.Writer) error {
	return v.Page().Render(w)
}

// Snapshot returns the JSON model of the view's current state
func (v *View) Snapshot() Snapshot {
	return v.Page().Snapshot()
}

// Shell is the data of a full HTML page
type Shell struct {
	Title string
	Nav   []resource.Meta
	Page  *Page // nil on the landing page
	Live  bool  // open the state socket
}

// RenderShell writes a full HTML document
func RenderShell(w io.Writer, s Shell) error {
	if s.Page == nil {
		return templates.ExecuteTemplate(w, "landing", s)
	}
	return templates.ExecuteTemplate(w, "resource", s)
}

// BadgeClass returns the CSS classes of a badge in color.
// Light backgrounds get dark text.
func BadgeClass(color string) string {
	switch color {
	case resource.ColorInfo, resource.ColorWarning:
		return "badge bg-" + color + " text-dark"
	case "":
		return "badge bg-" + resource.ColorSecondary
	default:
		return "badge bg-" + color
	}
}
