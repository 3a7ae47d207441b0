// Package resource holds the static per-resource descriptor tables and the
// presenters that turn raw API records into display records.
package resource

import (
	"github.com/octofit/dashboard/internal/models"
)

// Kind identifies one of the dashboard resources
type Kind string

const (
	Users       Kind = "users"
	Activities  Kind = "activities"
	Teams       Kind = "teams"
	Leaderboard Kind = "leaderboard"
	Workouts    Kind = "workouts"
)

// Layout selects how a collection is rendered
type Layout string

const (
	LayoutTable Layout = "table"
	LayoutCards Layout = "cards"
)

// Meta is the display metadata of a resource
type Meta struct {
	Kind        Kind
	DisplayName string // page heading, e.g. "Leaderboard"
	Noun        string // lowercase plural used in messages, e.g. "leaderboard entries"
	Tagline     string
	EmptyNotice string
	TotalLabel  string
	Endpoint    string
	Layout      Layout
	Icon        string
}

// Info converts Meta to its API form
func (m Meta) Info() models.ResourceInfo {
	return models.ResourceInfo{
		Kind:        string(m.Kind),
		DisplayName: m.DisplayName,
		Tagline:     m.Tagline,
		Endpoint:    m.Endpoint,
		Layout:      string(m.Layout),
	}
}

// Column is one labelled field of a display record
type Column[D any] struct {
	Label  string
	Value  func(D) string
	Badge  func(D) string // badge color, empty for plain text
	Strong bool
}

// Descriptor binds a resource's metadata to its presenter and field list.
// Descriptors are built once at startup and never mutated.
type Descriptor[D any] struct {
	Meta      Meta
	Present   func(rec models.Record, index int) D
	Key       func(d D, index int) string
	Columns   []Column[D]
	Title     func(D) string // card heading, cards layout only
	Subtitle  func(D) string // card body text, cards layout only
	Highlight func(D) bool
}

// Cell is one rendered field
type Cell struct {
	Label  string
	Text   string
	Badge  string
	Strong bool
}

// Row is one rendered record: a table row or a card
type Row struct {
	Key       string
	Title     string
	Subtitle  string
	Highlight bool
	Cells     []Cell
}

// Presentation is a rendered collection
type Presentation struct {
	Headers []string
	Rows    []Row
	Records []any // typed display records, same order as Rows
}

// Presenter is the type-erased view of a Descriptor
type Presenter interface {
	Describe() Meta
	Render(records models.Collection) Presentation
	WithMeta(meta Meta) Presenter
}

// Describe returns the descriptor metadata
func (d Descriptor[D]) Describe() Meta {
	return d.Meta
}

// WithMeta returns a copy of d using meta
func (d Descriptor[D]) WithMeta(meta Meta) Presenter {
	d.Meta = meta
	return d
}

// Render presents every record in order and extracts its columns
func (d Descriptor[D]) Render(records models.Collection) Presentation {
	p := Presentation{
		Headers: make([]string, len(d.Columns)),
		Rows:    make([]Row, 0, len(records)),
		Records: make([]any, 0, len(records)),
	}
	for i, col := range d.Columns {
		p.Headers[i] = col.Label
	}

	for i, raw := range records {
		display := d.Present(models.AsRecord(raw), i)

		row := Row{Cells: make([]Cell, len(d.Columns))}
		if d.Key != nil {
			row.Key = d.Key(display, i)
		}
		if d.Title != nil {
			row.Title = d.Title(display)
		}
		if d.Subtitle != nil {
			row.Subtitle = d.Subtitle(display)
		}
		if d.Highlight != nil {
			row.Highlight = d.Highlight(display)
		}
		for j, col := range d.Columns {
			cell := Cell{Label: col.Label, Text: col.Value(display), Strong: col.Strong}
			if col.Badge != nil {
				cell.Badge = col.Badge(display)
			}
			row.Cells[j] = cell
		}

		p.Rows = append(p.Rows, row)
		p.Records = append(p.Records, display)
	}

	return p
}
