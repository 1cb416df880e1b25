// Package report lays compiled buckets out as printable tables: one table per
// signature, a column per station and category, a row per player.
package report

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/tryouts/pkg/compile"
)

// TotalHeading labels the per-station total column.
const TotalHeading = "Total"

// Report is the full printable result of a run.
type Report struct {
	Tables []Table        `json:"tables" yaml:"tables"`
	Stats  *compile.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// Table is the printable form of one bucket.
type Table struct {
	Signature  string   `json:"signature" yaml:"signature"`
	Stations   []string `json:"stations" yaml:"stations"`
	Categories []string `json:"categories" yaml:"categories"`
	// ShowTotal is set when there is more than one category, so each
	// station gets a Total column after its categories.
	ShowTotal bool     `json:"show_total" yaml:"show_total"`
	Columns   []Column `json:"columns" yaml:"columns"`
	Rows      []Row    `json:"rows" yaml:"rows"`
	Comments  []string `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// Column is one data column: a station and a category or the total.
type Column struct {
	Station string `json:"station" yaml:"station"`
	Heading string `json:"heading" yaml:"heading"`
}

// Row is one player. Cells line up with the table's Columns and are blank
// where the player has no entry for the station.
type Row struct {
	Label    string   `json:"label" yaml:"label"`
	Team     string   `json:"team" yaml:"team"`
	ID       string   `json:"id" yaml:"id"`
	Cells    []string `json:"cells" yaml:"cells"`
	Comments string   `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// Option configures Build.
type Option func(*Report)

// WithStats attaches run counters to the report.
func WithStats(s compile.Stats) Option {
	return func(r *Report) {
		r.Stats = &s
	}
}

// Build lays out buckets, which are expected in signature order as the
// Engine returns them.
func Build(buckets []*compile.Bucket, opts ...Option) *Report {
	r := &Report{Tables: make([]Table, 0, len(buckets))}
	for _, b := range buckets {
		r.Tables = append(r.Tables, buildTable(b))
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func buildTable(b *compile.Bucket) Table {
	t := Table{
		Signature:  string(b.Signature),
		Stations:   b.SortedStations(),
		Categories: append([]string(nil), b.Categories...),
		ShowTotal:  len(b.Categories) > 1,
		Comments:   append([]string(nil), b.Comments...),
	}
	for _, st := range t.Stations {
		for _, c := range t.Categories {
			t.Columns = append(t.Columns, Column{Station: st, Heading: c})
		}
		if t.ShowTotal {
			t.Columns = append(t.Columns, Column{Station: st, Heading: TotalHeading})
		}
	}

	for _, p := range b.Players() {
		row := Row{
			Label:    Label(p.Team, p.ID.String()),
			Team:     p.Team,
			ID:       p.ID.String(),
			Comments: p.Comments,
			Cells:    make([]string, 0, len(t.Columns)),
		}
		for _, st := range t.Stations {
			score, ok := p.Stations[st]
			for _, c := range t.Categories {
				if ok {
					row.Cells = append(row.Cells, score.Ratings[c].String())
				} else {
					row.Cells = append(row.Cells, "")
				}
			}
			if t.ShowTotal {
				if ok {
					row.Cells = append(row.Cells, strconv.Itoa(score.Total))
				} else {
					row.Cells = append(row.Cells, "")
				}
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Label is the short row label: the lowercased first letter of the team
// followed by the id, e.g. "g34".
func Label(team, id string) string {
	if team == "" {
		return id
	}
	r, _ := utf8.DecodeRuneInString(team)
	return strings.ToLower(string(r)) + id
}

// Empty reports whether the report has no tables.
func (r *Report) Empty() bool {
	return len(r.Tables) == 0
}
