// Package records defines the canonical nested record format that every input
// file is turned into: a versioned file record holding sessions, sessions
// holding sheets, and sheets holding player entries.
//
// The struct tags match the JSON documents written by the tablet app, so the
// same types are used to read canonical JSON or YAML files and to write the
// canonical form of a parsed tabular file.
package records

import (
	"fmt"

	"github.com/agentstation/tryouts/pkg/errors"
)

// Source records which loader path produced a FileRecord.
type Source int

const (
	// SourceCanonical marks records decoded from canonical JSON or YAML.
	SourceCanonical Source = iota
	// SourceTabular marks records built by the tabular parser.
	SourceTabular
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceCanonical:
		return "canonical"
	case SourceTabular:
		return "tabular"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// FileRecord is everything read from one input file.
type FileRecord struct {
	Version  Cell      `json:"version" yaml:"version"`
	Sessions []Session `json:"sessions" yaml:"sessions"`

	// Provenance, never serialized.
	Origin string `json:"-" yaml:"-"`
	Source Source `json:"-" yaml:"-"`
}

// Session groups the sheets collected in one time block.
type Session struct {
	Name   string  `json:"sessionName" yaml:"sessionName"`
	Sheets []Sheet `json:"sheets" yaml:"sheets"`
}

// Sheet is one evaluation roster for a grade/gender/eType/station/group.
type Sheet struct {
	Name         string        `json:"sheetName" yaml:"sheetName"`
	EType        string        `json:"eType" yaml:"eType"`
	Grade        string        `json:"grade" yaml:"grade"`
	Gender       string        `json:"gender" yaml:"gender"`
	Field        string        `json:"field" yaml:"field"`
	Group        string        `json:"group" yaml:"group"`
	Comments     string        `json:"comments" yaml:"comments"`
	RatingTip    string        `json:"ratingTip" yaml:"ratingTip"`
	Teams        []string      `json:"teams" yaml:"teams"`
	Categories   []string      `json:"categories" yaml:"categories"`
	RatingValues []string      `json:"ratingValues" yaml:"ratingValues"`
	PlayerData   []PlayerEntry `json:"playerData" yaml:"playerData"`
}

// PlayerEntry is one player's ratings on a sheet. Ratings has no entry for
// an unrated category.
type PlayerEntry struct {
	Team    string          `json:"team" yaml:"team"`
	ID      Cell            `json:"id" yaml:"id"`
	Ratings map[string]Cell `json:"ratings" yaml:"ratings"`
}

// Signature is the grade+gender+eType key that partitions sheets into report buckets.
type Signature string

// Defined reports whether grade, gender and eType are all set. Player data is
// only legal on a defined sheet.
func (s *Sheet) Defined() bool {
	return s.Grade != "" && s.Gender != "" && s.EType != ""
}

// Signature returns the sheet's bucket key.
func (s *Sheet) Signature() Signature {
	return Signature(s.Grade + s.Gender + s.EType)
}

// Validate checks the fields every canonical record must carry.
func (r *FileRecord) Validate() error {
	for i, sess := range r.Sessions {
		if sess.Name == "" {
			return errors.NewFormatError(r.Origin, fmt.Sprintf("session %d has no sessionName", i+1), nil)
		}
		for j, sh := range sess.Sheets {
			if sh.Name == "" {
				return errors.NewFormatError(r.Origin,
					fmt.Sprintf("session %s: sheet %d has no sheetName", sess.Name, j+1), nil)
			}
		}
	}
	return nil
}

// SheetCount returns the number of sheets across all sessions.
func (r *FileRecord) SheetCount() int {
	n := 0
	for _, sess := range r.Sessions {
		n += len(sess.Sheets)
	}
	return n
}

// Clone returns a deep copy of the record.
func (r *FileRecord) Clone() *FileRecord {
	if r == nil {
		return nil
	}
	out := &FileRecord{
		Version: r.Version,
		Origin:  r.Origin,
		Source:  r.Source,
	}
	if r.Sessions != nil {
		out.Sessions = make([]Session, len(r.Sessions))
		for i, sess := range r.Sessions {
			out.Sessions[i] = sess.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := Session{Name: s.Name}
	if s.Sheets != nil {
		out.Sheets = make([]Sheet, len(s.Sheets))
		for i, sh := range s.Sheets {
			out.Sheets[i] = sh.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the sheet.
func (s Sheet) Clone() Sheet {
	out := s
	out.Teams = cloneStrings(s.Teams)
	out.Categories = cloneStrings(s.Categories)
	out.RatingValues = cloneStrings(s.RatingValues)
	if s.PlayerData != nil {
		out.PlayerData = make([]PlayerEntry, len(s.PlayerData))
		for i, p := range s.PlayerData {
			out.PlayerData[i] = p.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the player entry.
func (p PlayerEntry) Clone() PlayerEntry {
	out := PlayerEntry{Team: p.Team, ID: p.ID}
	if p.Ratings != nil {
		out.Ratings = make(map[string]Cell, len(p.Ratings))
		for k, v := range p.Ratings {
			out.Ratings[k] = v
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
