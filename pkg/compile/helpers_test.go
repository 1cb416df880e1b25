package compile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/tryouts/pkg/compile"
	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/records"
)

var nightScale = []string{"0", "1", "2", "3", "4", "5"}

type sheetOpt func(*records.Sheet)

func withField(f string) sheetOpt { return func(s *records.Sheet) { s.Field = f } }
func withEType(t string) sheetOpt { return func(s *records.Sheet) { s.EType = t } }
func withComments(c string) sheetOpt { return func(s *records.Sheet) { s.Comments = c } }
func withScale(v ...string) sheetOpt { return func(s *records.Sheet) { s.RatingValues = v } }
func withGrade(g string) sheetOpt { return func(s *records.Sheet) { s.Grade = g } }
func withCategories(c ...string) sheetOpt {
	return func(s *records.Sheet) { s.Categories = c }
}

// sheet builds an 8/Girls/Night1 sheet named after its signature+field.
func sheet(players []records.PlayerEntry, opts ...sheetOpt) records.Sheet {
	s := records.Sheet{
		EType:        "Night1",
		Grade:        "8",
		Gender:       "Girls",
		Categories:   []string{"A", "B"},
		RatingValues: nightScale,
		PlayerData:   players,
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.Name = string(s.Signature()) + s.Field + s.Group
	return s
}

func player(team, id string, ratings ...string) records.PlayerEntry {
	p := records.PlayerEntry{Team: team, ID: records.Cell(id), Ratings: map[string]records.Cell{}}
	cats := []string{"A", "B", "C"}
	for i, r := range ratings {
		if r != "" {
			p.Ratings[cats[i]] = records.Cell(r)
		}
	}
	return p
}

func file(origin, version string, session string, sheets ...records.Sheet) *records.FileRecord {
	return &records.FileRecord{
		Version:  records.Cell(version),
		Origin:   origin,
		Source:   records.SourceCanonical,
		Sessions: []records.Session{{Name: session, Sheets: sheets}},
	}
}

func newEngine(opts ...compile.Option) (*compile.Engine, *diag.Collector) {
	c := diag.NewCollector()
	return compile.New(append([]compile.Option{compile.WithSink(c)}, opts...)...), c
}

func mustAdd(t *testing.T, e *compile.Engine, recs ...*records.FileRecord) {
	t.Helper()
	for _, r := range recs {
		require.NoError(t, e.Add(context.Background(), r))
	}
}

func mustBucket(t *testing.T, e *compile.Engine, sig string) *compile.Bucket {
	t.Helper()
	b, ok := e.Bucket(records.Signature(sig))
	require.True(t, ok, "bucket %s", sig)
	return b
}

func mustPlayer(t *testing.T, b *compile.Bucket, team, id string) *compile.Player {
	t.Helper()
	pid, err := records.ParsePlayerID(id)
	require.NoError(t, err)
	p, ok := b.Player(team, pid)
	require.True(t, ok, "player %s%s", team, id)
	return p
}

func rated(v int) compile.Score { return compile.Score{Value: v, Rated: true} }
