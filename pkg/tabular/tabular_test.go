package tabular_test

import (
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/errors"
	"github.com/agentstation/tryouts/pkg/records"
	"github.com/agentstation/tryouts/pkg/tabular"
)

const fixture = `version,3
sessionName,0522_6-8pm
sheetName,8GirlsNight1Station5Group3
eType,Night1
grade,8
gender,Girls
field,Station5
group,Group3
comments,Thanks so much
teams,"Green,White"
ratingValues,"0,1,2,3,4,5"
,team,id,A,B,lastRatingsChange
,Green,34,4,4
,,35,3,
,White,038,,5
,,,
lastRatingsChange,2018-05-22
sheetName,8GirlsNight1Station6Group3
eType,Night1
grade,8
gender,Girls
field,Station6
group,Group3
,team,id,A,B
,Red,12,2,2
sessionName,0523_6-8pm
sheetName,8GirlsNight2
eType,Night2
grade,8
gender,Girls
,team,id,Speed
,Blue,7,5
`

func parse(t *testing.T, src string) (*records.FileRecord, *diag.Collector, error) {
	t.Helper()
	c := diag.NewCollector()
	rec, err := tabular.ParseCSV("eval.csv", strings.NewReader(src), tabular.WithSink(c))
	return rec, c, err
}

func TestParseCSV(t *testing.T) {
	rec, _, err := parse(t, fixture)
	require.NoError(t, err)

	assert.Equal(t, "eval.csv", rec.Origin)
	assert.Equal(t, records.SourceTabular, rec.Source)
	assert.Equal(t, records.Cell("3"), rec.Version)
	require.Len(t, rec.Sessions, 2)

	s1 := rec.Sessions[0]
	assert.Equal(t, "0522_6-8pm", s1.Name)
	require.Len(t, s1.Sheets, 2)

	sh := s1.Sheets[0]
	assert.Equal(t, "8GirlsNight1Station5Group3", sh.Name)
	assert.Equal(t, "Night1", sh.EType)
	assert.Equal(t, "8", sh.Grade)
	assert.Equal(t, "Girls", sh.Gender)
	assert.Equal(t, "Station5", sh.Field)
	assert.Equal(t, "Group3", sh.Group)
	assert.Equal(t, "Thanks so much", sh.Comments)
	assert.Equal(t, []string{"Green", "White"}, sh.Teams)
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5"}, sh.RatingValues)
	assert.Equal(t, []string{"A", "B"}, sh.Categories)

	assert.Equal(t, []records.PlayerEntry{
		{Team: "Green", ID: "34", Ratings: map[string]records.Cell{"A": "4", "B": "4"}},
		{Team: "Green", ID: "35", Ratings: map[string]records.Cell{"A": "3"}},
		{Team: "White", ID: "038", Ratings: map[string]records.Cell{"B": "5"}},
	}, sh.PlayerData)

	assert.Equal(t, "8GirlsNight1Station6Group3", s1.Sheets[1].Name)
	require.Len(t, s1.Sheets[1].PlayerData, 1)
	assert.Equal(t, "Red", s1.Sheets[1].PlayerData[0].Team)

	s2 := rec.Sessions[1]
	assert.Equal(t, "0523_6-8pm", s2.Name)
	require.Len(t, s2.Sheets, 1)
	assert.Equal(t, []string{"Speed"}, s2.Sheets[0].Categories)
}

func TestParseRowsDirectly(t *testing.T) {
	rows := [][]string{
		{"sheetName", "7BoysBubble"},
		{"eType", "Bubble"},
		{"grade", "7"},
		{"gender", "Boys"},
		{"", "team", "id", "A"},
		{"", "", "9", "3"},
	}
	rec, err := tabular.Parse("rows.xlsx", rows)
	require.NoError(t, err)

	require.Len(t, rec.Sessions, 1)
	assert.Equal(t, "Default", rec.Sessions[0].Name)
	p := rec.Sessions[0].Sheets[0].PlayerData[0]
	assert.Equal(t, "UNSET", p.Team)
	assert.Equal(t, records.Cell("9"), p.ID)
	assert.True(t, rec.Version.IsBlank())
}

func TestStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.StructuralCode
		row  int
	}{
		{
			name: "non-ascii comment",
			src:  "sheetName,X\ncomments,café\n",
			code: errors.UnsupportedCharacterData,
			row:  2,
		},
		{
			name: "embedded newline",
			src:  "sheetName,X\ncomments,\"two\nlines\"\n",
			code: errors.UnsupportedCharacterData,
			row:  2,
		},
		{
			name: "header before sheet",
			src:  "sessionName,S\n,team,id,A\n",
			code: errors.SheetNotDefinedBeforeHeader,
			row:  2,
		},
		{
			name: "header on undefined sheet",
			src:  "sheetName,X\ngrade,8\ngender,Girls\n,team,id,A\n",
			code: errors.SheetNotDefinedBeforeHeader,
			row:  4,
		},
		{
			name: "missing categories",
			src:  "sheetName,X\neType,Night1\ngrade,8\ngender,Girls\n,team,id,lastRatingsChange\n",
			code: errors.MissingCategories,
			row:  5,
		},
		{
			name: "category mismatch",
			src:  "sheetName,X\neType,Night1\ngrade,8\ngender,Girls\ncategories,\"A,B\"\n,team,id,A,C\n",
			code: errors.CategoryMismatch,
			row:  6,
		},
		{
			name: "property before sheet",
			src:  "sessionName,S\ngrade,8\n",
			code: errors.NoOpenSheet,
			row:  2,
		},
		{
			name: "property after header",
			src:  "sheetName,X\neType,Night1\ngrade,8\ngender,Girls\n,team,id,A\n,Red,1,2\nfield,F2\n",
			code: errors.PropertyAfterHeader,
			row:  7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, c, err := parse(t, tt.src)
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.True(t, errors.IsStructural(err))

			var se *errors.StructuralError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.row, se.Row)
			assert.Equal(t, "eval.csv", se.File)

			require.NotEmpty(t, c.OfKind(diag.KindStructural))
			assert.Equal(t, diag.Error, c.OfKind(diag.KindStructural)[0].Severity)
		})
	}
}

func TestCategoriesPropertyMatchingHeader(t *testing.T) {
	src := "sheetName,X\neType,Night1\ngrade,8\ngender,Girls\ncategories,\"A,B\"\n,team,id,A,B\n,Red,1,2,3\n"
	rec, _, err := parse(t, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, rec.Sessions[0].Sheets[0].Categories)
}

func TestRecoverableRows(t *testing.T) {
	src := strings.Join([]string{
		"version,3,extra",
		"version,4",
		"sessionName,S",
		"sheetName,X",
		"eType,Night1",
		"grade,8",
		"gender,Girls",
		"what is this",
		",team,id,A",
		",team,id,A",
		",Green,,",
		",,21,4",
		",,,5",
		"   ,  ,  ",
		"",
	}, "\n")
	rec, c, err := parse(t, src)
	require.NoError(t, err)

	assert.Equal(t, records.Cell("3"), rec.Version)
	assert.True(t, c.HasMessage("Ignoring cells"))
	assert.True(t, c.HasMessage("version already set"))
	assert.True(t, c.HasMessage("No useful data found"))
	assert.True(t, c.HasMessage("Ignoring player data heading inside player data section"))
	assert.True(t, c.HasMessage("No id so only recording team"))
	assert.True(t, c.HasMessage("No team so using previous value"))
	assert.True(t, c.HasMessage("Neither team nor id"))

	players := rec.Sessions[0].Sheets[0].PlayerData
	require.Len(t, players, 1)
	assert.Equal(t, "Green", players[0].Team)
	assert.Equal(t, records.Cell("21"), players[0].ID)

	for _, e := range c.Events() {
		assert.Equal(t, "eval.csv", e.Location.File)
		assert.Positive(t, e.Location.Row)
	}
}

func TestHeadingNeedsLeadingColumn(t *testing.T) {
	src := "sheetName,X\neType,Night1\ngrade,8\ngender,Girls\nteam,id,A\n"
	rec, c, err := parse(t, src)
	require.NoError(t, err)
	assert.Empty(t, rec.Sessions[0].Sheets[0].Categories)
	assert.True(t, c.HasMessage("No useful data found"))
}

func TestTeamResetsPerSheet(t *testing.T) {
	src := strings.Join([]string{
		"sheetName,X", "eType,Night1", "grade,8", "gender,Girls",
		",team,id,A", ",Green,1,2",
		"sheetName,Y", "eType,Night1", "grade,8", "gender,Girls",
		",team,id,A", ",,2,3",
	}, "\n")
	rec, _, err := parse(t, src)
	require.NoError(t, err)
	sheets := rec.Sessions[0].Sheets
	require.Len(t, sheets, 2)
	assert.Equal(t, "Green", sheets[0].PlayerData[0].Team)
	assert.Equal(t, "UNSET", sheets[1].PlayerData[0].Team)
}

func TestKeywordsWithoutValues(t *testing.T) {
	rec, _, err := parse(t, "sessionName\nsheetName\n")
	require.NoError(t, err)
	require.Len(t, rec.Sessions, 1)
	assert.Equal(t, "UNSET", rec.Sessions[0].Name)
	assert.Equal(t, "UNSET", rec.Sessions[0].Sheets[0].Name)
}

func TestEmptyInput(t *testing.T) {
	rec, _, err := parse(t, "")
	require.NoError(t, err)
	assert.Empty(t, rec.Sessions)
}

func TestReadError(t *testing.T) {
	_, err := tabular.ParseCSV("bad.csv", iotest.ErrReader(errors.New("disk gone")))
	require.Error(t, err)
	var pe *errors.ParseError
	assert.ErrorAs(t, err, &pe)
}
