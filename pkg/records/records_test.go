package records_test

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tryouts/pkg/errors"
	"github.com/agentstation/tryouts/pkg/records"
)

const canonicalJSON = `{
  "version": 3,
  "sessions": [
    {
      "sessionName": "0522_6-8pm",
      "sheets": [
        {
          "sheetName": "8GirlsNight1Station5Group3",
          "eType": "Night1", "grade": "8", "gender": "Girls",
          "field": "Station5", "group": "Group3",
          "comments": "", "ratingTip": "",
          "teams": ["Green", "White"],
          "categories": ["A", "B"],
          "ratingValues": ["0", "1", "2", "3", "4", "5"],
          "playerData": [
            {"team": "Green", "id": "034", "ratings": {"A": 4, "B": "3.5"}},
            {"team": "White", "id": 38, "ratings": {}}
          ]
        }
      ]
    }
  ]
}`

func TestDecodeCanonicalJSON(t *testing.T) {
	var rec records.FileRecord
	require.NoError(t, json.Unmarshal([]byte(canonicalJSON), &rec))

	assert.Equal(t, records.Cell("3"), rec.Version)
	require.Len(t, rec.Sessions, 1)
	require.Len(t, rec.Sessions[0].Sheets, 1)

	sh := rec.Sessions[0].Sheets[0]
	assert.True(t, sh.Defined())
	assert.Equal(t, records.Signature("8GirlsNight1"), sh.Signature())
	require.Len(t, sh.PlayerData, 2)
	assert.Equal(t, records.Cell("034"), sh.PlayerData[0].ID)
	assert.Equal(t, records.Cell("4"), sh.PlayerData[0].Ratings["A"])
	assert.Equal(t, records.Cell("3.5"), sh.PlayerData[0].Ratings["B"])
	assert.Equal(t, records.Cell("38"), sh.PlayerData[1].ID)
	assert.Empty(t, sh.PlayerData[1].Ratings)
}

func TestCellKeepsNonNumericValuesAsText(t *testing.T) {
	tests := []struct {
		name string
		json string
		want records.Cell
	}{
		{"bool", `true`, "true"},
		{"number", `4.50`, "4.50"},
		{"object", `{ "a": 1 }`, `{"a":1}`},
		{"list", `[1, 2]`, "[1,2]"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c records.Cell
			require.NoError(t, json.Unmarshal([]byte(tt.json), &c))
			assert.Equal(t, tt.want, c)
		})
	}

	var y records.Cell
	require.NoError(t, yaml.Unmarshal([]byte(`true`), &y))
	assert.Equal(t, records.Cell("true"), y)
}

func TestYAMLRoundTripKeepsLeadingZeros(t *testing.T) {
	var rec records.FileRecord
	require.NoError(t, json.Unmarshal([]byte(canonicalJSON), &rec))

	data, err := yaml.Marshal(&rec)
	require.NoError(t, err)

	var back records.FileRecord
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, rec.Version, back.Version)
	assert.Equal(t, records.Cell("034"), back.Sessions[0].Sheets[0].PlayerData[0].ID)
	assert.Equal(t, records.Cell("3.5"), back.Sessions[0].Sheets[0].PlayerData[0].Ratings["B"])
}

func TestCellFromYAMLNumbers(t *testing.T) {
	src := "version: 2\nsessions:\n  - sessionName: S\n    sheets:\n      - sheetName: X\n        playerData:\n          - team: Red\n            id: 12\n            ratings:\n              A: 2.5\n"
	var rec records.FileRecord
	require.NoError(t, yaml.Unmarshal([]byte(src), &rec))
	assert.Equal(t, records.Cell("2"), rec.Version)
	p := rec.Sessions[0].Sheets[0].PlayerData[0]
	assert.Equal(t, records.Cell("12"), p.ID)
	assert.Equal(t, records.Cell("2.5"), p.Ratings["A"])
}

func TestValidate(t *testing.T) {
	rec := &records.FileRecord{Origin: "a.json", Sessions: []records.Session{{Name: ""}}}
	err := rec.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsFormat(err))

	rec = &records.FileRecord{Origin: "a.json", Sessions: []records.Session{{Name: "S", Sheets: []records.Sheet{{}}}}}
	assert.True(t, errors.IsFormat(rec.Validate()))

	rec.Sessions[0].Sheets[0].Name = "X"
	assert.NoError(t, rec.Validate())
	assert.Equal(t, 1, rec.SheetCount())
}

func TestClone(t *testing.T) {
	var rec records.FileRecord
	require.NoError(t, json.Unmarshal([]byte(canonicalJSON), &rec))
	rec.Origin = "a.json"
	rec.Source = records.SourceCanonical

	c := rec.Clone()
	assert.Equal(t, rec, *c)

	c.Sessions[0].Sheets[0].PlayerData[0].Ratings["A"] = "1"
	c.Sessions[0].Sheets[0].Categories[0] = "Z"
	assert.Equal(t, records.Cell("4"), rec.Sessions[0].Sheets[0].PlayerData[0].Ratings["A"])
	assert.Equal(t, "A", rec.Sessions[0].Sheets[0].Categories[0])

	var nilRec *records.FileRecord
	assert.Nil(t, nilRec.Clone())
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "canonical", records.SourceCanonical.String())
	assert.Equal(t, "tabular", records.SourceTabular.String())
}

func TestParsePlayerID(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"34", false},
		{"034", false},
		{"0", false},
		{"", true},
		{"abc", true},
		{"3a", true},
		{"-3", true},
		{"3.0", true},
		{"١٢", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, err := records.ParsePlayerID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, records.ErrNonNumericID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, id.String())
		})
	}
}

func TestPlayerIDCompare(t *testing.T) {
	id := func(s string) records.PlayerID {
		v, err := records.ParsePlayerID(s)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, -1, id("9").Compare(id("10")))
	assert.Equal(t, -1, id("034").Compare(id("35")))
	assert.Equal(t, 1, id("100").Compare(id("099")))
	assert.Equal(t, 0, id("7").Compare(id("7")))
	assert.NotEqual(t, 0, id("34").Compare(id("034")))
	assert.Equal(t, -1, id("123456789012345678901234").Compare(id("123456789012345678901235")))
}
