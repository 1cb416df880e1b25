package tabular

import (
	"slices"
	"strings"

	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/errors"
	"github.com/agentstation/tryouts/pkg/records"
)

func skip(p *parser, _ row) (state, error) {
	return p.state, nil
}

func rejectCharset(p *parser, r row) (state, error) {
	return p.fail(r, errors.UnsupportedCharacterData, "Data files cannot contain non-ascii data")
}

func rejectHeaderBeforeSheet(p *parser, r row) (state, error) {
	return p.fail(r, errors.SheetNotDefinedBeforeHeader,
		"SheetName must be defined (sheetname, eType, grade, gender) before player data section")
}

func rejectNoOpenSheet(p *parser, r row) (state, error) {
	return p.fail(r, errors.NoOpenSheet, "SheetName must be set before sheet keys")
}

func rejectPropertyAfterHeader(p *parser, r row) (state, error) {
	return p.fail(r, errors.PropertyAfterHeader,
		"When starting a new sheet, sheetName must be set before sheet keys")
}

// onHeading opens the player-data section of the current sheet.
func (p *parser) onHeading(r row) (state, error) {
	if !p.sheet.Defined() {
		return rejectHeaderBeforeSheet(p, r)
	}

	var categories []string
	if r.heading+2 < len(r.cells) {
		categories = slices.Clone(r.cells[r.heading+2:])
	}
	if n := len(categories); n > 0 && categories[n-1] == constants.KeywordLastRatingsChange {
		categories = categories[:n-1]
	}
	if len(categories) == 0 {
		return p.fail(r, errors.MissingCategories, "Player data column headings are missing categories")
	}

	if len(p.sheet.Categories) > 0 {
		if !slices.Equal(p.sheet.Categories, categories) {
			return p.fail(r, errors.CategoryMismatch, "Categories definitions do not match: "+
				strings.Join(p.sheet.Categories, ",")+" != "+strings.Join(categories, ","))
		}
	} else {
		p.sheet.Categories = categories
	}

	p.column = r.heading
	p.emit(diag.Debug, diag.KindProgress, r, "Set playerData start index")
	return stateInPlayerData, nil
}

func (p *parser) onRepeatedHeading(r row) (state, error) {
	p.emit(diag.Warning, diag.KindStructural, r, "Ignoring player data heading inside player data section")
	return p.state, nil
}

func (p *parser) onVersion(r row) (state, error) {
	if !p.rec.Version.IsBlank() {
		p.emit(diag.Warning, diag.KindVersion, r, "Warning: version already set")
		return p.state, nil
	}
	p.rec.Version = records.Cell(r.value(""))
	p.warnRemainder(r)
	return p.state, nil
}

// onSession flushes the open sheet and session and opens a new session.
func (p *parser) onSession(r row) (state, error) {
	p.flushSheet()
	p.flushSession()
	p.session = &records.Session{Name: nonBlank(r.value(""), constants.UnsetName)}
	p.resetSheetState()
	p.warnRemainder(r)
	return stateInSession, nil
}

// onSheet flushes the open sheet and opens a new one, creating a default
// session when the file has not opened one.
func (p *parser) onSheet(r row) (state, error) {
	if p.session == nil {
		p.session = &records.Session{Name: constants.DefaultSessionName}
		p.emit(diag.Info, diag.KindProgress, r, "Sheet not in a session; defined default session")
	}
	p.flushSheet()
	p.sheet = &records.Sheet{Name: nonBlank(r.value(""), constants.UnsetName)}
	p.resetSheetState()
	p.warnRemainder(r)
	return stateInSheetHeader, nil
}

func (p *parser) onProperty(r row) (state, error) {
	v := r.value("")
	if slices.Contains(listProperties, r.keyword) {
		setList(p.sheet, r.keyword, strings.Split(v, ","))
	} else {
		setScalar(p.sheet, r.keyword, v)
	}
	p.warnRemainder(r)
	p.emit(diag.Debug, diag.KindProgress, r, "Recorded %s in sheet %s", r.keyword, p.sheet.Name)
	return p.state, nil
}

// onPlayer records one player-data row. The team is inherited from the
// previous row when blank; the id never is.
func (p *parser) onPlayer(r row) (state, error) {
	team := r.cell(p.column)
	id := r.cell(p.column + 1)

	if team == "" && id == "" {
		p.emit(diag.Debug, diag.KindProgress, r, "Neither team nor id values found in %q", r.cells)
		return p.state, nil
	}
	if team != "" {
		p.team = team
	} else {
		p.emit(diag.Info, diag.KindDataQuality, r, "No team so using previous value")
	}
	if id == "" {
		p.emit(diag.Info, diag.KindDataQuality, r, "No id so only recording team")
		return p.state, nil
	}

	ratings := make(map[string]records.Cell, len(p.sheet.Categories))
	for i, cat := range p.sheet.Categories {
		if v := r.cell(p.column + 2 + i); v != "" {
			ratings[cat] = records.Cell(v)
		}
	}
	p.sheet.PlayerData = append(p.sheet.PlayerData, records.PlayerEntry{
		Team:    p.team,
		ID:      records.Cell(id),
		Ratings: ratings,
	})
	return p.state, nil
}

func (p *parser) onUnknown(r row) (state, error) {
	p.emit(diag.Warning, diag.KindProgress, r, "No useful data found in %q", r.cells)
	return p.state, nil
}

func (p *parser) resetSheetState() {
	p.column = -1
	p.team = constants.UnsetTeam
}

func setScalar(sh *records.Sheet, key, v string) {
	switch key {
	case constants.PropertyEType:
		sh.EType = v
	case constants.PropertyGrade:
		sh.Grade = v
	case constants.PropertyGender:
		sh.Gender = v
	case constants.PropertyField:
		sh.Field = v
	case constants.PropertyGroup:
		sh.Group = v
	case constants.PropertyComments:
		sh.Comments = v
	case constants.PropertyRatingTip:
		sh.RatingTip = v
	}
}

func setList(sh *records.Sheet, key string, v []string) {
	switch key {
	case constants.PropertyTeams:
		sh.Teams = v
	case constants.PropertyCategories:
		sh.Categories = v
	case constants.PropertyRatingValues:
		sh.RatingValues = v
	}
}

func nonBlank(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
