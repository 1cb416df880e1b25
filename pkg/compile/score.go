package compile

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/records"
)

var numericRating = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// maxRating bounds accepted ratings so totals stay in int range.
const maxRating = 1e9

// parseRating reads a rating cell as a bounded finite number.
func parseRating(s string) (float64, bool) {
	if !numericRating.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > maxRating {
		return 0, false
	}
	return f, true
}

// roundHalfEven rounds to the nearest integer, ties to even.
func roundHalfEven(f float64) int {
	return int(math.RoundToEven(f))
}

// addPlayer records one player entry of a sheet at station.
func (e *Engine) addPlayer(rec *records.FileRecord, b *Bucket, sheetWhere diag.Location, categories []string, station string, p records.PlayerEntry) {
	id, err := records.ParsePlayerID(p.ID.String())
	if err != nil {
		where := sheetWhere
		where.Team, where.Player = p.Team, p.ID.String()
		e.sink.Emit(diag.Event{
			Severity: diag.Error,
			Kind:     diag.KindDataQuality,
			Location: where,
			Message:  fmt.Sprintf("Key %s: Team %s: Player %s is not a number.  Skipping", b.Signature, p.Team, p.ID),
			Err:      err,
		})
		e.stats.PlayersSkipped++
		return
	}

	where := sheetWhere
	where.Team, where.Player = p.Team, id.String()
	e.emit(diag.Info, diag.KindProgress, where, "Processing...")

	player := b.player(p.Team, id)
	if _, ok := player.Stations[station]; ok {
		e.emit(diag.Error, diag.KindCollision, where,
			fmt.Sprintf("Player already has scores for %s; recording in comments.", station))
		player.Comments += extraScoresComment(rec.Origin, station, categories, p.Ratings)
		e.stats.ExtraScores++
		return
	}

	e.emit(diag.Info, diag.KindProgress, where, fmt.Sprintf("Adding %s ratings to compilation", station))
	score, comment := e.score(where, station, categories, p.Ratings)
	player.Stations[station] = score
	b.addStation(station)
	player.Comments += comment
	e.stats.PlayersRecorded++
}

// score validates and rounds a player's ratings and computes the station
// total. A partial set of ratings is scaled up to an estimate over all
// categories. The returned text is appended to the player's comments.
func (e *Engine) score(where diag.Location, station string, categories []string, ratings map[string]records.Cell) (StationScore, string) {
	var comment strings.Builder
	s := StationScore{Ratings: make(map[string]Score, len(categories))}
	total, rated := 0, 0

	for _, c := range categories {
		raw := ratings[c].String()
		if raw == "" {
			s.Ratings[c] = Score{}
			continue
		}
		f, ok := parseRating(raw)
		if !ok {
			e.emit(diag.Error, diag.KindDataQuality, where, fmt.Sprintf("Invalid rating %q; an average will be used.", raw))
			comment.WriteString("Invalid rating was ignored. ")
			e.stats.RatingsInvalid++
			s.Ratings[c] = Score{}
			continue
		}
		v := roundHalfEven(f)
		if float64(v) != f {
			e.emit(diag.Warning, diag.KindDataQuality, where, fmt.Sprintf("Rating %q was rounded to \"%d\"", raw, v))
			comment.WriteString("Decimal rating was rounded. ")
			e.stats.RatingsRounded++
		}
		s.Ratings[c] = Score{Value: v, Rated: true}
		total += v
		rated++
	}

	switch {
	case rated == 0:
		e.emit(diag.Warning, diag.KindDataQuality, where, "Has no ratings")
		fmt.Fprintf(&comment, "In station %s but with no ratings. ", station)
	case rated < len(categories):
		e.emit(diag.Warning, diag.KindDataQuality, where, "Missing ratings - an average will be used.")
		comment.WriteString("Missing rating so average used. ")
		total = roundHalfEven(float64(total) * float64(len(categories)) / float64(rated))
	}
	s.Total = total
	return s, comment.String()
}

// extraScoresComment describes ratings that could not be recorded because
// the player already holds scores for the station.
func extraScoresComment(file, station string, categories []string, ratings map[string]records.Cell) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "File %s has additional scores for station %s ", file, station)
	for _, c := range categories {
		v := ratings[c].String()
		if v == "" {
			v = `""`
		}
		fmt.Fprintf(&sb, "%s = %s ", c, v)
	}
	sb.WriteString(". ")
	return sb.String()
}
