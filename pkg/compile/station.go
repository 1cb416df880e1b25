package compile

import (
	"fmt"
	"strings"

	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/records"
)

// stationFor names the station a sheet's ratings are recorded under: the
// sheet's field (or "Field"), plus any free-form suffix the sheet name
// carries beyond grade+gender+eType+field+group. Bubble sheets that reuse a
// station already in the bucket get a numbered name.
func (e *Engine) stationFor(b *Bucket, where diag.Location, sh *records.Sheet) string {
	suffix := strings.Replace(sh.Name, string(sh.Signature())+sh.Field+sh.Group, "", 1)

	station := sh.Field
	if station == "" {
		station = constants.DefaultStation
	}
	if suffix != "" {
		msg := fmt.Sprintf("Adding custom post-fix %s to %s", suffix, station)
		e.emit(diag.Warning, diag.KindCollision, where, msg)
		b.addComment(constants.ProgramCommentPrefix + where.String() + ": " + msg)
		station += suffix
	}

	if sh.EType == constants.ETypeBubble && b.HasStation(station) {
		renamed, ok := e.rename(b, where, station)
		if !ok {
			msg := fmt.Sprintf("Could not create unique name for duplicate station/field %s", station)
			e.emit(diag.Error, diag.KindCollision, where, msg)
			b.addComment(constants.ProgramCommentPrefix + where.String() + ": " + msg)
		}
		station = renamed
	}
	return station
}

// avoidPlayerCollisions renames the sheet's station when any of its players
// already holds ratings for it in the bucket. Later players are checked
// against the new name.
func (e *Engine) avoidPlayerCollisions(b *Bucket, where diag.Location, sh *records.Sheet, station string) string {
	for _, p := range sh.PlayerData {
		id, err := records.ParsePlayerID(p.ID.String())
		if err != nil {
			continue
		}
		if !b.holds(p.Team, id, station) {
			continue
		}
		renamed, ok := e.rename(b, where, station)
		if !ok {
			e.emit(diag.Warning, diag.KindCollision, where,
				fmt.Sprintf("No free name left for station %s; keeping it", station))
			break
		}
		station = renamed
	}
	return station
}

// rename finds the first "<station>-N", N from 1 to MaxStationSuffix, not in
// the bucket's station list, and leaves a program comment on the bucket for
// the new name. When no name is free the station is returned unchanged and
// the caller decides what to report.
func (e *Engine) rename(b *Bucket, where diag.Location, station string) (string, bool) {
	for n := 1; n <= constants.MaxStationSuffix; n++ {
		candidate := fmt.Sprintf("%s-%d", station, n)
		if b.HasStation(candidate) {
			continue
		}
		msg := fmt.Sprintf("Renamed %s to %s", station, candidate)
		e.emit(diag.Info, diag.KindCollision, where, msg)
		b.addComment(constants.ProgramCommentPrefix + where.String() + ": " + msg)
		e.stats.StationsRenamed++
		return candidate, true
	}
	return station, false
}
