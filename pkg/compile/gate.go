package compile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/errors"
	"github.com/agentstation/tryouts/pkg/records"
)

// admit is the version gate. It decides whether rec may be compiled and
// raises the latest version, discarding older compiled data when a newer
// version replaces one already seen.
func (e *Engine) admit(rec *records.FileRecord) error {
	where := diag.Location{File: rec.Origin}
	e.emit(diag.Info, diag.KindProgress, where, "Processing...")

	raw := strings.TrimSpace(rec.Version.String())
	if raw == "" {
		if rec.Source != records.SourceTabular {
			return e.reject(where, errors.NewVersionError(errors.MissingVersion, rec.Origin, ""),
				"Skipping since db version is missing.")
		}
		e.emit(diag.Warning, diag.KindVersion, where, "Version key is missing, but processing anyway.")
		return nil
	}

	version, err := strconv.Atoi(raw)
	if err != nil {
		return e.reject(where, errors.NewVersionError(errors.InvalidVersion, rec.Origin, raw),
			fmt.Sprintf("Skipping since db version %s is invalid.", raw))
	}

	switch {
	case version < e.latest:
		verr := errors.NewVersionError(errors.StaleVersion, rec.Origin, raw)
		e.sink.Emit(diag.Event{
			Severity: diag.Warning,
			Kind:     diag.KindVersion,
			Location: where,
			Message:  fmt.Sprintf("Skipping since version %d is from an old db version.", version),
			Err:      verr,
		})
		return verr
	case version > e.latest:
		if e.latest > 0 {
			e.emit(diag.Warning, diag.KindVersion, where, "Has a more recent db version.  Discarding previous, older data.")
			e.state = newCompiled()
			e.stats.Resets++
		}
		e.latest = version
	}
	return nil
}

func (e *Engine) reject(where diag.Location, err error, msg string) error {
	e.sink.Emit(diag.Event{
		Severity: diag.Error,
		Kind:     diag.KindVersion,
		Location: where,
		Message:  msg,
		Err:      err,
	})
	return err
}
