package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/loader"
)

const station5 = `version,3
sessionName,0601_6-8pm
sheetName,8GirlsNight1Station5
eType,Night1
grade,8
gender,Girls
field,Station5
ratingValues,"0,1,2,3,4,5"
,team,id,A,B
,Green,34,4,4
`

// resetViper isolates tests from each other's flag bindings and env.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	resetViper(t)
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)
	return app
}

// run executes the root command, discarding the run log.
func run(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	root := app.createRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--log-output", "discard"))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	require.NotNil(t, app.Config())
	assert.Equal(t, constants.DefaultOldSessionThreshold, app.Config().OldSessionThreshold)
	assert.Equal(t, constants.DefaultLogFile, app.LogOutput())
}

func TestApp_Options(t *testing.T) {
	resetViper(t)
	cfg := &Config{Format: "json", LogOutput: "run.log"}
	app, err := New("1.0.0", "", "", "", WithConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, "json", app.OutputFormat())
	assert.Equal(t, "run.log", app.LogOutput())
}

func TestApp_Tryouts(t *testing.T) {
	app := newTestApp(t)

	run, err := app.Tryouts()
	require.NoError(t, err)
	rep, err := run.Run(context.Background(), []loader.Input{
		{Name: "a.csv", Content: []byte(station5), Format: loader.FormatCSV},
	})
	require.NoError(t, err)
	require.Len(t, rep.Tables, 1)

	app.Config().OldSessionThreshold = -1
	_, err = app.Tryouts()
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	app := newTestApp(t)

	stdout, stderr, err := run(t, app, "version")
	require.NoError(t, err)
	assert.Equal(t, "tryouts 1.0.0\n", stdout+stderr)

	stdout, stderr, err = run(t, app, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, stdout+stderr, "commit:   abc123")
}

func TestCompileThroughApp(t *testing.T) {
	app := newTestApp(t)
	path := filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, os.WriteFile(path, []byte(station5), 0o600))

	stdout, stderr, err := run(t, app, "compile", path, "-o", "text",
		"--old-session-threshold", "700", "--diagnostics", "warning")
	require.NoError(t, err)
	assert.Contains(t, stdout, "8GirlsNight1,")
	assert.Contains(t, stderr, "Possibly an old session")
	assert.Equal(t, 700, app.Config().OldSessionThreshold)
	assert.Equal(t, "text", app.OutputFormat())
}

func TestConfigFileFlag(t *testing.T) {
	app := newTestApp(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tryouts.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("old_session_threshold: 650\nlegacy_scales:\n  Night1: 4\n"), 0o600))

	_, _, err := run(t, app, "version", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 650, app.Config().OldSessionThreshold)
	assert.Equal(t, map[string]int{"Night1": 4}, app.Config().LegacyScales)

	_, _, err = run(t, app, "version", "--config", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestManCommand(t *testing.T) {
	app := newTestApp(t)
	dir := filepath.Join(t.TempDir(), "man")

	_, _, err := run(t, app, "man", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
