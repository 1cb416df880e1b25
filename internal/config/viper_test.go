package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readYAML(t *testing.T, src string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(src)))
	return v
}

func TestLegacyScales(t *testing.T) {
	v := readYAML(t, "legacy_scales:\n  Night1: 6\n  Bubble: \"20\"\n")
	got, err := LegacyScales(v)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Night1": 6, "Bubble": 20}, got)

	v = readYAML(t, "legacy_scales:\n  Scrimmage: 4\n")
	got, err = LegacyScales(v)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"scrimmage": 4}, got)
}

func TestLegacyScalesUnset(t *testing.T) {
	got, err := LegacyScales(viper.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLegacyScalesInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not a map", "legacy_scales: 6\n"},
		{"not a number", "legacy_scales:\n  Night1: six\n"},
		{"not positive", "legacy_scales:\n  Night1: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LegacyScales(readYAML(t, tt.src))
			assert.Error(t, err)
		})
	}
}

func TestGetString(t *testing.T) {
	t.Setenv("TRYOUTS_TEST_ONLY_ENV", "from-env")
	assert.Equal(t, "from-env", GetString("TRYOUTS_TEST_ONLY_ENV"))
}
