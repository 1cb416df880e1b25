// Package config reads compile settings that do not map onto a single flag.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/agentstation/tryouts/pkg/constants"
)

// LegacyScalesKey is the config key holding expected ratingValues counts by eType.
const LegacyScalesKey = "legacy_scales"

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// LegacyScales reads the legacy_scales map from v, for example
//
//	legacy_scales:
//	  Night1: 6
//	  Bubble: 20
//
// Viper lowercases keys, so the known eTypes get their spelling back; other
// eTypes are matched in lower case. It returns nil when the key is unset so
// callers keep their defaults.
func LegacyScales(v *viper.Viper) (map[string]int, error) {
	if !v.IsSet(LegacyScalesKey) {
		return nil, nil
	}

	raw, err := cast.ToStringMapE(v.Get(LegacyScalesKey))
	if err != nil {
		return nil, fmt.Errorf("%s must map eType to a count: %w", LegacyScalesKey, err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	scales := make(map[string]int, len(raw))
	for _, eType := range keys {
		n, err := cast.ToIntE(raw[eType])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", LegacyScalesKey, eType, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%s.%s must be positive, got %d", LegacyScalesKey, eType, n)
		}
		scales[canonicalEType(eType)] = n
	}
	return scales, nil
}

func canonicalEType(eType string) string {
	for _, known := range []string{constants.ETypeNight1, constants.ETypeNight2, constants.ETypeBubble} {
		if strings.EqualFold(known, eType) {
			return known
		}
	}
	return eType
}
