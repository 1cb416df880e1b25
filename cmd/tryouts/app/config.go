package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/tryouts/internal/config"
	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/errors"
)

// Config keys, shared by config files, TRYOUTS_* environment variables and
// the flags bound to them.
const (
	keyFormat              = "format"
	keyLogLevel            = "log_level"
	keyLogFormat           = "log_format"
	keyLogOutput           = "log_output"
	keyOldSessionThreshold = "old_session_threshold"
	keyNoCache             = "no_cache"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Compile settings
	OldSessionThreshold int
	NoCache             bool
	LegacyScales        map[string]int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (bound in setupCommand)
// 2. Environment variables (TRYOUTS_*)
// 3. .env files
// 4. Config file (~/.tryouts.yaml or ./.tryouts.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(keyLogFormat, "console")
	viper.SetDefault(keyLogOutput, constants.DefaultLogFile)
	viper.SetDefault(keyOldSessionThreshold, constants.DefaultOldSessionThreshold)

	// Search for config in standard locations
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(constants.DefaultConfigName)
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := cfg.load(viper.GetViper()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readConfigFile reads an explicitly named config file, which unlike the
// search locations must exist.
func readConfigFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return errors.NewConfigError("config", "reading "+path, err)
	}
	return nil
}

// load copies the viper-backed settings into c.
func (c *Config) load(v *viper.Viper) error {
	scales, err := config.LegacyScales(v)
	if err != nil {
		return errors.WrapConfig("config", err)
	}

	c.ConfigFile = v.ConfigFileUsed()
	c.Format = v.GetString(keyFormat)
	c.OldSessionThreshold = v.GetInt(keyOldSessionThreshold)
	c.NoCache = v.GetBool(keyNoCache)
	c.LegacyScales = scales
	c.LogLevel = v.GetString(keyLogLevel)
	c.LogFormat = v.GetString(keyLogFormat)
	c.LogOutput = v.GetString(keyLogOutput)
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}
