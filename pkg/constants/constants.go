// Package constants provides shared constants used throughout the tryouts codebase.
// This includes keyword vocabulary of the tabular sheet format, compilation
// policy defaults, file permissions, and other values that should be
// consistent across the application.
package constants

import "time"

// Program identity
const (
	// ProgramName is the CLI binary name and the stem of the default log file
	ProgramName = "tryouts"

	// DefaultLogFile is where diagnostics are written unless --log-output says otherwise
	DefaultLogFile = ProgramName + ".log"
)

// Tabular sheet keywords
const (
	// KeywordVersion introduces the data-format version row
	KeywordVersion = "version"

	// KeywordSession opens a new session
	KeywordSession = "sessionName"

	// KeywordSheet opens a new sheet
	KeywordSheet = "sheetName"

	// KeywordLastRatingsChange is a legacy marker; rows starting with it are ignored
	// and it is dropped when it trails the player-data headings
	KeywordLastRatingsChange = "lastRatingsChange"

	// HeadingTeam and HeadingID are the adjacent headings that open a player-data section
	HeadingTeam = "team"
	HeadingID   = "id"
)

// Sheet property keywords
const (
	PropertyEType        = "eType"
	PropertyGrade        = "grade"
	PropertyGender       = "gender"
	PropertyField        = "field"
	PropertyGroup        = "group"
	PropertyComments     = "comments"
	PropertyRatingTip    = "ratingTip"
	PropertyTeams        = "teams"
	PropertyCategories   = "categories"
	PropertyRatingValues = "ratingValues"
)

// Defaults applied while building records
const (
	// UnsetTeam is the team assigned to players before any row names one
	UnsetTeam = "UNSET"

	// UnsetName is used when a sessionName or sheetName row has no value
	UnsetName = "UNSET"

	// DefaultSessionName is synthesised when a sheet appears before any session
	DefaultSessionName = "Default"

	// DefaultStation is the station used when a sheet has no field
	DefaultStation = "Field"
)

// Evaluation types with special compilation rules
const (
	// ETypeBubble stations are renamed on collision within a bucket
	ETypeBubble = "Bubble"

	// ETypeNight1 and ETypeNight2 are tournament rounds with a fixed rating scale
	ETypeNight1 = "Night1"
	ETypeNight2 = "Night2"
)

// Compilation policy
const (
	// MaxStationSuffix is the largest N tried when renaming a station to "<station>-N"
	MaxStationSuffix = 9

	// DefaultOldSessionThreshold flags sessions whose numeric prefix is below it
	DefaultOldSessionThreshold = 519

	// NightRatingScale is the number of ratingValues expected for Night1/Night2 sheets
	NightRatingScale = 6

	// BubbleRatingScale is the number of ratingValues expected for Bubble sheets
	BubbleRatingScale = 20

	// ProgramCommentPrefix marks bucket comments written by the compiler itself
	ProgramCommentPrefix = "Program: "
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Cache constants
const (
	// CacheTTL is how long a parsed file stays in the loader cache.
	// A run is short lived so this only bounds memory for very long runs.
	CacheTTL = 30 * time.Minute

	// CacheCleanupInterval is how often expired cache entries are purged
	CacheCleanupInterval = 10 * time.Minute
)

// Format constants
const (
	// TimeFormatLog is the format used in log files
	TimeFormatLog = "2006-01-02 15:04:05.000"

	// DefaultConfigName is the config file stem searched in $HOME and the working directory
	DefaultConfigName = "." + ProgramName

	// EnvPrefix prefixes environment variables read through viper
	EnvPrefix = "TRYOUTS"
)
