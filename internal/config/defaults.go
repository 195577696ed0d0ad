// Package config provides configuration loading and defaults for gymdesk.
package config

// DefaultConfigDir is the default location for gymdesk configuration.
const DefaultConfigDir = "~/.config/gymdesk"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "gymdesk.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultDataDir is where record files are read from.
const DefaultDataDir = "~/.config/gymdesk/data"

// EnvPrefix prefixes environment overrides, e.g. GYMDESK_DATA_DIR.
const EnvPrefix = "GYMDESK"

// DefaultTimeOfDay splits the day at noon and 17:00.
var DefaultTimeOfDay = TimeOfDay{
	MorningEnd:   "12:00",
	AfternoonEnd: "17:00",
}

// DefaultBudget holds the default budget alert threshold.
var DefaultBudget = Budget{
	WarnAt: 85,
}

// DefaultLeaderboard holds the default leaderboard size.
var DefaultLeaderboard = Leaderboard{
	Top: 5,
}

// DefaultInsights holds the default insight rule thresholds.
var DefaultInsights = Insights{
	LowAttendance: 60,
	LowConversion: 20,
	RankDrop:      2,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
}

// DefaultLog holds the default logging settings.
var DefaultLog = Log{
	Level:  "info",
	Format: "console",
}

// DefaultRole is the role assumed when none is configured.
const DefaultRole = "admin"

// DefaultSeed seeds demo data generation.
const DefaultSeed = 1
