// Package config provides configuration loading and defaults for flowtrack.
package config

// DefaultConfigDir is the default location for flowtrack configuration.
const DefaultConfigDir = "~/.config/flowtrack"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "flowtrack.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultUserID is the user identity used when none is configured. The
// local CLI is single-user by default; multi-user deployments set user_id
// per invocation.
const DefaultUserID = 1

// DefaultIntervals holds the classic timer durations, in seconds.
var DefaultIntervals = Intervals{
	WorkDuration:           1500,
	ShortBreakDuration:     300,
	LongBreakDuration:      900,
	SessionsUntilLongBreak: 4,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
