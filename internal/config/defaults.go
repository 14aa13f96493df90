package config

import "lyrix/internal/timeline"

const (
	defaultDataDir  = "~/.local/share/lyrix"
	defaultLogDir   = "~/.local/share/lyrix/logs"
	defaultWatchDir = "~/lyrix/inbox"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultRecordThrottleMS = 100
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
			WatchDir: defaultWatchDir,
		},
		Sync: Sync{
			DefaultLineSpacingMS: timeline.DefaultLineSpacingMS,
			RecordThrottleMS:     defaultRecordThrottleMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
