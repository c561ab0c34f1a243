package config

const (
	defaultConfigPath   = "~/.config/cleancut/config.toml"
	defaultDataDir      = "~/.local/share/cleancut"
	defaultLogDir       = "~/.local/share/cleancut/logs"
	defaultOutputDir    = "~/cleancut"
	defaultFilterLevel  = "moderate"
	defaultSpeedRatio   = 1.0
	defaultLowMax       = 2
	defaultMediumMax    = 10
	defaultTickMS       = 250
	defaultMergeGapMS   = 1000
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultStoreEnabled = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			OutputDir: defaultOutputDir,
		},
		Filter: Filter{
			Level: defaultFilterLevel,
		},
		Timing: Timing{
			SpeedRatio: defaultSpeedRatio,
		},
		Severity: Severity{
			LowMax:    defaultLowMax,
			MediumMax: defaultMediumMax,
		},
		Playback: Playback{
			TickMS:     defaultTickMS,
			MergeGapMS: defaultMergeGapMS,
		},
		Store: Store{
			Enabled: defaultStoreEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
