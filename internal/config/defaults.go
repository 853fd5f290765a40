package config

const (
	defaultConfigPath       = "~/.config/ripmap/config.toml"
	defaultDatabasePath     = "~/.local/share/ripmap/catalog.db"
	defaultLogDir           = "~/.local/share/ripmap/logs"
	defaultScanCache        = "~/.cache/ripmap/scan.txt"
	defaultLogRetentionDays = 30
	defaultSource           = "/dev/dvd"
	defaultHandBrake        = "HandBrakeCLI"
	defaultVLC              = "vlc"
	defaultScanTimeout      = 300
	defaultMinTitleSeconds  = 300
	defaultDurationMin      = 40
	defaultDurationMax      = 50
	defaultDuplicatePolicy  = "all"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Database:  defaultDatabasePath,
			LogDir:    defaultLogDir,
			ScanCache: defaultScanCache,
		},
		Disc: Disc{
			Source:          defaultSource,
			HandBrake:       defaultHandBrake,
			VLC:             defaultVLC,
			DVDNav:          true,
			ScanTimeout:     defaultScanTimeout,
			MinTitleSeconds: defaultMinTitleSeconds,
		},
		Mapping: Mapping{
			DurationMin: defaultDurationMin,
			DurationMax: defaultDurationMax,
			Duplicates:  defaultDuplicatePolicy,
		},
		Session: Session{
			Season: 1,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
