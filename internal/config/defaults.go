package config

const (
	defaultConfigPath              = "~/.config/matchmill/config.toml"
	defaultDataDir                 = "~/.local/share/matchmill"
	defaultLogDir                  = "~/.local/share/matchmill/logs"
	defaultRestartGrace            = 10.0
	defaultMinWindowSamples        = 3
	defaultKeyPrefix               = "VALORANT"
	defaultSimilarityThreshold     = 0.75
	defaultNameSimilarityThreshold = 0.75
	defaultAmbiguityMargin         = 0.25
	defaultModeWindow              = 50
	defaultTeamSize                = 5
	defaultRoundRestartGap         = 30.0
	defaultKillMergeWindow         = 8.0
	defaultNotifyRequestTimeout    = 10
	defaultRedisAddress            = "127.0.0.1:6379"
	defaultRedisStream             = "matchmill:matches"
	defaultRedisMaxLen             = 10000
	defaultMetricsBind             = "127.0.0.1:9464"
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Segmenter: Segmenter{
			RestartGrace:     defaultRestartGrace,
			MinWindowSamples: defaultMinWindowSamples,
			KeyPrefix:        defaultKeyPrefix,
		},
		Resolver: Resolver{
			SimilarityThreshold:     defaultSimilarityThreshold,
			NameSimilarityThreshold: defaultNameSimilarityThreshold,
			AmbiguityMargin:         defaultAmbiguityMargin,
			ModeWindow:              defaultModeWindow,
			TeamSize:                defaultTeamSize,
			RoundRestartGap:         defaultRoundRestartGap,
			KillMergeWindow:         defaultKillMergeWindow,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			MatchCompleted: true,
			Errors:         true,
		},
		Redis: Redis{
			Address: defaultRedisAddress,
			Stream:  defaultRedisStream,
			MaxLen:  defaultRedisMaxLen,
		},
		Metrics: Metrics{
			Bind: defaultMetricsBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
