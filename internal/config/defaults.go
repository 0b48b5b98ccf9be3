package config

const (
	defaultConfigPath            = "~/.config/recite/config.toml"
	defaultStateDir              = "~/.local/share/recite"
	defaultLogDir                = "~/.local/share/recite/logs"
	defaultAPIBaseURL            = "https://api.quran.com/api/v4"
	defaultAPILanguage           = "ur"
	defaultAPIFields             = "text_indopak"
	defaultAPIRecitation         = 1
	defaultAPITimeoutSeconds     = 15
	defaultAudioBaseURL          = "https://verses.quran.com/"
	defaultAudioSampleRate       = 44100
	defaultAudioBufferMillis     = 100
	defaultAudioMaxDownloadMiB   = 32
	defaultAudioTimeoutSeconds   = 30
	defaultListPageSize          = 10
	defaultListPrefetchThreshold = 0.3
	defaultListRetainMargin      = 20
	defaultHistoryFile           = "history.db"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"

	// APIBaseURLEnv, when set, takes precedence over api.base_url.
	APIBaseURLEnv = "RECITE_API_BASE_URL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		API: API{
			BaseURL:        defaultAPIBaseURL,
			Language:       defaultAPILanguage,
			Fields:         defaultAPIFields,
			Recitation:     defaultAPIRecitation,
			Words:          true,
			TimeoutSeconds: defaultAPITimeoutSeconds,
		},
		Audio: Audio{
			BaseURL:           defaultAudioBaseURL,
			ExclusivePlayback: true,
			SampleRate:        defaultAudioSampleRate,
			BufferMillis:      defaultAudioBufferMillis,
			MaxDownloadMiB:    defaultAudioMaxDownloadMiB,
			TimeoutSeconds:    defaultAudioTimeoutSeconds,
		},
		List: List{
			PageSize:          defaultListPageSize,
			PrefetchThreshold: defaultListPrefetchThreshold,
			RetainMargin:      defaultListRetainMargin,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
