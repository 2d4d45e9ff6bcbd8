package config

const (
	defaultDataDir = "~/.local/share/subscan"
	defaultLogDir  = "~/.local/share/subscan/logs"

	defaultSimilarityThreshold = 0.90
	defaultLengthRatioFloor    = 0.85
	defaultMinDurationSec      = 1.2
	defaultMaxGapSec           = 0.5
	defaultMaxMergeGapSec      = 30.0

	defaultMaxCharsPerLine = 42
	defaultMaxLines        = 2
	defaultMinDurationMS   = 1000
	defaultMaxDurationMS   = 10_000

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Extraction: Extraction{
			SimilarityThreshold: defaultSimilarityThreshold,
			LengthRatioFloor:    defaultLengthRatioFloor,
			MinDurationSec:      defaultMinDurationSec,
			MaxGapSec:           defaultMaxGapSec,
			MaxMergeGapSec:      defaultMaxMergeGapSec,
		},
		Output: Output{
			MaxCharsPerLine: defaultMaxCharsPerLine,
			MaxLines:        defaultMaxLines,
			MinDurationMS:   defaultMinDurationMS,
			MaxDurationMS:   defaultMaxDurationMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
