package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"subscan/internal/cluster"
	"subscan/internal/qc"
	"subscan/internal/segment"
	"subscan/internal/textsim"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Extraction tunes how frame texts become deduplicated cues.
type Extraction struct {
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	LengthRatioFloor    float64 `toml:"length_ratio_floor"`
	PositionalScoring   bool    `toml:"positional_scoring"`
	MinDurationSec      float64 `toml:"min_duration_sec"`
	MaxGapSec           float64 `toml:"max_gap_sec"`
	MaxMergeGapSec      float64 `toml:"max_merge_gap_sec"`
}

// Output carries readability limits applied during QC.
type Output struct {
	MaxCharsPerLine int `toml:"max_chars_per_line"`
	MaxLines        int `toml:"max_lines"`
	MinDurationMS   int `toml:"min_duration_ms"`
	MaxDurationMS   int `toml:"max_duration_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subscan.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Extraction Extraction `toml:"extraction"`
	Output     Output     `toml:"output"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subscan/config.toml")
}

// Load locates, parses, and validates a configuration file. Path fields in
// the returned config are expanded and absolute. The returned bool reports
// whether a file existed; defaults are used when it does not.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("subscan.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// EnsureDirectories creates the directories subscan writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SimilarityOptions maps the config to text scorer options.
func (c *Config) SimilarityOptions() textsim.Options {
	return textsim.Options{
		LengthRatioFloor: c.Extraction.LengthRatioFloor,
		Positional:       c.Extraction.PositionalScoring,
	}
}

// SegmentOptions maps the config to frame-run segmentation options.
func (c *Config) SegmentOptions() segment.Options {
	return segment.Options{
		SimilarityThreshold: c.Extraction.SimilarityThreshold,
		MinDurationMS:       int64(c.Extraction.MinDurationSec * 1000),
		MaxGapMS:            int64(c.Extraction.MaxGapSec * 1000),
		Similarity:          c.SimilarityOptions(),
	}
}

// ClusterConfig maps the config to the cue merge policy.
func (c *Config) ClusterConfig() cluster.Config {
	return cluster.Config{
		SimilarityThreshold: c.Extraction.SimilarityThreshold,
		MaxMergeGapMS:       int64(c.Extraction.MaxMergeGapSec * 1000),
		Similarity:          c.SimilarityOptions(),
	}
}

// QCLimits maps the config to readability limits.
func (c *Config) QCLimits() qc.Limits {
	return qc.Limits{
		MaxCharsPerLine: c.Output.MaxCharsPerLine,
		MaxLines:        c.Output.MaxLines,
		MinDurationMS:   int64(c.Output.MinDurationMS),
		MaxDurationMS:   int64(c.Output.MaxDurationMS),
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
