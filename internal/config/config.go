package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "xlexport/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ExportConfig contains defaults for workbook export
type ExportConfig struct {
	OutputDir     string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	FileName      string `yaml:"file_name" envconfig:"FILE_NAME"`
	FriendlyNames bool   `yaml:"friendly_names" envconfig:"FRIENDLY_NAMES"`
	Index         bool   `yaml:"index" envconfig:"INDEX"`
}

// Default returns the built-in configuration defaults
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/xlexport.log",
		},
		Export: ExportConfig{
			OutputDir: "data/exports",
			FileName:  "export",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order of precedence (environment wins).
// An empty configFile falls back to $XLEXPORT_CONFIG, then ./xlexport.yml;
// a missing file is not an error.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = os.Getenv("XLEXPORT_CONFIG")
	}
	if configFile == "" {
		configFile = "xlexport.yml"
	}

	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.NewConfigError(
				fmt.Sprintf("failed to parse config file %s", configFile), err)
		}
	case !os.IsNotExist(err):
		return nil, apperrors.NewConfigError(
			fmt.Sprintf("failed to read config file %s", configFile), err)
	}

	if err := envconfig.Process("XLEXPORT", cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from environment", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration values are within accepted sets
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return apperrors.NewConfigError(
			fmt.Sprintf("invalid logging level %q (want debug, info, warn or error)", c.Logging.Level), nil)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return apperrors.NewConfigError(
			fmt.Sprintf("invalid logging format %q (want json or text)", c.Logging.Format), nil)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return apperrors.NewConfigError(
			fmt.Sprintf("invalid logging output %q (want console, file or both)", c.Logging.Output), nil)
	}

	if c.Export.OutputDir == "" {
		return apperrors.NewConfigError("export output directory must not be empty", nil)
	}
	if c.Export.FileName == "" {
		return apperrors.NewConfigError("export file name must not be empty", nil)
	}
	return nil
}
