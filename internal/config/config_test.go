package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "xlexport/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "data/exports", cfg.Export.OutputDir)
	assert.Equal(t, "export", cfg.Export.FileName)
	assert.False(t, cfg.Export.FriendlyNames)
	assert.False(t, cfg.Export.Index)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "xlexport.yml")

	content := `
logging:
  level: debug
  format: text
export:
  output_dir: /tmp/exports
  file_name: report
  friendly_names: true
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	// untouched fields keep their defaults
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "/tmp/exports", cfg.Export.OutputDir)
	assert.Equal(t, "report", cfg.Export.FileName)
	assert.True(t, cfg.Export.FriendlyNames)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "xlexport.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: warn\n"), 0644))

	t.Setenv("XLEXPORT_LOGGING_LEVEL", "error")
	t.Setenv("XLEXPORT_EXPORT_OUTPUT_DIR", "/srv/out")

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "/srv/out", cfg.Export.OutputDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "xlexport.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging: [not a map"), 0644))

	_, err := Load(configFile)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "invalid output",
			mutate:  func(c *Config) { c.Logging.Output = "syslog" },
			wantErr: true,
		},
		{
			name:    "empty output dir",
			mutate:  func(c *Config) { c.Export.OutputDir = "" },
			wantErr: true,
		},
		{
			name:    "empty file name",
			mutate:  func(c *Config) { c.Export.FileName = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
