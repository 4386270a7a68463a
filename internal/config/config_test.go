package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Empty(t, cfg.ExcludeDirs, "a recursive search must visit every directory by default")
	assert.False(t, cfg.SkipHidden)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name:    "full config",
			content: "color: always\nexclude_dirs:\n  - target\n  - dist\nskip_hidden: true\nlog_level: debug\n",
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ColorAlways, cfg.Color)
				assert.Equal(t, []string{"target", "dist"}, cfg.ExcludeDirs)
				assert.True(t, cfg.SkipHidden)
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name:    "partial config keeps defaults",
			content: "color: never\n",
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ColorNever, cfg.Color)
				assert.Empty(t, cfg.ExcludeDirs)
				assert.False(t, cfg.SkipHidden)
			},
		},
		{
			name:    "malformed yaml",
			content: "color: [unclosed\n",
			wantErr: true,
		},
		{
			name:    "invalid color mode",
			content: "color: sometimes\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFile)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := LoadConfig(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
