package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "tasks.db", cfg.Database.Filename)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.LLM.Model)
	assert.Equal(t, "https://api.anthropic.com", cfg.LLM.BaseURL)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.Equal(t, 10, cfg.LLM.MaxToolRounds)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 1000, cfg.Validation.MaxCommandLength)
	assert.Equal(t, 200, cfg.Validation.MaxTitleLength)
	assert.Equal(t, 50, cfg.Validation.MaxCategoryLength)
	assert.False(t, cfg.Application.Verbose)
	assert.False(t, cfg.HasAPIKey())
}

func TestSessionSecretDefaultsToRandom(t *testing.T) {
	first := NewConfig()
	second := NewConfig()

	// Tokens must never be signed with an empty or predictable key when
	// SECRET_KEY is unset
	assert.NotEmpty(t, first.Server.SessionSecret)
	assert.NotEqual(t, first.Server.SessionSecret, second.Server.SessionSecret)
	assert.Len(t, first.Server.SessionSecret, 64)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("TASKAGENT_MODEL", "claude-test-model")
	t.Setenv("TASKAGENT_DB_DIR", "/tmp/taskagent-test")
	t.Setenv("TASKAGENT_MAX_TOOL_ROUNDS", "3")
	t.Setenv("PORT", "8080")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("TASKAGENT_VERBOSE", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, "claude-test-model", cfg.LLM.Model)
	assert.Equal(t, "/tmp/taskagent-test", cfg.Database.Dir)
	assert.Equal(t, 3, cfg.LLM.MaxToolRounds)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Server.SessionSecret)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoadFromEnvironmentIgnoresUnparseable(t *testing.T) {
	t.Setenv("TASKAGENT_MAX_TOKENS", "lots")
	t.Setenv("TASKAGENT_API_TIMEOUT", "soon")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	// Defaults survive bad values
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.LLM.RequestTimeout)
}

func TestGetDatabasePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = "/data"
	cfg.Database.Filename = "tasks.db"
	assert.Equal(t, filepath.Join("/data", "tasks.db"), cfg.GetDatabasePath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "missing api key is still valid",
			mutate: func(c *Config) { c.LLM.APIKey = "" },
		},
		{
			name:    "empty db dir",
			mutate:  func(c *Config) { c.Database.Dir = "" },
			wantErr: "database.dir",
		},
		{
			name:    "empty model",
			mutate:  func(c *Config) { c.LLM.Model = "" },
			wantErr: "llm.model",
		},
		{
			name:    "zero tool rounds",
			mutate:  func(c *Config) { c.LLM.MaxToolRounds = 0 },
			wantErr: "llm.max_tool_rounds",
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "server.port",
		},
		{
			name:    "empty session secret",
			mutate:  func(c *Config) { c.Server.SessionSecret = "" },
			wantErr: "server.session_secret",
		},
		{
			name:    "zero command length",
			mutate:  func(c *Config) { c.Validation.MaxCommandLength = 0 },
			wantErr: "validation.max_command_length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoaderAppliesOverrides(t *testing.T) {
	dbDir := t.TempDir()
	port := "9090"
	verbose := true

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		DBDir:   &dbDir,
		Port:    &port,
		Verbose: &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, dbDir, cfg.Database.Dir)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Application.Verbose)
}
