package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the task agent application
type Config struct {
	Database    DatabaseConfig
	LLM         LLMConfig
	Server      ServerConfig
	Validation  ValidationConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TASKAGENT_DB_DIR"`
	Filename       string        `env:"TASKAGENT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TASKAGENT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TASKAGENT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TASKAGENT_DB_DIR_PERMISSIONS"`
}

// LLMConfig holds model-service configuration. APIKey may legitimately be
// empty at startup; commands fail with a config error until it is set.
type LLMConfig struct {
	APIKey         string        `env:"ANTHROPIC_API_KEY"`
	Model          string        `env:"TASKAGENT_MODEL"`
	BaseURL        string        `env:"TASKAGENT_API_BASE_URL"`
	MaxTokens      int           `env:"TASKAGENT_MAX_TOKENS"`
	MaxToolRounds  int           `env:"TASKAGENT_MAX_TOOL_ROUNDS"`
	RequestTimeout time.Duration `env:"TASKAGENT_API_TIMEOUT"`
}

// ServerConfig holds web front-end configuration
type ServerConfig struct {
	Port          string        `env:"PORT"`
	SessionSecret string        `env:"SECRET_KEY"`
	SessionTTL    time.Duration `env:"TASKAGENT_SESSION_TTL"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	MaxCommandLength  int `env:"TASKAGENT_MAX_COMMAND_LENGTH"`
	MaxTitleLength    int `env:"TASKAGENT_MAX_TITLE_LENGTH"`
	MaxCategoryLength int `env:"TASKAGENT_MAX_CATEGORY_LENGTH"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose bool `env:"TASKAGENT_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".taskagent")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tasks.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		LLM: LLMConfig{
			APIKey:         "",
			Model:          "claude-sonnet-4-5-20250929",
			BaseURL:        "https://api.anthropic.com",
			MaxTokens:      1024,
			MaxToolRounds:  10,
			RequestTimeout: 60 * time.Second,
		},
		Server: ServerConfig{
			Port: "5000",
			// Fresh per process; set SECRET_KEY to keep sessions
			// valid across restarts.
			SessionSecret: randomSessionSecret(),
			SessionTTL:    7 * 24 * time.Hour,
		},
		Validation: ValidationConfig{
			MaxCommandLength:  1000,
			MaxTitleLength:    200,
			MaxCategoryLength: 50,
		},
		Application: ApplicationConfig{
			Verbose: false,
		},
	}
}

// randomSessionSecret generates a signing key for installs that don't set
// SECRET_KEY, so session tokens are never signed with an empty key.
func randomSessionSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// HasAPIKey reports whether a model-service credential is configured.
func (c *Config) HasAPIKey() bool {
	return c.LLM.APIKey != ""
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TASKAGENT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TASKAGENT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TASKAGENT_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("TASKAGENT_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("TASKAGENT_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// LLM configuration
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("TASKAGENT_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if baseURL := os.Getenv("TASKAGENT_API_BASE_URL"); baseURL != "" {
		c.LLM.BaseURL = baseURL
	}
	if maxTokens := os.Getenv("TASKAGENT_MAX_TOKENS"); maxTokens != "" {
		if n, err := strconv.Atoi(maxTokens); err == nil {
			c.LLM.MaxTokens = n
		}
	}
	if rounds := os.Getenv("TASKAGENT_MAX_TOOL_ROUNDS"); rounds != "" {
		if n, err := strconv.Atoi(rounds); err == nil {
			c.LLM.MaxToolRounds = n
		}
	}
	if timeout := os.Getenv("TASKAGENT_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.LLM.RequestTimeout = d
		}
	}

	// Server configuration
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if secret := os.Getenv("SECRET_KEY"); secret != "" {
		c.Server.SessionSecret = secret
	}
	if ttl := os.Getenv("TASKAGENT_SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Server.SessionTTL = d
		}
	}

	// Validation configuration
	if maxLen := os.Getenv("TASKAGENT_MAX_COMMAND_LENGTH"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.MaxCommandLength = n
		}
	}
	if maxLen := os.Getenv("TASKAGENT_MAX_TITLE_LENGTH"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.MaxTitleLength = n
		}
	}
	if maxLen := os.Getenv("TASKAGENT_MAX_CATEGORY_LENGTH"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.MaxCategoryLength = n
		}
	}

	// Application configuration
	if verbose := os.Getenv("TASKAGENT_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate LLM configuration. The API key is deliberately not required
	// here: the REPL and the web API report a missing key per command.
	if c.LLM.Model == "" {
		return &ConfigError{Field: "llm.model", Message: "model name cannot be empty"}
	}
	if c.LLM.BaseURL == "" {
		return &ConfigError{Field: "llm.base_url", Message: "API base URL cannot be empty"}
	}
	if c.LLM.MaxTokens <= 0 {
		return &ConfigError{Field: "llm.max_tokens", Message: "max tokens must be positive"}
	}
	if c.LLM.MaxToolRounds <= 0 {
		return &ConfigError{Field: "llm.max_tool_rounds", Message: "max tool rounds must be positive"}
	}
	if c.LLM.RequestTimeout <= 0 {
		return &ConfigError{Field: "llm.request_timeout", Message: "request timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Port == "" {
		return &ConfigError{Field: "server.port", Message: "server port cannot be empty"}
	}
	if c.Server.SessionSecret == "" {
		return &ConfigError{Field: "server.session_secret", Message: "session secret cannot be empty"}
	}
	if c.Server.SessionTTL <= 0 {
		return &ConfigError{Field: "server.session_ttl", Message: "session TTL must be positive"}
	}

	// Validate validation configuration
	if c.Validation.MaxCommandLength < 1 {
		return &ConfigError{Field: "validation.max_command_length", Message: "max command length must be at least 1"}
	}
	if c.Validation.MaxTitleLength < 1 {
		return &ConfigError{Field: "validation.max_title_length", Message: "max title length must be at least 1"}
	}
	if c.Validation.MaxCategoryLength < 1 {
		return &ConfigError{Field: "validation.max_category_length", Message: "max category length must be at least 1"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
