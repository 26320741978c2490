package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// FileName is the name of the optional configuration file
const FileName = "adminui.toml"

// DefaultSource is the members endpoint used when nothing else is configured
const DefaultSource = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

// Config represents the complete configuration for adminui
type Config struct {
	Source    string        `toml:"source" env:"SOURCE"`
	PageSize  int           `toml:"page_size" env:"PAGE_SIZE"`
	Timeout   time.Duration `toml:"timeout" env:"TIMEOUT"`
	Retries   int           `toml:"retries" env:"RETRIES"`
	UserAgent string        `toml:"user_agent" env:"USER_AGENT"`
	LogLevel  string        `toml:"log_level" env:"LOG_LEVEL"`

	// TransientDeletes restores the behavior where deleted rows come back
	// after the search query changes.
	TransientDeletes bool `toml:"transient_deletes" env:"TRANSIENT_DELETES"`

	// Path of the file the configuration was read from, empty for defaults
	Path string `toml:"-"`
}

// EnvPrefix is prepended to every environment override
const EnvPrefix = "ADMINUI_"

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Source:    DefaultSource,
		PageSize:  10,
		Timeout:   30 * time.Second,
		UserAgent: "adminui",
		LogLevel:  "info",
	}
}

// Load searches for adminui.toml starting from targetPath and walking up.
// A missing file is not an error; defaults and environment apply.
func Load(targetPath string) (*Config, error) {
	configPath, err := findConfigFile(targetPath)
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the configuration from an explicit path. An empty path
// yields the defaults with environment overrides.
func LoadFile(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		configData, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if _, err := toml.Decode(string(configData), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.Path = configPath
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	expanded, err := expandEnvVars(cfg.Source)
	if err != nil {
		return nil, err
	}
	cfg.Source = expanded

	if cfg.Path != "" {
		cfg.Source = normalizeSource(cfg.Source, filepath.Dir(cfg.Path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile searches for adminui.toml starting from the given path
func findConfigFile(startPath string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err == nil && !info.IsDir() {
		absPath = filepath.Dir(absPath)
	}

	currentDir := absPath
	for {
		configPath := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// expandEnvVars expands ${VAR_NAME} references, failing on unset variables
func expandEnvVars(s string) (string, error) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		value, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("environment variable %s is not set (required by source in %s)", strings.Join(missing, ", "), FileName)
	}
	return out, nil
}

// normalizeSource resolves relative file sources against the config directory
func normalizeSource(source, configDir string) string {
	if IsRemote(source) || strings.HasPrefix(source, "file://") || filepath.IsAbs(source) {
		return source
	}
	return filepath.Join(configDir, source)
}

// IsRemote reports whether source is an http(s) URL
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Validate checks that all fields hold usable values
func (c *Config) Validate() error {
	var problems []string

	if c.Source == "" {
		problems = append(problems, "source is required")
	} else if IsRemote(c.Source) {
		if u, err := url.Parse(c.Source); err != nil || u.Host == "" {
			problems = append(problems, fmt.Sprintf("source %q is not a valid URL", c.Source))
		}
	}
	if c.PageSize <= 0 {
		problems = append(problems, "page_size must be positive")
	}
	if c.Timeout <= 0 {
		problems = append(problems, "timeout must be positive")
	}
	if c.Retries < 0 {
		problems = append(problems, "retries must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, ", "))
	}
	return nil
}

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")
