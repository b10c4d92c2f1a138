package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/tether/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "tether.json"

	// DefaultAddr is the default listen address of the remote host server.
	DefaultAddr = ":8080"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "tether"

	// DefaultReadLimit is the default maximum size of an inbound frame.
	DefaultReadLimit = 64 * 1024

	// DefaultWriteTimeout is the default deadline for one outbound frame.
	DefaultWriteTimeout = "10s"
)

// Config represents the contents of tether.json.
type Config struct {
	// Debug enables verbose runtime diagnostics.
	Debug bool `json:"debug,omitempty"`

	Log     LogConfig     `json:"log"`
	Metrics MetricsConfig `json:"metrics"`
	Tracing TracingConfig `json:"tracing"`
	Remote  RemoteConfig  `json:"remote"`

	configPath string
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// MetricsConfig controls the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace,omitempty"`
	Subsystem string `json:"subsystem,omitempty"`
}

// TracingConfig controls render spans.
type TracingConfig struct {
	Enabled bool `json:"enabled"`
}

// RemoteConfig contains websocket host settings.
type RemoteConfig struct {
	// Addr is the HTTP listen address.
	Addr string `json:"addr,omitempty"`

	// ReadLimit is the maximum inbound frame size in bytes.
	ReadLimit int64 `json:"readLimit,omitempty"`

	// WriteTimeout is a Go duration string.
	WriteTimeout string `json:"writeTimeout,omitempty"`

	// AllowedOrigins lists origins accepted during the upgrade.
	// Empty means same-origin only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Remote: RemoteConfig{
			Addr:         DefaultAddr,
			ReadLimit:    DefaultReadLimit,
			WriteTimeout: DefaultWriteTimeout,
		},
	}
}

// Load reads tether.json from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if !Exists(dir) {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to read " + path).
			Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Remote.Addr == "" {
		c.Remote.Addr = DefaultAddr
	}
	if c.Remote.ReadLimit == 0 {
		c.Remote.ReadLimit = DefaultReadLimit
	}
	if c.Remote.WriteTimeout == "" {
		c.Remote.WriteTimeout = DefaultWriteTimeout
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return errors.New("E120").
			WithDetailf("log.level %q is not a slog level", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E120").
			WithDetailf("log.format %q must be text or json", c.Log.Format)
	}
	if c.Remote.ReadLimit < 0 {
		return errors.New("E120").
			WithDetailf("remote.readLimit %d must be positive", c.Remote.ReadLimit)
	}
	d, err := time.ParseDuration(c.Remote.WriteTimeout)
	if err != nil || d <= 0 {
		return errors.New("E120").
			WithDetailf("remote.writeTimeout %q is not a positive duration", c.Remote.WriteTimeout)
	}
	return nil
}

// Level returns the configured slog level. Debug forces LevelDebug.
func (c *Config) Level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// WriteTimeout returns Remote.WriteTimeout parsed, falling back to the default.
func (c *Config) WriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Remote.WriteTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultWriteTimeout)
	}
	return d
}

// OriginAllowed reports whether origin is listed in Remote.AllowedOrigins.
func (c *Config) OriginAllowed(origin string) bool {
	for _, o := range c.Remote.AllowedOrigins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// Exists reports whether dir contains a tether.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the first directory containing
// tether.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.New("E120").Wrap(err)
	}
	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E120").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'tetherd init' to create one.")
		}
		dir = parent
	}
}
