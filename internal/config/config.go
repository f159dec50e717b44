package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/hashview/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "hashview.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultPage is the default page file.
	DefaultPage = "app.page"

	// DefaultDebounce is the default delay between a change and a rebuild.
	DefaultDebounce = "100ms"

	// DefaultRegion is the default S3 region.
	DefaultRegion = "us-east-1"
)

// Config represents the complete hashview.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Page contains page bundling configuration.
	Page PageConfig `json:"page,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Publish contains upload configuration.
	Publish PublishConfig `json:"publish,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	configPath string
}

// PageConfig contains page bundling settings.
type PageConfig struct {
	// File is the page file, relative to the project root.
	File string `json:"file,omitempty"`

	// Lang is an optional key=value translation file.
	Lang string `json:"lang,omitempty"`

	// Collapse concatenates styles and scripts into single files.
	Collapse bool `json:"collapse,omitempty"`

	// DepFile is an optional make dependency file to write.
	DepFile string `json:"depFile,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	Port int    `json:"port,omitempty"`
	Host string `json:"host,omitempty"`

	// HotReload reloads connected browsers after each rebuild.
	HotReload bool `json:"hotReload,omitempty"`

	// Watch contains paths to watch for changes.
	Watch []string `json:"watch,omitempty"`

	// Ignore contains glob patterns to ignore during watch.
	Ignore []string `json:"ignore,omitempty"`

	// Debounce is the delay between a change and a rebuild (e.g., "100ms").
	Debounce string `json:"debounce,omitempty"`
}

// PublishConfig contains S3 upload settings.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty"`

	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty"`

	// CacheControl is sent with every object.
	CacheControl string `json:"cacheControl,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Page: PageConfig{
			File: DefaultPage,
		},
		Dev: DevConfig{
			Port:      DefaultPort,
			Host:      DefaultHost,
			HotReload: true,
			Watch:     []string{"."},
			Debounce:  DefaultDebounce,
		},
		Publish: PublishConfig{
			Region:       DefaultRegion,
			CacheControl: "no-cache",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from hashview.json in dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("H141").
				WithDetail("No hashview.json found in " + filepath.Dir(path)).
				WithSuggestion("Create hashview.json with at least {\"page\": {\"file\": \"app.page\"}}")
		}
		return nil, errors.New("H120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("H120").
			WithDetail("Failed to parse hashview.json: " + err.Error()).
			WithSuggestion("Check that hashview.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("H120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("H120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Page.File == "" {
		c.Page.File = DefaultPage
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Watch == nil {
		c.Dev.Watch = []string{"."}
	}
	if c.Dev.Debounce == "" {
		c.Dev.Debounce = DefaultDebounce
	}
	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("H121").
			WithDetail("dev.port must be between 0 and 65535")
	}
	if _, err := time.ParseDuration(c.Dev.Debounce); err != nil {
		return errors.New("H121").
			WithDetail("dev.debounce is not a duration: " + c.Dev.Debounce).
			WithSuggestion(`Use a Go duration such as "100ms"`)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("H121").
			WithDetail("log.level must be one of debug, info, warn, error")
	}
	for _, pattern := range c.Dev.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return errors.New("H121").
				WithDetail("dev.ignore has a malformed pattern: " + pattern)
		}
	}
	return nil
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// DebounceDuration returns Dev.Debounce parsed, or 100ms when unparsable.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Dev.Debounce)
	if err != nil {
		return 100 * time.Millisecond
	}
	return d
}

// LogLevel returns Log.Level as a slog level, defaulting to Info.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// PagePath returns the absolute path to the page file.
func (c *Config) PagePath() string {
	return c.resolve(c.Page.File)
}

// LangPath returns the absolute path to the lang file, or "" when unset.
func (c *Config) LangPath() string {
	if c.Page.Lang == "" {
		return ""
	}
	return c.resolve(c.Page.Lang)
}

// DepFilePath returns the absolute path to the dependency file, or "".
func (c *Config) DepFilePath() string {
	if c.Page.DepFile == "" {
		return ""
	}
	return c.resolve(c.Page.DepFile)
}

// WatchPaths returns the absolute watch paths.
func (c *Config) WatchPaths() []string {
	paths := make([]string, 0, len(c.Dev.Watch))
	for _, p := range c.Dev.Watch {
		paths = append(paths, c.resolve(p))
	}
	return paths
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the directory containing
// hashview.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("H141").
				WithDetail("No hashview.json found in " + startDir + " or any parent directory").
				WithSuggestion("Create hashview.json in the directory holding your page file")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or the nearest parent holding hashview.json.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}
