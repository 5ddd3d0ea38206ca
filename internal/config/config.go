package config

import (
	stderrors "errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/einblatt-dev/einblatt/internal/errors"
	"github.com/einblatt-dev/einblatt/pkg/router"
)

const (
	// ConfigName is the base name searched for when no file is given.
	// Any extension viper reads (yaml, yml, json, toml) is accepted.
	ConfigName = "einblatt"

	// EnvPrefix prefixes environment overrides, e.g. EINBLATT_DEV_PORT.
	EnvPrefix = "EINBLATT"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultStatic is the default static file directory.
	DefaultStatic = "public"
)

// Config represents the complete einblatt.yaml configuration.
type Config struct {
	// Name is the project name.
	Name string `mapstructure:"name"`

	// Router configures the application router.
	Router RouterConfig `mapstructure:"router"`

	// Dev contains development server configuration.
	Dev DevConfig `mapstructure:"dev"`

	// Log configures the structured logger.
	Log LogConfig `mapstructure:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RouterConfig configures the application router.
type RouterConfig struct {
	// Mode is the navigation strategy: browser, hash or memory.
	Mode string `mapstructure:"mode"`

	// Basename is the path prefix the app is served under (browser mode).
	Basename string `mapstructure:"basename"`

	// Routes is the ordered route table. The first matching route wins.
	Routes []RouteConfig `mapstructure:"routes"`
}

// RouteConfig is one named route definition.
type RouteConfig struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Host is the host to bind to.
	Host string `mapstructure:"host"`

	// Port is the port to run the dev server on.
	Port int `mapstructure:"port"`

	// Static is the directory served as the app's static files.
	Static string `mapstructure:"static"`

	// HotReload injects the live reload client and watches for changes.
	HotReload bool `mapstructure:"hotReload"`

	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool `mapstructure:"metrics"`

	// Watch contains extra paths to watch. The static directory is always
	// watched when hot reload is on.
	Watch []string `mapstructure:"watch"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `mapstructure:"level"`

	// Format is text or json.
	Format string `mapstructure:"format"`
}

// NewViper returns a viper instance seeded with defaults and bound to
// EINBLATT_ environment variables. Flags may be bound to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	d := New()
	v.SetDefault("name", d.Name)
	v.SetDefault("router.mode", d.Router.Mode)
	v.SetDefault("router.basename", d.Router.Basename)
	v.SetDefault("dev.host", d.Dev.Host)
	v.SetDefault("dev.port", d.Dev.Port)
	v.SetDefault("dev.static", d.Dev.Static)
	v.SetDefault("dev.hotReload", d.Dev.HotReload)
	v.SetDefault("dev.metrics", d.Dev.Metrics)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Router: RouterConfig{
			Mode: string(router.ModeBrowser),
		},
		Dev: DevConfig{
			Host:      DefaultHost,
			Port:      DefaultPort,
			Static:    DefaultStatic,
			HotReload: true,
			Metrics:   true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration into a Config.
//
// With a path, that file must exist. Without one, einblatt.{yaml,yml,json}
// is searched in the working directory and a missing file leaves the
// defaults in place. The result is not validated; call Validate.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.New("E101").
				WithDetailf("%s does not exist.", path).
				Wrap(err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			file := v.ConfigFileUsed()
			if file == "" {
				file = path
			}
			return nil, errors.New("E102").
				WithLocationFromError(file, err).
				Wrap(err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New("E102").
			WithDetail("Values do not match the configuration schema.").
			Wrap(err)
	}
	cfg.configPath = v.ConfigFileUsed()
	return cfg, nil
}

// Path returns the path where the config was loaded from, or "" when only
// defaults and environment were used.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file, or "." without one.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := router.ParseMode(c.Router.Mode); err != nil {
		return errors.New("E103").
			WithDetailf("router.mode is %q.", c.Router.Mode).
			Wrap(err)
	}
	if b := c.Router.Basename; b != "" && !strings.HasPrefix(b, "/") {
		return errors.New("E109").
			WithDetailf("router.basename is %q.", b)
	}

	seen := make(map[string]int, len(c.Router.Routes))
	for i, r := range c.Router.Routes {
		if r.Name == "" || r.Path == "" {
			return errors.New("E105").
				WithDetailf("router.routes[%d] is {name: %q, path: %q}.", i, r.Name, r.Path)
		}
		if first, ok := seen[r.Name]; ok {
			return errors.New("E106").
				WithDetailf("%q is used by router.routes[%d] and router.routes[%d].", r.Name, first, i)
		}
		seen[r.Name] = i
	}

	if c.Dev.Port < 1 || c.Dev.Port > 65535 {
		return errors.New("E104").
			WithDetailf("dev.port is %d.", c.Dev.Port)
	}
	if !oneOf(strings.ToLower(c.Log.Level), logLevels) {
		return errors.New("E107").
			WithDetailf("log.level is %q.", c.Log.Level)
	}
	if !oneOf(strings.ToLower(c.Log.Format), logFormats) {
		return errors.New("E108").
			WithDetailf("log.format is %q.", c.Log.Format)
	}
	return nil
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// Mode returns the parsed router mode, falling back to browser mode for an
// invalid value. Validate reports invalid modes.
func (c *Config) Mode() router.Mode {
	m, err := router.ParseMode(c.Router.Mode)
	if err != nil {
		return router.ModeBrowser
	}
	return m
}

// HasRoutes reports whether the config defines its own route table.
func (c *Config) HasRoutes() bool {
	return len(c.Router.Routes) > 0
}

// Table compiles the configured routes in order.
func (c *Config) Table() *router.Table {
	entries := make([]router.Entry, len(c.Router.Routes))
	for i, r := range c.Router.Routes {
		entries[i] = router.Define(r.Name, r.Path)
	}
	return router.NewTable(entries...)
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return net.JoinHostPort(c.Dev.Host, strconv.Itoa(c.Dev.Port))
}

// DevURL returns the full URL of the app on the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress() + c.Router.Basename + "/"
}

// StaticPath returns the static directory, resolved against the config
// file's directory.
func (c *Config) StaticPath() string {
	return c.resolve(c.Dev.Static)
}

// WatchPaths returns every path the dev server watches, static directory
// first, without duplicates.
func (c *Config) WatchPaths() []string {
	paths := []string{c.StaticPath()}
	for _, p := range c.Dev.Watch {
		p = c.resolve(p)
		if !oneOf(p, paths) {
			paths = append(paths, p)
		}
	}
	return paths
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}
