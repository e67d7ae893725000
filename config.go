package seomaster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/eringen/seomaster/content"
)

// Content backends.
const (
	BackendSQLite   = "sqlite"
	BackendSupabase = "supabase"
)

// SiteConfig holds all configuration for an SEO Master site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "SEO Master")
	URL         string `mapstructure:"url"`         // Canonical origin (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS
	Author      string `mapstructure:"author"`      // Default author meta (default "SEO Master Team")

	Addr         string `mapstructure:"addr"`          // Listen address (default ":3000")
	DatabasePath string `mapstructure:"database_path"` // SQLite path (default "data/seomaster.db")

	Backend     string `mapstructure:"backend"` // sqlite (default) or supabase
	SupabaseURL string `mapstructure:"supabase_url"`
	SupabaseKey string `mapstructure:"supabase_key"`

	SessionSecret string `mapstructure:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	StaticDir string `mapstructure:"static_dir"` // User static assets (default "public")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "SEO Master"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Description == "" {
		c.Description = "Learn modern search engine optimization techniques and web development best practices"
	}
	if c.Author == "" {
		c.Author = "SEO Master Team"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/seomaster.db"
	}
	if c.Backend == "" {
		c.Backend = BackendSQLite
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
}

func (c SiteConfig) validate() error {
	switch c.Backend {
	case BackendSQLite:
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("config: supabase backend needs supabase_url and supabase_key")
		}
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.SessionSecret == "" {
		return errors.New("config: session_secret is required")
	}
	return nil
}

// LoadConfig reads the configuration from file, or from seomaster.{yaml,toml,json}
// in the working directory when file is empty. SEOMASTER_* environment
// variables override both, e.g. SEOMASTER_DATABASE_PATH.
func LoadConfig(file string) (SiteConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("SEOMASTER")
	v.AutomaticEnv()

	var defaults SiteConfig
	defaults.setDefaults()
	for key, val := range map[string]any{
		"name":           defaults.Name,
		"url":            defaults.URL,
		"description":    defaults.Description,
		"author":         defaults.Author,
		"addr":           defaults.Addr,
		"database_path":  defaults.DatabasePath,
		"backend":        defaults.Backend,
		"supabase_url":   "",
		"supabase_key":   "",
		"session_secret": "",
		"cookie_secure":  false,
		"static_dir":     defaults.StaticDir,
	} {
		v.SetDefault(key, val)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("seomaster")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return SiteConfig{}, fmt.Errorf("config: read: %w", err)
		}
	}

	conf := SiteConfig{}
	if err := v.Unmarshal(&conf); err != nil {
		return SiteConfig{}, fmt.Errorf("config: decode: %w", err)
	}
	conf.setDefaults()
	return conf, conf.validate()
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSource makes the page views read posts from src instead of the
// configured backend.
func WithSource(src content.Source) Option {
	return func(a *App) {
		a.Source = src
	}
}
