package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/evanbei/nodegen/internal/build"
	"github.com/evanbei/nodegen/internal/checksum"
	"github.com/evanbei/nodegen/internal/watch"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Site  SiteConfig        `yaml:"site"`
	Watch WatchConfig       `yaml:"watch"`
	Auth  AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Watch.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds preview server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SiteConfig locates the site and the files derived into it. All file
// paths are relative to Root.
type SiteConfig struct {
	Root            string   `yaml:"root"`
	Portal          string   `yaml:"portal"`
	Descriptor      string   `yaml:"descriptor"`
	Page            string   `yaml:"page"`
	Checksums       string   `yaml:"checksums"`
	Health          string   `yaml:"health"`
	ChecksumTargets []string `yaml:"checksum_targets"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.Portal, validation.Required),
		validation.Field(&c.Descriptor, validation.Required),
		validation.Field(&c.Page, validation.Required),
		validation.Field(&c.Checksums, validation.Required),
		validation.Field(&c.Health, validation.Required),
		validation.Field(&c.ChecksumTargets, validation.Required, validation.Each(validation.Required)),
	)
}

// Layout returns the build layout described by the site configuration.
func (c *SiteConfig) Layout() build.Layout {
	return build.Layout{
		Portal:     c.Portal,
		Descriptor: c.Descriptor,
		Page:       c.Page,
		Checksums:  c.Checksums,
		Health:     c.Health,
	}
}

// WatchConfig controls rebuild-on-change behaviour.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(10*time.Millisecond)),
	)
}

// AuthConfig guards the preview server's /api routes.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication, suitable for local previews.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a Config for a site built from the current
// directory.
func NewDefaultConfig() *Config {
	layout := build.DefaultLayout()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Site: SiteConfig{
			Root:            ".",
			Portal:          layout.Portal,
			Descriptor:      layout.Descriptor,
			Page:            layout.Page,
			Checksums:       layout.Checksums,
			Health:          layout.Health,
			ChecksumTargets: append([]string(nil), checksum.DefaultTargets...),
		},
		Watch: WatchConfig{
			Debounce: watch.DefaultDebounce,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
