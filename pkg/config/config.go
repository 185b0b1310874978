// Package config loads cratelink settings from an optional TOML file and
// the environment.
//
// The file lives at $XDG_CONFIG_HOME/cratelink/config.toml:
//
//	registry_url = "https://crates.io/api/v1/crates"
//	site_url     = "https://crates.io"
//	default_link = "d"
//	timeout      = "10s"
//
// CRATELINK_REGISTRY_URL, CRATELINK_SITE_URL and CRATELINK_DEFAULT_LINK
// override the file. Every key is optional.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/matzehuels/cratelink/pkg/errors"
	"github.com/matzehuels/cratelink/pkg/integrations"
	"github.com/matzehuels/cratelink/pkg/integrations/crates"
	"github.com/matzehuels/cratelink/pkg/links"
)

const appName = "cratelink"

// Environment variables that override the config file.
const (
	EnvRegistryURL = "CRATELINK_REGISTRY_URL"
	EnvSiteURL     = "CRATELINK_SITE_URL"
	EnvDefaultLink = "CRATELINK_DEFAULT_LINK"
)

// Config holds the endpoint roots and defaults used by one invocation.
type Config struct {
	RegistryURL string `toml:"registry_url"`
	SiteURL     string `toml:"site_url"`
	DefaultLink string `toml:"default_link"`
	Timeout     string `toml:"timeout"`
}

// Default returns the built-in settings pointing at crates.io.
func Default() Config {
	return Config{
		RegistryURL: crates.DefaultBaseURL,
		SiteURL:     links.DefaultSiteURL,
		DefaultLink: links.Canonical.String(),
		Timeout:     integrations.DefaultTimeout.String(),
	}
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
// Keys the file sets to empty strings keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		var file Config
		md, err := toml.DecodeFile(path, &file)
		switch {
		case stderrors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				sort.Strings(keys)
				return Config{}, errors.New(errors.ErrCodeInvalidConfig,
					"%s: unknown keys: %s", path, strings.Join(keys, ", "))
			}
			cfg.merge(file)
		}
	}

	cfg.merge(Config{
		RegistryURL: os.Getenv(EnvRegistryURL),
		SiteURL:     os.Getenv(EnvSiteURL),
		DefaultLink: os.Getenv(EnvDefaultLink),
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every value and reports the first problem.
func (c Config) Validate() error {
	if err := errors.ValidateBaseURL("registry_url", c.RegistryURL); err != nil {
		return err
	}
	if err := errors.ValidateBaseURL("site_url", c.SiteURL); err != nil {
		return err
	}
	if _, err := links.ParseDestination(c.DefaultLink); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "default_link: %s", errors.UserMessage(err))
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// Destination returns the parsed default_link.
func (c Config) Destination() links.Destination {
	d, _ := links.ParseDestination(c.DefaultLink)
	return d
}

// TimeoutDuration parses the timeout setting.
func (c Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return integrations.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "timeout: %q is not a duration", c.Timeout)
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "timeout: must be positive, got %s", c.Timeout)
	}
	return d, nil
}

func (c *Config) merge(o Config) {
	if o.RegistryURL != "" {
		c.RegistryURL = o.RegistryURL
	}
	if o.SiteURL != "" {
		c.SiteURL = o.SiteURL
	}
	if o.DefaultLink != "" {
		c.DefaultLink = o.DefaultLink
	}
	if o.Timeout != "" {
		c.Timeout = o.Timeout
	}
}
