package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/pluqqy/promptcat/pkg/models"
)

const (
	// EnvPrefix is the prefix of environment overrides, e.g.
	// PROMPTCAT_API_BASE_URL -> api.base_url
	EnvPrefix = "PROMPTCAT_"

	// DirName is the per-user configuration directory name
	DirName = "promptcat"

	// FileName is the configuration file inside DirName
	FileName = "config.yaml"

	// LogFileName is where the interactive browser writes its log
	LogFileName = "promptcat.log"
)

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(base, DirName), nil
}

// DefaultPath returns the default configuration file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads settings from the YAML file at path (missing is fine), then
// overlays variables from a .env file in the working directory and the
// process environment.
func Load(path string) (*models.Settings, error) {
	return LoadWithEnvFile(path, ".env")
}

// LoadWithEnvFile is Load with an explicit .env location. An empty
// envFile skips .env loading.
func LoadWithEnvFile(path, envFile string) (*models.Settings, error) {
	k := koanf.New(".")

	settings := models.DefaultSettings()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			// Load never overrides variables that are already set.
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("reading %s: %w", envFile, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", settings); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return settings, nil
}

// envKey maps PROMPTCAT_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Save writes the settings to the given YAML file path, creating the
// directory if needed.
func Save(path string, settings *models.Settings) error {
	data, err := yamlv3.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Validate checks that the settings contain usable values.
func Validate(s *models.Settings) error {
	if s == nil {
		return fmt.Errorf("settings are nil")
	}
	if !s.API.Demo {
		if err := validateHTTPURL("api.base_url", s.API.BaseURL); err != nil {
			return err
		}
	}
	if err := validateHTTPURL("share.page_url", s.Share.PageURL); err != nil {
		return err
	}
	if s.Logging.Format != "" && !validLogFormats[s.Logging.Format] {
		return fmt.Errorf("invalid logging.format %q: must be console or json", s.Logging.Format)
	}
	return nil
}

func validateHTTPURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an http(s) URL", field, raw)
	}
	return nil
}
