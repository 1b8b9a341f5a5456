package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Settings is the runtime configuration loaded from a YAML file and
// environment variables. Constants above are compile-time contract values;
// Settings covers anything an operator may want to change per install.
type Settings struct {
	API    APISettings    `yaml:"api"`
	Server ServerSettings `yaml:"server"`
	Data   DataSettings   `yaml:"data"`
	Locale LocaleSettings `yaml:"locale"`
}

// APISettings holds the remote collaborator endpoint configuration.
type APISettings struct {
	BaseURL string        `yaml:"base_url" env:"TUNZA_API_BASE_URL" env-default:"https://api.tunza.app"`
	Timeout time.Duration `yaml:"timeout"  env:"TUNZA_API_TIMEOUT"  env-default:"30s"`
}

// ServerSettings holds the local feed server configuration.
type ServerSettings struct {
	Port            string `yaml:"port"             env:"TUNZA_SERVER_PORT"      env-default:"18480"`
	RefreshMinutes  int    `yaml:"refresh_minutes"  env:"TUNZA_REFRESH_MINUTES"  env-default:"60"`
	ReminderTrigger string `yaml:"reminder_trigger" env:"TUNZA_REMINDER_TRIGGER" env-default:"-P1D"`
}

// DataSettings holds local persistence paths. Empty values resolve to the
// user data directory at startup.
type DataSettings struct {
	Dir      string        `yaml:"dir"       env:"TUNZA_DATA_DIR"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"TUNZA_CACHE_TTL" env-default:"24h"`
}

// LocaleSettings selects the output language.
type LocaleSettings struct {
	Language string `yaml:"language" env:"TUNZA_LANGUAGE" env-default:"en"`
}

// LoadSettings reads configuration with priority ENV > YAML > defaults.
// The YAML path comes from TUNZA_CONFIG (fallback "./tunza.yaml"); a missing
// file is only an error when the path was set explicitly.
func LoadSettings() (*Settings, error) {
	var s Settings

	path := os.Getenv("TUNZA_CONFIG")
	explicit := path != ""
	if !explicit {
		path = "./tunza.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &s); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", ErrSettingsLoad, path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("%s: %s: %w", ErrSettingsLoad, path, err)
	} else {
		if err := cleanenv.ReadEnv(&s); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
		}
	}

	// Tag defaults cover the normal path; explicit overrides to the empty
	// string still resolve to working values.
	if s.Server.Port == "" {
		s.Server.Port = DefaultPort
	}
	if s.Locale.Language == "" {
		s.Locale.Language = DefaultLanguage
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsInvalid, err)
	}
	return &s, nil
}

// Validate rejects settings the rest of the application cannot work with.
func (s *Settings) Validate() error {
	if s.API.BaseURL == "" {
		return fmt.Errorf("%s", ErrBaseURLEmpty)
	}

	port, err := strconv.Atoi(s.Server.Port)
	if err != nil {
		return fmt.Errorf("server port must be a number: %q", s.Server.Port)
	}
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("server port must be between %d and %d: %d", MinPort, MaxPort, port)
	}

	if s.Server.RefreshMinutes < 0 {
		return fmt.Errorf("refresh interval must not be negative: %d", s.Server.RefreshMinutes)
	}

	lang := s.Locale.Language
	supported := false
	for _, l := range SupportedLanguages {
		if l == lang {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported language %q", lang)
	}

	return nil
}
