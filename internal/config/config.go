// Package config holds the parameters of one briefing run.
package config

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/easton-hill/wakeup/pkg/directions"
	"github.com/easton-hill/wakeup/pkg/weather"
)

var ErrInvalid = errors.New("invalid configuration")

// Clock names accepted in WAKEUP_CLOCK.
const (
	ClockProvider = "provider"
	ClockLocal    = "local"
)

type Config struct {
	Weather    weather.Query
	Directions directions.Query
	Mail       Mail
	// Clock selects the zone report times are shown in.
	Clock string
	// EnvFile is an optional dotenv file with secrets.
	EnvFile string
}

type Mail struct {
	Recipient     string
	SubjectPrefix string
}

// Default returns the Dallas commute briefing.
func Default() Config {
	return Config{
		Weather: weather.Query{
			Location: weather.Location{Lat: 32.777981, Lon: -96.796211},
			Exclude:  []weather.Section{weather.SectionMinutely, weather.SectionHourly},
			Units:    weather.UnitsImperial,
		},
		Directions: directions.Query{
			Origin:      "Uptown, Dallas, TX",
			Destination: "5420 LBJ Freeway Dallas TX",
			Avoid:       []directions.Avoid{directions.AvoidTolls},
		},
		Mail: Mail{
			SubjectPrefix: "Wake Up!",
		},
		Clock:   ClockProvider,
		EnvFile: ".env",
	}
}

// Load applies environment overrides to Default and validates the result.
func Load() (Config, error) {
	cfg := Default()

	cfg.Mail.Recipient = getEnv("WAKEUP_RECIPIENT", cfg.Mail.Recipient)
	cfg.Weather.Units = weather.Units(getEnv("WAKEUP_UNITS", string(cfg.Weather.Units)))
	cfg.Weather.Language = getEnv("WAKEUP_LANG", cfg.Weather.Language)
	cfg.Clock = getEnv("WAKEUP_CLOCK", cfg.Clock)
	cfg.EnvFile = getEnv("WAKEUP_ENV_FILE", cfg.EnvFile)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the weather and directions parameters. The mail settings
// are checked separately by ValidateMail since only the emailing binary
// needs them.
func (c Config) Validate() error {
	if err := c.Weather.Validate(); err != nil {
		return fmt.Errorf("%w: weather: %w", ErrInvalid, err)
	}
	for _, s := range []weather.Section{weather.SectionCurrent, weather.SectionDaily} {
		if slices.Contains(c.Weather.Exclude, s) {
			return fmt.Errorf("%w: weather: the %s section is required", ErrInvalid, s)
		}
	}
	if c.Weather.Language != "" {
		if _, err := language.Parse(c.Weather.Language); err != nil {
			return fmt.Errorf("%w: language %q: %w", ErrInvalid, c.Weather.Language, err)
		}
	}
	if err := c.Directions.Validate(); err != nil {
		return fmt.Errorf("%w: directions: %w", ErrInvalid, err)
	}
	switch c.Clock {
	case ClockProvider, ClockLocal:
	default:
		return fmt.Errorf("%w: unknown clock %q", ErrInvalid, c.Clock)
	}
	return nil
}

func (c Config) ValidateMail() error {
	if strings.TrimSpace(c.Mail.Recipient) == "" {
		return fmt.Errorf("%w: no recipient, set WAKEUP_RECIPIENT", ErrInvalid)
	}
	if _, err := mail.ParseAddress(c.Mail.Recipient); err != nil {
		return fmt.Errorf("%w: recipient %q: %w", ErrInvalid, c.Mail.Recipient, err)
	}
	return nil
}

// Formatter returns the weather formatter for the configured clock.
func (c Config) Formatter() weather.Formatter {
	if c.Clock == ClockLocal {
		return weather.Formatter{Clock: weather.LocalClock}
	}
	return weather.Formatter{Clock: weather.ProviderClock}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
