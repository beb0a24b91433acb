// Package secrets looks up API keys and account credentials by name.
//
// Lookups go through the Provider interface so callers never read the
// process environment directly; tests pass a Map instead.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Names of the secrets the briefing needs.
const (
	WeatherKey    = "WEATHER_KEY"
	DirectionsKey = "DIRECTIONS_KEY"
	MailUser      = "MAIL_USER"
	MailPassword  = "MAIL_PASSWORD"
)

// ErrMissing is returned when a required secret is not set by any provider.
var ErrMissing = errors.New("secret not configured")

type Provider interface {
	Lookup(name string) (string, bool)
}

// Require returns the named secret or an error wrapping ErrMissing.
// Empty and whitespace-only values count as missing.
func Require(p Provider, name string) (string, error) {
	if p != nil {
		if v, ok := p.Lookup(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMissing, name)
}

// Env reads secrets from the process environment.
type Env struct{}

func (Env) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Map is a fixed set of secrets.
type Map map[string]string

func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// DotEnv reads a dotenv file once and serves its values. A missing file
// yields an empty provider, so a checkout without .env still works when
// the secrets are exported in the shell.
func DotEnv(path string) (Map, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Map{}, nil
		}
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return Map(values), nil
}

// Dir serves one secret per file, named after the secret, inside a
// directory such as ~/.config/wakeup.
type Dir string

// DefaultDir is $HOME/.config/wakeup.
func DefaultDir() Dir {
	return Dir(os.ExpandEnv("$HOME/.config/wakeup"))
}

func (d Dir) Lookup(name string) (string, bool) {
	if d == "" {
		return "", false
	}
	for _, file := range []string{name, strings.ToLower(name)} {
		b, err := os.ReadFile(filepath.Join(string(d), file))
		if err == nil {
			return strings.TrimSpace(string(b)), true
		}
	}
	return "", false
}

// Chain asks each provider in order and returns the first non-empty value.
type Chain []Provider

func (c Chain) Lookup(name string) (string, bool) {
	for _, p := range c {
		if v, ok := p.Lookup(name); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}
