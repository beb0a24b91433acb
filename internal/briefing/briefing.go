// Package briefing puts the weather and commute reports together and hands
// the result to a sender.
package briefing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/easton-hill/wakeup/internal/config"
	"github.com/easton-hill/wakeup/pkg/directions"
	"github.com/easton-hill/wakeup/pkg/mailer"
	"github.com/easton-hill/wakeup/pkg/weather"
)

// Briefing runs one report. Either source may be nil to leave its section
// out, but not both.
type Briefing struct {
	Weather    weather.Provider
	Directions directions.Provider
	Formatter  weather.Formatter
	Sender     mailer.Sender
	Now        func() time.Time
}

// Compose fetches each configured source in turn and returns the complete
// HTML document. The first failure aborts the run.
func (b *Briefing) Compose(ctx context.Context, cfg config.Config) (string, error) {
	if b.Weather == nil && b.Directions == nil {
		return "", errors.New("briefing has no sources")
	}
	if err := b.checkSecrets(); err != nil {
		return "", err
	}

	var doc strings.Builder
	doc.WriteString("<html><body>")

	if b.Weather != nil {
		start := time.Now()
		report, err := b.Weather.Forecast(ctx, cfg.Weather)
		if err != nil {
			return "", fmt.Errorf("weather: %w", err)
		}
		slog.Debug("weather fetched", "alerts", len(report.Alerts), "took", time.Since(start))
		doc.WriteString(b.Formatter.Format(report))
	}

	if b.Directions != nil {
		start := time.Now()
		report, err := b.Directions.Directions(ctx, cfg.Directions)
		if err != nil {
			return "", fmt.Errorf("directions: %w", err)
		}
		slog.Debug("directions fetched", "routes", len(report.Routes), "took", time.Since(start))
		doc.WriteString(directions.Format(report))
	}

	doc.WriteString("</body></html>")
	return doc.String(), nil
}

// secretChecker is implemented by sources that can tell whether their
// credentials are configured before making any request.
type secretChecker interface {
	CheckSecrets() error
}

// checkSecrets fails on the first source missing a credential, before
// any source is fetched.
func (b *Briefing) checkSecrets() error {
	sources := []struct {
		name   string
		source any
	}{
		{"weather", b.Weather},
		{"directions", b.Directions},
	}
	for _, s := range sources {
		c, ok := s.source.(secretChecker)
		if !ok {
			continue
		}
		if err := c.CheckSecrets(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// Subject is the prefix followed by the date as mm/dd/yy.
func Subject(prefix string, now time.Time) string {
	return prefix + " " + now.Format("01/02/06")
}

// Run composes the briefing and sends it to the configured recipient.
func (b *Briefing) Run(ctx context.Context, cfg config.Config) error {
	if b.Sender == nil {
		return errors.New("briefing has no sender")
	}

	html, err := b.Compose(ctx, cfg)
	if err != nil {
		return err
	}

	msg := &mailer.Message{
		Subject: Subject(cfg.Mail.SubjectPrefix, b.now()),
		To:      cfg.Mail.Recipient,
		HTML:    html,
	}
	if err := b.Sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("deliver: %w", err)
	}
	return nil
}

func (b *Briefing) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}
