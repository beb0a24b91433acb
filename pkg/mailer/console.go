package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Console prints messages instead of sending them. The subject is written
// as an underlined header followed by the plain-text body.
type Console struct {
	W io.Writer
}

func (c Console) Send(_ context.Context, m *Message) error {
	header := m.Subject
	if m.To != "" {
		header = fmt.Sprintf("%s (to %s)", m.Subject, m.To)
	}

	_, err := fmt.Fprintf(c.W, "%s\n%s\n%s\n",
		header,
		strings.Repeat("-", len(header)),
		PlainText(m.HTML))
	if err != nil {
		return fmt.Errorf("write briefing: %w", err)
	}
	return nil
}
