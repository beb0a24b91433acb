// Package mailer delivers a finished briefing, either by email or to a
// terminal.
package mailer

import (
	"context"
	"strings"

	"golang.org/x/net/html"
)

// Message is one briefing. The plain-text body is always derived from
// HTML with PlainText.
type Message struct {
	Subject string
	To      string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, m *Message) error
}

// PlainText returns the text nodes of src in document order with the
// markup removed and entities decoded, trimmed of surrounding whitespace.
// Line breaks inside <pre> blocks are kept as they are.
func PlainText(src string) string {
	var b strings.Builder

	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, the only error a strings.Reader produces.
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
