// Package fetch performs the single JSON GET each provider needs.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

/*
	Failure kinds

	ErrTransport  // DNS, connect, TLS or timeout failure; no response
	ErrProvider   // the provider answered with a non-2xx status
	ErrSchema     // the body is not the JSON document we expect

	None of them are retried. The caller aborts the run.
*/

var (
	ErrTransport = errors.New("transport error")
	ErrProvider  = errors.New("provider error")
	ErrSchema    = errors.New("malformed response")
)

// DefaultTimeout bounds a whole request, body included.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response ends up in the message.
const maxErrorBody = 512

type Client struct {
	HTTPClient *http.Client
}

func New() *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// GetJSON fetches rawURL and decodes the body into target.
//
// rawURL carries an API key in its query string. It is never logged and
// every error reports the URL with the query removed.
func (c *Client) GetJSON(ctx context.Context, rawURL string, target any) error {
	safe := Redact(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: build request for %s: %v", ErrTransport, safe, redactErr(err))
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("fetching", "url", safe)
	start := time.Now()

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrTransport, safe, redactErr(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response from %s: %w", ErrTransport, safe, redactErr(err))
	}

	slog.Debug("fetched", "url", safe, "status", resp.StatusCode, "bytes", len(body), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: safe, StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrSchema, safe, err)
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// StatusError is returned for non-2xx responses. It matches ErrProvider.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: GET %s returned %d %s", ErrProvider, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

func (e *StatusError) Unwrap() error { return ErrProvider }

// Redact strips the query string and fragment from rawURL.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
			return rawURL[:i]
		}
		return rawURL
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.User = nil
	return u.String()
}

// redactErr drops the URL net/http embeds in *url.Error, keeping the cause.
func redactErr(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
