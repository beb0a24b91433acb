package google

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/easton-hill/wakeup/pkg/directions"
	"github.com/easton-hill/wakeup/pkg/fetch"
	"github.com/easton-hill/wakeup/pkg/secrets"
)

/*
	Directions API status codes (HTTP 200 body, "status" field)

	OK                         // At least one route
	ZERO_RESULTS               // No route between origin and destination
	NOT_FOUND                  // Origin, destination or a waypoint could not be geocoded
	MAX_WAYPOINTS_EXCEEDED
	MAX_ROUTE_LENGTH_EXCEEDED
	INVALID_REQUEST
	OVER_DAILY_LIMIT           // Billing or key problem
	OVER_QUERY_LIMIT
	REQUEST_DENIED             // Invalid key or API not enabled
	UNKNOWN_ERROR
*/

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/directions/json"

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Response is the subset of the Directions document the report uses.
type Response struct {
	Status       *string     `json:"status"`
	ErrorMessage string      `json:"error_message"`
	Routes       []RouteData `json:"routes"`
}

type RouteData struct {
	Summary *string   `json:"summary"`
	Legs    []LegData `json:"legs"`
}

type LegData struct {
	Duration *TextValue `json:"duration"`
	Distance *TextValue `json:"distance"`
}

type TextValue struct {
	Text *string `json:"text"`
}

type Provider struct {
	BaseURL string
	Secrets secrets.Provider
	Fetcher *fetch.Client
}

func New(sec secrets.Provider, fetcher *fetch.Client) *Provider {
	return &Provider{
		BaseURL: DefaultBaseURL,
		Secrets: sec,
		Fetcher: fetcher,
	}
}

// Directions reads the API key, requests routes for q and converts them
// into a report. A missing key fails before any request.
func (p *Provider) Directions(ctx context.Context, q directions.Query) (*directions.Report, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("directions query: %w", err)
	}

	apiKey, err := secrets.Require(p.Secrets, secrets.DirectionsKey)
	if err != nil {
		return nil, err
	}

	slog.Debug("requesting directions", "waypoints", len(q.Waypoints), "avoid", q.Avoid)

	var data Response
	if err := p.fetcher().GetJSON(ctx, BuildURL(p.baseURL(), q, apiKey), &data); err != nil {
		return nil, fmt.Errorf("fetch directions: %w", err)
	}

	return data.Report()
}

// CheckSecrets reports whether the API key is configured, without making
// a request.
func (p *Provider) CheckSecrets() error {
	_, err := secrets.Require(p.Secrets, secrets.DirectionsKey)
	return err
}

func (p *Provider) baseURL() string {
	if p.BaseURL == "" {
		return DefaultBaseURL
	}
	return p.BaseURL
}

func (p *Provider) fetcher() *fetch.Client {
	if p.Fetcher == nil {
		return fetch.New()
	}
	return p.Fetcher
}

// BuildURL returns the Directions URL for q. Addresses are trimmed and
// their whitespace replaced with "+"; nothing else is escaped. The result
// contains the key and must not be logged.
func BuildURL(base string, q directions.Query, apiKey string) string {
	var b strings.Builder

	b.WriteString(base)
	b.WriteString("?origin=")
	b.WriteString(Address(q.Origin))
	b.WriteString("&destination=")
	b.WriteString(Address(q.Destination))

	if len(q.Waypoints) > 0 {
		waypoints := make([]string, len(q.Waypoints))
		for i, w := range q.Waypoints {
			waypoints[i] = "via:" + Address(w)
		}
		b.WriteString("&waypoints=")
		b.WriteString(strings.Join(waypoints, "|"))
	}
	if len(q.Avoid) > 0 {
		avoid := make([]string, len(q.Avoid))
		for i, a := range q.Avoid {
			avoid[i] = string(a)
		}
		b.WriteString("&avoid=")
		b.WriteString(strings.Join(avoid, "|"))
	}

	b.WriteString("&key=")
	b.WriteString(apiKey)
	return b.String()
}

// Address makes a free-text address safe to embed: "  Uptown, Dallas, TX "
// becomes "Uptown,+Dallas,+TX".
func Address(s string) string {
	return strings.Join(strings.Fields(s), "+")
}

// Report converts the response into a directions.Report. Only the first
// leg of each route is read.
func (r *Response) Report() (*directions.Report, error) {
	if r.Status != nil && *r.Status != statusOK && *r.Status != statusZeroResults {
		msg := fmt.Sprintf("%s: directions status %s", fetch.ErrProvider, *r.Status)
		if r.ErrorMessage != "" {
			msg += ": " + r.ErrorMessage
		}
		return nil, &StatusError{Status: *r.Status, msg: msg}
	}
	if r.Routes == nil {
		return nil, missing("routes")
	}

	routes := make([]directions.Route, 0, len(r.Routes))
	for i, route := range r.Routes {
		field := fmt.Sprintf("routes[%d]", i)
		if route.Summary == nil {
			return nil, missing(field + ".summary")
		}
		if len(route.Legs) == 0 {
			return nil, missing(field + ".legs[0]")
		}
		leg := route.Legs[0]
		if leg.Duration == nil || leg.Duration.Text == nil {
			return nil, missing(field + ".legs[0].duration.text")
		}
		if leg.Distance == nil || leg.Distance.Text == nil {
			return nil, missing(field + ".legs[0].distance.text")
		}
		routes = append(routes, directions.Route{
			Summary:  *route.Summary,
			Duration: *leg.Duration.Text,
			Distance: *leg.Distance.Text,
		})
	}

	return &directions.Report{Routes: routes}, nil
}

// StatusError is a failure the API reported in the body of a 200
// response. It matches fetch.ErrProvider.
type StatusError struct {
	Status string
	msg    string
}

func (e *StatusError) Error() string { return e.msg }

func (e *StatusError) Unwrap() error { return fetch.ErrProvider }

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", fetch.ErrSchema, field)
}
