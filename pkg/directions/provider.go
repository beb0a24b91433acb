package directions

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Provider interface {
	Directions(ctx context.Context, q Query) (*Report, error)
}

// Avoid is a road feature the route should stay off.
type Avoid string

const (
	AvoidTolls    Avoid = "tolls"
	AvoidHighways Avoid = "highways"
	AvoidFerries  Avoid = "ferries"
)

func (a Avoid) Valid() bool {
	switch a {
	case AvoidTolls, AvoidHighways, AvoidFerries:
		return true
	}
	return false
}

type Query struct {
	Origin      string
	Destination string
	// Waypoints are passed through in order without stopping.
	Waypoints []string
	Avoid     []Avoid
}

func (q Query) Validate() error {
	if strings.TrimSpace(q.Origin) == "" {
		return errors.New("origin is required")
	}
	if strings.TrimSpace(q.Destination) == "" {
		return errors.New("destination is required")
	}
	for i, w := range q.Waypoints {
		if strings.TrimSpace(w) == "" {
			return fmt.Errorf("waypoint %d is empty", i)
		}
	}
	for _, a := range q.Avoid {
		if !a.Valid() {
			return fmt.Errorf("unknown avoid flag %q", a)
		}
	}
	return nil
}

// Report lists the routes in the order the provider ranked them.
type Report struct {
	Routes []Route
}

// Route texts are the provider's localized strings, e.g. "24 mins" and
// "12.3 mi".
type Route struct {
	Summary  string
	Duration string
	Distance string
}
