package weather

import (
	"context"
	"fmt"
	"time"
)

type Provider interface {
	Forecast(ctx context.Context, q Query) (*Report, error)
}

type Location struct {
	Lat float64
	Lon float64
}

// Section is a block of the forecast the provider can leave out.
type Section string

const (
	SectionCurrent  Section = "current"
	SectionMinutely Section = "minutely"
	SectionHourly   Section = "hourly"
	SectionDaily    Section = "daily"
	SectionAlerts   Section = "alerts"
)

func (s Section) Valid() bool {
	switch s {
	case SectionCurrent, SectionMinutely, SectionHourly, SectionDaily, SectionAlerts:
		return true
	}
	return false
}

type Units string

const (
	UnitsDefault  Units = ""
	UnitsStandard Units = "standard"
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

func (u Units) Valid() bool {
	switch u {
	case UnitsDefault, UnitsStandard, UnitsMetric, UnitsImperial:
		return true
	}
	return false
}

type Query struct {
	Location Location
	Exclude  []Section
	Units    Units
	// Language is a BCP 47 tag for condition descriptions; empty leaves
	// the provider default.
	Language string
}

func (q Query) Validate() error {
	if q.Location.Lat < -90 || q.Location.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", q.Location.Lat)
	}
	if q.Location.Lon < -180 || q.Location.Lon > 180 {
		return fmt.Errorf("longitude %v out of range", q.Location.Lon)
	}
	for _, s := range q.Exclude {
		if !s.Valid() {
			return fmt.Errorf("unknown forecast section %q", s)
		}
	}
	if !q.Units.Valid() {
		return fmt.Errorf("unknown units %q", q.Units)
	}
	return nil
}

// Report is the part of a forecast the briefing shows. Times carry the
// zone of the forecast location. Rain and Snow are millimetres and nil
// when the provider reported none.
type Report struct {
	Current Current
	Today   Daily
	Alerts  []Alert
}

type Current struct {
	Time       time.Time
	Temp       float64
	FeelsLike  float64
	Conditions []string
	Rain       *float64
	Snow       *float64
}

type Daily struct {
	Sunrise    time.Time
	Sunset     time.Time
	Min        float64
	Max        float64
	Conditions []string
	Rain       *float64
	Snow       *float64
}

type Alert struct {
	Event       string
	Start       time.Time
	End         time.Time
	Description string
}
