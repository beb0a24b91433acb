package weather

import (
	"strings"
	"testing"
	"time"
)

// Dallas in CDT.
var central = time.FixedZone("", -5*3600)

func ptr(f float64) *float64 { return &f }

func sampleReport() *Report {
	return &Report{
		Current: Current{
			Time:       time.Date(2026, 10, 19, 7, 5, 0, 0, central),
			Temp:       72.4,
			FeelsLike:  70.1,
			Conditions: []string{"clear sky", "haze"},
		},
		Today: Daily{
			Sunrise:    time.Date(2026, 10, 19, 7, 25, 0, 0, central),
			Sunset:     time.Date(2026, 10, 19, 18, 50, 0, 0, central),
			Min:        63.2,
			Max:        80.6,
			Conditions: []string{"light rain"},
		},
	}
}

func TestFormat_Minimal(t *testing.T) {
	got := Formatter{}.Format(sampleReport())

	want := "<pre>" +
		"<b>Current Weather (7:05 AM):</b>\n" +
		"Temp: 72&deg; (feels like 70&deg;)\n" +
		"Conditions: clear sky, haze\n" +
		"\n" +
		"<b>Daily Forecast:</b>\n" +
		"Sunrise/sunset: 7:25 AM - 6:50 PM\n" +
		"Hi/Lo: 81&deg;/63&deg;\n" +
		"Conditions: light rain\n" +
		"</pre>"

	if got != want {
		t.Errorf("unexpected fragment:\n got: %q\nwant: %q", got, want)
	}
	for _, absent := range []string{"Rain:", "Snow:", "Weather Alerts"} {
		if strings.Contains(got, absent) {
			t.Errorf("fragment should not contain %q", absent)
		}
	}
}

func TestFormat_Precipitation(t *testing.T) {
	r := sampleReport()
	r.Current.Rain = ptr(25.4)
	r.Current.Snow = ptr(5.08)
	r.Today.Rain = ptr(12.7)

	got := Formatter{}.Format(r)

	for _, line := range []string{
		"Conditions: clear sky, haze\nRain: 1.0 in.\nSnow: 0.2 in.\n\n",
		"Conditions: light rain\nRain: 0.5 in.\n</pre>",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("expected %q in fragment:\n%s", line, got)
		}
	}
	if strings.Count(got, "Snow:") != 1 {
		t.Errorf("expected exactly one snow line:\n%s", got)
	}
}

func TestFormat_Alerts(t *testing.T) {
	r := sampleReport()
	r.Alerts = []Alert{
		{
			Event:       "Heat Advisory",
			Start:       time.Date(2026, 10, 19, 13, 0, 0, 0, central),
			End:         time.Date(2026, 10, 19, 20, 0, 0, 0, central),
			Description: "Heat index values up to 108 expected.",
		},
		{
			Event: "Air Quality Alert",
			Start: time.Date(2026, 10, 19, 0, 0, 0, 0, central),
			End:   time.Date(2026, 10, 19, 23, 59, 0, 0, central),
		},
	}

	got := Formatter{}.Format(r)

	want := "Conditions: light rain\n" +
		"\n" +
		"<b>Weather Alerts</b>\n" +
		"Heat Advisory from 1:00 PM - 8:00 PM\n" +
		"Air Quality Alert from 12:00 AM - 11:59 PM\n" +
		"</pre>"
	if !strings.HasSuffix(got, want) {
		t.Errorf("unexpected alerts section:\n%s", got)
	}
	if strings.Contains(got, "Heat index") {
		t.Error("alert descriptions should not be rendered")
	}
}

func TestFormat_Clock(t *testing.T) {
	orig := time.Local
	time.Local = time.UTC
	defer func() { time.Local = orig }()

	r := sampleReport()

	provider := Formatter{Clock: ProviderClock}.Format(r)
	if !strings.Contains(provider, "Current Weather (7:05 AM)") {
		t.Errorf("provider clock should keep the location offset:\n%s", provider)
	}

	local := Formatter{Clock: LocalClock}.Format(r)
	if !strings.Contains(local, "Current Weather (12:05 PM)") {
		t.Errorf("local clock should render in the machine zone:\n%s", local)
	}
	if !strings.Contains(local, "Sunrise/sunset: 12:25 PM - 11:50 PM") {
		t.Errorf("local clock should apply to daily times:\n%s", local)
	}
}

func TestClockTime(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "12:00 AM"},
		{time.Date(2026, 1, 1, 7, 5, 0, 0, time.UTC), "7:05 AM"},
		{time.Date(2026, 1, 1, 12, 30, 0, 0, time.UTC), "12:30 PM"},
		{time.Date(2026, 1, 1, 23, 59, 0, 0, time.UTC), "11:59 PM"},
	}
	for _, tt := range tests {
		if got := ClockTime(tt.t); got != tt.want {
			t.Errorf("ClockTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{72.4, 72},
		{70.1, 70},
		{72.5, 73},
		{-0.4, 0},
		{-3.6, -4},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Degrees(tt.in); got != tt.want {
			t.Errorf("Degrees(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInches(t *testing.T) {
	tests := []struct {
		mm   float64
		want string
	}{
		{25.4, "1.0 in."},
		{0, "0.0 in."},
		{0.25, "0.0 in."},
		{2.54, "0.1 in."},
		{50.8, "2.0 in."},
	}
	for _, tt := range tests {
		if got := Inches(tt.mm); got != tt.want {
			t.Errorf("Inches(%v) = %q, want %q", tt.mm, got, tt.want)
		}
	}
}

func TestQueryValidate(t *testing.T) {
	ok := Query{
		Location: Location{Lat: 32.777981, Lon: -96.796211},
		Exclude:  []Section{SectionMinutely, SectionHourly},
		Units:    UnitsImperial,
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []Query{
		{Location: Location{Lat: 91}},
		{Location: Location{Lon: -181}},
		{Exclude: []Section{"weekly"}},
		{Units: "kelvin"},
	}
	for _, q := range bad {
		if err := q.Validate(); err == nil {
			t.Errorf("expected error for %+v", q)
		}
	}
}
