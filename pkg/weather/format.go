package weather

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const mmPerInch = 25.4

// Clock decides which zone report times are shown in.
type Clock func(time.Time) time.Time

var (
	// ProviderClock keeps the UTC offset the provider declared for the
	// forecast location.
	ProviderClock Clock = func(t time.Time) time.Time { return t }

	// LocalClock shows times in the zone of the machine running the job.
	LocalClock Clock = func(t time.Time) time.Time { return t.Local() }
)

// Formatter renders a Report as an HTML fragment.
type Formatter struct {
	Clock Clock
}

// Format returns a <pre> block with current conditions, today's forecast
// and, when there are any, the active alerts. Alert descriptions are left
// out to keep the briefing short.
func (f Formatter) Format(r *Report) string {
	var b strings.Builder

	b.WriteString("<pre>")

	c := r.Current
	fmt.Fprintf(&b, "<b>Current Weather (%s):</b>\n", f.clock(c.Time))
	fmt.Fprintf(&b, "Temp: %d&deg; (feels like %d&deg;)\n", Degrees(c.Temp), Degrees(c.FeelsLike))
	fmt.Fprintf(&b, "Conditions: %s\n", strings.Join(c.Conditions, ", "))
	writePrecip(&b, c.Rain, c.Snow)
	b.WriteString("\n")

	d := r.Today
	b.WriteString("<b>Daily Forecast:</b>\n")
	fmt.Fprintf(&b, "Sunrise/sunset: %s - %s\n", f.clock(d.Sunrise), f.clock(d.Sunset))
	fmt.Fprintf(&b, "Hi/Lo: %d&deg;/%d&deg;\n", Degrees(d.Max), Degrees(d.Min))
	fmt.Fprintf(&b, "Conditions: %s\n", strings.Join(d.Conditions, ", "))
	writePrecip(&b, d.Rain, d.Snow)

	if len(r.Alerts) > 0 {
		b.WriteString("\n")
		b.WriteString("<b>Weather Alerts</b>\n")
		for _, a := range r.Alerts {
			fmt.Fprintf(&b, "%s from %s - %s\n", a.Event, f.clock(a.Start), f.clock(a.End))
		}
	}

	b.WriteString("</pre>")
	return b.String()
}

func (f Formatter) clock(t time.Time) string {
	c := f.Clock
	if c == nil {
		c = ProviderClock
	}
	return ClockTime(c(t))
}

func writePrecip(b *strings.Builder, rain, snow *float64) {
	if rain != nil {
		fmt.Fprintf(b, "Rain: %s\n", Inches(*rain))
	}
	if snow != nil {
		fmt.Fprintf(b, "Snow: %s\n", Inches(*snow))
	}
}

// ClockTime renders t as a 12-hour clock time without a leading zero,
// e.g. "7:05 AM".
func ClockTime(t time.Time) string {
	return t.Format("3:04 PM")
}

// Degrees rounds a temperature to the nearest whole degree.
func Degrees(temp float64) int {
	return int(math.Round(temp))
}

// Inches converts millimetres of precipitation to inches with one decimal,
// e.g. 25.4 -> "1.0 in.".
func Inches(mm float64) string {
	return strconv.FormatFloat(mm/mmPerInch, 'f', 1, 64) + " in."
}
