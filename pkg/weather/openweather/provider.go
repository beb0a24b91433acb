package openweather

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/easton-hill/wakeup/pkg/fetch"
	"github.com/easton-hill/wakeup/pkg/secrets"
	"github.com/easton-hill/wakeup/pkg/weather"
)

/*
	One Call API response codes

	200  // Success
	400  // Bad request (lat/lon out of range, unknown exclude)
	401  // Unauthorized (missing, invalid or unsubscribed API key)
	404  // No data for the requested coordinates
	429  // Too many requests (exceeded subscription quota)
	5xx  // Server error
*/

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/onecall"

// OneCall is the subset of the One Call document the report uses. Pointer
// fields are required; decoding leaves them nil when the key is absent.
type OneCall struct {
	TimezoneOffset *int         `json:"timezone_offset"`
	Current        *CurrentData `json:"current"`
	Daily          []DailyData  `json:"daily"`
	Alerts         []AlertData  `json:"alerts"`
}

type Condition struct {
	Description *string `json:"description"`
}

type Precip struct {
	LastHour *float64 `json:"1h"`
}

type CurrentData struct {
	DateTime  *int64      `json:"dt"`
	Temp      *float64    `json:"temp"`
	FeelsLike *float64    `json:"feels_like"`
	Weather   []Condition `json:"weather"`
	Rain      *Precip     `json:"rain"`
	Snow      *Precip     `json:"snow"`
}

type DailyData struct {
	Sunrise *int64 `json:"sunrise"`
	Sunset  *int64 `json:"sunset"`
	Temp    *struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"temp"`
	Weather []Condition `json:"weather"`
	Rain    *float64    `json:"rain"`
	Snow    *float64    `json:"snow"`
}

type AlertData struct {
	Event       *string `json:"event"`
	Start       *int64  `json:"start"`
	End         *int64  `json:"end"`
	Description string  `json:"description"`
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

// Forecast reads the API key, requests the One Call document for q and
// converts it into a report. A missing key fails before any request.
func (p *Provider) Forecast(ctx context.Context, q weather.Query) (*weather.Report, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("weather query: %w", err)
	}

	apiKey, err := secrets.Require(p.Secrets, secrets.WeatherKey)
	if err != nil {
		return nil, err
	}

	slog.Debug("requesting forecast", "lat", q.Location.Lat, "lon", q.Location.Lon, "units", q.Units)

	var data OneCall
	if err := p.fetcher().GetJSON(ctx, BuildURL(p.baseURL(), q, apiKey), &data); err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}

	return data.Report()
}

// CheckSecrets reports whether the API key is configured, without making
// a request.
func (p *Provider) CheckSecrets() error {
	_, err := secrets.Require(p.Secrets, secrets.WeatherKey)
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

// BuildURL returns the One Call URL for q. Required parameters come
// first, then the optional ones that are set, then the API key. The
// result contains the key and must not be logged.
func BuildURL(base string, q weather.Query, apiKey string) string {
	var b strings.Builder

	b.WriteString(base)
	b.WriteString("?lat=")
	b.WriteString(strconv.FormatFloat(q.Location.Lat, 'f', -1, 64))
	b.WriteString("&lon=")
	b.WriteString(strconv.FormatFloat(q.Location.Lon, 'f', -1, 64))

	if len(q.Exclude) > 0 {
		sections := make([]string, len(q.Exclude))
		for i, s := range q.Exclude {
			sections[i] = string(s)
		}
		b.WriteString("&exclude=")
		b.WriteString(strings.Join(sections, ","))
	}
	if q.Units != weather.UnitsDefault {
		b.WriteString("&units=")
		b.WriteString(string(q.Units))
	}
	if q.Language != "" {
		b.WriteString("&lang=")
		b.WriteString(langParam(q.Language))
	}

	b.WriteString("&appid=")
	b.WriteString(apiKey)
	return b.String()
}

// owmLanguages lists the base languages OpenWeatherMap names with its own
// code instead of the ISO 639-1 one.
var owmLanguages = map[string]string{
	"cs": "cz",
	"ko": "kr",
	"lv": "la",
	"nb": "no",
	"sq": "al",
	"uk": "ua",
}

// langParam maps a BCP 47 tag to the code OpenWeatherMap expects. Only
// Brazilian Portuguese and the two Chinese scripts keep a qualifier:
// "pt-BR" -> "pt_br", "zh-Hant-TW" -> "zh_tw", "zh" -> "zh_cn",
// "de-DE" -> "de", "cs" -> "cz".
func langParam(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(tag)
	}

	base, _ := t.Base()
	switch base.String() {
	case "pt":
		if region, conf := t.Region(); conf == language.Exact && region.String() == "BR" {
			return "pt_br"
		}
		return "pt"
	case "zh":
		if script, _ := t.Script(); script.String() == "Hant" {
			return "zh_tw"
		}
		return "zh_cn"
	}

	if code, ok := owmLanguages[base.String()]; ok {
		return code
	}
	return base.String()
}

// Report converts the document into a weather.Report, rejecting it when a
// required field is missing. Rain, snow and alerts are optional.
func (o *OneCall) Report() (*weather.Report, error) {
	if o.TimezoneOffset == nil {
		return nil, missing("timezone_offset")
	}
	zone := time.FixedZone("", *o.TimezoneOffset)
	at := func(epoch int64) time.Time { return time.Unix(epoch, 0).In(zone) }

	current, err := o.current(at)
	if err != nil {
		return nil, err
	}
	today, err := o.today(at)
	if err != nil {
		return nil, err
	}

	alerts := make([]weather.Alert, 0, len(o.Alerts))
	for i, a := range o.Alerts {
		switch {
		case a.Event == nil:
			return nil, missing(fmt.Sprintf("alerts[%d].event", i))
		case a.Start == nil:
			return nil, missing(fmt.Sprintf("alerts[%d].start", i))
		case a.End == nil:
			return nil, missing(fmt.Sprintf("alerts[%d].end", i))
		}
		alerts = append(alerts, weather.Alert{
			Event:       *a.Event,
			Start:       at(*a.Start),
			End:         at(*a.End),
			Description: a.Description,
		})
	}

	return &weather.Report{
		Current: current,
		Today:   today,
		Alerts:  alerts,
	}, nil
}

func (o *OneCall) current(at func(int64) time.Time) (weather.Current, error) {
	c := o.Current
	switch {
	case c == nil:
		return weather.Current{}, missing("current")
	case c.DateTime == nil:
		return weather.Current{}, missing("current.dt")
	case c.Temp == nil:
		return weather.Current{}, missing("current.temp")
	case c.FeelsLike == nil:
		return weather.Current{}, missing("current.feels_like")
	}

	conditions, err := descriptions("current.weather", c.Weather)
	if err != nil {
		return weather.Current{}, err
	}
	rain, err := lastHour("current.rain", c.Rain)
	if err != nil {
		return weather.Current{}, err
	}
	snow, err := lastHour("current.snow", c.Snow)
	if err != nil {
		return weather.Current{}, err
	}

	return weather.Current{
		Time:       at(*c.DateTime),
		Temp:       *c.Temp,
		FeelsLike:  *c.FeelsLike,
		Conditions: conditions,
		Rain:       rain,
		Snow:       snow,
	}, nil
}

func (o *OneCall) today(at func(int64) time.Time) (weather.Daily, error) {
	if len(o.Daily) == 0 {
		return weather.Daily{}, missing("daily[0]")
	}
	d := o.Daily[0]
	switch {
	case d.Sunrise == nil:
		return weather.Daily{}, missing("daily[0].sunrise")
	case d.Sunset == nil:
		return weather.Daily{}, missing("daily[0].sunset")
	case d.Temp == nil:
		return weather.Daily{}, missing("daily[0].temp")
	case d.Temp.Min == nil:
		return weather.Daily{}, missing("daily[0].temp.min")
	case d.Temp.Max == nil:
		return weather.Daily{}, missing("daily[0].temp.max")
	}

	conditions, err := descriptions("daily[0].weather", d.Weather)
	if err != nil {
		return weather.Daily{}, err
	}

	return weather.Daily{
		Sunrise:    at(*d.Sunrise),
		Sunset:     at(*d.Sunset),
		Min:        *d.Temp.Min,
		Max:        *d.Temp.Max,
		Conditions: conditions,
		Rain:       d.Rain,
		Snow:       d.Snow,
	}, nil
}

// descriptions requires the weather array to be present; an empty array
// is accepted.
func descriptions(field string, conds []Condition) ([]string, error) {
	if conds == nil {
		return nil, missing(field)
	}
	out := make([]string, 0, len(conds))
	for i, c := range conds {
		if c.Description == nil {
			return nil, missing(fmt.Sprintf("%s[%d].description", field, i))
		}
		out = append(out, *c.Description)
	}
	return out, nil
}

func lastHour(field string, p *Precip) (*float64, error) {
	if p == nil {
		return nil, nil
	}
	if p.LastHour == nil {
		return nil, missing(field + ".1h")
	}
	return p.LastHour, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", fetch.ErrSchema, field)
}
