// Package display renders converted forecasts as plain text tables.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/i474232898/metoffice-forecast/internal/units"
	"github.com/i474232898/metoffice-forecast/internal/weather"
)

// TimeLayout renders row times, e.g. "3PM Wed 5".
const TimeLayout = "3PM Mon 2"

type Align int

const (
	AlignRight Align = iota
	AlignLeft
	AlignCenter
)

// TemperatureFormat controls how a Celsius value is written. Width counts
// characters including the unit suffix; a value wider than Width is not
// truncated.
type TemperatureFormat struct {
	Width     int
	Precision int
	Align     Align
	// Sign forces a leading + on values >= 0.
	Sign bool
}

var DefaultTemperatureFormat = TemperatureFormat{Width: 7, Precision: 1}

func (f TemperatureFormat) Format(c units.Celsius) string {
	precision := f.Precision
	if precision < 0 {
		precision = 0
	}
	s := strconv.FormatFloat(float64(c), 'f', precision, 32) + "°C"
	if f.Sign && c >= 0 {
		s = "+" + s
	}

	pad := f.Width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	switch f.Align {
	case AlignLeft:
		return s + strings.Repeat(" ", pad)
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return strings.Repeat(" ", pad) + s
	}
}

// conditions renders e.g. "Light Rain Shower (Night)". Casers hold state, so
// one is made per call.
func conditions(c units.Conditions) string {
	title := cases.Title(language.English)
	s := title.String(c.String())
	if c.TimeOfDay != units.Unspecified {
		s += " (" + title.String(c.TimeOfDay.String()) + ")"
	}
	return s
}

// pressure groups digits, e.g. "101,325 Pa".
func pressure(p units.Pascals) string {
	return message.NewPrinter(language.BritishEnglish).Sprintf("%d Pa", p.Uint32())
}

func header[T weather.Period](w io.Writer, f *weather.Forecast[T]) {
	name := f.LocationName
	if name == "" {
		name = "Unnamed location"
	}
	line := fmt.Sprintf("%s (%s)", name, f.Coordinates)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, strings.Repeat("-", utf8.RuneCountInString(line)))
	fmt.Fprintf(w, "%s from requested point. Model run %s UTC.\n\n",
		f.RequestedPointDistance, f.PredictionsMadeAt.UTC().Format(TimeLayout))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func rowTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// WriteHourly writes one row per hour.
func WriteHourly(w io.Writer, f *weather.Forecast[weather.Hourly], tf TemperatureFormat) error {
	header(w, f)
	tw := newTable(w)
	fmt.Fprintln(tw, "Time\tConditions\tTemp\tFeels like\tRain\tWind\tGust\tHumidity\tPressure\tUV\t")
	for _, h := range f.Predictions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			rowTime(h.Time),
			conditions(h.Conditions),
			tf.Format(h.Temperature),
			tf.Format(h.TemperatureFeelsLike),
			h.PrecipitationProbability,
			h.WindSpeed,
			h.WindGustSpeed,
			h.RelativeHumidity,
			pressure(h.Pressure),
			h.UvIndex,
		)
	}
	return tw.Flush()
}

// WriteThreeHourly writes one row per three hour period.
func WriteThreeHourly(w io.Writer, f *weather.Forecast[weather.ThreeHourly], tf TemperatureFormat) error {
	header(w, f)
	tw := newTable(w)
	fmt.Fprintln(tw, "Time\tConditions\tMax\tMin\tFeels like\tRain\tSnow\tThunder\tWind\tGust\tPressure\tUV\t")
	for _, p := range f.Predictions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			rowTime(p.Time),
			conditions(p.Conditions),
			tf.Format(p.TemperatureMaximum),
			tf.Format(p.TemperatureMinimum),
			tf.Format(p.TemperatureFeelsLike),
			p.RainProbability,
			p.SnowProbability,
			p.LightningProbability,
			p.WindSpeed,
			p.WindGustSpeed,
			pressure(p.Pressure),
			p.UvIndex,
		)
	}
	return tw.Flush()
}

// WriteDaily writes one row per day. Elapsed days have no conditions or UV.
func WriteDaily(w io.Writer, f *weather.Forecast[weather.Daily], tf TemperatureFormat) error {
	header(w, f)
	tw := newTable(w)
	fmt.Fprintln(tw, "Date\tDay\tHigh\tUV\tNight\tLow\tRain (day/night)\t")
	for _, d := range f.Predictions {
		var (
			dayConditions = "-"
			high          string
			uv            = "-"
			dayRain       = "-"
		)
		switch day := d.Day.(type) {
		case weather.FutureDay:
			dayConditions = conditions(day.Conditions)
			high = tf.Format(day.TemperatureMaximum.MostLikely)
			uv = fmt.Sprintf("%s %s", day.UvIndexMaximum, day.UvIndexMaximum.Risk())
			dayRain = day.RainProbability.String()
		case weather.PastDay:
			high = tf.Format(day.TemperatureMaximum.MostLikely)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s / %s\t\n",
			d.Time.UTC().Format("Mon 2 Jan"),
			dayConditions,
			high,
			uv,
			conditions(d.Night.Conditions),
			tf.Format(d.Night.TemperatureMinimum.MostLikely),
			dayRain,
			d.Night.RainProbability,
		)
	}
	return tw.Flush()
}
