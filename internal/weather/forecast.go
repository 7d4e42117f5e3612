// Package weather converts Met Office DataHub site-specific forecasts into
// typed domain records and builds the DataHub request URLs.
//
// Conversion is pure: no I/O, no shared state. Every function may be called
// concurrently.
package weather

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/i474232898/metoffice-forecast/internal/units"
	"github.com/i474232898/metoffice-forecast/internal/weather/raw"
)

// Forecast is a series of predictions for one site.
type Forecast[T Period] struct {
	// Forecast location name.
	LocationName string `json:"locationName"`
	// Location of the point the forecast was made for.
	Coordinates units.Coordinates `json:"coordinates"`
	// Distance from the requested point to the forecast point.
	RequestedPointDistance units.Metres `json:"requestedPointDistance"`
	// Time the weather model was run, in UTC.
	PredictionsMadeAt time.Time `json:"predictionsMadeAt"`
	// Predictions in provider order.
	Predictions []T `json:"predictions"`
}

// fromRaw takes the first feature of the collection and converts its time
// series with convert, stopping at the first record that fails.
func fromRaw[R any, T Period](rf raw.Forecast[R], convert func(R) (T, error)) (*Forecast[T], error) {
	if len(rf.Features) == 0 {
		return nil, &SchemaError{Err: errNoFeatures}
	}
	feature := rf.Features[0]

	triple := feature.Geometry.Coordinates
	if len(triple) != 3 {
		return nil, schemaErrorf("geometry has %d coordinates, want 3", len(triple))
	}
	coords, err := units.CoordinatesFromTriple([3]float64{triple[0], triple[1], triple[2]})
	if err != nil {
		return nil, err
	}

	series := feature.Properties.TimeSeries
	predictions := make([]T, 0, len(series))
	for i, r := range series {
		p, err := convert(r)
		if err != nil {
			return nil, fmt.Errorf("time series entry %d: %w", i, err)
		}
		predictions = append(predictions, p)
	}

	return &Forecast[T]{
		LocationName:           feature.Properties.Location.Name,
		Coordinates:            coords,
		RequestedPointDistance: units.Metres(feature.Properties.RequestPointDistance),
		PredictionsMadeAt:      feature.Properties.ModelRunDate.Time,
		Predictions:            predictions,
	}, nil
}

func decode[R any](data []byte) (raw.Forecast[R], error) {
	var rf raw.Forecast[R]
	if err := json.Unmarshal(data, &rf); err != nil {
		return rf, &SchemaError{Err: err}
	}
	return rf, nil
}

// HourlyFromRawForecast converts an already decoded hourly payload.
func HourlyFromRawForecast(rf raw.Forecast[raw.Hourly]) (*Forecast[Hourly], error) {
	return fromRaw(rf, HourlyFromRaw)
}

// ParseHourly decodes and converts an hourly payload.
func ParseHourly(data []byte) (*Forecast[Hourly], error) {
	rf, err := decode[raw.Hourly](data)
	if err != nil {
		return nil, err
	}
	return HourlyFromRawForecast(rf)
}

func ParseHourlyString(s string) (*Forecast[Hourly], error) {
	return ParseHourly([]byte(s))
}

// ThreeHourlyFromRawForecast converts an already decoded three-hourly payload.
func ThreeHourlyFromRawForecast(rf raw.Forecast[raw.ThreeHourly]) (*Forecast[ThreeHourly], error) {
	return fromRaw(rf, ThreeHourlyFromRaw)
}

// ParseThreeHourly decodes and converts a three-hourly payload.
func ParseThreeHourly(data []byte) (*Forecast[ThreeHourly], error) {
	rf, err := decode[raw.ThreeHourly](data)
	if err != nil {
		return nil, err
	}
	return ThreeHourlyFromRawForecast(rf)
}

func ParseThreeHourlyString(s string) (*Forecast[ThreeHourly], error) {
	return ParseThreeHourly([]byte(s))
}

// DailyFromRawForecast converts an already decoded daily payload.
func DailyFromRawForecast(rf raw.Forecast[raw.Daily]) (*Forecast[Daily], error) {
	return fromRaw(rf, DailyFromRaw)
}

// ParseDaily decodes and converts a daily payload.
func ParseDaily(data []byte) (*Forecast[Daily], error) {
	rf, err := decode[raw.Daily](data)
	if err != nil {
		return nil, err
	}
	return DailyFromRawForecast(rf)
}

func ParseDailyString(s string) (*Forecast[Daily], error) {
	return ParseDaily([]byte(s))
}

// ParseAs decodes a payload whose granularity is only known at run time. The
// result is a *Forecast[Hourly], *Forecast[ThreeHourly] or *Forecast[Daily].
func ParseAs(g Granularity, data []byte) (any, error) {
	switch g {
	case GranularityHourly:
		return ParseHourly(data)
	case GranularityThreeHourly:
		return ParseThreeHourly(data)
	case GranularityDaily:
		return ParseDaily(data)
	default:
		return nil, fmt.Errorf("unknown granularity %v", g)
	}
}

// Parse decodes and converts a payload of the granularity of T.
func Parse[T Period](data []byte) (*Forecast[T], error) {
	var (
		f   any
		err error
	)
	switch GranularityOf[T]() {
	case GranularityHourly:
		f, err = ParseHourly(data)
	case GranularityThreeHourly:
		f, err = ParseThreeHourly(data)
	default:
		f, err = ParseDaily(data)
	}
	if err != nil {
		return nil, err
	}
	return f.(*Forecast[T]), nil
}
