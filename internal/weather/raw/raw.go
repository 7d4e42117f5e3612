// Package raw mirrors the Met Office DataHub site-specific JSON payload.
//
// Field names follow the provider. Pointer fields are the ones the provider
// omits for some records; see the per-granularity types for which.
package raw

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the provider's timestamp format: minutes precision, always UTC.
const TimeLayout = "2006-01-02T15:04Z"

// Time is a provider timestamp such as "2023-07-05T10:00Z".
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid provider time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(TimeLayout))
}

// Forecast is the FeatureCollection envelope, generic over the time series
// element of one granularity.
type Forecast[T any] struct {
	Type     string       `json:"type"`
	Features []Feature[T] `json:"features"`
}

type Feature[T any] struct {
	Type       string        `json:"type"`
	Geometry   Geometry      `json:"geometry"`
	Properties Properties[T] `json:"properties"`
}

type Geometry struct {
	Type string `json:"type"`
	// Coordinates are (longitude, latitude, altitude).
	Coordinates []float64 `json:"coordinates"`
}

type Properties[T any] struct {
	Location             Location `json:"location"`
	RequestPointDistance float32  `json:"requestPointDistance"`
	ModelRunDate         Time     `json:"modelRunDate"`
	TimeSeries           []T      `json:"timeSeries"`
}

type Location struct {
	Name string `json:"name"`
}

// Hourly is one element of the hourly time series.
//
// The provider drops the five pointer fields from the last three records of
// its 49 hour series.
type Hourly struct {
	Time                      Time     `json:"time"`
	ScreenTemperature         float32  `json:"screenTemperature"`
	MaxScreenAirTemp          *float32 `json:"maxScreenAirTemp,omitempty"`
	MinScreenAirTemp          *float32 `json:"minScreenAirTemp,omitempty"`
	ScreenDewPointTemperature float32  `json:"screenDewPointTemperature"`
	FeelsLikeTemperature      float32  `json:"feelsLikeTemperature"`
	WindSpeed10m              float32  `json:"windSpeed10m"`
	WindDirectionFrom10m      float32  `json:"windDirectionFrom10m"`
	WindGustSpeed10m          float32  `json:"windGustSpeed10m"`
	Max10mWindGust            *float32 `json:"max10mWindGust,omitempty"`
	Visibility                float32  `json:"visibility"`
	ScreenRelativeHumidity    float32  `json:"screenRelativeHumidity"`
	Mslp                      uint32   `json:"mslp"`
	UvIndex                   uint8    `json:"uvIndex"`
	SignificantWeatherCode    int8     `json:"significantWeatherCode"`
	PrecipitationRate         float32  `json:"precipitationRate"`
	TotalPrecipAmount         *float32 `json:"totalPrecipAmount,omitempty"`
	TotalSnowAmount           *float32 `json:"totalSnowAmount,omitempty"`
	ProbOfPrecipitation       float32  `json:"probOfPrecipitation"`
}

// ThreeHourly is one element of the three-hourly time series. Every field is
// always present.
type ThreeHourly struct {
	Time                   Time    `json:"time"`
	MaxScreenAirTemp       float32 `json:"maxScreenAirTemp"`
	MinScreenAirTemp       float32 `json:"minScreenAirTemp"`
	Max10mWindGust         float32 `json:"max10mWindGust"`
	SignificantWeatherCode int8    `json:"significantWeatherCode"`
	TotalPrecipAmount      float32 `json:"totalPrecipAmount"`
	TotalSnowAmount        float32 `json:"totalSnowAmount"`
	WindSpeed10m           float32 `json:"windSpeed10m"`
	WindDirectionFrom10m   float32 `json:"windDirectionFrom10m"`
	WindGustSpeed10m       float32 `json:"windGustSpeed10m"`
	Visibility             float32 `json:"visibility"`
	Mslp                   uint32  `json:"mslp"`
	ScreenRelativeHumidity float32 `json:"screenRelativeHumidity"`
	FeelsLikeTemp          float32 `json:"feelsLikeTemp"`
	UvIndex                uint8   `json:"uvIndex"`
	ProbOfPrecipitation    float32 `json:"probOfPrecipitation"`
	ProbOfSnow             float32 `json:"probOfSnow"`
	ProbOfHeavySnow        float32 `json:"probOfHeavySnow"`
	ProbOfRain             float32 `json:"probOfRain"`
	ProbOfHeavyRain        float32 `json:"probOfHeavyRain"`
	ProbOfHail             float32 `json:"probOfHail"`
	ProbOfSferics          float32 `json:"probOfSferics"`
}

// Daily is one element of the daily time series: a day and the night that
// follows it.
//
// The first record of a series describes a day that has already passed and
// lacks every pointer field. Night fields are always present.
type Daily struct {
	Time Time `json:"time"`

	Midday10MWindSpeed        float32 `json:"midday10MWindSpeed"`
	Midnight10MWindSpeed      float32 `json:"midnight10MWindSpeed"`
	Midday10MWindDirection    float32 `json:"midday10MWindDirection"`
	Midnight10MWindDirection  float32 `json:"midnight10MWindDirection"`
	Midday10MWindGust         float32 `json:"midday10MWindGust"`
	Midnight10MWindGust       float32 `json:"midnight10MWindGust"`
	MiddayVisibility          float32 `json:"middayVisibility"`
	MidnightVisibility        float32 `json:"midnightVisibility"`
	MiddayRelativeHumidity    float32 `json:"middayRelativeHumidity"`
	MidnightRelativeHumidity  float32 `json:"midnightRelativeHumidity"`
	MiddayMslp                uint32  `json:"middayMslp"`
	MidnightMslp              uint32  `json:"midnightMslp"`
	MaxUvIndex                *uint8  `json:"maxUvIndex,omitempty"`
	DaySignificantWeatherCode *int8   `json:"daySignificantWeatherCode,omitempty"`

	NightSignificantWeatherCode int8 `json:"nightSignificantWeatherCode"`

	DayMaxScreenTemperature   float32 `json:"dayMaxScreenTemperature"`
	NightMinScreenTemperature float32 `json:"nightMinScreenTemperature"`
	DayUpperBoundMaxTemp      float32 `json:"dayUpperBoundMaxTemp"`
	NightUpperBoundMinTemp    float32 `json:"nightUpperBoundMinTemp"`
	DayLowerBoundMaxTemp      float32 `json:"dayLowerBoundMaxTemp"`
	NightLowerBoundMinTemp    float32 `json:"nightLowerBoundMinTemp"`

	DayMaxFeelsLikeTemp             *float32 `json:"dayMaxFeelsLikeTemp,omitempty"`
	NightMinFeelsLikeTemp           float32  `json:"nightMinFeelsLikeTemp"`
	DayUpperBoundMaxFeelsLikeTemp   float32  `json:"dayUpperBoundMaxFeelsLikeTemp"`
	NightUpperBoundMinFeelsLikeTemp float32  `json:"nightUpperBoundMinFeelsLikeTemp"`
	DayLowerBoundMaxFeelsLikeTemp   float32  `json:"dayLowerBoundMaxFeelsLikeTemp"`
	NightLowerBoundMinFeelsLikeTemp float32  `json:"nightLowerBoundMinFeelsLikeTemp"`

	DayProbabilityOfPrecipitation   *float32 `json:"dayProbabilityOfPrecipitation,omitempty"`
	NightProbabilityOfPrecipitation float32  `json:"nightProbabilityOfPrecipitation"`
	DayProbabilityOfSnow            *float32 `json:"dayProbabilityOfSnow,omitempty"`
	NightProbabilityOfSnow          float32  `json:"nightProbabilityOfSnow"`
	DayProbabilityOfHeavySnow       *float32 `json:"dayProbabilityOfHeavySnow,omitempty"`
	NightProbabilityOfHeavySnow     float32  `json:"nightProbabilityOfHeavySnow"`
	DayProbabilityOfRain            *float32 `json:"dayProbabilityOfRain,omitempty"`
	NightProbabilityOfRain          float32  `json:"nightProbabilityOfRain"`
	DayProbabilityOfHeavyRain       *float32 `json:"dayProbabilityOfHeavyRain,omitempty"`
	NightProbabilityOfHeavyRain     float32  `json:"nightProbabilityOfHeavyRain"`
	DayProbabilityOfHail            *float32 `json:"dayProbabilityOfHail,omitempty"`
	NightProbabilityOfHail          float32  `json:"nightProbabilityOfHail"`
	DayProbabilityOfSferics         *float32 `json:"dayProbabilityOfSferics,omitempty"`
	NightProbabilityOfSferics       float32  `json:"nightProbabilityOfSferics"`
}
