package weather

import (
	"time"

	"github.com/i474232898/metoffice-forecast/internal/units"
	"github.com/i474232898/metoffice-forecast/internal/weather/raw"
)

// Hourly is the forecast for one hour.
//
// The pointer fields are trailing-window extremes and totals. The provider
// omits them after roughly 48 hours, so they are nil for the end of a series.
type Hourly struct {
	// Time at which this forecast is valid.
	Time time.Time `json:"time"`
	// Most significant weather at this time, taking into account both
	// instantaneous and preceding conditions.
	Conditions units.Conditions `json:"conditions"`
	// Temperature at screen level, about 1.5m above ground.
	Temperature units.Celsius `json:"temperature"`
	// Maximum screen temperature over the previous hour.
	TemperatureMaximum *units.Celsius `json:"temperatureMaximum,omitempty"`
	// Minimum screen temperature over the previous hour.
	TemperatureMinimum *units.Celsius `json:"temperatureMinimum,omitempty"`
	// Temperature it feels like, taking into account humidity and wind chill
	// but not radiation.
	TemperatureFeelsLike      units.Celsius `json:"temperatureFeelsLike"`
	ScreenDewPointTemperature units.Celsius `json:"screenDewPointTemperature"`
	// Probability of precipitation over the hour centred at Time.
	PrecipitationProbability units.Percentage         `json:"precipitationProbability"`
	PrecipitationRate        units.MillimetresPerHour `json:"precipitationRate"`
	// Depth of liquid water deposited since the previous hour.
	PrecipitationTotal *units.Millimetres `json:"precipitationTotal,omitempty"`
	// Snow that fell in the last hour as liquid water equivalent, roughly cm of
	// fresh snow. It does not reflect snow lying on the ground.
	SnowTotal *units.Millimetres `json:"snowTotal,omitempty"`
	// Mean speed and direction over the 10 minutes before Time, at 10m.
	WindSpeed     units.MetresPerSecond `json:"windSpeed"`
	WindDirection units.Degrees         `json:"windDirection"`
	// Maximum 3-second mean wind speed over the 10 minutes before Time.
	WindGustSpeed units.MetresPerSecond `json:"windGustSpeed"`
	// Maximum 3-second mean wind speed over the hour before Time.
	WindGustHourlyMaximum *units.MetresPerSecond `json:"windGustHourlyMaximum,omitempty"`
	Visibility            units.Metres           `json:"visibility"`
	RelativeHumidity      units.Percentage       `json:"relativeHumidity"`
	Pressure              units.Pascals          `json:"pressure"`
	// Maximum UV over the hour before Time.
	UvIndex units.UvIndex `json:"uvIndex"`
}

// HourlyFromRaw converts one hourly record. It fails only on an unknown
// weather code; absent optional fields stay nil.
func HourlyFromRaw(r raw.Hourly) (Hourly, error) {
	conditions, err := units.ConditionsFromCode(r.SignificantWeatherCode)
	if err != nil {
		return Hourly{}, err
	}
	return Hourly{
		Time:                      r.Time.Time,
		Conditions:                conditions,
		Temperature:               units.Celsius(r.ScreenTemperature),
		TemperatureMaximum:        optional[units.Celsius](r.MaxScreenAirTemp),
		TemperatureMinimum:        optional[units.Celsius](r.MinScreenAirTemp),
		TemperatureFeelsLike:      units.Celsius(r.FeelsLikeTemperature),
		ScreenDewPointTemperature: units.Celsius(r.ScreenDewPointTemperature),
		PrecipitationProbability:  units.Percentage(r.ProbOfPrecipitation),
		PrecipitationRate:         units.MillimetresPerHour(r.PrecipitationRate),
		PrecipitationTotal:        optional[units.Millimetres](r.TotalPrecipAmount),
		SnowTotal:                 optional[units.Millimetres](r.TotalSnowAmount),
		WindSpeed:                 units.MetresPerSecond(r.WindSpeed10m),
		WindDirection:             units.Degrees(r.WindDirectionFrom10m),
		WindGustSpeed:             units.MetresPerSecond(r.WindGustSpeed10m),
		WindGustHourlyMaximum:     optional[units.MetresPerSecond](r.Max10mWindGust),
		Visibility:                units.Metres(r.Visibility),
		RelativeHumidity:          units.Percentage(r.ScreenRelativeHumidity),
		Pressure:                  units.Pascals(r.Mslp),
		UvIndex:                   units.UvIndex(r.UvIndex),
	}, nil
}

// optional wraps a present raw value in its unit, leaving nil as nil. The
// result never aliases the raw record.
func optional[U ~float32](v *float32) *U {
	if v == nil {
		return nil
	}
	u := U(*v)
	return &u
}
