package weather

import (
	"time"

	"github.com/i474232898/metoffice-forecast/internal/units"
	"github.com/i474232898/metoffice-forecast/internal/weather/raw"
)

// ThreeHourly is the forecast for a three hour period.
type ThreeHourly struct {
	Time       time.Time        `json:"time"`
	Conditions units.Conditions `json:"conditions"`
	// Screen level extremes over the period.
	TemperatureMaximum   units.Celsius         `json:"temperatureMaximum"`
	TemperatureMinimum   units.Celsius         `json:"temperatureMinimum"`
	TemperatureFeelsLike units.Celsius         `json:"temperatureFeelsLike"`
	WindSpeed            units.MetresPerSecond `json:"windSpeed"`
	WindDirection        units.Degrees         `json:"windDirection"`
	WindGustSpeed        units.MetresPerSecond `json:"windGustSpeed"`
	// Most extreme wind speed that might be experienced in the period.
	WindGustThreeHourlyMaximum units.MetresPerSecond `json:"windGustThreeHourlyMaximum"`
	Visibility                 units.Metres          `json:"visibility"`
	RelativeHumidity           units.Percentage      `json:"relativeHumidity"`
	Pressure                   units.Pascals         `json:"pressure"`
	UvIndex                    units.UvIndex         `json:"uvIndex"`
	PrecipitationTotal         units.Millimetres     `json:"precipitationTotal"`
	SnowTotal                  units.Millimetres     `json:"snowTotal"`
	// Probabilities over the three hours centred at Time. Heavy means more
	// than 1mm per hour (liquid water equivalent for snow). Lightning is a
	// strike within 50km.
	PrecipitationProbability units.Percentage `json:"precipitationProbability"`
	RainProbability          units.Percentage `json:"rainProbability"`
	HeavyRainProbability     units.Percentage `json:"heavyRainProbability"`
	SnowProbability          units.Percentage `json:"snowProbability"`
	HeavySnowProbability     units.Percentage `json:"heavySnowProbability"`
	HailProbability          units.Percentage `json:"hailProbability"`
	LightningProbability     units.Percentage `json:"lightningProbability"`
}

// ThreeHourlyFromRaw converts one three-hourly record.
func ThreeHourlyFromRaw(r raw.ThreeHourly) (ThreeHourly, error) {
	conditions, err := units.ConditionsFromCode(r.SignificantWeatherCode)
	if err != nil {
		return ThreeHourly{}, err
	}
	return ThreeHourly{
		Time:                       r.Time.Time,
		Conditions:                 conditions,
		TemperatureMaximum:         units.Celsius(r.MaxScreenAirTemp),
		TemperatureMinimum:         units.Celsius(r.MinScreenAirTemp),
		TemperatureFeelsLike:       units.Celsius(r.FeelsLikeTemp),
		WindSpeed:                  units.MetresPerSecond(r.WindSpeed10m),
		WindDirection:              units.Degrees(r.WindDirectionFrom10m),
		WindGustSpeed:              units.MetresPerSecond(r.WindGustSpeed10m),
		WindGustThreeHourlyMaximum: units.MetresPerSecond(r.Max10mWindGust),
		Visibility:                 units.Metres(r.Visibility),
		RelativeHumidity:           units.Percentage(r.ScreenRelativeHumidity),
		Pressure:                   units.Pascals(r.Mslp),
		UvIndex:                    units.UvIndex(r.UvIndex),
		PrecipitationTotal:         units.Millimetres(r.TotalPrecipAmount),
		SnowTotal:                  units.Millimetres(r.TotalSnowAmount),
		PrecipitationProbability:   units.Percentage(r.ProbOfPrecipitation),
		RainProbability:            units.Percentage(r.ProbOfRain),
		HeavyRainProbability:       units.Percentage(r.ProbOfHeavyRain),
		SnowProbability:            units.Percentage(r.ProbOfSnow),
		HeavySnowProbability:       units.Percentage(r.ProbOfHeavySnow),
		HailProbability:            units.Percentage(r.ProbOfHail),
		LightningProbability:       units.Percentage(r.ProbOfSferics),
	}, nil
}
