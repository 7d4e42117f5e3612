package weather

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/i474232898/metoffice-forecast/internal/units"
	"github.com/i474232898/metoffice-forecast/internal/weather/raw"
)

// Daily is the forecast for a day, dawn to dusk, and the night that follows
// it, dusk to dawn.
type Daily struct {
	Time time.Time `json:"time"`
	// Day is a PastDay for the first record of a series and a FutureDay for
	// every later one.
	Day   Day   `json:"day"`
	Night Night `json:"night"`
}

// TemperaturePrediction is a forecast extreme temperature with its 97.5%
// confidence bounds.
type TemperaturePrediction struct {
	MostLikely units.Celsius `json:"mostLikely"`
	UpperBound units.Celsius `json:"upperBound"`
	LowerBound units.Celsius `json:"lowerBound"`
}

// Day is PastDay or FutureDay.
type Day interface {
	isDay()
}

// Midday holds the conditions at 12pm local time. Wind values are 10 minute
// means at 10m; humidity is at screen level.
type Midday struct {
	WindSpeed        units.MetresPerSecond `json:"windSpeed"`
	WindDirection    units.Degrees         `json:"windDirection"`
	WindGustSpeed    units.MetresPerSecond `json:"windGustSpeed"`
	Visibility       units.Metres          `json:"visibility"`
	RelativeHumidity units.Percentage      `json:"relativeHumidity"`
	Pressure         units.Pascals         `json:"pressure"`
}

// PastDay is a day that had already elapsed when the model ran. The provider
// only reports its midday state and temperature extremes.
type PastDay struct {
	Midday
	TemperatureMaximum TemperaturePrediction `json:"temperatureMaximum"`
	// 97.5% confidence bounds of the maximum feels-like temperature.
	TemperatureFeelsLikeMaximumUpperBound units.Celsius `json:"temperatureFeelsLikeMaximumUpperBound"`
	TemperatureFeelsLikeMaximumLowerBound units.Celsius `json:"temperatureFeelsLikeMaximumLowerBound"`
}

// FutureDay is a day the model forecasts in full.
type FutureDay struct {
	Midday
	UvIndexMaximum              units.UvIndex         `json:"uvIndexMaximum"`
	Conditions                  units.Conditions      `json:"conditions"`
	TemperatureMaximum          TemperaturePrediction `json:"temperatureMaximum"`
	TemperatureFeelsLikeMaximum TemperaturePrediction `json:"temperatureFeelsLikeMaximum"`
	Probabilities
}

// Probabilities of precipitation types over a day or night. Heavy rain is
// more than 1mm/hour; heavy snow more than 1cm/hour.
type Probabilities struct {
	PrecipitationProbability units.Percentage `json:"precipitationProbability"`
	RainProbability          units.Percentage `json:"rainProbability"`
	HeavyRainProbability     units.Percentage `json:"heavyRainProbability"`
	SnowProbability          units.Percentage `json:"snowProbability"`
	HeavySnowProbability     units.Percentage `json:"heavySnowProbability"`
	HailProbability          units.Percentage `json:"hailProbability"`
	LightningProbability     units.Percentage `json:"lightningProbability"`
}

func (PastDay) isDay()   {}
func (FutureDay) isDay() {}

func (d PastDay) MarshalJSON() ([]byte, error) {
	type alias PastDay
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"past", alias(d)})
}

func (d FutureDay) MarshalJSON() ([]byte, error) {
	type alias FutureDay
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"future", alias(d)})
}

// Night holds the conditions at midnight local time and the extremes over the
// night. It is always complete.
type Night struct {
	WindSpeed                   units.MetresPerSecond `json:"windSpeed"`
	WindDirection               units.Degrees         `json:"windDirection"`
	WindGustSpeed               units.MetresPerSecond `json:"windGustSpeed"`
	Visibility                  units.Metres          `json:"visibility"`
	RelativeHumidity            units.Percentage      `json:"relativeHumidity"`
	Pressure                    units.Pascals         `json:"pressure"`
	Conditions                  units.Conditions      `json:"conditions"`
	TemperatureMinimum          TemperaturePrediction `json:"temperatureMinimum"`
	TemperatureFeelsLikeMinimum TemperaturePrediction `json:"temperatureFeelsLikeMinimum"`
	Probabilities
}

// DailyFromRaw converts one daily record.
//
// Whether the day is past or future is decided by the presence of
// dayMaxFeelsLikeTemp. The provider leaves it out only for the first, already
// elapsed, day of a series. This follows observed provider output rather than
// a schema field and will misclassify records if the provider changes which
// fields it omits.
func DailyFromRaw(r raw.Daily) (Daily, error) {
	var day Day
	if r.DayMaxFeelsLikeTemp == nil {
		day = pastDayFromRaw(r)
	} else {
		d, err := futureDayFromRaw(r)
		if err != nil {
			return Daily{}, err
		}
		day = d
	}

	night, err := nightFromRaw(r)
	if err != nil {
		return Daily{}, err
	}

	return Daily{
		Time:  r.Time.Time,
		Day:   day,
		Night: night,
	}, nil
}

func middayFromRaw(r raw.Daily) Midday {
	return Midday{
		WindSpeed:        units.MetresPerSecond(r.Midday10MWindSpeed),
		WindDirection:    units.Degrees(r.Midday10MWindDirection),
		WindGustSpeed:    units.MetresPerSecond(r.Midday10MWindGust),
		Visibility:       units.Metres(r.MiddayVisibility),
		RelativeHumidity: units.Percentage(r.MiddayRelativeHumidity),
		Pressure:         units.Pascals(r.MiddayMslp),
	}
}

func dayMaximumFromRaw(r raw.Daily) TemperaturePrediction {
	return TemperaturePrediction{
		MostLikely: units.Celsius(r.DayMaxScreenTemperature),
		UpperBound: units.Celsius(r.DayUpperBoundMaxTemp),
		LowerBound: units.Celsius(r.DayLowerBoundMaxTemp),
	}
}

func pastDayFromRaw(r raw.Daily) PastDay {
	return PastDay{
		Midday:                                middayFromRaw(r),
		TemperatureMaximum:                    dayMaximumFromRaw(r),
		TemperatureFeelsLikeMaximumUpperBound: units.Celsius(r.DayUpperBoundMaxFeelsLikeTemp),
		TemperatureFeelsLikeMaximumLowerBound: units.Celsius(r.DayLowerBoundMaxFeelsLikeTemp),
	}
}

func futureDayFromRaw(r raw.Daily) (FutureDay, error) {
	var f fields
	uv := need(&f, "maxUvIndex", r.MaxUvIndex)
	code := need(&f, "daySignificantWeatherCode", r.DaySignificantWeatherCode)
	probs := Probabilities{
		PrecipitationProbability: units.Percentage(need(&f, "dayProbabilityOfPrecipitation", r.DayProbabilityOfPrecipitation)),
		RainProbability:          units.Percentage(need(&f, "dayProbabilityOfRain", r.DayProbabilityOfRain)),
		HeavyRainProbability:     units.Percentage(need(&f, "dayProbabilityOfHeavyRain", r.DayProbabilityOfHeavyRain)),
		SnowProbability:          units.Percentage(need(&f, "dayProbabilityOfSnow", r.DayProbabilityOfSnow)),
		HeavySnowProbability:     units.Percentage(need(&f, "dayProbabilityOfHeavySnow", r.DayProbabilityOfHeavySnow)),
		HailProbability:          units.Percentage(need(&f, "dayProbabilityOfHail", r.DayProbabilityOfHail)),
		LightningProbability:     units.Percentage(need(&f, "dayProbabilityOfSferics", r.DayProbabilityOfSferics)),
	}
	if len(f.missing) > 0 {
		return FutureDay{}, schemaErrorf("daily record %s: future day is missing %s",
			r.Time.Format(raw.TimeLayout), strings.Join(f.missing, ", "))
	}

	conditions, err := units.ConditionsFromCode(code)
	if err != nil {
		return FutureDay{}, err
	}

	return FutureDay{
		Midday:             middayFromRaw(r),
		UvIndexMaximum:     units.UvIndex(uv),
		Conditions:         conditions,
		TemperatureMaximum: dayMaximumFromRaw(r),
		TemperatureFeelsLikeMaximum: TemperaturePrediction{
			MostLikely: units.Celsius(*r.DayMaxFeelsLikeTemp),
			UpperBound: units.Celsius(r.DayUpperBoundMaxFeelsLikeTemp),
			LowerBound: units.Celsius(r.DayLowerBoundMaxFeelsLikeTemp),
		},
		Probabilities: probs,
	}, nil
}

func nightFromRaw(r raw.Daily) (Night, error) {
	conditions, err := units.ConditionsFromCode(r.NightSignificantWeatherCode)
	if err != nil {
		return Night{}, err
	}
	return Night{
		WindSpeed:        units.MetresPerSecond(r.Midnight10MWindSpeed),
		WindDirection:    units.Degrees(r.Midnight10MWindDirection),
		WindGustSpeed:    units.MetresPerSecond(r.Midnight10MWindGust),
		Visibility:       units.Metres(r.MidnightVisibility),
		RelativeHumidity: units.Percentage(r.MidnightRelativeHumidity),
		Pressure:         units.Pascals(r.MidnightMslp),
		Conditions:       conditions,
		TemperatureMinimum: TemperaturePrediction{
			MostLikely: units.Celsius(r.NightMinScreenTemperature),
			UpperBound: units.Celsius(r.NightUpperBoundMinTemp),
			LowerBound: units.Celsius(r.NightLowerBoundMinTemp),
		},
		TemperatureFeelsLikeMinimum: TemperaturePrediction{
			MostLikely: units.Celsius(r.NightMinFeelsLikeTemp),
			UpperBound: units.Celsius(r.NightUpperBoundMinFeelsLikeTemp),
			LowerBound: units.Celsius(r.NightLowerBoundMinFeelsLikeTemp),
		},
		Probabilities: Probabilities{
			PrecipitationProbability: units.Percentage(r.NightProbabilityOfPrecipitation),
			RainProbability:          units.Percentage(r.NightProbabilityOfRain),
			HeavyRainProbability:     units.Percentage(r.NightProbabilityOfHeavyRain),
			SnowProbability:          units.Percentage(r.NightProbabilityOfSnow),
			HeavySnowProbability:     units.Percentage(r.NightProbabilityOfHeavySnow),
			HailProbability:          units.Percentage(r.NightProbabilityOfHail),
			LightningProbability:     units.Percentage(r.NightProbabilityOfSferics),
		},
	}, nil
}

// fields collects the names of required fields found missing.
type fields struct {
	missing []string
}

func need[T any](f *fields, name string, v *T) T {
	if v == nil {
		f.missing = append(f.missing, name)
		var zero T
		return zero
	}
	return *v
}
