package units

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownCondition matches every *UnknownConditionError.
var ErrUnknownCondition = errors.New("unknown weather condition")

// UnknownConditionError reports a significant weather code outside the
// provider's table.
type UnknownConditionError struct {
	Code int8
}

func (e *UnknownConditionError) Error() string {
	return fmt.Sprintf("unknown weather condition code %d", e.Code)
}

func (e *UnknownConditionError) Is(target error) bool {
	return target == ErrUnknownCondition
}

// TimeOfDay distinguishes the provider codes that exist in a day and a night
// form. It is Unspecified for every other kind.
type TimeOfDay uint8

const (
	Unspecified TimeOfDay = iota
	Day
	Night
)

func (t TimeOfDay) String() string {
	switch t {
	case Day:
		return "day"
	case Night:
		return "night"
	default:
		return ""
	}
}

// Kind is the prevailing weather, without the day/night distinction.
type Kind uint8

const (
	TraceRain Kind = iota
	Clear
	Sunny
	PartlyCloudy
	Mist
	Fog
	Cloudy
	Overcast
	LightRainShower
	Drizzle
	LightRain
	HeavyRainShower
	HeavyRain
	SleetShower
	Sleet
	HailShower
	Hail
	LightSnowShower
	LightSnow
	HeavySnowShower
	HeavySnow
	ThunderShower
	Thunder
)

var kindDescriptions = [...]string{
	TraceRain:       "Trace of rain",
	Clear:           "Clear",
	Sunny:           "Sunny",
	PartlyCloudy:    "Partly cloudy",
	Mist:            "Mist",
	Fog:             "Fog",
	Cloudy:          "Cloudy",
	Overcast:        "Overcast",
	LightRainShower: "Light rain shower",
	Drizzle:         "Drizzle",
	LightRain:       "Light rain",
	HeavyRainShower: "Heavy rain shower",
	HeavyRain:       "Heavy rain",
	SleetShower:     "Sleet shower",
	Sleet:           "Sleet",
	HailShower:      "Hail shower",
	Hail:            "Hail",
	LightSnowShower: "Light snow shower",
	LightSnow:       "Light snow",
	HeavySnowShower: "Heavy snow shower",
	HeavySnow:       "Heavy snow",
	ThunderShower:   "Thunder shower",
	Thunder:         "Thunder",
}

func (k Kind) String() string {
	if int(k) < len(kindDescriptions) {
		return kindDescriptions[k]
	}
	return "Unknown"
}

// Conditions are the most significant weather conditions at a time, decoded
// from the provider's significant weather code.
//
// Codes that differ only by happening during the day or at night share a Kind
// and carry the difference in TimeOfDay. Clear (code 0) is always Night and
// Sunny (code 1) is always Day.
type Conditions struct {
	Kind      Kind
	TimeOfDay TimeOfDay
}

const minConditionCode = -1

// conditionTable is indexed by code+1. Code 4 is not used by the provider.
var conditionTable = [...]struct {
	conditions Conditions
	valid      bool
}{
	{Conditions{TraceRain, Unspecified}, true}, // -1
	{Conditions{Clear, Night}, true},           // 0
	{Conditions{Sunny, Day}, true},             // 1
	{Conditions{PartlyCloudy, Night}, true},    // 2
	{Conditions{PartlyCloudy, Day}, true},      // 3
	{},                                         // 4
	{Conditions{Mist, Unspecified}, true},      // 5
	{Conditions{Fog, Unspecified}, true},       // 6
	{Conditions{Cloudy, Unspecified}, true},    // 7
	{Conditions{Overcast, Unspecified}, true},  // 8
	{Conditions{LightRainShower, Night}, true}, // 9
	{Conditions{LightRainShower, Day}, true},   // 10
	{Conditions{Drizzle, Unspecified}, true},   // 11
	{Conditions{LightRain, Unspecified}, true}, // 12
	{Conditions{HeavyRainShower, Night}, true}, // 13
	{Conditions{HeavyRainShower, Day}, true},   // 14
	{Conditions{HeavyRain, Unspecified}, true}, // 15
	{Conditions{SleetShower, Night}, true},     // 16
	{Conditions{SleetShower, Day}, true},       // 17
	{Conditions{Sleet, Unspecified}, true},     // 18
	{Conditions{HailShower, Night}, true},      // 19
	{Conditions{HailShower, Day}, true},        // 20
	{Conditions{Hail, Unspecified}, true},      // 21
	{Conditions{LightSnowShower, Night}, true}, // 22
	{Conditions{LightSnowShower, Day}, true},   // 23
	{Conditions{LightSnow, Unspecified}, true}, // 24
	{Conditions{HeavySnowShower, Night}, true}, // 25
	{Conditions{HeavySnowShower, Day}, true},   // 26
	{Conditions{HeavySnow, Unspecified}, true}, // 27
	{Conditions{ThunderShower, Night}, true},   // 28
	{Conditions{ThunderShower, Day}, true},     // 29
	{Conditions{Thunder, Unspecified}, true},   // 30
}

// ConditionsFromCode decodes a significant weather code. Codes outside
// {-1, 0..30} and the unused code 4 return an *UnknownConditionError.
func ConditionsFromCode(code int8) (Conditions, error) {
	i := int(code) - minConditionCode
	if i < 0 || i >= len(conditionTable) || !conditionTable[i].valid {
		return Conditions{}, &UnknownConditionError{Code: code}
	}
	return conditionTable[i].conditions, nil
}

// Code returns the provider code the conditions were decoded from.
func (c Conditions) Code() int8 {
	for i, entry := range conditionTable {
		if entry.valid && entry.conditions == c {
			return int8(i + minConditionCode)
		}
	}
	// Hand-built combination not in the table, e.g. Sunny at Night.
	return 4
}

// String is the short description. Day and night forms render the same.
func (c Conditions) String() string {
	return c.Kind.String()
}

func (c Conditions) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code        int8   `json:"code"`
		Description string `json:"description"`
		TimeOfDay   string `json:"timeOfDay,omitempty"`
	}{
		Code:        c.Code(),
		Description: c.String(),
		TimeOfDay:   c.TimeOfDay.String(),
	})
}
