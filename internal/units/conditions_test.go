package units

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionsFromCodeKnownCodes(t *testing.T) {
	seen := make(map[Conditions]int8)
	for code := int8(-1); code <= 30; code++ {
		if code == 4 {
			continue
		}
		c, err := ConditionsFromCode(code)
		require.NoError(t, err, "code %d", code)

		if prev, dup := seen[c]; dup {
			t.Fatalf("codes %d and %d decode to the same conditions %+v", prev, code, c)
		}
		seen[c] = code

		assert.Equal(t, code, c.Code(), "code should round trip")
	}
	assert.Len(t, seen, 31)
}

func TestConditionsFromCodeUnknownCodes(t *testing.T) {
	for _, code := range []int8{math.MinInt8, -2, 4, 31, 99, math.MaxInt8} {
		_, err := ConditionsFromCode(code)
		require.Error(t, err, "code %d", code)
		assert.ErrorIs(t, err, ErrUnknownCondition)

		var uce *UnknownConditionError
		require.True(t, errors.As(err, &uce))
		assert.Equal(t, code, uce.Code)
	}
}

func TestConditionsDayNightSiblings(t *testing.T) {
	night, err := ConditionsFromCode(2)
	require.NoError(t, err)
	day, err := ConditionsFromCode(3)
	require.NoError(t, err)

	assert.NotEqual(t, night, day)
	assert.Equal(t, PartlyCloudy, night.Kind)
	assert.Equal(t, Night, night.TimeOfDay)
	assert.Equal(t, Day, day.TimeOfDay)
	assert.Equal(t, night.String(), day.String())
	assert.Equal(t, "Partly cloudy", day.String())
}

func TestConditionsTable(t *testing.T) {
	tests := []struct {
		code int8
		want Conditions
		desc string
	}{
		{-1, Conditions{TraceRain, Unspecified}, "Trace of rain"},
		{0, Conditions{Clear, Night}, "Clear"},
		{1, Conditions{Sunny, Day}, "Sunny"},
		{7, Conditions{Cloudy, Unspecified}, "Cloudy"},
		{10, Conditions{LightRainShower, Day}, "Light rain shower"},
		{13, Conditions{HeavyRainShower, Night}, "Heavy rain shower"},
		{21, Conditions{Hail, Unspecified}, "Hail"},
		{27, Conditions{HeavySnow, Unspecified}, "Heavy snow"},
		{29, Conditions{ThunderShower, Day}, "Thunder shower"},
		{30, Conditions{Thunder, Unspecified}, "Thunder"},
	}
	for _, tt := range tests {
		c, err := ConditionsFromCode(tt.code)
		require.NoError(t, err)
		assert.Equal(t, tt.want, c, "code %d", tt.code)
		assert.Equal(t, tt.desc, c.String(), "code %d", tt.code)
	}
}

func TestConditionsJSON(t *testing.T) {
	c, err := ConditionsFromCode(14)
	require.NoError(t, err)
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":14,"description":"Heavy rain shower","timeOfDay":"day"}`, string(b))

	c, err = ConditionsFromCode(8)
	require.NoError(t, err)
	b, err = json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":8,"description":"Overcast"}`, string(b))
}
