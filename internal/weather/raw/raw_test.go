package raw

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRoundTrip(t *testing.T) {
	var ts Time
	require.NoError(t, json.Unmarshal([]byte(`"2023-07-05T10:00Z"`), &ts))
	assert.Equal(t, time.Date(2023, 7, 5, 10, 0, 0, 0, time.UTC), ts.Time)

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2023-07-05T10:00Z"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`"2023-07-05T10:00:00Z"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
}

func TestRecordMissingRequiredFields(t *testing.T) {
	var r ThreeHourly
	err := json.Unmarshal([]byte(`{"time":"2023-07-05T10:00Z","significantWeatherCode":7}`), &r)

	var mfe *MissingFieldsError
	require.True(t, errors.As(err, &mfe))
	assert.Contains(t, mfe.Fields, "maxScreenAirTemp")
	assert.Contains(t, mfe.Fields, "probOfSferics")
	assert.NotContains(t, mfe.Fields, "time")
}

func TestRecordOptionalFieldsMayBeAbsent(t *testing.T) {
	payload := `{"time":"2023-07-05T10:00Z","screenTemperature":15.5,"screenDewPointTemperature":11.2,
		"feelsLikeTemperature":14.1,"windSpeed10m":4.6,"windDirectionFrom10m":244,"windGustSpeed10m":9.3,
		"visibility":22018,"screenRelativeHumidity":78.6,"mslp":101560,"uvIndex":0,
		"significantWeatherCode":7,"precipitationRate":0.1,"probOfPrecipitation":13}`

	var r Hourly
	require.NoError(t, json.Unmarshal([]byte(payload), &r))
	assert.Nil(t, r.MaxScreenAirTemp)
	assert.Nil(t, r.TotalSnowAmount)
	assert.Equal(t, float32(15.5), r.ScreenTemperature)
	assert.Equal(t, uint32(101560), r.Mslp)
}

func TestRecordTypeErrorIsReturnedUnchanged(t *testing.T) {
	var r Daily
	err := json.Unmarshal([]byte(`{"time": 5}`), &r)
	require.Error(t, err)

	var mfe *MissingFieldsError
	assert.True(t, errors.As(err, &mfe))

	err = json.Unmarshal([]byte(`[1,2]`), &r)
	var typeErr *json.UnmarshalTypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestRequiredKeysSkipsPointers(t *testing.T) {
	type plain Daily
	keys := requiredKeys(reflect.TypeOf(plain{}))
	assert.Contains(t, keys, "nightSignificantWeatherCode")
	assert.NotContains(t, keys, "dayMaxFeelsLikeTemp")
	assert.NotContains(t, keys, "maxUvIndex")
}

func TestRecordNullRequiredField(t *testing.T) {
	var r ThreeHourly
	err := json.Unmarshal([]byte(`{"time":"2023-07-05T10:00Z","significantWeatherCode": null}`), &r)

	var mfe *MissingFieldsError
	require.True(t, errors.As(err, &mfe))
	assert.Contains(t, mfe.Fields, "significantWeatherCode")
	assert.NotContains(t, mfe.Fields, "time")
}

func TestPropertiesRequireEnvelopeKeys(t *testing.T) {
	var p Properties[Hourly]
	err := json.Unmarshal([]byte(`{"timeSeries":[]}`), &p)

	var mfe *MissingFieldsError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, []string{"location", "requestPointDistance", "modelRunDate"}, mfe.Fields)

	err = json.Unmarshal([]byte(`{"location":{"name":null},"requestPointDistance":1,"modelRunDate":"2023-07-05T10:00Z","timeSeries":[]}`), &p)
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, []string{"name"}, mfe.Fields)

	require.NoError(t, json.Unmarshal([]byte(`{"location":{"name":"Exeter"},"requestPointDistance":27.9,"modelRunDate":"2023-07-05T10:00Z","timeSeries":[]}`), &p))
	assert.Equal(t, "Exeter", p.Location.Name)
	assert.Equal(t, float32(27.9), p.RequestPointDistance)
	assert.Empty(t, p.TimeSeries)
}
