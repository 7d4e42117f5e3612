package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/metoffice-forecast/internal/units"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-lat", "50.727", "-lon", "-3.474", "-granularity", "daily", "-sign"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, opts.hasPoint)
	assert.Equal(t, "daily", opts.granularity.String())
	assert.True(t, opts.temperature.Sign)

	_, err = parseFlags([]string{"-lat", "50"}, io.Discard)
	assert.ErrorIs(t, err, errUsage)

	_, err = parseFlags(nil, io.Discard)
	assert.ErrorIs(t, err, errUsage)

	_, err = parseFlags([]string{"-file", "x.json", "-granularity", "weekly"}, io.Discard)
	assert.Error(t, err)
}

func TestRunFileTable(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-file", "../../internal/weather/testdata/daily.json", "-granularity", "daily"}, &out, io.Discard)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Exeter")
	assert.Contains(t, out.String(), "Partly Cloudy (Night)")
}

func TestRunFileJSON(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-file", "../../internal/weather/testdata/hourly.json", "-granularity", "hourly", "-json"}, &out, io.Discard)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "Exeter", decoded["locationName"])
}

func TestRunFileWrongGranularity(t *testing.T) {
	err := run(context.Background(), []string{"-file", "../../internal/weather/testdata/daily.json", "-granularity", "three-hourly"}, io.Discard, io.Discard)
	assert.Error(t, err)
}

func TestRunURL(t *testing.T) {
	t.Setenv("DATAHUB_BASE_URL", "")
	t.Setenv("WATCH_LOCATIONS", "")

	var out bytes.Buffer
	err := run(context.Background(), []string{"-url", "-lat", "50.727", "-lon", "-3.474", "-granularity", "hourly"}, &out, io.Discard)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "https://data.hub.api.metoffice.gov.uk/sitespecific/v0/point/hourly?"))
	assert.Contains(t, out.String(), "latitude=50.727")
}

func TestRunOutOfBounds(t *testing.T) {
	err := run(context.Background(), []string{"-url", "-lat", "91", "-lon", "0"}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, units.ErrOutOfBounds)
}
