package units

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatitudeBounds(t *testing.T) {
	for _, d := range []float64{-90, -45.5, 0, 50.727, 90} {
		lat, err := NewLatitude(d)
		require.NoError(t, err)
		assert.Equal(t, d, lat.Degrees())
	}
	for _, d := range []float64{-90.1, 90.1, 180, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewLatitude(d)
		assert.ErrorIs(t, err, ErrOutOfBounds, "latitude %v", d)
	}
}

func TestLongitudeBounds(t *testing.T) {
	for _, d := range []float64{-180, -3.474, 0, 179.99, 180} {
		lon, err := NewLongitude(d)
		require.NoError(t, err)
		assert.Equal(t, d, lon.Degrees())
	}
	for _, d := range []float64{-180.1, 180.1, math.NaN(), math.Inf(1)} {
		_, err := NewLongitude(d)
		assert.ErrorIs(t, err, ErrOutOfBounds, "longitude %v", d)
	}
}

// The triple is GeoJSON ordered: longitude first.
func TestCoordinatesFromTripleOrder(t *testing.T) {
	c, err := CoordinatesFromTriple([3]float64{-3.474, 50.727, 27.0})
	require.NoError(t, err)

	assert.Equal(t, 50.727, c.Latitude.Degrees())
	assert.Equal(t, -3.474, c.Longitude.Degrees())
	assert.Equal(t, Metres(27), c.Altitude)
}

func TestCoordinatesFromTripleLongitudeOnlyValidAsLongitude(t *testing.T) {
	// 120 is a valid longitude but not a valid latitude.
	c, err := CoordinatesFromTriple([3]float64{120, 10, 0})
	require.NoError(t, err)
	assert.Equal(t, 120.0, c.Longitude.Degrees())

	_, err = CoordinatesFromTriple([3]float64{10, 120, 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCoordinatesOnlyInBounds(t *testing.T) {
	oob := [][3]float64{
		{-180.1, 0, 0},
		{180.1, 0, 0},
		{0, 90.1, 0},
		{0, -90.1, 0},
		{200, 95, 10},
		{math.NaN(), 0, 0},
	}
	for _, triple := range oob {
		_, err := CoordinatesFromTriple(triple)
		assert.ErrorIs(t, err, ErrOutOfBounds, "triple %v", triple)
	}
}

func TestCoordinatesRendering(t *testing.T) {
	c, err := CoordinatesFromTriple([3]float64{-3.474, 50.727, 27.0})
	require.NoError(t, err)
	assert.Equal(t, "50.727° N, 3.474° W 27m", c.String())

	c, err = CoordinatesFromTriple([3]float64{151.209, -33.868, 58})
	require.NoError(t, err)
	assert.Equal(t, "33.868° S, 151.209° E 58m", c.String())
}

func TestCoordinatesJSON(t *testing.T) {
	c, err := CoordinatesFromTriple([3]float64{-3.474, 50.727, 27.0})
	require.NoError(t, err)

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"latitude":50.727,"longitude":-3.474,"altitude":27}`, string(b))
}
