package units

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfBounds is returned when a latitude or longitude is outside its
	// valid range, or is not a finite number.
	ErrOutOfBounds = errors.New("geographic degrees out of bounds")
)

// Latitude in decimal degrees in the WGS 84 reference system.
//
// The zero value is the equator; any other value comes from NewLatitude.
type Latitude struct {
	deg float64
}

// NewLatitude returns an error wrapping ErrOutOfBounds unless -90 <= d <= 90.
func NewLatitude(d float64) (Latitude, error) {
	if !inRange(d, 90) {
		return Latitude{}, fmt.Errorf("%w: latitude %v", ErrOutOfBounds, d)
	}
	return Latitude{deg: d}, nil
}

// Degrees returns the underlying decimal degrees.
func (l Latitude) Degrees() float64 { return l.deg }

func (l Latitude) String() string {
	c := 'N'
	if math.Signbit(l.deg) {
		c = 'S'
	}
	return fmt.Sprintf("%.3f° %c", math.Abs(l.deg), c)
}

func (l Latitude) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.deg)
}

// Longitude in decimal degrees in the WGS 84 reference system.
type Longitude struct {
	deg float64
}

// NewLongitude returns an error wrapping ErrOutOfBounds unless -180 <= d <= 180.
func NewLongitude(d float64) (Longitude, error) {
	if !inRange(d, 180) {
		return Longitude{}, fmt.Errorf("%w: longitude %v", ErrOutOfBounds, d)
	}
	return Longitude{deg: d}, nil
}

// Degrees returns the underlying decimal degrees.
func (l Longitude) Degrees() float64 { return l.deg }

func (l Longitude) String() string {
	c := 'E'
	if math.Signbit(l.deg) {
		c = 'W'
	}
	return fmt.Sprintf("%.3f° %c", math.Abs(l.deg), c)
}

func (l Longitude) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.deg)
}

// inRange rejects NaN as well, since every comparison with NaN is false.
func inRange(d, limit float64) bool {
	return d >= -limit && d <= limit
}

// Coordinates of a point in the WGS 84 coordinate reference system.
type Coordinates struct {
	Latitude  Latitude  `json:"latitude"`
	Longitude Longitude `json:"longitude"`
	Altitude  Metres    `json:"altitude"`
}

// CoordinatesFromTriple builds Coordinates from a GeoJSON position.
//
// The triple is ordered (longitude, latitude, altitude), which is the reverse
// of the field order of Coordinates.
func CoordinatesFromTriple(t [3]float64) (Coordinates, error) {
	lon, lat, alt := t[0], t[1], t[2]
	latitude, err := NewLatitude(lat)
	if err != nil {
		return Coordinates{}, err
	}
	longitude, err := NewLongitude(lon)
	if err != nil {
		return Coordinates{}, err
	}
	return Coordinates{
		Latitude:  latitude,
		Longitude: longitude,
		Altitude:  Metres(alt),
	}, nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%s, %s %s", c.Latitude, c.Longitude, c.Altitude)
}
