// Package locate turns a city and country into forecast coordinates.
package locate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/metoffice-forecast/internal/units"
)

var (
	ErrNoAPIKey   = errors.New("geocoder api key is not configured")
	ErrNotFound   = errors.New("location not found")
	ErrBadRequest = errors.New("city and country are required")
)

// Point is a validated forecast location.
type Point struct {
	Latitude  units.Latitude  `json:"latitude"`
	Longitude units.Longitude `json:"longitude"`
}

// Resolver looks up the coordinates of a place.
type Resolver interface {
	Resolve(ctx context.Context, city, country string) (Point, error)
}

// GeocoderResolver resolves places with the Google geocoding API.
type GeocoderResolver struct {
	apiKey string
}

func NewGeocoderResolver(apiKey string) *GeocoderResolver {
	return &GeocoderResolver{apiKey: apiKey}
}

// geocoder keeps its key in a package variable.
var geocoderMu sync.Mutex

func (r *GeocoderResolver) Resolve(ctx context.Context, city, country string) (Point, error) {
	city, country = strings.TrimSpace(city), strings.TrimSpace(country)
	if city == "" || country == "" {
		return Point{}, ErrBadRequest
	}
	if r.apiKey == "" {
		return Point{}, ErrNoAPIKey
	}
	if err := ctx.Err(); err != nil {
		return Point{}, err
	}

	geocoderMu.Lock()
	geocoder.ApiKey = r.apiKey
	loc, err := geocoder.Geocoding(geocoder.Address{City: city, Country: country})
	geocoderMu.Unlock()
	if err != nil {
		return Point{}, fmt.Errorf("%w: %s, %s: %v", ErrNotFound, city, country, err)
	}

	return pointFrom(loc.Latitude, loc.Longitude)
}

func pointFrom(lat, lon float64) (Point, error) {
	latitude, err := units.NewLatitude(lat)
	if err != nil {
		return Point{}, err
	}
	longitude, err := units.NewLongitude(lon)
	if err != nil {
		return Point{}, err
	}
	return Point{Latitude: latitude, Longitude: longitude}, nil
}

// FromDegrees validates a raw latitude and longitude pair.
func FromDegrees(lat, lon float64) (Point, error) {
	return pointFrom(lat, lon)
}
