package weather

import (
	"net/url"
	"strconv"

	"github.com/i474232898/metoffice-forecast/internal/units"
)

const (
	DataHubScheme = "https"
	DataHubHost   = "data.hub.api.metoffice.gov.uk"
	pointBasePath = "/sitespecific/v0/point/"

	// Global spot data source.
	dataSource = "BD1"
)

// URLForLocation builds the DataHub request URL for the point. The query
// asks for the location name and leaves out parameter metadata.
func URLForLocation(g Granularity, lat units.Latitude, lon units.Longitude) url.URL {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat.Degrees(), 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon.Degrees(), 'f', -1, 64))
	values.Set("dataSource", dataSource)
	values.Set("excludeParameterMetadata", "true")
	values.Set("includeLocationName", "true")

	return url.URL{
		Scheme:   DataHubScheme,
		Host:     DataHubHost,
		Path:     pointBasePath + g.String(),
		RawQuery: values.Encode(),
	}
}

func HourlyURL(lat units.Latitude, lon units.Longitude) url.URL {
	return URLForLocation(GranularityHourly, lat, lon)
}

func ThreeHourlyURL(lat units.Latitude, lon units.Longitude) url.URL {
	return URLForLocation(GranularityThreeHourly, lat, lon)
}

func DailyURL(lat units.Latitude, lon units.Longitude) url.URL {
	return URLForLocation(GranularityDaily, lat, lon)
}

// URLFor builds the request URL for the granularity of T.
func URLFor[T Period](lat units.Latitude, lon units.Longitude) url.URL {
	return URLForLocation(GranularityOf[T](), lat, lon)
}
