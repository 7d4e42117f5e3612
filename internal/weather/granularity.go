package weather

import "fmt"

// Granularity is the time step of a forecast series. It selects both the raw
// schema and the DataHub endpoint.
type Granularity uint8

const (
	GranularityHourly Granularity = iota
	GranularityThreeHourly
	GranularityDaily
)

// Granularities lists every granularity in endpoint order.
var Granularities = []Granularity{GranularityHourly, GranularityThreeHourly, GranularityDaily}

// String is also the endpoint path segment.
func (g Granularity) String() string {
	switch g {
	case GranularityHourly:
		return "hourly"
	case GranularityThreeHourly:
		return "three-hourly"
	case GranularityDaily:
		return "daily"
	default:
		return fmt.Sprintf("Granularity(%d)", uint8(g))
	}
}

// ParseGranularity accepts the names returned by Granularity.String.
func ParseGranularity(s string) (Granularity, error) {
	for _, g := range Granularities {
		if g.String() == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown granularity %q", s)
}

// Period is the closed set of per-period forecast records. The type set
// cannot be extended outside this package.
type Period interface {
	Hourly | ThreeHourly | Daily
}

// GranularityOf returns the granularity whose records are T.
func GranularityOf[T Period]() Granularity {
	var zero T
	switch any(zero).(type) {
	case Hourly:
		return GranularityHourly
	case ThreeHourly:
		return GranularityThreeHourly
	default:
		return GranularityDaily
	}
}
