package units

import "strconv"

// UvIndex is the unitless strength of solar radiation. Usually 0 to 13, higher
// values are possible in extreme situations.
type UvIndex uint8

func (u UvIndex) Uint8() uint8 { return uint8(u) }

func (u UvIndex) String() string {
	return strconv.Itoa(int(u))
}

// UvRisk is the advisory tier for a UV index.
type UvRisk uint8

const (
	UvRiskNone UvRisk = iota
	UvRiskLow
	UvRiskModerate
	UvRiskHigh
	UvRiskVeryHigh
	UvRiskExtreme
)

func (r UvRisk) String() string {
	switch r {
	case UvRiskNone:
		return "none"
	case UvRiskLow:
		return "low"
	case UvRiskModerate:
		return "moderate"
	case UvRiskHigh:
		return "high"
	case UvRiskVeryHigh:
		return "very high"
	case UvRiskExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// Risk returns the advisory tier the index falls into.
func (u UvIndex) Risk() UvRisk {
	switch {
	case u == 0:
		return UvRiskNone
	case u <= 2:
		return UvRiskLow
	case u <= 5:
		return UvRiskModerate
	case u <= 7:
		return UvRiskHigh
	case u <= 10:
		return UvRiskVeryHigh
	default:
		return UvRiskExtreme
	}
}

// Advice returns the sun safety message for the index.
func (u UvIndex) Advice() string {
	switch {
	case u <= 2:
		return "No protection required. You can safely stay outside."
	case u <= 5:
		return "Seek shade during midday hours, cover up and wear sunscreen."
	default:
		return "Avoid being outside during midday hours. Shirt, sunscreen and hat are essential."
	}
}
