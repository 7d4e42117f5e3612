// Package units holds the physical quantities, geographic values and weather
// conditions that make up a forecast.
//
// Each quantity is its own named type, so values of different units cannot be
// mixed without an explicit conversion.
package units

import "fmt"

// Celsius is a temperature in degrees Celsius.
type Celsius float32

func (c Celsius) Float32() float32 { return float32(c) }

func (c Celsius) String() string {
	return fmt.Sprintf("%.2f°C", float32(c))
}

// Metres is a distance or height.
type Metres float32

func (m Metres) Float32() float32 { return float32(m) }

func (m Metres) String() string {
	return fmt.Sprintf("%.0fm", float32(m))
}

// MetresPerSecond is a speed.
type MetresPerSecond float32

func (s MetresPerSecond) Float32() float32 { return float32(s) }

func (s MetresPerSecond) String() string {
	return fmt.Sprintf("%.2f m/s", float32(s))
}

// Millimetres is an accumulated depth of liquid water.
type Millimetres float32

func (m Millimetres) Float32() float32 { return float32(m) }

func (m Millimetres) String() string {
	return fmt.Sprintf("%.2f mm", float32(m))
}

// MillimetresPerHour is a precipitation rate.
type MillimetresPerHour float32

func (r MillimetresPerHour) Float32() float32 { return float32(r) }

func (r MillimetresPerHour) String() string {
	return fmt.Sprintf("%.2f mm/hour", float32(r))
}

// Percentage is a probability or relative humidity, 0 to 100.
type Percentage float32

func (p Percentage) Float32() float32 { return float32(p) }

func (p Percentage) String() string {
	return fmt.Sprintf("%.0f%%", float32(p))
}

// Pascals is an air pressure.
type Pascals uint32

func (p Pascals) Uint32() uint32 { return uint32(p) }

func (p Pascals) String() string {
	return fmt.Sprintf("%d Pa", uint32(p))
}

// Degrees is an azimuth seen from the forecast location, relative to north.
// Degrees(90) is due east.
type Degrees float32

func (d Degrees) Float32() float32 { return float32(d) }

func (d Degrees) String() string {
	return fmt.Sprintf("%.0f°", float32(d))
}
