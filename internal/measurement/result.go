package measurement

import (
	"fmt"

	"github.com/philipparndt/armeasure/pkg/geometry"
)

// Result is a completed two-point measurement. It is created once and
// handed to the renderer; the session keeps no reference to it.
type Result struct {
	Start    geometry.Vector3
	End      geometry.Vector3
	Distance float64 // straight-line distance in meters
	Midpoint geometry.Vector3
	// Direction is the unit vector from Start to End, zero when the two
	// points coincide.
	Direction geometry.Vector3
}

// NewResult computes the derived geometry for a start/end pair
func NewResult(start, end geometry.Vector3) Result {
	delta := end.Sub(start)
	distance := delta.Length()

	result := Result{
		Start:    start,
		End:      end,
		Distance: distance,
		Midpoint: start.Midpoint(end),
	}
	if distance > 0 {
		result.Direction = delta.Mul(1 / distance)
	}
	return result
}

// HasDirection reports whether Direction is defined
func (r Result) HasDirection() bool {
	return r.Distance > 0
}

// Text returns the label shown next to the end point
func (r Result) Text() string {
	return FormatDistance(r.Distance)
}

// FormatDistance renders meters as centimeters with two decimals, e.g. "37.31 cm"
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.2f cm", meters*100)
}
