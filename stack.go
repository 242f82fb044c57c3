package flutulus

import "fmt"

// ConicSection is one frustum in an axial stack. A cylinder is the
// degenerate case with equal lower and upper diameters.
type ConicSection struct {
	Height        float64 `json:"height"`
	LowerDiameter float64 `json:"lower_diam"`
	UpperDiameter float64 `json:"upper_diam"`
}

// Stack is an ordered sequence of conic sections stacked end to end
// starting at elevation zero. The elevation of section i is the sum of
// the heights of sections 0..i-1.
type Stack []ConicSection

// DiameterAt returns the diameter of the stack at the given elevation.
//
// The stack is scanned in order and the first section whose interval
// [start, start+height) contains the elevation wins. The result is the
// arithmetic mean of that section's lower and upper diameters, not an
// interpolated value: diameter is treated as constant per section for
// hole and plate sizing, a convention inherited from instruments
// already built with it. Changing it would move hole geometry.
//
// Elevations outside every section, including anything at or past
// TotalHeight, return 0. That is a boundary convention, not an error;
// callers treat 0 as "no material here".
func (s Stack) DiameterAt(elevation float64) float64 {
	start := 0.0
	for _, sec := range s {
		if elevation >= start && elevation < start+sec.Height {
			return (sec.LowerDiameter + sec.UpperDiameter) / 2
		}
		start += sec.Height
	}
	return 0
}

// TotalHeight returns the sum of all section heights. Boolean cutters
// are sized from it so they fully penetrate the solid regardless of
// how many sections the stack has.
func (s Stack) TotalHeight() float64 {
	total := 0.0
	for _, sec := range s {
		total += sec.Height
	}
	return total
}

// validate checks the stack invariants shared by bores and bodies.
func (s Stack) validate(field string) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrSpecShape, field)
	}
	for i, sec := range s {
		if sec.Height <= 0 {
			return fmt.Errorf("%w: %s section %d has non-positive height %g", ErrSpecValue, field, i, sec.Height)
		}
		if sec.LowerDiameter < 0 || sec.UpperDiameter < 0 {
			return fmt.Errorf("%w: %s section %d has negative diameter", ErrSpecValue, field, i)
		}
	}
	return nil
}
