/*
Copyright © 2021 the InMAP authors.
This file is part of gridcoord.

gridcoord is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

gridcoord is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with gridcoord.  If not, see <http://www.gnu.org/licenses/>.
*/

package gridcoord

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultAbsTol is the absolute tolerance within which shared corners
// are considered equal unless AbsTol is given.
const DefaultAbsTol = 1e-8

// Marking specifies which cells are flagged when two neighboring cells
// disagree about their shared edge.
type Marking int

const (
	// MarkBoth flags both cells that share a mismatched edge.
	MarkBoth Marking = iota

	// MarkLower flags only the cell with the lower index along the
	// direction in which the two cells neighbor each other.
	MarkLower
)

func (m Marking) String() string {
	switch m {
	case MarkBoth:
		return "both"
	case MarkLower:
		return "lower"
	default:
		return fmt.Sprintf("Marking(%d)", int(m))
	}
}

// ParseMarking returns the Marking named s ("both" or "lower").
func ParseMarking(s string) (Marking, error) {
	switch s {
	case "both", "":
		return MarkBoth, nil
	case "lower":
		return MarkLower, nil
	default:
		return MarkBoth, fmt.Errorf("gridcoord: invalid marking %q; valid options are both and lower", s)
	}
}

type scanConfig struct {
	tol     float64
	period  float64
	layout  CornerLayout
	marking Marking
}

// A ScanOption changes how FindDiscontiguities compares cells.
type ScanOption func(*scanConfig)

// AbsTol sets the absolute tolerance within which shared corners are
// considered equal.
func AbsTol(tol float64) ScanOption {
	return func(c *scanConfig) { c.tol = tol }
}

// Period specifies that coordinate values repeat with period p, as
// longitudes do with p = 360, so that corners differing by a whole
// number of periods are considered equal. A period of 0 disables this.
func Period(p float64) ScanOption {
	return func(c *scanConfig) { c.period = p }
}

// Layout sets the corner layout of the bounds. The default is
// CounterClockwise.
func Layout(l CornerLayout) ScanOption {
	return func(c *scanConfig) { c.layout = l }
}

// Mark sets which cells are flagged for a mismatched edge. The default
// is MarkBoth.
func Mark(m Marking) ScanOption {
	return func(c *scanConfig) { c.marking = m }
}

// FindDiscontiguities returns a mask flagging the cells of the
// 2-dimensional coordinate c whose bounds do not match the bounds of a
// neighboring cell to within the tolerance.
//
// Cells (i, j) and (i, j+1) are compared at the corners given by the
// layout's Column pairs, and cells (i, j) and (i+1, j) at its Row pairs.
// The bounds of c are loaded if they are lazy, but never modified.
func FindDiscontiguities(c *Coord, opts ...ScanOption) (*Mask, error) {
	cfg := scanConfig{
		tol:     DefaultAbsTol,
		layout:  CounterClockwise,
		marking: MarkBoth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if math.IsNaN(cfg.tol) || cfg.tol < 0 {
		return nil, fmt.Errorf("%w: absolute tolerance %g", ErrInvalidTolerance, cfg.tol)
	}
	if math.IsNaN(cfg.period) || math.IsInf(cfg.period, 0) || cfg.period < 0 {
		return nil, fmt.Errorf("%w: period %g", ErrInvalidTolerance, cfg.period)
	}
	if cfg.marking != MarkBoth && cfg.marking != MarkLower {
		return nil, fmt.Errorf("gridcoord: invalid marking %v", cfg.marking)
	}
	if c == nil || c.Points == nil {
		return nil, fmt.Errorf("gridcoord: finding discontiguities: coordinate has no points")
	}
	if n := c.NDim(); n != 2 {
		return nil, fmt.Errorf("%w: %s has %d dimensions", ErrUnsupportedRank, c.Name, n)
	}
	if !c.HasBounds() {
		return nil, fmt.Errorf("gridcoord: finding discontiguities in %s: %w", c.Name, ErrMissingBounds)
	}
	if err := cfg.layout.validate(); err != nil {
		return nil, err
	}
	shape := c.Bounds.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: %s has %d-dimensional bounds", ErrUnsupportedRank, c.Name, len(shape))
	}
	if err := checkCellBounds(c, shape, cfg.layout); err != nil {
		return nil, err
	}
	ny, nx, nc := shape[0], shape[1], shape[2]

	b, err := c.Bounds.Realize()
	if err != nil {
		return nil, fmt.Errorf("gridcoord: finding discontiguities in %s: %w", c.Name, err)
	}
	v := b.Values()
	corner := func(i, j, k int) float64 { return v[(i*nx+j)*nc+k] }

	agree := func(i0, j0, i1, j1 int, pairs [][2]int) bool {
		for _, p := range pairs {
			if !cfg.equal(corner(i0, j0, p[0]), corner(i1, j1, p[1])) {
				return false
			}
		}
		return true
	}

	m := NewMask(ny, nx)
	for i := 0; i < ny; i++ {
		for j := 0; j < nx-1; j++ {
			if !agree(i, j, i, j+1, cfg.layout.Column) {
				m.cells[i*nx+j] = true
				if cfg.marking == MarkBoth {
					m.cells[i*nx+j+1] = true
				}
			}
		}
	}
	for i := 0; i < ny-1; i++ {
		for j := 0; j < nx; j++ {
			if !agree(i, j, i+1, j, cfg.layout.Row) {
				m.cells[i*nx+j] = true
				if cfg.marking == MarkBoth {
					m.cells[(i+1)*nx+j] = true
				}
			}
		}
	}
	return m, nil
}

// equal reports whether a and b are within the tolerance of each other,
// after removing whole periods from their difference. NaN is never equal
// to anything.
func (c scanConfig) equal(a, b float64) bool {
	if c.period == 0 {
		return floats.EqualWithinAbs(a, b, c.tol)
	}
	d := a - b
	d -= c.period * math.Round(d/c.period)
	return floats.EqualWithinAbs(d, 0, c.tol)
}
