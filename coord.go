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
)

// Coord is a coordinate: named point values along one or more axes and,
// optionally, the bounds of the cell around each point.
type Coord struct {
	Name string

	// Points holds the coordinate values.
	Points Array

	// Bounds, if not nil, has the shape of Points plus one trailing
	// axis holding the cell boundary values of each point.
	Bounds Array
}

// NewCoord returns a coordinate after checking that bounds, if given,
// have the shape of points plus one trailing axis.
func NewCoord(name string, points, bounds Array) (*Coord, error) {
	if points == nil {
		return nil, fmt.Errorf("gridcoord: coordinate %s has no points", name)
	}
	c := &Coord{Name: name, Points: points, Bounds: bounds}
	if bounds == nil {
		return c, nil
	}
	ps, bs := points.Shape(), bounds.Shape()
	if len(bs) != len(ps)+1 || !equalInts(bs[:len(ps)], ps) {
		return nil, fmt.Errorf("%w: coordinate %s has points shape %v but bounds shape %v",
			ErrInvalidBounds, name, ps, bs)
	}
	return c, nil
}

// NDim returns the number of axes of the coordinate points.
func (c *Coord) NDim() int { return len(c.Points.Shape()) }

// HasBounds reports whether the coordinate has cell bounds.
func (c *Coord) HasBounds() bool { return c.Bounds != nil }

// HasLazyPoints reports whether the points have yet to be loaded.
func (c *Coord) HasLazyPoints() bool { return c.Points.IsLazy() }

// HasLazyBounds reports whether the coordinate has bounds that have
// yet to be loaded.
func (c *Coord) HasLazyBounds() bool { return c.Bounds != nil && c.Bounds.IsLazy() }

// NBounds returns the number of bounds per point, or 0 if the coordinate
// has no bounds.
func (c *Coord) NBounds() int {
	if c.Bounds == nil {
		return 0
	}
	s := c.Bounds.Shape()
	return s[len(s)-1]
}

func (c *Coord) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Points.Shape())
}
