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

import "fmt"

// CornerLayout describes the order of the corners in the bounds of a
// 2-dimensional coordinate, and which corners neighboring cells share.
type CornerLayout struct {
	// Corners is the number of bounds per cell.
	Corners int

	// Column holds pairs of corners {a, b} where corner a of cell (i, j)
	// should equal corner b of cell (i, j+1).
	Column [][2]int

	// Row holds pairs of corners {a, b} where corner a of cell (i, j)
	// should equal corner b of cell (i+1, j).
	Row [][2]int
}

// CounterClockwise is the layout of the CF conventions for 2-dimensional
// cells: corners are listed counter-clockwise starting from the corner with
// the lowest indices, so 0 is lower-left, 1 lower-right, 2 upper-right
// and 3 upper-left.
var CounterClockwise = CornerLayout{
	Corners: 4,
	Column:  [][2]int{{1, 0}, {2, 3}},
	Row:     [][2]int{{3, 0}, {2, 1}},
}

func (l CornerLayout) validate() error {
	if l.Corners <= 0 {
		return fmt.Errorf("%w: corner layout with %d corners", ErrInvalidBounds, l.Corners)
	}
	if len(l.Column) == 0 || len(l.Row) == 0 {
		return fmt.Errorf("%w: corner layout without shared corners", ErrInvalidBounds)
	}
	for _, pairs := range [][][2]int{l.Column, l.Row} {
		for _, p := range pairs {
			if p[0] < 0 || p[0] >= l.Corners || p[1] < 0 || p[1] >= l.Corners {
				return fmt.Errorf("%w: corner pair %v outside of %d corners", ErrInvalidBounds, p, l.Corners)
			}
		}
	}
	return nil
}

// sharedCorner returns a corner of cell (i, j) that is shared with both
// cell (i, j+1) and cell (i+1, j), or -1 if there is none.
func (l CornerLayout) sharedCorner() int {
	for _, c := range l.Column {
		for _, r := range l.Row {
			if c[0] == r[0] {
				return c[0]
			}
		}
	}
	return -1
}
