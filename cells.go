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

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// check2DBounds makes sure that c is a 2-dimensional coordinate with
// bounds that fit layout, and returns its realized bounds.
func check2DBounds(c *Coord, layout CornerLayout) (*Dense, error) {
	if c == nil || c.Points == nil {
		return nil, fmt.Errorf("gridcoord: coordinate has no points")
	}
	if n := c.NDim(); n != 2 {
		return nil, fmt.Errorf("%w: %s has %d dimensions", ErrUnsupportedRank, c.Name, n)
	}
	if !c.HasBounds() {
		return nil, fmt.Errorf("gridcoord: %s: %w", c.Name, ErrMissingBounds)
	}
	if err := layout.validate(); err != nil {
		return nil, err
	}
	shape := c.Bounds.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: %s has %d-dimensional bounds", ErrUnsupportedRank, c.Name, len(shape))
	}
	if err := checkCellBounds(c, shape, layout); err != nil {
		return nil, err
	}
	return c.Bounds.Realize()
}

// checkCellBounds makes sure that the 3-dimensional bounds shape of c has
// one cell per point and one value per corner of layout.
func checkCellBounds(c *Coord, shape []int, layout CornerLayout) error {
	if ps := c.Points.Shape(); shape[0] != ps[0] || shape[1] != ps[1] {
		return fmt.Errorf("%w: %s has bounds of shape %v for points of shape %v",
			ErrInvalidBounds, c.Name, shape, ps)
	}
	if shape[2] != layout.Corners {
		return fmt.Errorf("%w: %s has %d bounds per cell but the corner layout has %d",
			ErrInvalidBounds, c.Name, shape[2], layout.Corners)
	}
	return nil
}

// CellPolygons returns the outline of each cell of a grid described by
// the 2-dimensional coordinates x and y, in row-major order. The corners
// of each outline are taken from the bounds of x and y in the order given
// by layout.
func CellPolygons(x, y *Coord, layout CornerLayout) ([]geom.Polygon, error) {
	xb, err := check2DBounds(x, layout)
	if err != nil {
		return nil, err
	}
	yb, err := check2DBounds(y, layout)
	if err != nil {
		return nil, err
	}
	if !equalInts(xb.shape, yb.shape) {
		return nil, fmt.Errorf("%w: x bounds %v and y bounds %v", ErrShapeMismatch, xb.shape, yb.shape)
	}
	xv, yv := xb.Values(), yb.Values()
	nc := layout.Corners
	polys := make([]geom.Polygon, len(xv)/nc)
	for i := range polys {
		ring := make([]geom.Point, nc+1)
		for k := 0; k < nc; k++ {
			ring[k] = geom.Point{X: xv[i*nc+k], Y: yv[i*nc+k]}
		}
		ring[nc] = ring[0]
		polys[i] = geom.Polygon{ring}
	}
	return polys, nil
}

// MakeDiscontiguousAt returns a copy of the 2-dimensional coordinate c in
// which the corner that cell (row, col) shares with both of its higher-index
// neighbors has been moved by shift. With a shift larger than the
// tolerance, FindDiscontiguities with MarkLower then flags exactly that cell.
// The cell must not be the last cell of the last row. c itself is not
// modified.
func MakeDiscontiguousAt(c *Coord, row, col int, shift float64, layout CornerLayout) (*Coord, error) {
	b, err := check2DBounds(c, layout)
	if err != nil {
		return nil, err
	}
	corner := layout.sharedCorner()
	if corner < 0 {
		return nil, fmt.Errorf("%w: corner layout has no corner shared by row and column neighbors", ErrInvalidBounds)
	}
	ny, nx := b.shape[0], b.shape[1]
	if row < 0 || row >= ny || col < 0 || col >= nx {
		return nil, fmt.Errorf("%w: cell (%d, %d) of %dx%d coordinate %s",
			ErrIndexOutOfRange, row, col, ny, nx, c.Name)
	}
	if row == ny-1 && col == nx-1 {
		return nil, fmt.Errorf("%w: cell (%d, %d) of %s has no higher-index neighbors",
			ErrIndexOutOfRange, row, col, c.Name)
	}
	nb := sparse.ZerosDense(copyInts(b.shape)...)
	nb.Elements = b.Values()
	nb.Elements[(row*nx+col)*layout.Corners+corner] += shift
	return NewCoord(c.Name, c.Points, NewDense(nb))
}
