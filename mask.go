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

// Mask flags cells of a 2-dimensional coordinate. A flagged cell is one
// whose bounds do not line up with those of at least one of its neighbors.
type Mask struct {
	ny, nx int
	cells  []bool
}

// NewMask returns a mask with ny rows and nx columns and no flagged cells.
func NewMask(ny, nx int) *Mask {
	return &Mask{ny: ny, nx: nx, cells: make([]bool, ny*nx)}
}

// Shape returns the number of rows and columns in the mask.
func (m *Mask) Shape() []int { return []int{m.ny, m.nx} }

// At reports whether cell (i, j) is flagged. It panics if the cell is
// outside of the mask.
func (m *Mask) At(i, j int) bool {
	if err := m.check(i, j); err != nil {
		panic(err)
	}
	return m.cells[i*m.nx+j]
}

// Set flags or unflags cell (i, j).
func (m *Mask) Set(i, j int, v bool) error {
	if err := m.check(i, j); err != nil {
		return err
	}
	m.cells[i*m.nx+j] = v
	return nil
}

func (m *Mask) check(i, j int) error {
	if i < 0 || i >= m.ny || j < 0 || j >= m.nx {
		return fmt.Errorf("%w: cell (%d, %d) of %dx%d mask", ErrIndexOutOfRange, i, j, m.ny, m.nx)
	}
	return nil
}

// Count returns the number of flagged cells.
func (m *Mask) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Any reports whether any cell is flagged.
func (m *Mask) Any() bool {
	for _, c := range m.cells {
		if c {
			return true
		}
	}
	return false
}

// Indices returns the (row, column) index of each flagged cell in
// row-major order.
func (m *Mask) Indices() [][2]int {
	var o [][2]int
	for k, c := range m.cells {
		if c {
			o = append(o, [2]int{k / m.nx, k % m.nx})
		}
	}
	return o
}

// Or returns a mask that flags the cells flagged in either m or o.
func (m *Mask) Or(o *Mask) (*Mask, error) {
	if m.ny != o.ny || m.nx != o.nx {
		return nil, fmt.Errorf("%w: cannot combine %dx%d and %dx%d masks",
			ErrShapeMismatch, m.ny, m.nx, o.ny, o.nx)
	}
	r := NewMask(m.ny, m.nx)
	for k := range r.cells {
		r.cells[k] = m.cells[k] || o.cells[k]
	}
	return r, nil
}

// Dense returns the mask as an array holding 1 for flagged cells and 0
// elsewhere.
func (m *Mask) Dense() *Dense {
	v := make([]float64, len(m.cells))
	for k, c := range m.cells {
		if c {
			v[k] = 1
		}
	}
	d, _ := DenseFromSlice(v, m.ny, m.nx)
	return d
}

func (m *Mask) String() string {
	return fmt.Sprintf("Mask[%dx%d]%v", m.ny, m.nx, m.Indices())
}
