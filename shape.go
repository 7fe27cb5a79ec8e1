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

// numElements returns the number of values held by an array of the given
// shape. A shape with no axes holds a single value.
func numElements(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// rowMajorStrides returns the strides of a contiguous, row-major array of
// the given shape, in units of elements.
func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}
	return strides
}

func copyInts(v []int) []int {
	o := make([]int, len(v))
	copy(o, v)
	return o
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if b[i] != v {
			return false
		}
	}
	return true
}

// checkPerm makes sure that perm is a permutation of the axes
// of an array with ndim axes.
func checkPerm(perm []int, ndim int) error {
	if len(perm) != ndim {
		return fmt.Errorf("%w: permutation %v for %d axes", ErrInvalidAxis, perm, ndim)
	}
	seen := make([]bool, ndim)
	for _, p := range perm {
		if p < 0 || p >= ndim || seen[p] {
			return fmt.Errorf("%w: %v is not a permutation of %d axes", ErrInvalidAxis, perm, ndim)
		}
		seen[p] = true
	}
	return nil
}

// permuteShape returns the shape of an array with the given shape after its
// axes have been reordered by perm.
func permuteShape(shape, perm []int) ([]int, error) {
	if err := checkPerm(perm, len(shape)); err != nil {
		return nil, err
	}
	o := make([]int, len(perm))
	for i, p := range perm {
		o[i] = shape[p]
	}
	return o, nil
}

// insertAxisShape returns shape with a size-1 axis inserted at pos.
func insertAxisShape(shape []int, pos int) ([]int, error) {
	if pos < 0 || pos > len(shape) {
		return nil, fmt.Errorf("%w: cannot insert axis at position %d of %d-dimensional array",
			ErrInvalidAxis, pos, len(shape))
	}
	o := make([]int, 0, len(shape)+1)
	o = append(o, shape[:pos]...)
	o = append(o, 1)
	return append(o, shape[pos:]...), nil
}

// dropAxisShape returns shape with the size-1 axis at pos removed.
func dropAxisShape(shape []int, pos int) ([]int, error) {
	if pos < 0 || pos >= len(shape) {
		return nil, fmt.Errorf("%w: cannot drop axis %d of %d-dimensional array",
			ErrInvalidAxis, pos, len(shape))
	}
	if shape[pos] != 1 {
		return nil, fmt.Errorf("%w: cannot drop axis %d of length %d", ErrInvalidAxis, pos, shape[pos])
	}
	o := make([]int, 0, len(shape)-1)
	o = append(o, shape[:pos]...)
	return append(o, shape[pos+1:]...), nil
}

// broadcastShapes returns the shape that the given shapes broadcast to.
// Shapes are aligned at their trailing axes; an axis of length 1
// stretches to match the corresponding axis of the other shapes.
func broadcastShapes(shapes ...[]int) ([]int, error) {
	ndim := 0
	for _, s := range shapes {
		if len(s) > ndim {
			ndim = len(s)
		}
	}
	o := make([]int, ndim)
	for i := range o {
		o[i] = 1
	}
	for _, s := range shapes {
		shift := ndim - len(s)
		for i, d := range s {
			switch {
			case d == o[i+shift]:
			case o[i+shift] == 1:
				o[i+shift] = d
			case d == 1:
			default:
				return nil, fmt.Errorf("%w: shapes %v cannot be broadcast together", ErrShapeMismatch, shapes)
			}
		}
	}
	return o, nil
}

// odometer steps idx to the next row-major index within shape, returning
// false when idx has wrapped around to the beginning.
func odometer(idx, shape []int) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < shape[i] {
			return true
		}
		idx[i] = 0
	}
	return false
}
