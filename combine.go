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

	"github.com/ctessum/sparse"
)

// Combine returns an array whose values are f applied to the corresponding
// values of arrays. The shapes of the arrays are broadcast against each
// other: they are aligned at their trailing axes and axes of length 1 are
// stretched to match.
//
// If any of the arrays is lazy, the result is lazy and none of the arrays
// are loaded until it is realized. The slice passed to f is reused between
// calls.
func Combine(f func(vals []float64) float64, arrays ...Array) (Array, error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("gridcoord: nothing to combine")
	}
	shapes := make([][]int, len(arrays))
	lazy := false
	for i, a := range arrays {
		shapes[i] = a.Shape()
		lazy = lazy || a.IsLazy()
	}
	shape, err := broadcastShapes(shapes...)
	if err != nil {
		return nil, err
	}
	if !lazy {
		return combine(f, shape, arrays)
	}
	return NewLazy(shape, func() (*sparse.DenseArray, error) {
		d, err := combine(f, shape, arrays)
		if err != nil {
			return nil, err
		}
		return d.data, nil
	}), nil
}

// Add returns the elementwise sum of a and b.
func Add(a, b Array) (Array, error) {
	return Combine(func(v []float64) float64 { return v[0] + v[1] }, a, b)
}

// Mul returns the elementwise product of a and b.
func Mul(a, b Array) (Array, error) {
	return Combine(func(v []float64) float64 { return v[0] * v[1] }, a, b)
}

func combine(f func([]float64) float64, shape []int, arrays []Array) (*Dense, error) {
	in, err := Realize(arrays...)
	if err != nil {
		return nil, err
	}
	// Give each input the rank of the output, with zero strides along
	// the axes it is stretched over.
	strides := make([][]int, len(in))
	for k, d := range in {
		shift := len(shape) - len(d.shape)
		s := make([]int, len(shape))
		for i, n := range d.shape {
			if n != 1 {
				s[i+shift] = d.strides[i]
			}
		}
		strides[k] = s
	}
	out := sparse.ZerosDense(copyInts(shape)...)
	if len(out.Elements) == 0 {
		return NewDense(out), nil
	}
	vals := make([]float64, len(in))
	idx := make([]int, len(shape))
	for n := 0; ; n++ {
		for k, d := range in {
			i1d := d.offset
			for i, v := range idx {
				i1d += v * strides[k][i]
			}
			vals[k] = d.data.Elements[i1d]
		}
		out.Elements[n] = f(vals)
		if !odometer(idx, shape) {
			break
		}
	}
	return NewDense(out), nil
}
