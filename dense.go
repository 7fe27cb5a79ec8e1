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

// Dense is an in-memory Array. It is a view, described by a shape, strides
// and an offset, into a row-major *sparse.DenseArray that may be shared
// with other views.
type Dense struct {
	data    *sparse.DenseArray
	shape   []int
	strides []int
	offset  int
}

// NewDense returns a view of all of the values in a.
// a should not be modified while the returned array is in use.
func NewDense(a *sparse.DenseArray) *Dense {
	return &Dense{
		data:    a,
		shape:   copyInts(a.Shape),
		strides: rowMajorStrides(a.Shape),
	}
}

// DenseFromSlice returns an array with the given shape holding values in
// row-major order. values is used directly, not copied.
func DenseFromSlice(values []float64, shape ...int) (*Dense, error) {
	if numElements(shape) != len(values) {
		return nil, fmt.Errorf("%w: %d values cannot fill shape %v", ErrShapeMismatch, len(values), shape)
	}
	a := sparse.ZerosDense(copyInts(shape)...)
	a.Elements = values
	return NewDense(a), nil
}

// Scalar returns a 0-dimensional array holding v.
func Scalar(v float64) *Dense {
	d, _ := DenseFromSlice([]float64{v})
	return d
}

// Shape returns the length of each axis of the array.
func (d *Dense) Shape() []int { return copyInts(d.shape) }

// NDim returns the number of axes of the array.
func (d *Dense) NDim() int { return len(d.shape) }

// Len returns the number of values in the array.
func (d *Dense) Len() int { return numElements(d.shape) }

// IsLazy returns false.
func (d *Dense) IsLazy() bool { return false }

// Realize returns d.
func (d *Dense) Realize() (*Dense, error) { return d, nil }

// Transpose returns a view of d with its axes reordered by perm.
func (d *Dense) Transpose(perm ...int) (Array, error) {
	shape, err := permuteShape(d.shape, perm)
	if err != nil {
		return nil, err
	}
	strides := make([]int, len(perm))
	for i, p := range perm {
		strides[i] = d.strides[p]
	}
	return &Dense{data: d.data, shape: shape, strides: strides, offset: d.offset}, nil
}

// InsertAxis returns a view of d with a length-1 axis at pos.
func (d *Dense) InsertAxis(pos int) (Array, error) {
	shape, err := insertAxisShape(d.shape, pos)
	if err != nil {
		return nil, err
	}
	strides := make([]int, 0, len(shape))
	strides = append(strides, d.strides[:pos]...)
	strides = append(strides, 0)
	strides = append(strides, d.strides[pos:]...)
	return &Dense{data: d.data, shape: shape, strides: strides, offset: d.offset}, nil
}

// DropAxis returns a view of d without the length-1 axis at pos.
func (d *Dense) DropAxis(pos int) (Array, error) {
	shape, err := dropAxisShape(d.shape, pos)
	if err != nil {
		return nil, err
	}
	strides := make([]int, 0, len(shape))
	strides = append(strides, d.strides[:pos]...)
	strides = append(strides, d.strides[pos+1:]...)
	return &Dense{data: d.data, shape: shape, strides: strides, offset: d.offset}, nil
}

func (d *Dense) index1d(index []int) int {
	i1d := d.offset
	for i, v := range index {
		i1d += v * d.strides[i]
	}
	return i1d
}

// At returns the value at the given index. It panics if the index is
// outside of the array, as *sparse.DenseArray.Get does.
func (d *Dense) At(index ...int) float64 {
	if err := d.checkIndex(index); err != nil {
		panic(err)
	}
	return d.data.Elements[d.index1d(index)]
}

func (d *Dense) checkIndex(index []int) error {
	if len(index) != len(d.shape) {
		return fmt.Errorf("%w: index %v for shape %v", ErrIndexOutOfRange, index, d.shape)
	}
	for i, v := range index {
		if v < 0 || v >= d.shape[i] {
			return fmt.Errorf("%w: index %v for shape %v", ErrIndexOutOfRange, index, d.shape)
		}
	}
	return nil
}

// Values returns a copy of the values in d in row-major order.
func (d *Dense) Values() []float64 {
	o := make([]float64, 0, d.Len())
	if d.Len() == 0 {
		return o
	}
	idx := make([]int, len(d.shape))
	for {
		o = append(o, d.data.Elements[d.index1d(idx)])
		if !odometer(idx, d.shape) {
			break
		}
	}
	return o
}

// SharesStorage reports whether d and o are views of the same values.
func (d *Dense) SharesStorage(o *Dense) bool {
	return d.data == o.data
}

// contiguous reports whether d covers all of its storage in row-major order.
func (d *Dense) contiguous() bool {
	if d.offset != 0 || !equalInts(d.shape, d.data.Shape) {
		return false
	}
	want := rowMajorStrides(d.shape)
	for i, s := range d.strides {
		if d.shape[i] > 1 && s != want[i] {
			return false
		}
	}
	return true
}

// DenseArray returns the values of d as a row-major *sparse.DenseArray.
// If d is a view of all of its storage in storage order, the storage itself
// is returned; otherwise the values are copied.
func (d *Dense) DenseArray() *sparse.DenseArray {
	if d.contiguous() {
		return d.data
	}
	a := sparse.ZerosDense(copyInts(d.shape)...)
	a.Elements = d.Values()
	return a
}

func (d *Dense) String() string {
	return fmt.Sprintf("Dense%v%v", d.shape, d.Values())
}
