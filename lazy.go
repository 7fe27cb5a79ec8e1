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

// A Loader produces the values of a lazy array when they are needed.
type Loader func() (*sparse.DenseArray, error)

// Lazy is an Array whose values are loaded only when it is realized.
// Axis operations on a Lazy array are recorded and applied to the loaded
// values, so they never call the loader.
type Lazy struct {
	shape  []int // shape after ops have been applied
	source []int // shape the loader produces
	load   Loader
	ops    []func(*Dense) (Array, error)
}

// NewLazy returns a lazy array of the given shape whose values will be
// produced by load. The loader must return an array of exactly that shape.
func NewLazy(shape []int, load Loader) *Lazy {
	return &Lazy{
		shape:  copyInts(shape),
		source: copyInts(shape),
		load:   load,
	}
}

// AsLazy returns a lazy version of a. Lazy arrays are returned unchanged.
func AsLazy(a Array) Array {
	if a.IsLazy() {
		return a
	}
	d, err := a.Realize()
	return NewLazy(a.Shape(), func() (*sparse.DenseArray, error) {
		if err != nil {
			return nil, err
		}
		return d.DenseArray(), nil
	})
}

// Shape returns the length of each axis of the array.
func (l *Lazy) Shape() []int { return copyInts(l.shape) }

// IsLazy returns true.
func (l *Lazy) IsLazy() bool { return true }

func (l *Lazy) then(shape []int, op func(*Dense) (Array, error)) *Lazy {
	ops := make([]func(*Dense) (Array, error), len(l.ops), len(l.ops)+1)
	copy(ops, l.ops)
	return &Lazy{
		shape:  shape,
		source: l.source,
		load:   l.load,
		ops:    append(ops, op),
	}
}

// Transpose returns a lazy array that will be transposed by perm
// once loaded.
func (l *Lazy) Transpose(perm ...int) (Array, error) {
	shape, err := permuteShape(l.shape, perm)
	if err != nil {
		return nil, err
	}
	perm = copyInts(perm)
	return l.then(shape, func(d *Dense) (Array, error) { return d.Transpose(perm...) }), nil
}

// InsertAxis returns a lazy array with a length-1 axis at pos.
func (l *Lazy) InsertAxis(pos int) (Array, error) {
	shape, err := insertAxisShape(l.shape, pos)
	if err != nil {
		return nil, err
	}
	return l.then(shape, func(d *Dense) (Array, error) { return d.InsertAxis(pos) }), nil
}

// DropAxis returns a lazy array without the length-1 axis at pos.
func (l *Lazy) DropAxis(pos int) (Array, error) {
	shape, err := dropAxisShape(l.shape, pos)
	if err != nil {
		return nil, err
	}
	return l.then(shape, func(d *Dense) (Array, error) { return d.DropAxis(pos) }), nil
}

// Realize loads the values of the array and applies any pending
// axis operations. The loader is called every time Realize is called.
func (l *Lazy) Realize() (*Dense, error) {
	a, err := l.load()
	if err != nil {
		return nil, fmt.Errorf("gridcoord: loading lazy array: %w", err)
	}
	if !equalInts(a.Shape, l.source) {
		return nil, fmt.Errorf("%w: loader returned shape %v but %v was expected",
			ErrShapeMismatch, a.Shape, l.source)
	}
	var d Array = NewDense(a)
	for _, op := range l.ops {
		if d, err = op(d.(*Dense)); err != nil {
			return nil, err
		}
	}
	return d.(*Dense), nil
}
