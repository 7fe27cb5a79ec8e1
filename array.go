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

// Array is an n-dimensional array of float64 values. Its values may
// either be held in memory (*Dense) or be loaded on demand (*Lazy).
//
// The axis operations return new arrays and never modify the receiver.
// For in-memory arrays the returned arrays are views that share the
// receiver's values; for lazy arrays they are lazy arrays that apply the
// operation after loading.
type Array interface {
	// Shape returns the length of each axis of the array.
	Shape() []int

	// Transpose returns the array with its axes reordered so that axis i
	// of the result is axis perm[i] of the receiver.
	Transpose(perm ...int) (Array, error)

	// InsertAxis returns the array with a new axis of length 1 at
	// position pos, where 0 <= pos <= the number of axes.
	InsertAxis(pos int) (Array, error)

	// DropAxis returns the array without the length-1 axis at pos.
	DropAxis(pos int) (Array, error)

	// IsLazy reports whether the values of the array have yet to be loaded.
	IsLazy() bool

	// Realize returns the values of the array in memory.
	Realize() (*Dense, error)
}

// Realize returns the values of every array in a, in order.
func Realize(a ...Array) ([]*Dense, error) {
	o := make([]*Dense, len(a))
	for i, arr := range a {
		d, err := arr.Realize()
		if err != nil {
			return nil, err
		}
		o[i] = d
	}
	return o, nil
}
