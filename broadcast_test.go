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
	"errors"
	"reflect"
	"testing"

	"github.com/ctessum/sparse"
)

// arange returns an array holding 0, 1, 2, ... with the given shape.
func arange(shape ...int) *Dense {
	v := make([]float64, numElements(shape))
	for i := range v {
		v[i] = float64(i)
	}
	d, err := DenseFromSlice(v, shape...)
	if err != nil {
		panic(err)
	}
	return d
}

// countingLazy returns a lazy copy of d and a pointer to the number of
// times it has been loaded.
func countingLazy(d *Dense) (*Lazy, *int) {
	n := new(int)
	return NewLazy(d.Shape(), func() (*sparse.DenseArray, error) {
		*n++
		a := sparse.ZerosDense(d.Shape()...)
		copy(a.Elements, d.Values())
		return a, nil
	}), n
}

func realize(t *testing.T, a Array) *Dense {
	t.Helper()
	d, err := a.Realize()
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func checkArray(t *testing.T, a Array, shape []int, values []float64) {
	t.Helper()
	if !reflect.DeepEqual(a.Shape(), shape) {
		t.Errorf("shape: want %v but have %v", shape, a.Shape())
	}
	if have := realize(t, a).Values(); !reflect.DeepEqual(have, values) {
		t.Errorf("values: want %v but have %v", values, have)
	}
}

// transposed4x3 is arange(4, 3) transposed.
var transposed4x3 = []float64{0, 3, 6, 9, 1, 4, 7, 10, 2, 5, 8, 11}

// transposed4x3x2 is arange(4, 3, 2) with its first two axes swapped.
var transposed4x3x2 = []float64{
	0, 1, 6, 7, 12, 13, 18, 19,
	2, 3, 8, 9, 14, 15, 20, 21,
	4, 5, 10, 11, 16, 17, 22, 23,
}

func TestBroadcastPoints(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		c, err := NewCoord("c", arange(1), nil)
		if err != nil {
			t.Fatal(err)
		}
		r, err := BroadcastPoints(c, nil, 2)
		if err != nil {
			t.Fatal(err)
		}
		checkArray(t, r, []int{1, 1}, []float64{0})
	})
	t.Run("simple", func(t *testing.T) {
		p := arange(4, 3)
		c, err := NewCoord("c", p, nil)
		if err != nil {
			t.Fatal(err)
		}
		r, err := BroadcastPoints(c, []int{0, 1}, 2)
		if err != nil {
			t.Fatal(err)
		}
		if r != Array(p) {
			t.Errorf("identity mapping should return the points unchanged")
		}
		checkArray(t, r, []int{4, 3}, arange(12).Values())
	})
	t.Run("complex", func(t *testing.T) {
		p := arange(4, 3)
		c, err := NewCoord("c", p, nil)
		if err != nil {
			t.Fatal(err)
		}
		r, err := BroadcastPoints(c, []int{3, 2}, 5)
		if err != nil {
			t.Fatal(err)
		}
		checkArray(t, r, []int{1, 1, 3, 4, 1}, transposed4x3)
		if !realize(t, r).SharesStorage(p) {
			t.Error("broadcast points should share storage with the coordinate")
		}
	})
	t.Run("lazy simple", func(t *testing.T) {
		p, n := countingLazy(arange(4, 3))
		c, err := NewCoord("c", p, nil)
		if err != nil {
			t.Fatal(err)
		}
		r, err := BroadcastPoints(c, []int{0, 1}, 2)
		if err != nil {
			t.Fatal(err)
		}
		if *n != 0 || !c.HasLazyPoints() || !r.IsLazy() {
			t.Fatalf("loads: %d, lazy points: %v, lazy result: %v", *n, c.HasLazyPoints(), r.IsLazy())
		}
		checkArray(t, r, []int{4, 3}, arange(12).Values())
	})
	t.Run("lazy complex", func(t *testing.T) {
		p, n := countingLazy(arange(4, 3))
		c, err := NewCoord("c", p, nil)
		if err != nil {
			t.Fatal(err)
		}
		r, err := BroadcastPoints(c, []int{3, 2}, 5)
		if err != nil {
			t.Fatal(err)
		}
		if *n != 0 || !c.HasLazyPoints() || !r.IsLazy() {
			t.Fatalf("loads: %d, lazy points: %v, lazy result: %v", *n, c.HasLazyPoints(), r.IsLazy())
		}
		checkArray(t, r, []int{1, 1, 3, 4, 1}, transposed4x3)
		if *n != 1 {
			t.Errorf("want 1 load but have %d", *n)
		}
	})
}

func TestBroadcastBounds(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		c, err := NewCoord("c", arange(1), arange(1, 2))
		if err != nil {
			t.Fatal(err)
		}
		r, err := BroadcastBounds(c, nil, 2)
		if err != nil {
			t.Fatal(err)
		}
		checkArray(t, r, []int{1, 1, 2}, []float64{0, 1})
	})
	t.Run("simple", func(t *testing.T) {
		b := arange(4, 3, 2)
		c, err := NewCoord("c", arange(4, 3), b)
		if err != nil {
			t.Fatal(err)
		}
		r, err := BroadcastBounds(c, []int{0, 1}, 2)
		if err != nil {
			t.Fatal(err)
		}
		if r != Array(b) {
			t.Errorf("identity mapping should return the bounds unchanged")
		}
	})
	t.Run("complex", func(t *testing.T) {
		c, err := NewCoord("c", arange(4, 3), arange(4, 3, 2))
		if err != nil {
			t.Fatal(err)
		}
		r, err := BroadcastBounds(c, []int{3, 2}, 5)
		if err != nil {
			t.Fatal(err)
		}
		checkArray(t, r, []int{1, 1, 3, 4, 1, 2}, transposed4x3x2)
	})
	t.Run("lazy complex", func(t *testing.T) {
		p, np := countingLazy(arange(4, 3))
		b, nb := countingLazy(arange(4, 3, 2))
		c, err := NewCoord("c", p, b)
		if err != nil {
			t.Fatal(err)
		}
		r, err := BroadcastBounds(c, []int{3, 2}, 5)
		if err != nil {
			t.Fatal(err)
		}
		if *np != 0 || *nb != 0 || !c.HasLazyBounds() || !r.IsLazy() {
			t.Fatalf("loads: %d, %d; lazy bounds: %v, lazy result: %v", *np, *nb, c.HasLazyBounds(), r.IsLazy())
		}
		checkArray(t, r, []int{1, 1, 3, 4, 1, 2}, transposed4x3x2)
		if *np != 0 {
			t.Errorf("points should not be loaded but were loaded %d times", *np)
		}
	})
}

// The bounds of a broadcast coordinate have the shape of its broadcast
// points plus the bounds axis.
func TestBroadcastBoundsMirrorPoints(t *testing.T) {
	c, err := NewCoord("c", arange(2, 3, 4), arange(2, 3, 4, 4))
	if err != nil {
		t.Fatal(err)
	}
	for _, dims := range [][]int{{0, 1, 2}, {2, 1, 0}, {1, 4, 3}, {5, 0, 2}} {
		p, err := BroadcastPoints(c, dims, 6)
		if err != nil {
			t.Fatal(err)
		}
		b, err := BroadcastBounds(c, dims, 6)
		if err != nil {
			t.Fatal(err)
		}
		want := append(p.Shape(), 4)
		if !reflect.DeepEqual(b.Shape(), want) {
			t.Errorf("%v: want %v but have %v", dims, want, b.Shape())
		}
	}
}

func TestBroadcastErrors(t *testing.T) {
	c, err := NewCoord("c", arange(4, 3), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = BroadcastBounds(c, []int{0, 1}, 2); !errors.Is(err, ErrMissingBounds) {
		t.Errorf("want ErrMissingBounds but have %v", err)
	}
	if _, err = BroadcastBounds(c, []int{0, 0}, 2); !errors.Is(err, ErrInvalidDimensionMapping) {
		t.Errorf("invalid mapping should be reported before missing bounds but have %v", err)
	}
	if _, err = BroadcastPoints(c, []int{0}, 2); !errors.Is(err, ErrInvalidDimensionMapping) {
		t.Errorf("too few dims: want ErrInvalidDimensionMapping but have %v", err)
	}
	if _, err = BroadcastPoints(c, []int{0, 1, 2}, 3); !errors.Is(err, ErrInvalidDimensionMapping) {
		t.Errorf("too many dims: want ErrInvalidDimensionMapping but have %v", err)
	}
	if _, err = BroadcastPoints(c, []int{0, 2}, 2); !errors.Is(err, ErrInvalidDimensionMapping) {
		t.Errorf("out of range: want ErrInvalidDimensionMapping but have %v", err)
	}
	if _, err = NewCoord("c", arange(4, 3), arange(4, 2, 2)); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("want ErrInvalidBounds but have %v", err)
	}
}
