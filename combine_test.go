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
)

func TestCombine(t *testing.T) {
	a := arange(2, 3)
	b, err := DenseFromSlice([]float64{10, 20}, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	r, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	checkArray(t, r, []int{2, 3}, []float64{10, 11, 12, 23, 24, 25})

	r, err = Mul(arange(3), b)
	if err != nil {
		t.Fatal(err)
	}
	checkArray(t, r, []int{2, 3}, []float64{0, 10, 20, 0, 20, 40})

	r, err = Add(a, Scalar(1))
	if err != nil {
		t.Fatal(err)
	}
	checkArray(t, r, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})

	if _, err = Add(a, arange(2)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("want ErrShapeMismatch but have %v", err)
	}
}

func TestCombineViews(t *testing.T) {
	tr, err := arange(2, 3).Transpose(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	r, err := Add(tr, Scalar(0))
	if err != nil {
		t.Fatal(err)
	}
	checkArray(t, r, []int{3, 2}, []float64{0, 3, 1, 4, 2, 5})
}

func TestCombineLazy(t *testing.T) {
	l, n := countingLazy(arange(2, 3))
	r, err := Add(l, arange(3))
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsLazy() || *n != 0 {
		t.Fatalf("lazy: %v, loads: %d", r.IsLazy(), *n)
	}
	checkArray(t, r, []int{2, 3}, []float64{0, 2, 4, 3, 5, 7})
	if *n != 1 {
		t.Errorf("want 1 load but have %d", *n)
	}
}

func hybridHeightFixture(t *testing.T, lazyOrography bool) (HybridHeight, *int) {
	t.Helper()
	delta, err := DenseFromSlice([]float64{0, 100, 200}, 3)
	if err != nil {
		t.Fatal(err)
	}
	deltaBounds, err := DenseFromSlice([]float64{-50, 50, 50, 150, 150, 250}, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	sigma, err := DenseFromSlice([]float64{1, 0.5, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	sigmaBounds, err := DenseFromSlice([]float64{1, 0.75, 0.75, 0.25, 0.25, 0}, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	orog, err := DenseFromSlice([]float64{10, 20, 30, 40}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	var orogArray Array = orog
	n := new(int)
	if lazyOrography {
		orogArray, n = countingLazy(orog)
	}
	dc, err := NewCoord("level_height", delta, deltaBounds)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := NewCoord("sigma", sigma, sigmaBounds)
	if err != nil {
		t.Fatal(err)
	}
	oc, err := NewCoord("surface_altitude", orogArray, nil)
	if err != nil {
		t.Fatal(err)
	}
	return HybridHeight{
		Delta:     Dependency{Coord: dc, Dims: []int{0}},
		Sigma:     Dependency{Coord: sc, Dims: []int{0}},
		Orography: Dependency{Coord: oc, Dims: []int{1, 2}},
	}, n
}

func TestHybridHeight(t *testing.T) {
	h, _ := hybridHeightFixture(t, false)
	if want := []int{0, 1, 2}; !reflect.DeepEqual(h.Dims(), want) {
		t.Errorf("dims: want %v but have %v", want, h.Dims())
	}
	p, err := h.Points(3)
	if err != nil {
		t.Fatal(err)
	}
	checkArray(t, p, []int{3, 2, 2}, []float64{
		10, 20, 30, 40,
		105, 110, 115, 120,
		200, 200, 200, 200,
	})
	b, err := h.Bounds(3)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{3, 2, 2, 2}; !reflect.DeepEqual(b.Shape(), want) {
		t.Fatalf("bounds: want %v but have %v", want, b.Shape())
	}
	bd := realize(t, b)
	for _, test := range []struct {
		index []int
		want  float64
	}{
		{index: []int{0, 0, 0, 0}, want: -40},
		{index: []int{0, 0, 0, 1}, want: 57.5},
		{index: []int{1, 0, 1, 1}, want: 155},
		{index: []int{2, 1, 1, 1}, want: 250},
	} {
		if have := bd.At(test.index...); have != test.want {
			t.Errorf("%v: want %g but have %g", test.index, test.want, have)
		}
	}
	c, err := h.Derive("altitude", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !c.HasBounds() || c.NBounds() != 2 {
		t.Errorf("derived coordinate should have 2 bounds per point but has %d", c.NBounds())
	}
}

func TestHybridHeightLazy(t *testing.T) {
	h, n := hybridHeightFixture(t, true)
	c, err := h.Derive("altitude", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !c.HasLazyPoints() || !c.HasLazyBounds() || *n != 0 {
		t.Fatalf("lazy points: %v, lazy bounds: %v, loads: %d", c.HasLazyPoints(), c.HasLazyBounds(), *n)
	}
	p := realize(t, c.Points)
	if have := p.At(1, 1, 0); have != 115 {
		t.Errorf("want 115 but have %g", have)
	}
	if *n != 1 {
		t.Errorf("want 1 load but have %d", *n)
	}
}

func TestHybridHeightMissingBounds(t *testing.T) {
	h, _ := hybridHeightFixture(t, false)
	h.Sigma.Coord = &Coord{Name: "sigma", Points: h.Sigma.Coord.Points}
	if _, err := h.Bounds(3); !errors.Is(err, ErrMissingBounds) {
		t.Errorf("want ErrMissingBounds but have %v", err)
	}
	c, err := h.Derive("altitude", 3)
	if err != nil {
		t.Fatal(err)
	}
	if c.HasBounds() {
		t.Error("derived coordinate should not have bounds")
	}
	h.Delta.Dims = []int{0, 1}
	if _, err := h.Points(3); !errors.Is(err, ErrInvalidDimensionMapping) {
		t.Errorf("want ErrInvalidDimensionMapping but have %v", err)
	}
}
