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

package hash

import (
	"math"
	"testing"
)

type request struct {
	Variable string
	Shape    []int
}

type named struct{ name string }

func (n named) String() string { return n.name }

func TestKey(t *testing.T) {
	a := Key(request{Variable: "lat", Shape: []int{3, 4}})
	b := Key(request{Variable: "lat", Shape: []int{3, 4}})
	c := Key(request{Variable: "lat", Shape: []int{4, 3}})
	if a != b {
		t.Errorf("equal requests have different keys %s and %s", a, b)
	}
	if a == c {
		t.Errorf("different requests have the same key %s", a)
	}
	if len(a) != 32 {
		t.Errorf("want a 32 character key but have %q", a)
	}
}

func TestKeyStringer(t *testing.T) {
	if k := Key(named{name: "lat_bnds"}); k != "lat_bnds" {
		t.Errorf("want lat_bnds but have %s", k)
	}
}

func TestKeyUnencodable(t *testing.T) {
	// gob cannot encode structs without exported fields.
	type unexported struct {
		v float64
	}
	a := Key(unexported{v: math.NaN()})
	b := Key(unexported{v: math.NaN()})
	if a != b {
		t.Errorf("want equal keys but have %s and %s", a, b)
	}
	if Key(unexported{v: 1}) == a {
		t.Error("different requests have the same key")
	}
}
