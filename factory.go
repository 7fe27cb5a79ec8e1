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
	"sort"
)

// Dependency is a coordinate used to calculate a derived coordinate,
// together with the dataset dimensions that it varies over.
type Dependency struct {
	Coord *Coord
	Dims  []int
}

func (d Dependency) check(role string) error {
	if d.Coord == nil {
		return fmt.Errorf("gridcoord: hybrid height: missing %s coordinate", role)
	}
	if len(d.Dims) != d.Coord.NDim() &&
		!(len(d.Dims) == 0 && equalInts(d.Coord.Points.Shape(), []int{1})) {
		return fmt.Errorf("gridcoord: hybrid height: %s coordinate %s: %w: %d dimensions for %d axes",
			role, d.Coord.Name, ErrInvalidDimensionMapping, len(d.Dims), d.Coord.NDim())
	}
	return nil
}

// HybridHeight derives the height of the levels of an atmospheric model
// whose levels follow the terrain near the ground:
//
//	height = Delta + Sigma * Orography
//
// where Delta and Sigma usually vary by model level and Orography by
// horizontal location.
type HybridHeight struct {
	Delta, Sigma, Orography Dependency
}

// Dims returns the dataset dimensions that the derived coordinate varies
// over, in ascending order.
func (h HybridHeight) Dims() []int {
	seen := make(map[int]bool)
	var o []int
	for _, d := range []Dependency{h.Delta, h.Sigma, h.Orography} {
		for _, v := range d.Dims {
			if !seen[v] {
				seen[v] = true
				o = append(o, v)
			}
		}
	}
	sort.Ints(o)
	return o
}

func (h HybridHeight) check() error {
	if err := h.Delta.check("delta"); err != nil {
		return err
	}
	if err := h.Sigma.check("sigma"); err != nil {
		return err
	}
	return h.Orography.check("orography")
}

func hybridHeight(v []float64) float64 { return v[0] + v[1]*v[2] }

// Points returns the derived heights for a dataset with targetRank
// dimensions. The result is lazy if any of the dependencies is lazy.
func (h HybridHeight) Points(targetRank int) (Array, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	delta, err := BroadcastPoints(h.Delta.Coord, h.Delta.Dims, targetRank)
	if err != nil {
		return nil, err
	}
	sigma, err := BroadcastPoints(h.Sigma.Coord, h.Sigma.Dims, targetRank)
	if err != nil {
		return nil, err
	}
	orog, err := BroadcastPoints(h.Orography.Coord, h.Orography.Dims, targetRank)
	if err != nil {
		return nil, err
	}
	return Combine(hybridHeight, delta, sigma, orog)
}

// Bounds returns the bounds of the derived heights for a dataset with
// targetRank dimensions, calculated from the bounds of Delta and Sigma and
// the points of Orography.
func (h HybridHeight) Bounds(targetRank int) (Array, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	delta, err := BroadcastBounds(h.Delta.Coord, h.Delta.Dims, targetRank)
	if err != nil {
		return nil, err
	}
	sigma, err := BroadcastBounds(h.Sigma.Coord, h.Sigma.Dims, targetRank)
	if err != nil {
		return nil, err
	}
	orog, err := BroadcastPoints(h.Orography.Coord, h.Orography.Dims, targetRank)
	if err != nil {
		return nil, err
	}
	if orog, err = orog.InsertAxis(targetRank); err != nil {
		return nil, err
	}
	return Combine(hybridHeight, delta, sigma, orog)
}

// Derive returns the derived coordinate for a dataset with targetRank
// dimensions. It has bounds if both Delta and Sigma have bounds.
func (h HybridHeight) Derive(name string, targetRank int) (*Coord, error) {
	points, err := h.Points(targetRank)
	if err != nil {
		return nil, err
	}
	var bounds Array
	if h.Delta.Coord.HasBounds() && h.Sigma.Coord.HasBounds() {
		if bounds, err = h.Bounds(targetRank); err != nil {
			return nil, err
		}
	}
	return NewCoord(name, points, bounds)
}
