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
	"strings"
)

// DimMap records, for each axis of a coordinate, which dimension of a
// dataset with TargetRank dimensions that axis varies over.
type DimMap struct {
	dims []int
	rank int
}

// NewDimMap returns a DimMap in which axis i of the coordinate varies over
// dataset dimension dims[i]. The dimensions must be distinct and within
// [0, targetRank).
func NewDimMap(dims []int, targetRank int) (DimMap, error) {
	if targetRank < 0 {
		return DimMap{}, fmt.Errorf("%w: negative target rank %d", ErrInvalidDimensionMapping, targetRank)
	}
	seen := make(map[int]bool, len(dims))
	for _, d := range dims {
		if d < 0 || d >= targetRank {
			return DimMap{}, fmt.Errorf("%w: dimension %d is outside of [0, %d)",
				ErrInvalidDimensionMapping, d, targetRank)
		}
		if seen[d] {
			return DimMap{}, fmt.Errorf("%w: dimension %d is repeated in %v",
				ErrInvalidDimensionMapping, d, dims)
		}
		seen[d] = true
	}
	return DimMap{dims: copyInts(dims), rank: targetRank}, nil
}

// Dims returns the dataset dimension of each coordinate axis.
func (m DimMap) Dims() []int { return copyInts(m.dims) }

// TargetRank returns the number of dimensions of the dataset.
func (m DimMap) TargetRank() int { return m.rank }

// Len returns the number of coordinate axes in the mapping.
func (m DimMap) Len() int { return len(m.dims) }

func (m DimMap) String() string {
	s := make([]string, len(m.dims))
	for i, d := range m.dims {
		s[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("(%s)->%d", strings.Join(s, ", "), m.rank)
}

// Plan describes how to bring the axes of a coordinate into the order of
// the dataset dimensions.
type Plan struct {
	// Perm reorders the coordinate axes into ascending dataset
	// dimension order: axis i after reordering is original axis Perm[i].
	Perm []int

	// Insert holds, in ascending order, the positions at which
	// length-1 axes are inserted for the dataset dimensions that the
	// coordinate does not vary over.
	Insert []int

	// TargetRank is the number of dimensions of the dataset.
	TargetRank int
}

// Plan returns the plan for bringing a coordinate with mapping m
// to full rank.
func (m DimMap) Plan() Plan {
	perm := make([]int, len(m.dims))
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(i, j int) bool { return m.dims[perm[i]] < m.dims[perm[j]] })

	used := make([]bool, m.rank)
	for _, d := range m.dims {
		used[d] = true
	}
	insert := make([]int, 0, m.rank-len(m.dims))
	for d, u := range used {
		if !u {
			insert = append(insert, d)
		}
	}
	return Plan{Perm: perm, Insert: insert, TargetRank: m.rank}
}

// NewPlan validates dims and targetRank and returns the plan for bringing
// a coordinate mapped by dims to full rank.
func NewPlan(dims []int, targetRank int) (Plan, error) {
	m, err := NewDimMap(dims, targetRank)
	if err != nil {
		return Plan{}, err
	}
	return m.Plan(), nil
}

// identity reports whether the plan leaves a coordinate unchanged.
func (p Plan) identity() bool {
	if len(p.Insert) != 0 {
		return false
	}
	for i, v := range p.Perm {
		if i != v {
			return false
		}
	}
	return true
}

// dropsScalar reports whether an array with the given shape, whose last
// trailing axes are not part of the mapping, is a scalar stored with one
// size-1 native axis that must be dropped before p is applied. Any other
// mismatch between the shape and the plan is an error.
func (p Plan) dropsScalar(shape []int, trailing int) (bool, error) {
	native := len(shape) - trailing
	if trailing < 0 || native < 0 {
		return false, fmt.Errorf("%w: shape %v with %d trailing axes",
			ErrInvalidDimensionMapping, shape, trailing)
	}
	if len(p.Perm) == 0 && native == 1 && shape[0] == 1 {
		return true, nil
	}
	if native != len(p.Perm) {
		return false, fmt.Errorf("%w: %d dimensions given for %d coordinate axes",
			ErrInvalidDimensionMapping, len(p.Perm), native)
	}
	return false, nil
}

// Shape returns the shape that an array with the given native shape, plus
// trailing axes that are not part of the mapping, would have after the
// plan was applied.
func (p Plan) Shape(native []int, trailing int) ([]int, error) {
	scalar, err := p.dropsScalar(native, trailing)
	if err != nil {
		return nil, err
	}
	if scalar {
		native = native[1:]
	}
	o := make([]int, 0, p.TargetRank+trailing)
	for _, i := range p.Perm {
		o = append(o, native[i])
	}
	for _, pos := range p.Insert {
		o = append(o[:pos], append([]int{1}, o[pos:]...)...)
	}
	return append(o, native[len(p.Perm):]...), nil
}
