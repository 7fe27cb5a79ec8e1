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
)

// BroadcastPoints returns the points of c arranged for a dataset with
// targetRank dimensions, where axis i of c varies over dataset dimension
// dims[i]. Dataset dimensions that c does not vary over are given length 1.
//
// A coordinate holding a single point along one axis may be broadcast
// with an empty dims, in which case its axis is dropped.
//
// Values are neither copied nor loaded: lazy points give a lazy result and
// in-memory points give a view of the same values. If no change is needed
// the points are returned as they are.
func BroadcastPoints(c *Coord, dims []int, targetRank int) (Array, error) {
	if c == nil || c.Points == nil {
		return nil, fmt.Errorf("gridcoord: broadcasting points: coordinate has no points")
	}
	plan, err := NewPlan(dims, targetRank)
	if err != nil {
		return nil, fmt.Errorf("gridcoord: broadcasting points of %s: %w", c.Name, err)
	}
	o, err := broadcast(c.Points, plan, 0)
	if err != nil {
		return nil, fmt.Errorf("gridcoord: broadcasting points of %s: %w", c.Name, err)
	}
	return o, nil
}

// BroadcastBounds is the same as BroadcastPoints but for the bounds of c.
// The trailing bounds axis stays last, so the result has targetRank+1 axes.
func BroadcastBounds(c *Coord, dims []int, targetRank int) (Array, error) {
	if c == nil || c.Points == nil {
		return nil, fmt.Errorf("gridcoord: broadcasting bounds: coordinate has no points")
	}
	plan, err := NewPlan(dims, targetRank)
	if err != nil {
		return nil, fmt.Errorf("gridcoord: broadcasting bounds of %s: %w", c.Name, err)
	}
	if !c.HasBounds() {
		return nil, fmt.Errorf("gridcoord: broadcasting bounds of %s: %w", c.Name, ErrMissingBounds)
	}
	o, err := broadcast(c.Bounds, plan, 1)
	if err != nil {
		return nil, fmt.Errorf("gridcoord: broadcasting bounds of %s: %w", c.Name, err)
	}
	return o, nil
}

// broadcast applies p to a, whose last trailing axes are carried along
// unchanged.
func broadcast(a Array, p Plan, trailing int) (Array, error) {
	scalar, err := p.dropsScalar(a.Shape(), trailing)
	if err != nil {
		return nil, err
	}
	if p.identity() && !scalar {
		return a, nil
	}
	if scalar {
		if a, err = a.DropAxis(0); err != nil {
			return nil, err
		}
	}
	if !p.identity() {
		perm := make([]int, 0, len(p.Perm)+trailing)
		perm = append(perm, p.Perm...)
		for i := len(p.Perm); i < len(p.Perm)+trailing; i++ {
			perm = append(perm, i)
		}
		if a, err = a.Transpose(perm...); err != nil {
			return nil, err
		}
	}
	for _, pos := range p.Insert {
		if a, err = a.InsertAxis(pos); err != nil {
			return nil, err
		}
	}
	return a, nil
}
