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

import "errors"

var (
	// ErrInvalidDimensionMapping is returned when a dimension mapping contains
	// repeated or out-of-range dataset dimensions, or does not match the
	// number of axes of the coordinate it is applied to.
	ErrInvalidDimensionMapping = errors.New("gridcoord: invalid dimension mapping")

	// ErrMissingBounds is returned when an operation requires cell bounds
	// that a coordinate does not have.
	ErrMissingBounds = errors.New("gridcoord: coordinate has no bounds")

	// ErrUnsupportedRank is returned when a discontiguity search is requested
	// for a coordinate that is not 2-dimensional.
	ErrUnsupportedRank = errors.New("gridcoord: discontiguity search is only supported for 2-dimensional coordinates")

	// ErrInvalidBounds is returned when the bounds of a coordinate do not
	// have the shape implied by its points and corner layout.
	ErrInvalidBounds = errors.New("gridcoord: invalid bounds")

	// ErrInvalidTolerance is returned for negative or NaN comparison
	// tolerances or periods.
	ErrInvalidTolerance = errors.New("gridcoord: invalid tolerance")

	// ErrShapeMismatch is returned when array shapes are incompatible.
	ErrShapeMismatch = errors.New("gridcoord: shape mismatch")

	// ErrInvalidAxis is returned when an axis operation refers to an axis
	// that does not exist or cannot be removed.
	ErrInvalidAxis = errors.New("gridcoord: invalid axis")

	// ErrIndexOutOfRange is returned when an index falls outside of an array
	// or mask.
	ErrIndexOutOfRange = errors.New("gridcoord: index out of range")
)
