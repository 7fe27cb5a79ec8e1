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

// Package gridcoord maps the coordinates of gridded datasets onto the
// dimensions of the data they describe, and checks whether the cell bounds of
// two-dimensional coordinates line up with their neighbors.
//
// Coordinates hold their point values and, optionally, their cell bounds as
// Arrays. An Array is either Dense, a strided view over values held in memory,
// or Lazy, a description of values that will be loaded only when they are
// realized. Broadcasting a coordinate to the rank of a dataset never copies or
// loads its values.
package gridcoord

// Version gives the version number.
const Version = "0.1.0"
