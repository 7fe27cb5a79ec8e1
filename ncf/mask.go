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

package ncf

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/spatialmodel/gridcoord"
)

// WriteMask writes m to a new NetCDF file in rw as a BYTE variable called
// name with dimensions dims, holding 1 for flagged cells and 0 elsewhere.
func WriteMask(rw cdf.ReaderWriterAt, name string, dims []string, m *gridcoord.Mask) error {
	if len(dims) != 2 {
		return fmt.Errorf("ncf: writing mask %s: want 2 dimension names but have %d", name, len(dims))
	}
	shape := m.Shape()
	h := cdf.NewHeader(dims, shape)
	h.AddAttribute("", "comment", "gridcoord discontiguity mask")
	h.AddVariable(name, dims, []uint8{0})
	h.AddAttribute(name, "description",
		"1 where the cell bounds do not line up with those of a neighboring cell")
	h.AddAttribute(name, "flag_values", []uint8{0, 1})
	h.AddAttribute(name, "flag_meanings", "contiguous discontiguous")
	h.Define()

	f, err := cdf.Create(rw, h) // writes the header to rw
	if err != nil {
		return fmt.Errorf("ncf: writing mask %s: %v", name, err)
	}
	data := make([]uint8, shape[0]*shape[1])
	for _, ij := range m.Indices() {
		data[ij[0]*shape[1]+ij[1]] = 1
	}
	w := f.Writer(name, nil, nil)
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("ncf: writing mask %s: %v", name, err)
	}
	if ff, ok := rw.(*os.File); ok {
		if err = cdf.UpdateNumRecs(ff); err != nil {
			return fmt.Errorf("ncf: writing mask %s: %v", name, err)
		}
	}
	return nil
}
