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

package gridcoordutil

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ctessum/geom/encoding/geojson"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gridcoord"
	"github.com/spatialmodel/gridcoord/ncf"
)

// BroadcastResult describes a coordinate arranged to match the
// dimensions of a data variable.
type BroadcastResult struct {
	Coord  string
	DimMap gridcoord.DimMap

	// Points and Bounds are the shapes of the broadcast points and
	// bounds. Bounds is nil if the coordinate has no bounds.
	Points, Bounds []int

	// Lazy is true if the coordinate values have not been read.
	Lazy bool
}

func (r BroadcastResult) String() string {
	s := fmt.Sprintf("%s %v: points %v", r.Coord, r.DimMap, r.Points)
	if r.Bounds != nil {
		s += fmt.Sprintf(", bounds %v", r.Bounds)
	}
	if r.Lazy {
		s += " (lazy)"
	}
	return s
}

// openNCF opens the NetCDF file at path. The returned file must be
// closed by the caller.
func openNCF(path string) (*ncf.File, *os.File, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("gridcoord: you need to specify an input file (File)")
	}
	ff, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("gridcoord: opening input file: %v", err)
	}
	f, err := ncf.Open(ff)
	if err != nil {
		ff.Close()
		return nil, nil, err
	}
	return f, ff, nil
}

// loadCoord loads coordinate variable name from f, with the bounds given
// in bounds or, if it is not listed there, by its bounds attribute.
func loadCoord(f *ncf.File, name string, bounds map[string]string) (*gridcoord.Coord, error) {
	if b, ok := bounds[name]; ok {
		return f.CoordWithBounds(name, b)
	}
	return f.Coord(name)
}

// Broadcast arranges the coordinates named in coords from the NetCDF file
// at path to match the dimensions of variable data in the same file or, if
// data is "", the dimension mapping dims in a dataset with rank dimensions.
// No coordinate values are read.
func Broadcast(path string, coords []string, bounds map[string]string, data string, dims []int, rank int) ([]BroadcastResult, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("gridcoord: you need to specify at least one coordinate (Coords)")
	}
	f, ff, err := openNCF(path)
	if err != nil {
		return nil, err
	}
	defer ff.Close()

	var dataDims []string
	if data != "" {
		if dataDims, err = f.Dimensions(data); err != nil {
			return nil, err
		}
	}
	results := make([]BroadcastResult, 0, len(coords))
	for _, name := range coords {
		c, err := loadCoord(f, name, bounds)
		if err != nil {
			return nil, err
		}
		var m gridcoord.DimMap
		if data != "" {
			m, err = f.DimMap(name, dataDims)
		} else {
			m, err = gridcoord.NewDimMap(dims, rank)
		}
		if err != nil {
			return nil, err
		}
		p, err := gridcoord.BroadcastPoints(c, m.Dims(), m.TargetRank())
		if err != nil {
			return nil, err
		}
		r := BroadcastResult{Coord: name, DimMap: m, Points: p.Shape(), Lazy: p.IsLazy()}
		if c.HasBounds() {
			b, err := gridcoord.BroadcastBounds(c, m.Dims(), m.TargetRank())
			if err != nil {
				return nil, err
			}
			r.Bounds = b.Shape()
		}
		logrus.WithFields(logrus.Fields{
			"coord":  name,
			"dims":   m.String(),
			"points": r.Points,
			"bounds": r.Bounds,
		}).Debug("broadcast coordinate")
		results = append(results, r)
	}
	return results, nil
}

// Discontiguities finds the cells of the 2-dimensional coordinates named
// in coords whose bounds do not line up with those of their neighbors and
// returns the combined mask. If outputFile is not "", the mask is written
// to it as NetCDF variable maskVariable. If geoJSONFile is not "", the
// outlines of the flagged cells, as given by the bounds of coordinates x
// and y, are written to it.
func Discontiguities(path string, coords []string, bounds map[string]string, opts []gridcoord.ScanOption,
	outputFile, maskVariable, x, y, geoJSONFile string) (*gridcoord.Mask, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("gridcoord: you need to specify at least one coordinate (Coords)")
	}
	f, ff, err := openNCF(path)
	if err != nil {
		return nil, err
	}
	defer ff.Close()

	var mask *gridcoord.Mask
	var maskDims []string
	for _, name := range coords {
		c, err := loadCoord(f, name, bounds)
		if err != nil {
			return nil, err
		}
		m, err := gridcoord.FindDiscontiguities(c, opts...)
		if err != nil {
			return nil, fmt.Errorf("gridcoord: checking %s: %w", name, err)
		}
		logrus.WithFields(logrus.Fields{
			"coord": name,
			"cells": m.Count(),
		}).Info("checked coordinate contiguity")
		if mask == nil {
			mask = m
			if maskDims, err = f.Dimensions(name); err != nil {
				return nil, err
			}
			continue
		}
		if mask, err = mask.Or(m); err != nil {
			return nil, fmt.Errorf("gridcoord: combining mask of %s: %w", name, err)
		}
	}
	logrus.WithField("cells", mask.Count()).Info("found discontiguous cells")

	if outputFile != "" {
		if err := writeMask(outputFile, maskVariable, maskDims, mask); err != nil {
			return nil, err
		}
		logrus.WithField("file", outputFile).Info("wrote discontiguity mask")
	}
	if geoJSONFile != "" {
		if err := writeGeoJSON(geoJSONFile, f, x, y, bounds, mask); err != nil {
			return nil, err
		}
		logrus.WithField("file", geoJSONFile).Info("wrote discontiguous cells")
	}
	return mask, nil
}

func writeMask(path, name string, dims []string, mask *gridcoord.Mask) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gridcoord: creating mask file: %v", err)
	}
	if err = ncf.WriteMask(w, name, dims, mask); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

type jsonFeature struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties map[string]int    `json:"properties"`
}

type jsonFeatureCollection struct {
	Type     string         `json:"type"`
	Features []*jsonFeature `json:"features"`
}

// writeGeoJSON writes the outlines of the cells flagged in mask to path as
// a GeoJSON feature collection.
func writeGeoJSON(path string, f *ncf.File, x, y string, bounds map[string]string, mask *gridcoord.Mask) error {
	if x == "" || y == "" {
		return fmt.Errorf("gridcoord: GeoJSON.X and GeoJSON.Y need to be specified to write GeoJSON output")
	}
	xc, err := loadCoord(f, x, bounds)
	if err != nil {
		return err
	}
	yc, err := loadCoord(f, y, bounds)
	if err != nil {
		return err
	}
	polys, err := gridcoord.CellPolygons(xc, yc, gridcoord.CounterClockwise)
	if err != nil {
		return fmt.Errorf("gridcoord: creating cell outlines: %w", err)
	}
	shape := mask.Shape()
	if len(polys) != shape[0]*shape[1] {
		return fmt.Errorf("gridcoord: %d cell outlines for %v mask: %w", len(polys), shape, gridcoord.ErrShapeMismatch)
	}
	out := jsonFeatureCollection{Type: "FeatureCollection", Features: []*jsonFeature{}}
	for _, ij := range mask.Indices() {
		g, err := geojson.ToGeoJSON(polys[ij[0]*shape[1]+ij[1]])
		if err != nil {
			return err
		}
		out.Features = append(out.Features, &jsonFeature{
			Type:       "Feature",
			Geometry:   g,
			Properties: map[string]int{"row": ij[0], "col": ij[1]},
		})
	}
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gridcoord: creating GeoJSON file: %v", err)
	}
	if err = json.NewEncoder(w).Encode(out); err != nil {
		w.Close()
		return fmt.Errorf("gridcoord: writing GeoJSON file: %v", err)
	}
	return w.Close()
}
