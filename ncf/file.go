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

// Package ncf loads gridcoord coordinates from NetCDF files and saves
// discontiguity masks to them.
package ncf

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/ctessum/cdf"
	"github.com/ctessum/requestcache"
	"github.com/ctessum/sparse"
	"github.com/spatialmodel/gridcoord"
	"github.com/spatialmodel/gridcoord/internal/hash"
)

var (
	// ErrNoVariable is returned when a requested variable is not in a file.
	ErrNoVariable = errors.New("ncf: variable not in file")

	// ErrUnsupportedType is returned for variables that cannot be
	// read as floating point arrays, such as character variables and
	// record variables.
	ErrUnsupportedType = errors.New("ncf: unsupported variable")
)

// File is a NetCDF file holding coordinate variables.
type File struct {
	cdf.File

	// CacheSize specifies the number of variables to be held in the
	// memory cache. The default is 100. CacheSize can only be changed
	// before the first variable has been loaded.
	CacheSize int

	// cache holds the values of variables that have been read.
	cache *requestcache.Cache
	// cacheInit is used to initialize cache.
	cacheInit sync.Once
}

// Open opens the NetCDF file in rw.
func Open(rw cdf.ReaderWriterAt) (*File, error) {
	cf, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("ncf: opening file: %v", err)
	}
	return &File{
		File:      *cf,
		CacheSize: 100,
	}, nil
}

// readRequest is a request for all of the values of a variable.
type readRequest struct {
	Variable string
	Shape    []int
}

// Dimensions returns the names of the dimensions of variable name.
func (f *File) Dimensions(name string) ([]string, error) {
	dims := f.Header.Dimensions(name)
	if dims == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoVariable, name)
	}
	return dims, nil
}

// Variable returns the values of variable name as a lazy array. Only the
// file header is read; the values are read when the array is realized.
// Variables of type BYTE, SHORT, INT, FLOAT and DOUBLE are supported.
func (f *File) Variable(name string) (*gridcoord.Lazy, error) {
	if _, err := f.Dimensions(name); err != nil {
		return nil, err
	}
	if f.Header.IsRecordVariable(name) {
		return nil, fmt.Errorf("%w: %s is a record variable", ErrUnsupportedType, name)
	}
	if _, ok := f.Header.ZeroValue(name, 0).(string); ok {
		return nil, fmt.Errorf("%w: %s is a character variable", ErrUnsupportedType, name)
	}
	shape := make([]int, len(f.Header.Lengths(name)))
	copy(shape, f.Header.Lengths(name))
	req := readRequest{Variable: name, Shape: shape}
	return gridcoord.NewLazy(shape, func() (*sparse.DenseArray, error) {
		return f.load(req)
	}), nil
}

// load returns a copy of the cached values of the requested variable,
// reading them if they are not already in the cache. It is
// concurrency-safe.
func (f *File) load(req readRequest) (*sparse.DenseArray, error) {
	f.cacheInit.Do(func() {
		f.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
			return f.read(request.(readRequest))
		}, runtime.GOMAXPROCS(-1),
			requestcache.Deduplicate(), requestcache.Memory(f.CacheSize))
	})
	result, err := f.cache.NewRequest(context.TODO(), req, hash.Key(req)).Result()
	if err != nil {
		return nil, err
	}
	cached := result.(*sparse.DenseArray)
	o := sparse.ZerosDense(append([]int{}, req.Shape...)...)
	copy(o.Elements, cached.Elements)
	return o, nil
}

// read reads all of the values of the requested variable.
func (f *File) read(req readRequest) (*sparse.DenseArray, error) {
	data := sparse.ZerosDense(append([]int{}, req.Shape...)...)
	if len(data.Elements) == 0 {
		return data, nil
	}
	r := f.File.Reader(req.Variable, nil, nil)
	buf := r.Zero(len(data.Elements))
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("ncf: reading variable %s: %v", req.Variable, err)
	}
	switch v := buf.(type) {
	case []float64:
		copy(data.Elements, v)
	case []float32:
		for i, val := range v {
			data.Elements[i] = float64(val)
		}
	case []int32:
		for i, val := range v {
			data.Elements[i] = float64(val)
		}
	case []int16:
		for i, val := range v {
			data.Elements[i] = float64(val)
		}
	case []uint8:
		for i, val := range v {
			data.Elements[i] = float64(val)
		}
	default:
		return nil, fmt.Errorf("%w: %s has values of type %T", ErrUnsupportedType, req.Variable, buf)
	}
	return data, nil
}

// boundsAttribute is the attribute that, according to the CF conventions,
// names the variable holding the cell bounds of a coordinate variable.
const boundsAttribute = "bounds"

// BoundsName returns the name of the variable holding the bounds of
// coordinate variable name, or "" if it has none.
func (f *File) BoundsName(name string) string {
	if b, ok := f.Header.GetAttribute(name, boundsAttribute).(string); ok {
		return b
	}
	return ""
}

// Coord returns coordinate variable name with the bounds named by its
// "bounds" attribute, if it has one. Neither points nor bounds are read
// until they are realized.
func (f *File) Coord(name string) (*gridcoord.Coord, error) {
	return f.CoordWithBounds(name, f.BoundsName(name))
}

// CoordWithBounds returns coordinate variable name with the bounds in
// variable boundsName. If boundsName is "", the coordinate has no bounds.
func (f *File) CoordWithBounds(name, boundsName string) (*gridcoord.Coord, error) {
	points, err := f.Variable(name)
	if err != nil {
		return nil, err
	}
	if boundsName == "" {
		return gridcoord.NewCoord(name, points, nil)
	}
	bounds, err := f.Variable(boundsName)
	if err != nil {
		return nil, err
	}
	return gridcoord.NewCoord(name, points, bounds)
}

// DimMap returns the mapping between the dimensions of coordinate variable
// name and those of a data variable whose dimensions are named dataDims.
func (f *File) DimMap(name string, dataDims []string) (gridcoord.DimMap, error) {
	dims, err := f.Dimensions(name)
	if err != nil {
		return gridcoord.DimMap{}, err
	}
	index := make(map[string]int, len(dataDims))
	for i, d := range dataDims {
		index[d] = i
	}
	m := make([]int, len(dims))
	for i, d := range dims {
		j, ok := index[d]
		if !ok {
			return gridcoord.DimMap{}, fmt.Errorf("ncf: %w: dimension %s of %s is not in %v",
				gridcoord.ErrInvalidDimensionMapping, d, name, dataDims)
		}
		m[i] = j
	}
	return gridcoord.NewDimMap(m, len(dataDims))
}
