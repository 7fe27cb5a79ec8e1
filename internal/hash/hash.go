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

// Package hash creates keys for caching the results of requests.
package hash

import (
	"encoding/gob"
	"fmt"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
)

// printer writes a deterministic representation of values that gob
// cannot encode, such as those holding NaN map keys or unexported fields.
var printer = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisableMethods:          true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Key returns a cache key for request. Requests that implement
// fmt.Stringer are keyed by their String method; otherwise the key is a
// hex-encoded 128-bit FNV hash of the request's contents.
func Key(request interface{}) string {
	if s, ok := request.(fmt.Stringer); ok {
		return s.String()
	}
	h := fnv.New128a()
	if err := gob.NewEncoder(h).Encode(request); err != nil {
		h.Reset()
		printer.Fprintf(h, "%#v", request)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
