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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gridcoord"
	"github.com/spf13/cast"
)

// setLogLevel sets up the standard logger to print messages at or above
// the given level.
func setLogLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("gridcoord: invalid LogLevel: %v", err)
	}
	logrus.SetLevel(l)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	return nil
}

// expandPath expands any environment variables in path.
func expandPath(path string) string {
	return os.ExpandEnv(path)
}

// checkOutputFile expands any environment variables in f and makes sure
// that its directory exists. An empty f means no output is requested.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("gridcoord: the output directory doesn't exist: %v", err)
	}
	return f, nil
}

// scanOptions returns the discontiguity search options specified in cfg.
func scanOptions(cfg *viper.Viper) ([]gridcoord.ScanOption, error) {
	tol, err := cast.ToFloat64E(cfg.Get("AbsTol"))
	if err != nil {
		return nil, fmt.Errorf("gridcoord: parsing AbsTol: %v", err)
	}
	period, err := cast.ToFloat64E(cfg.Get("Period"))
	if err != nil {
		return nil, fmt.Errorf("gridcoord: parsing Period: %v", err)
	}
	marking, err := gridcoord.ParseMarking(strings.ToLower(cfg.GetString("Marking")))
	if err != nil {
		return nil, err
	}
	return []gridcoord.ScanOption{
		gridcoord.AbsTol(tol),
		gridcoord.Period(period),
		gridcoord.Mark(marking),
	}, nil
}

// toIntSliceE converts s to an []int, accounting for the fact that it may
// be a list from a configuration file, or a JSON array or comma-separated
// list if it was set from a command line argument or environment variable.
func toIntSliceE(s interface{}) ([]int, error) {
	switch v := s.(type) {
	case nil:
		return nil, nil
	case []int:
		return v, nil
	case []interface{}:
		o := make([]int, len(v))
		for i, val := range v {
			var err error
			if o[i], err = cast.ToIntE(val); err != nil {
				return nil, err
			}
		}
		return o, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" || v == "[]" {
			return nil, nil
		}
		if strings.HasPrefix(v, "[") {
			var o []int
			if err := json.Unmarshal([]byte(v), &o); err != nil {
				return nil, err
			}
			return o, nil
		}
		parts := strings.Split(v, ",")
		o := make([]int, len(parts))
		for i, p := range parts {
			var err error
			if o[i], err = cast.ToIntE(strings.TrimSpace(p)); err != nil {
				return nil, err
			}
		}
		return o, nil
	default:
		return cast.ToIntSliceE(s)
	}
}

// getStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func getStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		o := make(map[string]string)
		if strings.TrimSpace(v) == "" {
			return o, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("gridcoord: parsing %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("gridcoord: invalid type for %s: %#v", varName, i)
	}
}
