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
	"io/ioutil"
	"os"
	"reflect"
	"testing"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gridcoord"
)

func TestToIntSliceE(t *testing.T) {
	for _, test := range []struct {
		in   interface{}
		want []int
	}{
		{in: nil, want: nil},
		{in: "", want: nil},
		{in: "[]", want: nil},
		{in: "[3,2]", want: []int{3, 2}},
		{in: "3, 2", want: []int{3, 2}},
		{in: []int{1}, want: []int{1}},
		{in: []interface{}{int64(0), int64(4)}, want: []int{0, 4}},
	} {
		have, err := toIntSliceE(test.in)
		if err != nil {
			t.Errorf("%#v: %v", test.in, err)
			continue
		}
		if !reflect.DeepEqual(have, test.want) {
			t.Errorf("%#v: want %v but have %v", test.in, test.want, have)
		}
	}
	if _, err := toIntSliceE("three"); err == nil {
		t.Error("want an error for an invalid list")
	}
}

func TestGetStringMapString(t *testing.T) {
	cfg := viper.New()
	cfg.Set("a", `{"lat":"lat_bnds"}`)
	cfg.Set("b", map[string]interface{}{"lon": "lon_bnds"})
	cfg.Set("c", "")
	for key, want := range map[string]map[string]string{
		"a": {"lat": "lat_bnds"},
		"b": {"lon": "lon_bnds"},
		"c": {},
		"d": {},
	} {
		have, err := getStringMapString(key, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(have, want) {
			t.Errorf("%s: want %v but have %v", key, want, have)
		}
	}
	cfg.Set("e", "{")
	if _, err := getStringMapString("e", cfg); err == nil {
		t.Error("want an error for invalid JSON")
	}
}

func TestScanOptions(t *testing.T) {
	cfg := viper.New()
	cfg.Set("AbsTol", "0.5")
	cfg.Set("Period", 0.)
	cfg.Set("Marking", "Lower")
	opts, err := scanOptions(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 3 {
		t.Errorf("want 3 options but have %d", len(opts))
	}
	cfg.Set("Marking", "upper")
	if _, err = scanOptions(cfg); err == nil {
		t.Error("want an error for an invalid marking")
	}
	cfg.Set("Marking", "both")
	cfg.Set("AbsTol", "x")
	if _, err = scanOptions(cfg); err == nil {
		t.Error("want an error for an invalid tolerance")
	}
}

func TestSetLogLevel(t *testing.T) {
	if err := setLogLevel("debug"); err != nil {
		t.Fatal(err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("want debug but have %v", logrus.GetLevel())
	}
	if err := setLogLevel("loud"); err == nil {
		t.Error("want an error for an invalid level")
	}
	setLogLevel("info")
}

func TestCheckOutputFile(t *testing.T) {
	if f, err := checkOutputFile(""); f != "" || err != nil {
		t.Errorf("empty: %q, %v", f, err)
	}
	os.Setenv("GRIDCOORD_TEST_DIR", os.TempDir())
	f, err := checkOutputFile("${GRIDCOORD_TEST_DIR}/mask.nc")
	if err != nil {
		t.Fatal(err)
	}
	if want := os.TempDir() + "/mask.nc"; f != want {
		t.Errorf("want %s but have %s", want, f)
	}
	if _, err = checkOutputFile("/does/not/exist/mask.nc"); err == nil {
		t.Error("want an error for a missing directory")
	}
}

func TestConfigFile(t *testing.T) {
	f, err := ioutil.TempFile("", "gridcoord_config")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	name := f.Name() + ".toml"
	f.Close()
	os.Rename(f.Name(), name)
	defer os.Remove(name)
	if err = ioutil.WriteFile(name, []byte(`
LogLevel = "warning"
Dims = [3, 2]
Marking = "lower"
`), 0644); err != nil {
		t.Fatal(err)
	}
	Cfg.Set("config", name)
	defer Cfg.Set("config", "")
	if err = setConfig(); err != nil {
		t.Fatal(err)
	}
	defer setLogLevel("info")
	dims, err := toIntSliceE(Cfg.Get("Dims"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{3, 2}; !reflect.DeepEqual(dims, want) {
		t.Errorf("want %v but have %v", want, dims)
	}
	if m, err := gridcoord.ParseMarking(Cfg.GetString("Marking")); err != nil || m != gridcoord.MarkLower {
		t.Errorf("want lower marking but have %v (%v)", m, err)
	}
	if logrus.GetLevel() != logrus.WarnLevel {
		t.Errorf("want warning level but have %v", logrus.GetLevel())
	}

	Cfg.Set("config", "/does/not/exist.toml")
	if err = setConfig(); err == nil {
		t.Error("want an error for a missing configuration file")
	}
}
