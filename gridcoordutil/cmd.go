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

// Package gridcoordutil contains the command-line interface for gridcoord.
package gridcoordutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/gridcoord"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to gridcoord.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the minimum severity of log messages
              that are printed: debug, info, warning, or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "File",
			usage: `
              File is the path to the NetCDF file holding the coordinate
              variables. It can include environment variables.`,
			shorthand:  "f",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{broadcastCmd.Flags(), discontiguitiesCmd.Flags()},
		},
		{
			name: "Coords",
			usage: `
              Coords lists the names of the coordinate variables to process.`,
			shorthand:  "c",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{broadcastCmd.Flags(), discontiguitiesCmd.Flags()},
		},
		{
			name: "Bounds",
			usage: `
              Bounds maps coordinate variable names to the names of the
              variables holding their cell bounds, for example
              {"lat":"lat_bnds"}. Coordinates that are not listed use the
              variable named by their 'bounds' attribute, if any.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{broadcastCmd.Flags(), discontiguitiesCmd.Flags()},
		},
		{
			name: "Data",
			usage: `
              Data is the name of the data variable that the coordinates
              are broadcast to. The dimensions of each coordinate are matched
              by name to the dimensions of this variable. If Data is empty,
              Dims and Rank are used instead.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{broadcastCmd.Flags()},
		},
		{
			name: "Dims",
			usage: `
              Dims specifies, for each axis of the coordinates, the dimension
              of the data that the axis varies over, for example [3,2].`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{broadcastCmd.Flags()},
		},
		{
			name: "Rank",
			usage: `
              Rank is the number of dimensions of the data when Dims is used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{broadcastCmd.Flags()},
		},
		{
			name: "AbsTol",
			usage: `
              AbsTol is the absolute tolerance within which the corners shared by
              neighboring cells are considered equal.`,
			defaultVal: gridcoord.DefaultAbsTol,
			flagsets:   []*pflag.FlagSet{discontiguitiesCmd.Flags()},
		},
		{
			name: "Period",
			usage: `
              Period, if not zero, is the period of the coordinate values, for
              example 360 for longitudes in degrees. Corners that differ by a whole
              number of periods are considered equal.`,
			defaultVal: 0.,
			flagsets:   []*pflag.FlagSet{discontiguitiesCmd.Flags()},
		},
		{
			name: "Marking",
			usage: `
              Marking specifies which cells are flagged when two neighboring cells
              do not line up: 'both' flags both cells and 'lower' flags only the
              cell with the lower index.`,
			defaultVal: "both",
			flagsets:   []*pflag.FlagSet{discontiguitiesCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile, if not empty, is the path of a NetCDF file to write the
              discontiguity mask to. It can include environment variables.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{discontiguitiesCmd.Flags()},
		},
		{
			name: "MaskVariable",
			usage: `
              MaskVariable is the name of the mask variable in OutputFile.`,
			defaultVal: "discontiguous",
			flagsets:   []*pflag.FlagSet{discontiguitiesCmd.Flags()},
		},
		{
			name: "GeoJSON.X",
			usage: `
              GeoJSON.X is the name of the coordinate variable holding the x
              (for example, longitude) values of the grid cell corners.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{discontiguitiesCmd.Flags()},
		},
		{
			name: "GeoJSON.Y",
			usage: `
              GeoJSON.Y is the name of the coordinate variable holding the y
              (for example, latitude) values of the grid cell corners.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{discontiguitiesCmd.Flags()},
		},
		{
			name: "GeoJSON.File",
			usage: `
              GeoJSON.File, if not empty, is the path of a GeoJSON file to write
              the outlines of the flagged cells to. GeoJSON.X and GeoJSON.Y must
              also be set.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{discontiguitiesCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GRIDCOORD")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(broadcastCmd)
	Root.AddCommand(discontiguitiesCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gridcoord: problem reading configuration file: %v", err)
		}
	}
	return setLogLevel(Cfg.GetString("LogLevel"))
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "gridcoord",
	Short: "Map coordinates onto gridded data and check the contiguity of their cells.",
	Long: `gridcoord works with the coordinate variables of gridded datasets stored in
NetCDF files. It can arrange coordinates to match the dimensions of a data
variable and find grid cells whose bounds do not line up with those of their
neighbors.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GRIDCOORD_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of gridcoord.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("gridcoord v%s\n", gridcoord.Version)
	},
	DisableAutoGenTag: true,
}

// broadcastCmd reports how coordinates are arranged to match a data variable.
var broadcastCmd = &cobra.Command{
	Use:   "broadcast",
	Short: "Arrange coordinates to match the dimensions of a data variable.",
	Long: `broadcast arranges the points and bounds of the coordinates in Coords to match
the dimensions of the Data variable (or of Dims and Rank), and prints the resulting
dimension mappings and shapes. Coordinate values are not read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dims, err := toIntSliceE(Cfg.Get("Dims"))
		if err != nil {
			return fmt.Errorf("gridcoord: parsing Dims: %v", err)
		}
		bounds, err := getStringMapString("Bounds", Cfg)
		if err != nil {
			return err
		}
		results, err := Broadcast(
			expandPath(Cfg.GetString("File")),
			Cfg.GetStringSlice("Coords"),
			bounds,
			Cfg.GetString("Data"),
			dims,
			Cfg.GetInt("Rank"),
		)
		if err != nil {
			return err
		}
		for _, r := range results {
			cmd.Println(r)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// discontiguitiesCmd finds grid cells whose bounds do not line up.
var discontiguitiesCmd = &cobra.Command{
	Use:   "discontiguities",
	Short: "Find grid cells whose bounds do not line up with their neighbors.",
	Long: `discontiguities checks the bounds of each 2-dimensional coordinate in Coords
and reports the grid cells whose corners do not match the corners of a neighboring
cell. The flagged cells of all coordinates are combined and can be saved as a
NetCDF mask (OutputFile) and as GeoJSON cell outlines (GeoJSON.File).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := scanOptions(Cfg)
		if err != nil {
			return err
		}
		bounds, err := getStringMapString("Bounds", Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		geoJSONFile, err := checkOutputFile(Cfg.GetString("GeoJSON.File"))
		if err != nil {
			return err
		}
		_, err = Discontiguities(
			expandPath(Cfg.GetString("File")),
			Cfg.GetStringSlice("Coords"),
			bounds,
			opts,
			outputFile,
			Cfg.GetString("MaskVariable"),
			Cfg.GetString("GeoJSON.X"),
			Cfg.GetString("GeoJSON.Y"),
			geoJSONFile,
		)
		return err
	},
	DisableAutoGenTag: true,
}
