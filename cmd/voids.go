/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/godive/InputParameters"
	"github.com/notargets/godive/geometry3D"
	"github.com/notargets/godive/readfiles"
	"github.com/notargets/godive/types"
	"github.com/notargets/godive/voids"
)

type ModelVoids struct {
	InputFile, OutputFile string
	BoxMin                float64
	BoxMax                *float64 // Periodic box when set
	Margin                float64
	Precision             int
	Verbose, Profile      bool
}

// VoidsCmd represents the voids command
var VoidsCmd = newVoidsCmd()

func newVoidsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voids",
		Short: "Emit the circumsphere of every Delaunay cell of a point catalog",
		Long: `
Reads a catalog of "x y z" lines, builds its 3D Delaunay triangulation and
writes one "x y z r" line (circumcenter and circumradius) per cell.

Periodic boundary conditions are only enabled if --upper is set; the centers
are then folded into [lower, upper).

godive voids -i halos.txt -o voids.txt -l 0 -u 500`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				log.Printf("Warning: unknown command line options: %s", strings.Join(args, " "))
			}
			if ex, _ := cmd.Flags().GetBool("example"); ex {
				fmt.Printf("Example File:%s\n", InputParameters.Example)
				return
			}
			mv, err := processVoidsInput(cmd)
			if err != nil {
				log.Fatalf("Error: %v", err)
			}
			if mv.Profile {
				defer profile.Start(profile.ProfilePath(".")).Stop()
			}
			var sum *voids.Summary
			if sum, err = RunVoids(mv); err != nil {
				log.Fatalf("Error: %v", err)
			}
			if mv.Verbose {
				log.Printf("Summary: %s", sum)
			}
			log.Printf("godive finished successfully")
		},
	}
	cmd.Flags().StringP("input", "i", "", "input catalog, one \"x y z\" point per line")
	cmd.Flags().StringP("output", "o", "", "output catalog, one \"x y z r\" void per line")
	cmd.Flags().Float64P("lower", "l", 0, "lower boundary of the periodic box")
	cmd.Flags().Float64P("upper", "u", 0, "upper boundary of the periodic box, periodic boundary conditions are only enabled if set")
	cmd.Flags().Float64("margin", 0, "width of the periodic images kept around the box, 0 = box size")
	cmd.Flags().Int("precision", readfiles.DefaultPrecision, "significant digits of the output values")
	cmd.Flags().StringP("inputParameters", "I", "", "YAML file for input parameters like:\n\t- InputFile, OutputFile\n\t- BoxMin, BoxMax")
	cmd.Flags().Bool("example", false, "print an example input parameters file and exit")
	cmd.Flags().BoolP("verbose", "v", false, "print timings, memory use and a summary of the voids")
	cmd.Flags().Bool("profile", false, "write a CPU profile of the run")
	return cmd
}

func init() {
	rootCmd.AddCommand(VoidsCmd)
}

/*
processVoidsInput merges the run parameters. From highest to lowest priority
they come from the command line, the input parameters file, the config file
or GODIVE_* environment variables (precision, margin and verbose only), and
the flag defaults.
*/
func processVoidsInput(cmd *cobra.Command) (mv *ModelVoids, err error) {
	var (
		ip    = &InputParameters.InputParametersVoids{}
		flags = cmd.Flags()
	)
	if ipFile, _ := flags.GetString("inputParameters"); len(ipFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(ipFile); err != nil {
			return nil, errors.Wrapf(types.ErrConfig, "unable to read input parameters: %v", err)
		}
		if err = ip.Parse(data); err != nil {
			return nil, errors.Wrapf(types.ErrConfig, "unable to parse input parameters %s: %v", ipFile, err)
		}
		ip.Print()
	}
	mv = &ModelVoids{
		InputFile:  ip.InputFile,
		OutputFile: ip.OutputFile,
		BoxMin:     ip.BoxMin,
		BoxMax:     ip.BoxMax,
		Margin:     ip.Margin,
		Precision:  ip.Precision,
	}
	if flags.Changed("input") || len(mv.InputFile) == 0 {
		mv.InputFile, _ = flags.GetString("input")
	}
	if flags.Changed("output") || len(mv.OutputFile) == 0 {
		mv.OutputFile, _ = flags.GetString("output")
	}
	if flags.Changed("lower") {
		mv.BoxMin, _ = flags.GetFloat64("lower")
	}
	if flags.Changed("upper") {
		upper, _ := flags.GetFloat64("upper")
		mv.BoxMax = &upper
	}
	switch {
	case flags.Changed("margin"):
		mv.Margin, _ = flags.GetFloat64("margin")
	case mv.Margin == 0 && viper.IsSet("margin"):
		mv.Margin = viper.GetFloat64("margin")
	}
	switch {
	case flags.Changed("precision"):
		mv.Precision, _ = flags.GetInt("precision")
	case mv.Precision != 0:
	case viper.IsSet("precision"):
		mv.Precision = viper.GetInt("precision")
	default:
		mv.Precision, _ = flags.GetInt("precision")
	}
	if flags.Changed("verbose") {
		mv.Verbose, _ = flags.GetBool("verbose")
	} else {
		mv.Verbose = viper.GetBool("verbose")
	}
	mv.Profile, _ = flags.GetBool("profile")
	return
}

/*
RunVoids checks the configuration, reads the catalog and writes the voids.
The output goes to a temporary file next to OutputFile that replaces it only
once every void has been written, so a failed run leaves no output behind.
*/
func RunVoids(mv *ModelVoids) (sum *voids.Summary, err error) {
	if len(mv.InputFile) == 0 {
		return nil, errors.Wrap(types.ErrConfig, "please set the input catalog using the '-i' option")
	}
	if len(mv.OutputFile) == 0 {
		return nil, errors.Wrap(types.ErrConfig, "please set the output catalog using the '-o' option")
	}
	cfg := voids.Config{Margin: mv.Margin, Verbose: mv.Verbose}
	if mv.BoxMax != nil {
		cfg.Periodic = true
		cfg.Domain = geometry3D.Domain{Min: mv.BoxMin, Max: *mv.BoxMax}
	}
	if err = cfg.Validate(); err != nil {
		return
	}
	var of readfiles.OutputFormat
	if of, err = readfiles.NewOutputFormat(mv.Precision); err != nil {
		return
	}

	log.Printf("Reading file: %s", mv.InputFile)
	points, err := readfiles.ReadPointsFile(mv.InputFile, mv.Verbose)
	if err != nil {
		return
	}
	if len(points) < voids.MinPoints {
		return nil, errors.Wrapf(types.ErrInsufficientData, "too few objects read from file: %d", len(points))
	}
	log.Printf("Number of input objects: %d", len(points))

	tmp, err := os.CreateTemp(filepath.Dir(mv.OutputFile), "."+filepath.Base(mv.OutputFile)+".*")
	if err != nil {
		return nil, errors.Wrapf(types.ErrConfig, "unable to create output catalog: %v", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	var vw *readfiles.VoidWriter
	if vw, err = readfiles.NewVoidWriter(tmp, of); err != nil {
		return
	}
	log.Printf("Writing to file: %s", mv.OutputFile)
	if sum, err = voids.Find(points, cfg, vw); err != nil {
		return nil, err
	}
	if err = vw.Flush(); err != nil {
		return nil, err
	}
	if err = tmp.Chmod(0644); err != nil {
		return nil, errors.Wrap(err, "output catalog")
	}
	if err = tmp.Close(); err != nil {
		return nil, errors.Wrap(err, "output catalog")
	}
	if err = os.Rename(tmp.Name(), mv.OutputFile); err != nil {
		return nil, errors.Wrap(err, "output catalog")
	}
	return
}
