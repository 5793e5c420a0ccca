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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/macflow/InputParameters"
	"github.com/notargets/macflow/model_problems/NavierStokes2D"
)

type Model2D struct {
	ICFile         string
	OutputFile     string
	Steps          int // Overrides the input file when positive
	ParallelDegree int // Overrides the input file when positive
	Profile        bool
	Verbose        bool
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional incompressible solver on a staggered grid",
	Long:  `Two dimensional incompressible solver on a staggered grid, reads a YAML input file and optionally writes the final state`,
	Run: func(cmd *cobra.Command, args []string) {
		m2d := &Model2D{
			ICFile:         viper.GetString("inputConditionsFile"),
			OutputFile:     viper.GetString("outputFile"),
			Steps:          viper.GetInt("steps"),
			ParallelDegree: viper.GetInt("parallel"),
			Profile:        viper.GetBool("profile"),
			Verbose:        viper.GetBool("verbose"),
		}
		ip, err := processInput(m2d)
		if err == nil {
			err = Run2D(m2d, ip)
		}
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

const exampleFile = `
########################################
Title: "Jet"
Nx: 32
Ny: 32
CellSize: 1.
Density: 1.
Viscosity: 0.
Gravity: [0., 0.]
TimeStep: 0.1
Steps: 50
Boundary: solid-no-slip # Can be solid-free-slip
MaxPressureIterations: 20000
PressureTolerance: 1.e-5
InitType: jet # Can be zero, impulse or vortex
InitParams:
  JetSpeed: 1.
  JetWidth: 4
  JetHeight: 4
########################################
`

func processInput(m2d *Model2D) (ip *InputParameters.InputParametersNS2D, err error) {
	var (
		data []byte
	)
	if len(m2d.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
	}
	if data, err = os.ReadFile(m2d.ICFile); err != nil {
		return nil, fmt.Errorf("reading input parameters: %w", err)
	}
	ip = InputParameters.NewInputParametersNS2D()
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", m2d.ICFile, err)
	}
	if m2d.Steps > 0 {
		ip.Steps = m2d.Steps
	}
	if m2d.ParallelDegree > 0 {
		ip.ParallelDegree = m2d.ParallelDegree
	}
	return
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Nx, Ny, CellSize\n\t- TimeStep, Density, Viscosity")
	TwoDCmd.Flags().StringP("outputFile", "o", "", "write the final state to this YAML file")
	TwoDCmd.Flags().IntP("steps", "n", 0, "number of time steps, overrides the input file")
	TwoDCmd.Flags().IntP("parallel", "p", 0, "number of go routines used by each sweep, overrides the input file")
	TwoDCmd.Flags().Bool("profile", false, "write a CPU profile of the run to the current directory")
	TwoDCmd.Flags().BoolP("verbose", "v", true, "print the input parameters and a progress table")
	for _, name := range []string{"inputConditionsFile", "outputFile", "steps", "parallel", "profile", "verbose"} {
		if err := viper.BindPFlag(name, TwoDCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func Run2D(m2d *Model2D, ip *InputParameters.InputParametersNS2D) (err error) {
	var (
		c *NavierStokes2D.NavierStokes
	)
	if m2d.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	if m2d.Verbose {
		ip.Print()
	}
	if c, err = NavierStokes2D.NewNavierStokes(ip, m2d.Verbose); err != nil {
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err = c.Solve(ctx, ip.Steps); errors.Is(err, context.Canceled) {
		err = nil
	}
	if err == nil && len(m2d.OutputFile) != 0 {
		err = WriteSnapshot(m2d.OutputFile, c.Snapshot())
	}
	return
}

func WriteSnapshot(fileName string, s *NavierStokes2D.Snapshot) (err error) {
	var (
		data []byte
	)
	if data, err = yaml.Marshal(s); err != nil {
		return
	}
	return os.WriteFile(fileName, data, 0644)
}
