/*
 * rama.go, part of bbscore.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rmera/bbscore"
	"github.com/rmera/bbscore/ffdata"
	"github.com/rmera/bbscore/logging"
	"github.com/rmera/bbscore/ramaplot"
	"github.com/spf13/cobra"
)

func newRamaPlotCmd() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "ramaplot OUT.png [CONFORMATIONS.json]",
		Short: "Plot the Ramachandran grid, and the phi/psi pairs of the conformations, if given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, E, err := engineFor(cmd)
			if err != nil {
				return err
			}
			var data []bbscore.PhiPsi
			if len(args) == 2 {
				confs, err := readConformations(cmd, args[1])
				if err != nil {
					return err
				}
				for _, conf := range confs {
					pp, _, err := conf.Dihedrals()
					if err != nil {
						return err
					}
					data = append(data, pp...)
				}
			}
			p, err := ramaplot.RamaPlot(E.Rama(), data, nil, title)
			if err != nil {
				return err
			}
			if err := ramaplot.Save(p, args[0]); err != nil {
				return err
			}
			c.Logger.Info("plot written", logging.String("file", args[0]), logging.Int("points", len(data)))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "Ramachandran plot", "plot title")
	return cmd
}

// readSamples reads phi/psi pairs, one per line. Empty lines and lines
// starting with ';' or '#' are skipped.
func readSamples(cmd *cobra.Command, name string) ([]bbscore.PhiPsi, error) {
	in, err := openInput(cmd, name)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	var ret []bbscore.PhiPsi
	scanner := bufio.NewScanner(in)
	n := 0
	for scanner.Scan() {
		n++
		l := strings.TrimSpace(scanner.Text())
		if l == "" || l[0] == ';' || l[0] == '#' {
			continue
		}
		f := strings.Fields(strings.ReplaceAll(l, ",", " "))
		if len(f) != 2 {
			return nil, fmt.Errorf("%s line %d: expected 'phi psi', got %q", name, n, l)
		}
		a, err := parseFloats(f...)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, n, err)
		}
		ret = append(ret, bbscore.PhiPsi{Phi: a[0], Psi: a[1]})
	}
	return ret, scanner.Err()
}

func newRamaBuildCmd() *cobra.Command {
	var nphi, npsi int
	var output string
	cmd := &cobra.Command{
		Use:   "ramabuild SAMPLES",
		Short: "Build a Ramachandran grid file from phi/psi samples (- for the standard input)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			samples, err := readSamples(cmd, args[0])
			if err != nil {
				return err
			}
			R, err := bbscore.NewRamaGridFromHistogram(samples, nphi, npsi)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			G := &ffdata.Grid{NPhi: nphi, NPsi: npsi, Values: R.Values()}
			comment := fmt.Sprintf("Ramachandran grid built from %d phi/psi samples of %s.", len(samples), args[0])
			if err := ffdata.WriteGrid(out, G, comment); err != nil {
				return err
			}
			c.Logger.Info("grid built", logging.Int("samples", len(samples)), logging.Int("nphi", nphi), logging.Int("npsi", npsi))
			return nil
		},
	}
	cmd.Flags().IntVar(&nphi, "nphi", 25, "number of phi bins")
	cmd.Flags().IntVar(&npsi, "npsi", 25, "number of psi bins")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default the standard output)")
	return cmd
}
