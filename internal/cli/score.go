/*
 * score.go, part of bbscore.
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
	"fmt"
	"strconv"
	"strings"

	"github.com/rmera/bbscore"
	"github.com/rmera/bbscore/chemjson"
	"github.com/rmera/bbscore/logging"
	"github.com/spf13/cobra"
)

func fmtf(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
func fmtg(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

// readConformations reads the JSON conformations in the file name, or in
// the standard input if name is "-".
func readConformations(cmd *cobra.Command, name string) ([]*bbscore.Conformation, error) {
	in, err := openInput(cmd, name)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return chemjson.DecodeConformations(in)
}

// ssString joins the labels of matches, with "-" for positions
// that match no template.
func ssString(matches []bbscore.Match) string {
	s := make([]string, len(matches))
	for i, m := range matches {
		s[i] = m.Label
		if m.Label == bbscore.NoMatch {
			s[i] = "-"
		}
	}
	return strings.Join(s, "|")
}

func newScoreCmd() *cobra.Command {
	var workers int
	var asJSON, backbone bool
	cmd := &cobra.Command{
		Use:   "score CONFORMATIONS.json",
		Short: "Score the conformations in a JSON file (- for the standard input)",
		Long: "score computes the non-bonded, hydrogen bond and torsion energies of each\n" +
			"conformation in the file, plus its Ramachandran bias and the secondary\n" +
			"structure template matched at each residue.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, E, err := engineFor(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = c.Config.Workers
			}
			out := cmd.OutOrStdout()
			confs, err := readConformations(cmd, args[0])
			if err != nil {
				if asJSON {
					_ = chemjson.NewError("input", "score", err).Send(out)
				}
				return err
			}
			var rows [][]string
			for i, conf := range confs {
				if backbone {
					conf = conf.Subset(bbscore.BackboneAtoms)
				}
				R, err := E.ConformationEnergy(conf, workers)
				if err != nil {
					c.Logger.Warn("conformation could not be scored", logging.Int("conformation", i+1), logging.Err(err))
					if asJSON {
						_ = chemjson.NewError("process", "score", err).Send(out)
					}
					return fmt.Errorf("conformation %d: %w", i+1, err)
				}
				if asJSON {
					if err := chemjson.NewReport(R).Send(out); err != nil {
						return err
					}
					continue
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), fmtf(R.Steric), fmtf(R.Electrostatic), fmtf(R.HBond),
					strconv.Itoa(R.HBonds), fmtf(R.Torsion), fmtf(R.Total()), fmtf(R.RamaBias), ssString(R.SS)})
			}
			if !asJSON {
				fmt.Fprint(out, FormatTable([]string{"conf", "steric", "elec", "hbond", "nhb", "torsion", "total", "rama_bias", "ss"}, rows))
			}
			c.Logger.Info("scored", logging.Int("conformations", len(confs)), logging.String("forcefield", E.Version()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "goroutines for the pair energies (default from the config, 0 means GOMAXPROCS)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON report per conformation")
	cmd.Flags().BoolVar(&backbone, "backbone", false, "score only the backbone atoms")
	return cmd
}
