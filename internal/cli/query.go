/*
 * query.go, part of bbscore.
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
	"github.com/rmera/bbscore/logging"
	"github.com/spf13/cobra"
)

func parseFloats(s ...string) ([]float64, error) {
	ret := make([]float64, len(s))
	for i, v := range s {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", v)
		}
		ret[i] = f
	}
	return ret, nil
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup RESIDUE ATOM",
		Short: "Print the force field parameters of an atom",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, E, err := engineFor(cmd)
			if err != nil {
				return err
			}
			e, stage := E.Params().Resolve(args[0], args[1])
			fmt.Fprint(cmd.OutOrStdout(), FormatTable(
				[]string{"residue", "atom", "radius", "sqrt_eps", "charge", "source"},
				[][]string{{args[0], args[1], fmtf(e.Radius), fmtf(e.SqrtEps), fmtf(e.Charge), stage.String()}}))
			return nil
		},
	}
}

func newDihedralCmd() *cobra.Command {
	var psi bool
	cmd := &cobra.Command{
		Use:   "dihedral ANGLE",
		Short: "Print the torsion energy (kcal/mol) of a phi angle, in degrees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, E, err := engineFor(cmd)
			if err != nil {
				return err
			}
			a, err := parseFloats(args[0])
			if err != nil {
				return err
			}
			set := bbscore.PhiTerms
			if psi {
				set = bbscore.PsiTerms
			}
			en, err := E.DihedralEnergy(a[0], set)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fmtf(en))
			return nil
		},
	}
	cmd.Flags().BoolVar(&psi, "psi", false, "use the psi terms instead of the phi ones")
	return cmd
}

func newRamaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rama [--] PHI PSI",
		Short: "Print the Ramachandran probability and bias (-ln p) of a phi/psi pair",
		Long: "rama prints the grid cell, probability, bias and angle regions of a phi/psi\n" +
			"pair. Put -- before the angles if any is negative.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, E, err := engineFor(cmd)
			if err != nil {
				return err
			}
			a, err := parseFloats(args...)
			if err != nil {
				return err
			}
			p, err := E.RamaProbability(a[0], a[1])
			if err != nil {
				return err
			}
			bias, err := E.Rama().Bias(a[0], a[1])
			if err != nil {
				return err
			}
			i, j := E.Rama().Bin(a[0], a[1])
			region := regionString(bbscore.ResidueRegions(bbscore.PhiPsi{Phi: a[0], Psi: a[1]}))
			fmt.Fprint(cmd.OutOrStdout(), FormatTable(
				[]string{"phi", "psi", "bin", "probability", "bias", "region"},
				[][]string{{args[0], args[1], fmt.Sprintf("%d,%d", i, j), fmtg(p), fmtf(bias), region}}))
			return nil
		},
	}
}

// regionString joins the names of the angle regions in idx, or gives "-".
func regionString(idx []int) string {
	if len(idx) == 0 {
		return "-"
	}
	s := make([]string, len(idx))
	for i, r := range idx {
		s[i] = bbscore.RegionNames[r]
	}
	return strings.Join(s, ",")
}

// parsePhiPsi parses "PHI,PSI". Undefined angles can be given as nan.
func parsePhiPsi(s string) (bbscore.PhiPsi, error) {
	f := strings.Split(s, ",")
	if len(f) != 2 {
		return bbscore.PhiPsi{}, fmt.Errorf("expected PHI,PSI, got %q", s)
	}
	a, err := parseFloats(f...)
	if err != nil {
		return bbscore.PhiPsi{}, err
	}
	return bbscore.PhiPsi{Phi: a[0], Psi: a[1]}, nil
}

func newClassifyCmd() *cobra.Command {
	var chain bool
	cmd := &cobra.Command{
		Use:   "classify [--] PHI,PSI [PHI,PSI...]",
		Short: "Classify a window of phi/psi pairs with the secondary structure templates",
		Long: "classify prints the first template that matches the window, with the angle\n" +
			"regions of its first residue and of the peptide bond before it. Put -- before\n" +
			"the pairs if any starts with a negative angle.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, E, err := engineFor(cmd)
			if err != nil {
				return err
			}
			window := make([]bbscore.PhiPsi, len(args))
			for i, a := range args {
				if window[i], err = parsePhiPsi(a); err != nil {
					return err
				}
			}
			var matches []bbscore.Match
			if chain {
				matches = E.Classifier().ClassifyChain(window)
			} else {
				m, ok := E.ClassifySecondaryStructure(window)
				if !ok {
					c.Logger.Debug("no template matched", logging.Int("window", len(window)))
				}
				matches = append(matches, m)
			}
			//The regions of the start residue, and of the peptide bond before it.
			rows := make([][]string, len(matches))
			for i, m := range matches {
				pep := "-"
				if m.Start > 0 {
					pep = regionString(bbscore.PeptideRegions(window[m.Start-1].Psi, window[m.Start].Phi))
				}
				rows[i] = []string{strconv.Itoa(m.Start), strconv.Quote(m.Label), strconv.Itoa(m.Template),
					regionString(bbscore.ResidueRegions(window[m.Start])), pep}
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatTable([]string{"start", "label", "template", "region", "peptide"}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&chain, "chain", false, "slide the window over the pairs, as a whole chain")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the program and force field versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, E, err := engineFor(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bbscore %s, force field %s\n", Version, E.Version())
			return nil
		},
	}
}
