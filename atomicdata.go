/*
 * atomicdata.go, part of bbscore.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package bbscore

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
//Note that just common "bio-elements" are present
var symbolCovrad = map[string]float64{
	"H":  0.4, // 0.31 altered. H always has only one bond, extra bonds are eliminated later.
	"C":  0.76,
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"K":  2.03,
	"Li": 1.28,
	"Rb": 2.20,
	"Cs": 2.44,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Zn": 1.22,
	"Fe": 1.52, //hs
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
}

// Used for elements not in symbolCovrad.
const defaultCovrad = 1.0

//A map for checking that atoms don't
//have too many bonds. A value of 0 means
//undefined, i.e. that this atom shouldn't
//be checked for max bonds.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"F":  1,
	"Br": 1,
	"I":  1,
}

// Residue and atom sets used to decide what gets a backbone torsion and
// what is backbone. Treat them as read-only.
var (
	//Residues with no backbone dihedrals (caps).
	NoDihedrals = []string{"ACE", "NHE", "NME"}

	//Residues whose phi or psi are fixed.
	FixedPhi = []string{"PRO"}
	FixedPsi = []string{}

	//Atoms that only exist at the termini. They take part in backbone
	//hydrogen bonds.
	TerminiAtoms = []string{"OXT", "H2", "H3"}

	//Backbone atom names, including the alpha hydrogens of GLY.
	BackboneAtoms = []string{"N", "CA", "C", "O", "H", "HT", "HA", "2HA", "3HA", "OXT", "H2", "H3"}

	//Atoms considered in a quick, backbone-only, score.
	QuickAtoms = []string{"H", "N", "CA", "C", "O"}
)

// Peptide geometry, in A. CNBondLen is the C-N peptide bond; the fractions
// weight the two bonded neighbors when placing amide H and carbonyl O atoms
// (see AmideH and CarbonylO).
const (
	CNBondLen = 1.32
	NHBondLen = 1.01
	COBondLen = 1.23
	NHFracCAC = 0.541
	NHFracCN  = 0.504
	COFracCAC = 0.474
	COFracNC  = 0.506
)

// AngleRange is a (min, max) pair in degrees.
type AngleRange [2]float64

// Contains returns true if a is in the closed interval R.
func (R AngleRange) Contains(a float64) bool {
	return a >= R[0] && a <= R[1]
}

// Phi/psi regions, beta first, then helix, for search loops that need to
// draw starting angles. ResAngleRanges are for a residue's own (phi, psi);
// PepAngleRanges for the psi(n-1), phi(n) pair around a peptide bond.
var (
	ResAngleRanges = [][2]AngleRange{
		{{-180, 90}, {-45, 180}},
		{{-135, -75}, {-45, 30}},
	}
	PepAngleRanges = [][2]AngleRange{
		{{-180, 90}, {-45, 180}},
		{{-180, -75}, {-45, 30}},
	}
)

// Ratios between the hydrogen bond charge term and the steric or LJ term
// that give hydrogen bonds of the right length with the standard radii.
// The 0 and 1 suffixes are for charge coefficients of 0 and 1.
const (
	HBondChargeRatioToSteric0 = 35.2496
	HBondChargeRatioToSteric1 = 81.3043
	HBondChargeRatioToLJ0     = 1.71577
	HBondChargeRatioToLJ1     = 3.95748
)

// HBondChargeRatio returns the weight of geometric hydrogen bond energies,
// relative to the steric term of mode, for the charge coefficient coef.
// It is linear in coef, through the fitted values for 0 and 1.
func HBondChargeRatio(mode StericMode, coef float64) float64 {
	r0, r1 := HBondChargeRatioToLJ0, HBondChargeRatioToLJ1
	if mode == StericOverlap {
		r0, r1 = HBondChargeRatioToSteric0, HBondChargeRatioToSteric1
	}
	return r0 + coef*(r1-r0)
}

// Names of the ResAngleRanges and PepAngleRanges regions, by index.
var RegionNames = []string{"beta", "helix"}

// ResidueRegions returns the indexes of the ResAngleRanges regions that
// contain the (phi, psi) of pp. Undefined angles are in no region.
func ResidueRegions(pp PhiPsi) []int { return regions(ResAngleRanges, pp.Phi, pp.Psi) }

// PeptideRegions returns the indexes of the PepAngleRanges regions that
// contain the psi of a residue and the phi of the next one.
func PeptideRegions(psiPrev, phi float64) []int { return regions(PepAngleRanges, psiPrev, phi) }

func regions(ranges [][2]AngleRange, a, b float64) []int {
	if !finite(a) || !finite(b) {
		return nil
	}
	a, b = WrapAngle(a), WrapAngle(b)
	var ret []int
	for i, r := range ranges {
		if r[0].Contains(a) && r[1].Contains(b) {
			ret = append(ret, i)
		}
	}
	return ret
}

// isCap returns true if the residue has no backbone dihedrals.
func isCap(res string) bool { return isInString(NoDihedrals, res) }

// covrad returns the covalent radius for the element symbol.
func covrad(symbol string) float64 {
	if r, ok := symbolCovrad[symbol]; ok {
		return r
	}
	return defaultCovrad
}

// symbolFromName guesses the element symbol from a PDB-style atom name,
// using the symbols keys in known. Two-letter symbols are tried first, then
// one-letter ones. It returns "" if nothing matches.
func symbolFromName(name string, known func(string) bool) string {
	n := trimName(name)
	if len(n) >= 2 && known(n[:2]) {
		return n[:2]
	}
	if len(n) >= 1 && known(n[:1]) {
		return n[:1]
	}
	return ""
}
