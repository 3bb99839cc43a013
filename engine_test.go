/*
 * engine_test.go, part of bbscore.
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

package bbscore

import (
	"errors"
	"math"
	"testing"

	"github.com/rmera/bbscore/logging"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConformationEnergy(Te *testing.T) {
	E := testEngine(Te)
	C := helix(8)
	var first *EnergyReport
	for _, w := range []int{1, 3, 0} {
		R, err := E.ConformationEnergy(C, w)
		if err != nil {
			Te.Fatal(err)
		}
		if first == nil {
			first = R
			continue
		}
		if R.Steric != first.Steric || R.Electrostatic != first.Electrostatic || R.HBond != first.HBond || R.Total() != first.Total() {
			Te.Errorf("%d workers gave %+v, 1 worker gave %+v", w, R, first)
		}
	}
	R := first
	if R.HBonds < 4 || R.HBond >= 0 {
		Te.Errorf("Expected at least the 4 i->i+4 helical hydrogen bonds, got %d (%v kcal/mol)", R.HBonds, R.HBond)
	}
	terms := E.DihedralTerms(PhiTerms)
	want := 7 * (TorsionEnergy(-57, terms) + TorsionEnergy(-47, E.DihedralTerms(PsiTerms)))
	if math.Abs(R.Torsion-want) > 1e-6 {
		Te.Errorf("Expected torsion energy %v, got %v", want, R.Torsion)
	}
	bias, _ := E.Rama().Bias(-57, -47)
	if math.Abs(R.RamaBias-6*bias) > 1e-9 {
		Te.Errorf("Expected Ramachandran bias %v, got %v", 6*bias, R.RamaBias)
	}
	if len(R.SS) != 8 || R.SS[1].Label != "HHHHH" || R.SS[1].Start != 1 {
		Te.Errorf("Expected a helix starting at residue 1, got %+v", R.SS)
	}
	if R.SS[7].Label != NoMatch {
		Te.Errorf("A single residue can't match a template, got %q", R.SS[7].Label)
	}
	for _, at := range C.Atoms {
		if at.FF != (ForceFieldEntry{}) {
			Te.Errorf("ConformationEnergy changed the atoms of the conformation")
			break
		}
	}

	//Same result with explicit bonds.
	bonds, err := AssignBonds(C)
	if err != nil {
		Te.Fatal(err)
	}
	C.Bonds = bonds
	R2, err := E.ConformationEnergy(C, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if R2.Total() != R.Total() {
		Te.Errorf("Explicit bonds gave %v, assigned ones %v", R2.Total(), R.Total())
	}

	//Given dihedrals replace the computed ones.
	C.PhiPsi = []PhiPsi{{Undefined(), 180}, {180, Undefined()}}
	C.Residues = []string{"ALA", "ALA"}
	R3, err := E.ConformationEnergy(C, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(R3.Torsion-TorsionEnergy(180, terms)-TorsionEnergy(180, E.DihedralTerms(PsiTerms))) > 1e-9 || R3.RamaBias != 0 {
		Te.Errorf("Torsion and bias should come from the given dihedrals, got %v %v", R3.Torsion, R3.RamaBias)
	}
	C.Residues = []string{"ALA"}
	if _, err := E.ConformationEnergy(C, 2); err == nil {
		Te.Errorf("Expected an error for mismatched residue names")
	}

	//Given dihedrals without residue names get both terms.
	C.PhiPsi = []PhiPsi{{-57, -47}, {-57, -47}, {-57, -47}}
	C.Residues = nil
	R4, err := E.ConformationEnergy(C, 2)
	if err != nil {
		Te.Fatal(err)
	}
	want = 3 * (TorsionEnergy(-57, terms) + TorsionEnergy(-47, E.DihedralTerms(PsiTerms)))
	if math.Abs(R4.Torsion-want) > 1e-9 || math.Abs(R4.RamaBias-3*bias) > 1e-9 {
		Te.Errorf("Unnamed residues: expected torsion %v and bias %v, got %v %v", want, 3*bias, R4.Torsion, R4.RamaBias)
	}
}

func TestConformationEnergyPlacedHydrogens(Te *testing.T) {
	E := testEngine(Te)
	C := helix(8)
	var heavy []*Atom
	for _, at := range C.Atoms {
		if at.Name != "H" {
			heavy = append(heavy, at)
		}
	}
	R, err := E.ConformationEnergy(&Conformation{Atoms: heavy}, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if R.HBonds < 4 || R.HBond >= 0 {
		Te.Errorf("Expected helical hydrogen bonds from placed H atoms, got %d (%v kcal/mol)", R.HBonds, R.HBond)
	}
}

func TestConformationEnergyQuick(Te *testing.T) {
	C := helix(6)
	base, err := testEngine(Te).ConformationEnergy(C, 1)
	if err != nil {
		Te.Fatal(err)
	}
	var ids []int
	for i, at := range C.Atoms {
		if at.Name == "CA" {
			ids = append(ids, i)
		}
	}
	for _, i := range ids {
		n, ca, c := C.Atoms[i-1], C.Atoms[i], C.Atoms[i+1]
		if n.Name != "N" {
			n = C.Atoms[i-2]
		}
		C.Atoms = append(C.Atoms, &Atom{Name: "CB", MolName: "ALA", MolID: ca.MolID, Chain: "A", Pos: place(c.Pos, n.Pos, ca.Pos, 1.53, 110.5, -122.5)})
	}
	full, err := testEngine(Te).ConformationEnergy(C, 1)
	if err != nil {
		Te.Fatal(err)
	}
	quick, err := testEngine(Te, func(o *Options) { o.Quick = true }).ConformationEnergy(C, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if quick.Total() != base.Total() || quick.HBonds != base.HBonds {
		Te.Errorf("A quick score should ignore the CB atoms: %v vs %v", quick.Total(), base.Total())
	}
	if full.Steric == quick.Steric {
		Te.Errorf("The CB atoms should change the full score")
	}
	if _, err := testEngine(Te, func(o *Options) { o.Quick = true }).ConformationEnergy(&Conformation{Atoms: C.Atoms[len(C.Atoms)-6:]}, 1); !errors.Is(err, ErrNilData) {
		Te.Errorf("Expected ErrNilData for a conformation with no quick atoms, got %v", err)
	}
}

func TestHBondWeight(Te *testing.T) {
	if r := HBondChargeRatio(StericLJ, 1); r != HBondChargeRatioToLJ1 {
		Te.Errorf("Expected %v, got %v", HBondChargeRatioToLJ1, r)
	}
	if r := HBondChargeRatio(StericOverlap, 0); r != HBondChargeRatioToSteric0 {
		Te.Errorf("Expected %v, got %v", HBondChargeRatioToSteric0, r)
	}
	if r := HBondChargeRatio(StericLJ, 0.5); math.Abs(r-(HBondChargeRatioToLJ0+HBondChargeRatioToLJ1)/2) > 1e-12 {
		Te.Errorf("Expected the midpoint, got %v", r)
	}
	C := helix(6)
	dssp := testEngine(Te)
	R, err := dssp.ConformationEnergy(C, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if dssp.HBondWeight() != 1 || R.Weighted() != R.Total() {
		Te.Errorf("DSSP hydrogen bonds are not reweighted: %v %v %v", dssp.HBondWeight(), R.Weighted(), R.Total())
	}
	geo := testEngine(Te, func(o *Options) { o.DSSP = false; o.StericMode = StericOverlap; o.ChargeCoef = 0 })
	R, err = geo.ConformationEnergy(C, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if geo.HBondWeight() != HBondChargeRatioToSteric0 || R.HBondWeight != HBondChargeRatioToSteric0 {
		Te.Errorf("Expected weight %v, got %v", HBondChargeRatioToSteric0, R.HBondWeight)
	}
	want := R.Steric + R.Electrostatic + HBondChargeRatioToSteric0*R.HBond + R.Torsion
	if math.Abs(R.Weighted()-want) > 1e-9 {
		Te.Errorf("Expected a weighted total of %v, got %v", want, R.Weighted())
	}
}

func TestConformationEnergyModes(Te *testing.T) {
	C := helix(6)
	geo := testEngine(Te, func(o *Options) { o.DSSP = false })
	R, err := geo.ConformationEnergy(C, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if R.HBonds == 0 {
		Te.Errorf("Expected geometric hydrogen bonds in a helix")
	}
	ster := testEngine(Te, func(o *Options) { o.StericMode = StericOverlap })
	R, err = ster.ConformationEnergy(C, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if R.Steric < 0 {
		Te.Errorf("Repulsive-only sterics can't be negative, got %v", R.Steric)
	}
}

func TestConformationEnergyErrors(Te *testing.T) {
	E := testEngine(Te)
	if _, err := E.ConformationEnergy(nil, 1); !errors.Is(err, ErrNilData) {
		Te.Errorf("Expected ErrNilData, got %v", err)
	}
	if _, err := E.ConformationEnergy(&Conformation{}, 1); !errors.Is(err, ErrNilData) {
		Te.Errorf("Expected ErrNilData, got %v", err)
	}
	C := helix(4)
	C.Atoms[5].Pos.Y = math.NaN()
	if _, err := E.ConformationEnergy(C, 1); !errors.Is(err, ErrInvalidGeometry) {
		Te.Errorf("Expected ErrInvalidGeometry, got %v", err)
	}
	C = helix(4)
	C.Atoms = append(C.Atoms, C.Atoms[2].Copy())
	C.Atoms[len(C.Atoms)-1].MolID = 10
	if _, err := E.ConformationEnergy(C, 1); !errors.Is(err, ErrInvalidGeometry) {
		Te.Errorf("Expected ErrInvalidGeometry for overlapping atoms, got %v", err)
	}
}

func TestEngineOptions(Te *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	E := testEngine(Te, func(o *Options) {
		o.Cutoffs = map[string]float64{"charged": 9}
		o.Logger = logging.NewFromCore(core)
	})
	if E.Cutoffs().Charged != 9 || E.Version() != "ff96-1" {
		Te.Errorf("Options not applied: %+v %s", E.Cutoffs(), E.Version())
	}
	if logs.FilterMessage("engine ready").Len() != 1 {
		Te.Errorf("Expected the engine to log its setup")
	}
	E.LookupParameters("XYZ", "CA")
	if logs.FilterField(zapcore.Field{Key: "stage", Type: zapcore.StringType, String: StageAtom.String()}).Len() == 0 {
		Te.Errorf("Expected a log entry for the fallback lookup")
	}
	if _, err := E.DihedralEnergy(0, "omega"); err == nil {
		Te.Errorf("Expected an error for an unknown dihedral set")
	}
	if _, err := E.DihedralEnergy(Undefined(), PhiTerms); !errors.Is(err, ErrUndefinedAngle) {
		Te.Errorf("Expected ErrUndefinedAngle, got %v", err)
	}
	bad := []func(*Options){
		func(o *Options) { o.Dielectric = 0 },
		func(o *Options) { o.Cutoffs = map[string]float64{"nope": 1} },
		func(o *Options) { o.Cutoffs = map[string]float64{"overlap": -1} },
		func(o *Options) { o.ForceField = "/nonexistent/ff.dat" },
	}
	for i, b := range bad {
		opts := DefaultOptions()
		b(&opts)
		if _, err := New(opts); err == nil {
			Te.Errorf("case %d: expected an error", i)
		}
	}
}
