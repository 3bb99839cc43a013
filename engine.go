/*
 * engine.go, part of bbscore.
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
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/rmera/bbscore/ffdata"
	"github.com/rmera/bbscore/logging"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Options are the static settings of an Engine. Start from DefaultOptions.
type Options struct {
	DSSP       bool    //DSSP hydrogen bond energy instead of the geometric one
	ChargeCoef float64 //weight of the charge term in geometric hydrogen bonds
	StericMode StericMode
	Dielectric float64
	Cutoffs    map[string]float64 //replaces force field cutoffs, by key (overlap, hbond_lj, ...)
	Quick      bool               //ConformationEnergy only scores the QuickAtoms

	//Data resources, see ffdata.Open. Empty strings select the embedded files.
	ForceField string
	Rama       string
	Templates  string
	Logger     logging.Logger
}

// DefaultOptions returns the default settings: DSSP hydrogen bonds,
// full LJ sterics, dielectric 1 and the embedded data.
func DefaultOptions() Options {
	return Options{DSSP: true, ChargeCoef: 1, StericMode: StericLJ, Dielectric: 1}
}

// Engine scores and classifies protein backbone conformations. It is built
// once and is read-only afterwards, so a single Engine can be used from
// any number of goroutines.
type Engine struct {
	version   string
	params    *ParameterTable
	pair      *PairEvaluator
	hbond     *HBondScorer
	dihedrals map[string][]DihedralTerm
	rama      *RamaGrid
	ss        *Classifier
	cutoffs   InteractionCutoffs
	hbweight  float64
	quick     bool
	log       logging.Logger
}

// New loads the data resources named in opts and builds an Engine.
func New(opts Options) (*Engine, error) {
	ffname, ramaname, tmplname := opts.ForceField, opts.Rama, opts.Templates
	if ffname == "" {
		ffname = ffdata.ForceFieldFile
	}
	if ramaname == "" {
		ramaname = ffdata.RamaFile
	}
	if tmplname == "" {
		tmplname = ffdata.TemplatesFile
	}
	ff, err := ffdata.Load(ffname, ffdata.ReadForceField)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	grid, err := ffdata.Load(ramaname, ffdata.ReadGrid)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	tmpl, err := ffdata.Load(tmplname, ffdata.ReadTemplates)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	E, err := NewFromData(ff, grid, tmpl, opts)
	return E, errDecorate(err, "New")
}

// NewFromData builds an Engine from already parsed data. The data is
// copied, and can be discarded afterwards. The resource names in opts are
// ignored.
func NewFromData(ff *ffdata.ForceField, grid *ffdata.Grid, tmpl []ffdata.Template, opts Options) (*Engine, error) {
	if ff == nil || grid == nil {
		return nil, newError(ErrNilData, "", "NewFromData")
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}
	E := &Engine{version: ff.Version, log: log, quick: opts.Quick, hbweight: 1, dihedrals: make(map[string][]DihedralTerm)}
	var err error
	if E.params, err = NewParameterTable(ff, log.Named("params")); err != nil {
		return nil, errDecorate(err, "NewFromData")
	}
	if E.cutoffs, err = CutoffsFromMap(ff.Cutoffs); err != nil {
		return nil, errDecorate(err, "NewFromData")
	}
	if E.cutoffs, err = E.cutoffs.Override(opts.Cutoffs); err != nil {
		return nil, errDecorate(err, "NewFromData")
	}
	coulfact := CoulFact
	if v, ok := ff.Electro["coulfact"]; ok {
		coulfact = v
	}
	if E.pair, err = NewPairEvaluator(opts.StericMode, E.cutoffs, scale14From(ff.Scale14), coulfact, opts.Dielectric); err != nil {
		return nil, errDecorate(err, "NewFromData")
	}
	hp, err := HBondParamsFromMap(ff.HBond)
	if err != nil {
		return nil, errDecorate(err, "NewFromData")
	}
	if E.hbond, err = NewHBondScorer(opts.DSSP, opts.ChargeCoef, hp, E.cutoffs); err != nil {
		return nil, errDecorate(err, "NewFromData")
	}
	if !opts.DSSP {
		E.hbweight = HBondChargeRatio(opts.StericMode, opts.ChargeCoef)
	}
	for _, set := range []string{PhiTerms, PsiTerms} {
		terms, ok := ff.Dihedrals[set]
		if !ok {
			return nil, newError(nil, fmt.Sprintf("no %s dihedral terms in force field %s", set, ff.Version), "NewFromData")
		}
		for _, t := range terms {
			E.dihedrals[set] = append(E.dihedrals[set], DihedralTerm{V: t.V, N: t.N, A: t.A})
		}
	}
	if E.rama, err = NewRamaGrid(grid.NPhi, grid.NPsi, grid.Values); err != nil {
		return nil, errDecorate(err, "NewFromData")
	}
	if E.ss, err = NewClassifier(tmpl); err != nil {
		return nil, errDecorate(err, "NewFromData")
	}
	log.Debug("engine ready", logging.String("forcefield", E.version), logging.Bool("dssp", opts.DSSP),
		logging.String("steric", opts.StericMode.String()), logging.Int("templates", E.ss.Templates()),
		logging.Bool("quick", opts.Quick))
	return E, nil
}

// Version returns the version string of the force field in use.
func (E *Engine) Version() string { return E.version }

// Cutoffs returns the interaction cutoffs in use.
func (E *Engine) Cutoffs() InteractionCutoffs { return E.cutoffs }

// Params returns the parameter table of the engine.
func (E *Engine) Params() *ParameterTable { return E.params }

// Rama returns the Ramachandran grid of the engine.
func (E *Engine) Rama() *RamaGrid { return E.rama }

// Classifier returns the secondary structure classifier of the engine.
func (E *Engine) Classifier() *Classifier { return E.ss }

// HBondScorer returns the hydrogen bond scorer of the engine.
func (E *Engine) HBondScorer() *HBondScorer { return E.hbond }

// HBondWeight returns the weight given to the hydrogen bond energy in
// EnergyReport.Weighted. It is 1 for DSSP hydrogen bonds and
// HBondChargeRatio for geometric ones.
func (E *Engine) HBondWeight() float64 { return E.hbweight }

// LookupParameters returns the force field entry for atom in residue.
// It never fails.
func (E *Engine) LookupParameters(residue, atom string) ForceFieldEntry {
	return E.params.Lookup(residue, atom)
}

// Parametrize sets the FF field of every atom in mol.
func (E *Engine) Parametrize(mol Atomer) { E.params.Parametrize(mol) }

// PairEnergy returns the steric and electrostatic energies between a and b.
// See PairEvaluator.Energy.
func (E *Engine) PairEnergy(a, b *Atom, is14 bool) (float64, float64, error) {
	s, e, err := E.pair.Energy(a, b, is14)
	return s, e, errDecorate(err, "PairEnergy")
}

// HydrogenBondScore returns the energy of the hydrogen bond between donor
// and acceptor, and whether there is a bond. See HBondScorer.Score.
func (E *Engine) HydrogenBondScore(donor Donor, acceptor Acceptor) (float64, bool, error) {
	en, ok, err := E.hbond.Score(donor, acceptor)
	return en, ok, errDecorate(err, "HydrogenBondScore")
}

// DihedralTerms returns the torsion terms of the set (PhiTerms or PsiTerms),
// or nil if there is no such set.
func (E *Engine) DihedralTerms(set string) []DihedralTerm {
	return E.dihedrals[set]
}

// DihedralEnergy returns the torsion energy of angle, in degrees, with the
// terms of set. Undefined angles give an ErrUndefinedAngle error.
func (E *Engine) DihedralEnergy(angle float64, set string) (float64, error) {
	terms, ok := E.dihedrals[set]
	if !ok {
		return 0, newError(nil, fmt.Sprintf("unknown dihedral set %q", set), "DihedralEnergy")
	}
	if !finite(angle) {
		return 0, newError(ErrUndefinedAngle, "", "DihedralEnergy")
	}
	return TorsionEnergy(angle, terms), nil
}

// RamaProbability returns the Ramachandran probability of (phi, psi).
func (E *Engine) RamaProbability(phi, psi float64) (float64, error) {
	p, err := E.rama.Probability(phi, psi)
	return p, errDecorate(err, "RamaProbability")
}

// ClassifySecondaryStructure returns the first template matching window.
func (E *Engine) ClassifySecondaryStructure(window []PhiPsi) (Match, bool) {
	return E.ss.Classify(window)
}

// EnergyReport holds the energy terms of a whole conformation, in kcal/mol,
// except for RamaBias, which is a sum of -ln(p).
type EnergyReport struct {
	Steric        float64
	Electrostatic float64
	HBond         float64
	HBonds        int
	HBondWeight   float64 //see Engine.HBondWeight
	Torsion       float64
	RamaBias      float64
	SS            []Match
}

// Total returns the sum of the energy terms. RamaBias is not included.
func (R *EnergyReport) Total() float64 {
	return R.Steric + R.Electrostatic + R.HBond + R.Torsion
}

// Weighted returns Total with the hydrogen bond energy scaled by HBondWeight.
func (R *EnergyReport) Weighted() float64 {
	return R.Steric + R.Electrostatic + R.HBondWeight*R.HBond + R.Torsion
}

// rows of the pair matrix per parallel block. Fixed, so the reduction order
// does not depend on the number of workers.
const blockRows = 16

// ConformationEnergy scores a whole conformation. Atoms are parametrized
// from their names (the FF fields of conf are not used nor changed) and
// the topology is taken from conf.Bonds or, if nil, assigned from distances.
// Non-bonded terms skip 1-2 and 1-3 pairs and scale 1-4 ones; they are
// computed by up to workers goroutines (GOMAXPROCS if workers < 1). The
// result does not depend on workers. Any invalid geometry fails the whole call.
// Given dihedrals without residue names are scored as generic residues.
// Engines built with Options.Quick score only the QuickAtoms of conf.
func (E *Engine) ConformationEnergy(conf *Conformation, workers int) (*EnergyReport, error) {
	if conf != nil && E.quick {
		conf = conf.Subset(QuickAtoms)
	}
	if conf == nil || len(conf.Atoms) == 0 {
		return nil, newError(ErrNilData, "empty conformation", "ConformationEnergy")
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	top, err := TopologyFrom(conf)
	if err != nil {
		return nil, errDecorate(err, "ConformationEnergy")
	}
	atoms := make([]*Atom, conf.Len())
	for i, at := range conf.Atoms {
		atoms[i] = at.Copy()
		atoms[i].FF = E.params.Lookup(at.MolName, at.Name)
	}
	R := &EnergyReport{HBondWeight: E.hbweight}
	if R.Steric, R.Electrostatic, err = E.nonBonded(atoms, top, workers); err != nil {
		return nil, errDecorate(err, "ConformationEnergy")
	}
	if R.HBond, R.HBonds, err = E.hbonds(atoms, top); err != nil {
		return nil, errDecorate(err, "ConformationEnergy")
	}
	pp, names, err := conf.Dihedrals()
	if err != nil {
		return nil, errDecorate(err, "ConformationEnergy")
	}
	for i, p := range pp {
		var name string
		if i < len(names) {
			name = names[i]
		}
		if isCap(name) {
			continue
		}
		t, err := BackboneTorsionEnergy(name, p, E.dihedrals[PhiTerms], E.dihedrals[PsiTerms])
		if err != nil {
			return nil, errDecorate(err, "ConformationEnergy")
		}
		R.Torsion += t
		if p.Defined() {
			b, err := E.rama.Bias(p.Phi, p.Psi)
			if err != nil {
				return nil, errDecorate(err, "ConformationEnergy")
			}
			R.RamaBias += b
		}
	}
	R.SS = E.ss.ClassifyChain(pp)
	E.log.Debug("conformation scored", logging.Int("atoms", len(atoms)), logging.Int("workers", workers),
		logging.Float64("total", R.Total()), logging.Int("hbonds", R.HBonds))
	return R, nil
}

func (E *Engine) nonBonded(atoms []*Atom, top *Topology, workers int) (float64, float64, error) {
	n := len(atoms)
	nblocks := (n + blockRows - 1) / blockRows
	steric := make([]float64, nblocks)
	elec := make([]float64, nblocks)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for b := 0; b < nblocks; b++ {
		b := b
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			var s, e float64
			for i := b * blockRows; i < min(n, (b+1)*blockRows); i++ {
				for j := i + 1; j < n; j++ {
					if top.Excluded(i, j) {
						continue
					}
					ps, pe, err := E.pair.Energy(atoms[i], atoms[j], top.Is14(i, j))
					if err != nil {
						return err
					}
					s += ps
					e += pe
				}
			}
			steric[b], elec[b] = s, e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	s, e := floats.Sum(steric), floats.Sum(elec)
	if !finite(s) || !finite(e) {
		return 0, 0, newError(ErrInvalidGeometry, "non-finite non-bonded energy", "nonBonded")
	}
	return s, e, nil
}

// hbondGroups returns the backbone N-H donors and C=O acceptors of atoms.
// Terminal amine hydrogens and OXT (see TerminiAtoms) are included. An
// amide N with no H, outside FixedPhi residues, gets one placed with AmideH,
// and a carbonyl C with no O gets one placed with CarbonylO, when the
// peptide neighbors needed to place them are bonded.
func hbondGroups(atoms []*Atom, top *Topology) ([]Donor, []Acceptor, error) {
	var donors []Donor
	var acceptors []Acceptor
	for i, at := range atoms {
		name := trimName(at.Name)
		if name != "N" && name != "C" {
			continue
		}
		var ca, peptide *Atom //CA of the residue and C or N of the peptide bond
		found := false
		for _, j := range top.Bonded(i) {
			b := atoms[j]
			bname := trimName(b.Name)
			switch {
			case name == "N" && isTerminalOr(bname, "H"):
				donors = append(donors, Donor{N: at, H: b})
				found = true
			case name == "C" && isTerminalOr(bname, "O"):
				acceptors = append(acceptors, Acceptor{O: b, C: at})
				found = true
			case bname == "CA" && sameResidue(at, b):
				ca = b
			case (bname == "C" || bname == "N") && bname != name && !sameResidue(at, b):
				peptide = b
			}
		}
		if found || ca == nil || peptide == nil {
			continue
		}
		if name == "N" {
			if isInString(FixedPhi, at.MolName) {
				continue
			}
			pos, err := AmideH(peptide.Pos, at.Pos, ca.Pos)
			if err != nil {
				return nil, nil, errDecorate(err, "hbondGroups")
			}
			donors = append(donors, Donor{N: at, H: virtualAtom(at, "H", pos)})
			continue
		}
		pos, err := CarbonylO(ca.Pos, at.Pos, peptide.Pos)
		if err != nil {
			return nil, nil, errDecorate(err, "hbondGroups")
		}
		acceptors = append(acceptors, Acceptor{O: virtualAtom(at, "O", pos), C: at})
	}
	return donors, acceptors, nil
}

// isTerminalOr returns true if name is base, or one of the TerminiAtoms
// of the same element.
func isTerminalOr(name, base string) bool {
	return name == base || (strings.HasPrefix(name, base) && isInString(TerminiAtoms, name))
}

func sameResidue(a, b *Atom) bool {
	return a.Chain == b.Chain && a.MolID == b.MolID
}

// virtualAtom returns an atom called name at pos, in the residue of parent.
func virtualAtom(parent *Atom, name string, pos r3.Vec) *Atom {
	return &Atom{Name: name, MolName: parent.MolName, MolID: parent.MolID, Chain: parent.Chain, Symbol: name, Pos: pos}
}

// hbonds scores every backbone donor against every acceptor of another
// residue, and sums the energies of those that form a bond.
func (E *Engine) hbonds(atoms []*Atom, top *Topology) (float64, int, error) {
	donors, acceptors, err := hbondGroups(atoms, top)
	if err != nil {
		return 0, 0, err
	}
	var total float64
	var count int
	for _, d := range donors {
		for _, a := range acceptors {
			if sameResidue(d.N, a.C) {
				continue
			}
			en, ok, err := E.hbond.Score(d, a)
			if err != nil {
				return 0, 0, err
			}
			if ok {
				total += en
				count++
			}
		}
	}
	if math.IsNaN(total) {
		return 0, 0, newError(ErrInvalidGeometry, "non-finite hydrogen bond energy", "hbonds")
	}
	return total, count, nil
}
