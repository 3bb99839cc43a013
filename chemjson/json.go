/*
 * json.go, part of bbscore.
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

package chemjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rmera/bbscore"
	"gonum.org/v1/gonum/spatial/r3"
)

// Atom is a ready-to-serialize container for an atom.
type Atom struct {
	Name    string     `json:"name"`
	ID      int        `json:"id"`
	MolName string     `json:"resname"`
	MolID   int        `json:"resid"`
	Chain   string     `json:"chain,omitempty"`
	Symbol  string     `json:"symbol,omitempty"`
	Coords  [3]float64 `json:"coords"`
}

// PhiPsi is a serializable pair of dihedrals. Undefined angles are null.
type PhiPsi struct {
	Phi *float64 `json:"phi"`
	Psi *float64 `json:"psi"`
}

// Conformation is the JSON form of a bbscore.Conformation.
type Conformation struct {
	Atoms    []Atom   `json:"atoms"`
	Bonds    [][2]int `json:"bonds,omitempty"`
	PhiPsi   []PhiPsi `json:"phipsi,omitempty"`
	Residues []string `json:"residues,omitempty"`
}

// Error is an easily JSON-serializable error, for the programs that read
// our output.
type Error struct {
	deco     []string
	IsError  bool   `json:"is_error"` //If this is false (no error) all the other fields will be at their zero-values.
	Stage    string `json:"stage"`    //input, process or output
	Function string `json:"function"` //which go function gave the error
	Message  string `json:"message"`  //the error itself
	err      error
}

// NewError takes an error and some additional info to create a
// json-marshal-able error.
func NewError(stage, function string, err error) *Error {
	return &Error{IsError: true, Stage: stage, Function: function, Message: err.Error(), err: err}
}

// Error implements the error interface.
func (J *Error) Error() string { return J.Message }

// Unwrap returns the original error.
func (J *Error) Unwrap() error { return J.err }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

// Send writes the error as one JSON line to out.
func (J *Error) Send(out io.Writer) error {
	return json.NewEncoder(out).Encode(J)
}

func angle(a float64) *float64 {
	if bbscore.IsUndefined(a) {
		return nil
	}
	return &a
}

func unangle(a *float64) float64 {
	if a == nil {
		return bbscore.Undefined()
	}
	return *a
}

// FromConformation builds the serializable form of conf.
func FromConformation(conf *bbscore.Conformation) *Conformation {
	ret := &Conformation{Bonds: conf.Bonds, Residues: conf.Residues}
	ret.Atoms = make([]Atom, len(conf.Atoms))
	for i, at := range conf.Atoms {
		ret.Atoms[i] = Atom{Name: at.Name, ID: at.ID, MolName: at.MolName, MolID: at.MolID,
			Chain: at.Chain, Symbol: at.Symbol, Coords: [3]float64{at.Pos.X, at.Pos.Y, at.Pos.Z}}
	}
	if conf.PhiPsi != nil {
		ret.PhiPsi = make([]PhiPsi, len(conf.PhiPsi))
		for i, p := range conf.PhiPsi {
			ret.PhiPsi[i] = PhiPsi{Phi: angle(p.Phi), Psi: angle(p.Psi)}
		}
	}
	return ret
}

// Conformation returns the bbscore.Conformation for J. Bonds must refer
// to existing atoms.
func (J *Conformation) Conformation() (*bbscore.Conformation, error) {
	ret := &bbscore.Conformation{Residues: J.Residues}
	ret.Atoms = make([]*bbscore.Atom, len(J.Atoms))
	for i, a := range J.Atoms {
		ret.Atoms[i] = &bbscore.Atom{Name: a.Name, ID: a.ID, MolName: a.MolName, MolID: a.MolID,
			Chain: a.Chain, Symbol: a.Symbol, Pos: r3.Vec{X: a.Coords[0], Y: a.Coords[1], Z: a.Coords[2]}}
	}
	for _, b := range J.Bonds {
		if b[0] < 0 || b[1] < 0 || b[0] >= len(J.Atoms) || b[1] >= len(J.Atoms) || b[0] == b[1] {
			return nil, fmt.Errorf("invalid bond %v for %d atoms", b, len(J.Atoms))
		}
	}
	ret.Bonds = J.Bonds
	if J.PhiPsi != nil {
		ret.PhiPsi = make([]bbscore.PhiPsi, len(J.PhiPsi))
		for i, p := range J.PhiPsi {
			ret.PhiPsi[i] = bbscore.PhiPsi{Phi: unangle(p.Phi), Psi: unangle(p.Psi)}
		}
	}
	return ret, nil
}

// DecodeConformations reads all the JSON conformations in stream, which
// can hold several of them, one after the other.
func DecodeConformations(stream io.Reader) ([]*bbscore.Conformation, error) {
	const funcname = "DecodeConformations" //for the error
	dec := json.NewDecoder(stream)
	dec.DisallowUnknownFields()
	var ret []*bbscore.Conformation
	for {
		J := new(Conformation)
		err := dec.Decode(J)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, NewError("input", funcname, fmt.Errorf("conformation %d: %w", len(ret)+1, err))
		}
		c, err := J.Conformation()
		if err != nil {
			return nil, NewError("input", funcname, fmt.Errorf("conformation %d: %w", len(ret)+1, err))
		}
		ret = append(ret, c)
	}
	if len(ret) == 0 {
		return nil, NewError("input", funcname, errors.New("no conformations found"))
	}
	return ret, nil
}

// EncodeConformation writes conf as one JSON line to out.
func EncodeConformation(conf *bbscore.Conformation, out io.Writer) error {
	if err := json.NewEncoder(out).Encode(FromConformation(conf)); err != nil {
		return NewError("output", "EncodeConformation", err)
	}
	return nil
}

// Report is the serializable form of a bbscore.EnergyReport.
type Report struct {
	Steric        float64  `json:"steric"`
	Electrostatic float64  `json:"electrostatic"`
	HBond         float64  `json:"hbond"`
	HBonds        int      `json:"hbonds"`
	HBondWeight   float64  `json:"hbond_weight"`
	Torsion       float64  `json:"torsion"`
	Total         float64  `json:"total"`
	Weighted      float64  `json:"weighted"`
	RamaBias      float64  `json:"rama_bias"`
	SS            []string `json:"ss"` //one label per residue, starting there
}

// NewReport builds the serializable form of R.
func NewReport(R *bbscore.EnergyReport) *Report {
	ret := &Report{Steric: R.Steric, Electrostatic: R.Electrostatic, HBond: R.HBond, HBonds: R.HBonds,
		HBondWeight: R.HBondWeight, Torsion: R.Torsion, Total: R.Total(), Weighted: R.Weighted(),
		RamaBias: R.RamaBias, SS: make([]string, len(R.SS))}
	for i, m := range R.SS {
		ret.SS[i] = m.Label
	}
	return ret
}

// Send marshals the report and writes it to out as one JSON line.
func (J *Report) Send(out io.Writer) error {
	if err := json.NewEncoder(out).Encode(J); err != nil {
		return NewError("output", "Report.Send", err)
	}
	return nil
}
