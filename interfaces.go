/*
 * interfaces.go, part of bbscore.
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

import (
	"errors"
	"fmt"
	"strings"
)

// Atomer is the basic interface for a set of atoms.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i.
	//Should panic if out of range.
	Atom(i int) *Atom

	Len() int
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //If passed an empty string, it just returns the current value.
}

// Sentinel errors. Errors returned by the package wrap these, so they can be
// checked with errors.Is.
var (
	//The geometry can't be used: non-finite coordinates, coincident atoms, or
	//zero-length vectors where a direction is needed. The conformation should be discarded.
	ErrInvalidGeometry = errors.New("invalid geometry")
	//A residue without backbone dihedrals (i.e. a cap) was given to a torsion function.
	ErrNoDihedral = errors.New("residue has no backbone dihedrals")
	//An undefined (terminal) angle was given where a value is needed.
	ErrUndefinedAngle = errors.New("undefined angle")
	ErrNilData        = errors.New("nil data given")
)

// CError is the error type of the package. It carries a message, the
// sentinel it wraps, if any, and a list of the functions it went through.
type CError struct {
	msg  string
	err  error
	deco []string
}

func newError(sentinel error, msg string, deco ...string) *CError {
	return &CError{msg: msg, err: sentinel, deco: deco}
}

// Error returns a string with the message, the sentinel's description
// and the decoration.
func (err *CError) Error() string {
	s := err.msg
	if err.err != nil {
		if s == "" {
			s = err.err.Error()
		} else {
			s = err.err.Error() + ": " + s
		}
	}
	if len(err.deco) == 0 {
		return s
	}
	return fmt.Sprintf("%s [%s]", s, strings.Join(err.deco, " <- "))
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Unwrap returns the sentinel error, if any.
func (err *CError) Unwrap() error { return err.err }

// errDecorate decorates err with the caller's name before returning it.
// Errors that don't implement Error are wrapped in a CError first.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		err2 = &CError{err: err}
	}
	err2.Decorate(caller)
	return err2
}
