/*
 * doc.go, part of bbscore.
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

/*
Package bbscore scores protein backbone conformations and assigns their
secondary structure. It provides the atom and conformation types, a
reduced force field and the functions to evaluate it.


	**bbscore Capabilities**


    Looks up van der Waals radii, LJ well depths and partial charges for
	(residue, atom) pairs, falling back to atom-name, element and wildcard
	entries for unknown ones.

    Computes steric (full LJ or repulsive-only) and Coulomb energies
	between atom pairs, with per-interaction distance cutoffs and 1-4 scaling.

    Scores backbone hydrogen bonds, either with the DSSP electrostatic
	model or with a geometric 12-10 plus charge model.

    Computes backbone torsion energies from Fourier dihedral terms.

    Gives the probability of a phi/psi pair from a Ramachandran grid, which
	can also be built from samples.

    Classifies windows of phi/psi pairs with secondary structure templates.

    Obtains phi/psi from backbone coordinates, and bonds and 1-2/1-3/1-4
	relations from distances.

    Scores whole conformations concurrently (see Engine.ConformationEnergy),
	with results that don't depend on the number of goroutines used.


All the data (force field, Ramachandran grid and templates) is embedded in
the ffdata package, and can be replaced by external, possibly compressed,
files. An Engine is built once from the data and is read-only afterwards,
so it can be shared by any number of goroutines.

Angles are in degrees, distances in A and energies in kcal/mol, unless
stated otherwise. Undefined angles (terminal phi and psi) are NaN, see
Undefined.*/
package bbscore
