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

// Package chemjson implements the serialization and unserialization of
// bbscore conformations and energy reports, so external programs, which
// can be written in languages other than Go, can send structures to be
// scored and collect the results, for instance, via UNIX pipes.
//
// A stream holds one or more JSON objects, one after the other:
//
//	{"atoms": [{"name": "N", "id": 1, "resname": "ALA", "resid": 1, "chain": "A", "coords": [0, 0, 0]}, ...],
//	 "bonds": [[0, 1], ...],
//	 "phipsi": [{"phi": null, "psi": -47}, ...],
//	 "residues": ["ALA", ...]}
//
// bonds, phipsi and residues are optional. Undefined angles are null.
package chemjson
