/*
 * write.go, part of bbscore.
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
 */

package ffdata

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteGrid writes G in the format read by ReadGrid. Each line of comment,
// if any, is written as a ';' comment before the grid.
func WriteGrid(w io.Writer, G *Grid, comment string) error {
	if G.NPhi <= 0 || G.NPsi <= 0 || len(G.Values) != G.NPhi*G.NPsi {
		return fmt.Errorf("WriteGrid: %d values for a %d x %d grid", len(G.Values), G.NPhi, G.NPsi)
	}
	out := bufio.NewWriter(w)
	if comment != "" {
		for _, l := range strings.Split(strings.TrimRight(comment, "\n"), "\n") {
			fmt.Fprintf(out, "; %s\n", l)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "[ grid %d %d ]\n", G.NPhi, G.NPsi)
	row := make([]string, G.NPsi)
	for i := 0; i < G.NPhi; i++ {
		for j, v := range G.Values[i*G.NPsi : (i+1)*G.NPsi] {
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		fmt.Fprintln(out, strings.Join(row, " "))
	}
	return out.Flush()
}
