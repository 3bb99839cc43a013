/*
 * read.go, part of bbscore.
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

// section is one "[ header ]" block of a data file, with its
// non-empty, comment-free lines.
type section struct {
	header []string
	lines  []string
	nums   []int //line numbers in the file, for error messages
}

func (s *section) name() string {
	if len(s.header) == 0 {
		return ""
	}
	return s.header[0]
}

// Returns a string without comments (sequences starting with a ';' that
// is not inside double quotes), trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				return strings.Trim(s[:i], "\r\n\t ")
			}
		}
	}
	return strings.Trim(s, "\r\n\t ")
}

// readSections splits the sectioned text in r into its sections.
// Lines before the first header are an error.
func readSections(r io.Reader) ([]*section, error) {
	var ret []*section
	var cur *section
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := cleanString(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: malformed header %q", n, line)
			}
			h, err := headerFields(strings.TrimSpace(line[1 : len(line)-1]))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			if len(h) == 0 {
				return nil, fmt.Errorf("line %d: empty header", n)
			}
			cur = &section{header: h}
			ret = append(ret, cur)
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("line %d: data before the first section header", n)
		}
		cur.lines = append(cur.lines, line)
		cur.nums = append(cur.nums, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

// headerFields splits a header into fields. A field can be a double-quoted
// string, which is how labels with spaces are written.
func headerFields(h string) ([]string, error) {
	var ret []string
	for h = strings.TrimSpace(h); h != ""; h = strings.TrimSpace(h) {
		if h[0] != '"' {
			f := strings.Fields(h)[0]
			ret = append(ret, f)
			h = h[len(f):]
			continue
		}
		end := strings.Index(h[1:], "\"")
		if end < 0 {
			return nil, fmt.Errorf("unterminated quote in header %q", h)
		}
		q, err := strconv.Unquote(h[:end+2])
		if err != nil {
			return nil, err
		}
		ret = append(ret, q)
		h = h[end+2:]
	}
	return ret, nil
}

func parsefloats(s ...string) ([]float64, error) {
	ret := make([]float64, 0, len(s))
	for _, v := range s {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	return ret, nil
}

func parseints(s ...string) ([]int, error) {
	ret := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, i)
	}
	return ret, nil
}

// keyValues reads a section made of "key value" lines.
func keyValues(s *section) (map[string]float64, error) {
	ret := make(map[string]float64, len(s.lines))
	for i, l := range s.lines {
		f := strings.Fields(l)
		if len(f) != 2 {
			return nil, fmt.Errorf("line %d: expected 'key value', got %q", s.nums[i], l)
		}
		v, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", s.nums[i], err)
		}
		ret[f[0]] = v
	}
	return ret, nil
}
