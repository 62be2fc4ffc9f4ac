// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"errors"
	"strings"
)

var errMalformedList = errors.New("malformed list literal")

// ParseList decodes a list-encoded column such as ['Frank Herbert', "O'Brien"].
// Any value that is not a bracketed list of quoted strings yields an empty,
// non-nil slice. ParseList never fails.
func ParseList(s string) []string {
	items, err := parseListLiteral(s)
	if err != nil {
		return []string{}
	}
	return items
}

// parseListLiteral is the strict form of ParseList.
func parseListLiteral(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, errMalformedList
	}
	body := s[1 : len(s)-1]
	items := []string{}

	i := skipSpace(body, 0)
	for i < len(body) {
		str, next, err := readQuoted(body, i)
		if err != nil {
			return nil, err
		}
		items = append(items, str)

		i = skipSpace(body, next)
		if i == len(body) {
			break
		}
		if body[i] != ',' {
			return nil, errMalformedList
		}
		i = skipSpace(body, i+1)
	}
	return items, nil
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

// readQuoted reads a single- or double-quoted literal starting at s[i].
func readQuoted(s string, i int) (string, int, error) {
	if i >= len(s) || (s[i] != '\'' && s[i] != '"') {
		return "", 0, errMalformedList
	}
	quote := s[i]
	var b strings.Builder
	for j := i + 1; j < len(s); j++ {
		c := s[j]
		switch {
		case c == quote:
			return b.String(), j + 1, nil
		case c == '\\':
			if j+1 >= len(s) {
				return "", 0, errMalformedList
			}
			j++
			switch s[j] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"':
				b.WriteByte(s[j])
			default:
				b.WriteByte('\\')
				b.WriteByte(s[j])
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, errMalformedList
}
