// Package annotation parses `@log(a, b, ...)` comment directives.
//
// Parsing never fails loudly: anything that is not a well-formed, non-empty
// annotation is reported as absent.
package annotation

import (
	"strings"
	"unicode/utf8"
)

// Prefix opens every annotation.
const Prefix = "@log("

// Parse extracts the variable names from a comment value. The character after
// the last name is assumed to be the closing parenthesis and is dropped without
// being checked, so `@log(a, b` yields [a] rather than failing.
func Parse(text string) ([]string, bool) {
	value := strings.TrimSpace(text)
	value = strings.TrimSpace(strings.TrimSuffix(value, ";"))
	if !strings.HasPrefix(value, Prefix) {
		return nil, false
	}

	inner := value[len(Prefix):]
	if inner == "" {
		return nil, false
	}
	_, size := utf8.DecodeLastRuneInString(inner)
	inner = inner[:len(inner)-size]

	var names []string
	for _, part := range strings.Split(inner, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, false
	}
	return names, true
}

// Collect returns the names of every annotation among comments, in order.
// Comments that are not annotations, or declare no names, are skipped.
func Collect(comments []string) [][]string {
	var out [][]string
	for _, c := range comments {
		if names, ok := Parse(c); ok {
			out = append(out, names)
		}
	}
	return out
}
