// Package validate checks the request payloads accepted from untrusted
// clients. Each form type mirrors a JSON request body and reports its
// problems as a field-to-message map, which the handlers serialize as-is.
package validate

import (
	"regexp"
	"sort"
	"strings"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
)

// FieldErrors maps a field name to its first validation failure.
type FieldErrors map[string]string

// Error joins the failures into one deterministic message.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(f + ": " + e[f])
	}
	return sb.String()
}

// Ok reports whether no field failed.
func (e FieldErrors) Ok() bool { return len(e) == 0 }

func validEmail(s string) bool {
	return emailRe.MatchString(s) && len(s) <= 255
}

func digits(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max && digitsRe.MatchString(s)
}

func between(s string, min, max int) bool {
	n := len(strings.TrimSpace(s))
	return n >= min && n <= max
}
