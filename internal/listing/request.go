package listing

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize applies when the request carries no usable limit.
	DefaultPageSize = 10
	// MaxPageSize caps the per-page row count regardless of what the
	// request asks for.
	MaxPageSize = 100
)

// Request is the raw, untrusted per-call input taken from a query string.
// Every field is optional; normalization supplies safe defaults, so parsing
// a Request cannot fail.
type Request struct {
	Page   string // "page"
	Limit  string // "limit"
	Search string // "search"
	Column string // "column"
	Order  string // "order", asc|desc, case-insensitive
}

// ParseRequest extracts a Request from URL query values.
func ParseRequest(q url.Values) Request {
	return Request{
		Page:   q.Get("page"),
		Limit:  q.Get("limit"),
		Search: q.Get("search"),
		Column: q.Get("column"),
		Order:  q.Get("order"),
	}
}

// page returns the normalized 1-based page number.
func (r Request) page() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.Page))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// pageSize returns the normalized page size, clamped to [1, MaxPageSize].
func (r Request) pageSize() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.Limit))
	if err != nil || n < 1 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// descending interprets the order field. Anything other than "desc"
// (case-insensitive) means ascending.
func (r Request) descending() bool {
	return strings.EqualFold(strings.TrimSpace(r.Order), "desc")
}
