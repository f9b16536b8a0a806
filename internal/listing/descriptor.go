// Package listing turns untrusted list-view query strings (page, limit,
// search, sort column, sort direction) into safe, parameterized SQL plans
// and a uniform paginated response envelope. One engine serves every admin
// entity; per-entity behavior comes from an immutable Descriptor built at
// process start.
package listing

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldKind determines how a searchable field participates in free-text
// matching.
type FieldKind int

const (
	// Text fields match by case-insensitive substring.
	Text FieldKind = iota
	// Numeric fields match by substring against their string-cast form.
	// Searching "5" matches a price of 150.00; this mirrors the admin UI's
	// historical behavior of using one LIKE operator for every column.
	Numeric
	// Enum fields hold a closed value set but match like text.
	Enum
)

// Field names a searchable column and its kind.
type Field struct {
	Name string
	Kind FieldKind
}

// Relation describes a joined sub-entity projected onto each result row.
type Relation struct {
	// Name prefixes the projected columns (e.g. "customer" -> customer_id,
	// customer_name, ...) and names the nested object in responses.
	Name string
	// Table is the joined table.
	Table string
	// ForeignKey is the column on the base table referencing Table.
	ForeignKey string
	// RefKey is the referenced column on Table, normally "id".
	RefKey string
	// Columns are projected from the joined table.
	Columns []string
	// Required selects INNER JOIN; otherwise LEFT JOIN, and rows without a
	// match carry NULLs for the relation's columns.
	Required bool
}

// Descriptor is the immutable per-entity configuration consumed by the
// engine. Construct one per entity at startup and pass it explicitly; there
// is no global registry.
type Descriptor struct {
	// Entity is an identifier used in diagnostics only.
	Entity string
	// Table is the backing table name.
	Table string
	// Columns is the projection for list rows.
	Columns []string
	// Searchable lists the fields eligible for free-text matching, in the
	// order their predicates appear in the disjunction.
	Searchable []Field
	// Sortable is the set of columns permitted as a sort key. Requests
	// naming any other column silently fall back to DefaultSort.
	Sortable []string
	// DefaultSort applies when the request names no usable sort.
	DefaultSort Sort
	// Relations are joined sub-entities, projected in declaration order.
	Relations []Relation
}

// Sort is a resolved (column, direction) pair.
type Sort struct {
	Column string
	Desc   bool
}

// identRe validates SQL identifiers the same way for descriptors and for
// anything derived from them. Untrusted request input is never interpolated
// into SQL at all; this guards the trusted configuration against typos that
// would otherwise surface as malformed queries at request time.
var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateIdentifier ensures a table or column name is a plain SQL
// identifier.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if len(name) > 128 {
		return fmt.Errorf("identifier too long (max 128 chars): %q", name)
	}
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid identifier %q: must match [a-zA-Z_][a-zA-Z0-9_]*", name)
	}
	return nil
}

// Validate checks the descriptor's structural integrity. Call it once at
// startup; a failure here is a programming error, not a request error.
func (d *Descriptor) Validate() error {
	if d.Entity == "" {
		return fmt.Errorf("descriptor: entity name is required")
	}
	if err := ValidateIdentifier(d.Table); err != nil {
		return fmt.Errorf("descriptor %s: table: %w", d.Entity, err)
	}
	if len(d.Columns) == 0 {
		return fmt.Errorf("descriptor %s: at least one projected column is required", d.Entity)
	}
	for _, c := range d.Columns {
		if err := ValidateIdentifier(c); err != nil {
			return fmt.Errorf("descriptor %s: column: %w", d.Entity, err)
		}
	}
	for _, f := range d.Searchable {
		if err := ValidateIdentifier(f.Name); err != nil {
			return fmt.Errorf("descriptor %s: searchable field: %w", d.Entity, err)
		}
	}
	for _, c := range d.Sortable {
		if err := ValidateIdentifier(c); err != nil {
			return fmt.Errorf("descriptor %s: sortable column: %w", d.Entity, err)
		}
	}
	if err := ValidateIdentifier(d.DefaultSort.Column); err != nil {
		return fmt.Errorf("descriptor %s: default sort: %w", d.Entity, err)
	}
	for _, r := range d.Relations {
		if err := ValidateIdentifier(r.Name); err != nil {
			return fmt.Errorf("descriptor %s: relation name: %w", d.Entity, err)
		}
		if err := ValidateIdentifier(r.Table); err != nil {
			return fmt.Errorf("descriptor %s: relation %s: table: %w", d.Entity, r.Name, err)
		}
		if err := ValidateIdentifier(r.ForeignKey); err != nil {
			return fmt.Errorf("descriptor %s: relation %s: foreign key: %w", d.Entity, r.Name, err)
		}
		if err := ValidateIdentifier(r.RefKey); err != nil {
			return fmt.Errorf("descriptor %s: relation %s: ref key: %w", d.Entity, r.Name, err)
		}
		if len(r.Columns) == 0 {
			return fmt.Errorf("descriptor %s: relation %s: at least one column is required", d.Entity, r.Name)
		}
		for _, c := range r.Columns {
			if err := ValidateIdentifier(c); err != nil {
				return fmt.Errorf("descriptor %s: relation %s: column: %w", d.Entity, r.Name, err)
			}
		}
	}
	return nil
}

// sortColumn resolves col against the sortable set, returning the canonical
// column name. Matching is case-insensitive.
func (d *Descriptor) sortColumn(col string) (string, bool) {
	for _, c := range d.Sortable {
		if strings.EqualFold(c, col) {
			return c, true
		}
	}
	return "", false
}
