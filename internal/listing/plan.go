package listing

import (
	"strconv"
	"strings"
)

// Plan is the resolved, safe query specification derived from one
// (Descriptor, Request) pair. It is deterministic in its inputs, never
// stored, and carries no connection state, so it can be built and inspected
// without a database.
type Plan struct {
	// WhereSQL is the parameterized filter fragment using ? placeholders,
	// empty when the request carries no search text.
	WhereSQL string
	// Args are the bind values for WhereSQL.
	Args []interface{}
	// Sort is the resolved order.
	Sort Sort
	// Page is the 1-based page number after normalization.
	Page int
	// PageSize is the normalized per-page row count.
	PageSize int
	// Offset is (Page-1)*PageSize.
	Offset int
}

// BuildPlan normalizes an untrusted request against a descriptor. It is a
// pure function: no I/O, no side effects.
//
// Search builds a disjunction across every searchable field. Matching is
// case-insensitive, and numeric fields are compared by substring against
// their string-cast form, so searching "5" matches a price of 150.00 (the
// longstanding behavior of the admin tables).
//
// A sort column outside the descriptor's sortable set is not an error; the
// plan silently falls back to the default sort.
func BuildPlan(d *Descriptor, r Request) *Plan {
	p := &Plan{
		Page:     r.page(),
		PageSize: r.pageSize(),
		Sort:     d.DefaultSort,
	}
	p.Offset = (p.Page - 1) * p.PageSize

	if col := strings.TrimSpace(r.Column); col != "" {
		if canonical, ok := d.sortColumn(col); ok {
			p.Sort = Sort{Column: canonical, Desc: r.descending()}
		}
	}

	if search := strings.TrimSpace(r.Search); search != "" && len(d.Searchable) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		parts := make([]string, 0, len(d.Searchable))
		for _, f := range d.Searchable {
			parts = append(parts, searchPredicate(f))
			p.Args = append(p.Args, pattern)
		}
		p.WhereSQL = "(" + strings.Join(parts, " OR ") + ")"
	}

	return p
}

// searchPredicate renders one field's LIKE predicate. Numeric columns go
// through CAST so the substring comparison sees their decimal rendering;
// CHAR carries text affinity on both MySQL and SQLite.
func searchPredicate(f Field) string {
	col := "t." + quoteIdent(f.Name)
	if f.Kind == Numeric {
		return "LOWER(CAST(" + col + " AS CHAR)) LIKE ?"
	}
	return "LOWER(" + col + ") LIKE ?"
}

// quoteIdent backtick-quotes an identifier. Descriptor validation already
// rejected anything outside [a-zA-Z0-9_], so escaping is belt and braces.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// CountSQL renders the total-count query for the plan's filter. Required
// relations gate row inclusion, so their INNER JOINs render here too; the
// relations are many-to-one, so optional LEFT JOINs cannot change the count
// and are skipped.
func (p *Plan) CountSQL(d *Descriptor) (string, []interface{}) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(quoteIdent(d.Table))
	b.WriteString(" AS t")
	for i, rel := range d.Relations {
		if rel.Required {
			writeJoin(&b, rel, relAlias(i))
		}
	}
	if p.WhereSQL != "" {
		b.WriteString(" WHERE ")
		b.WriteString(p.WhereSQL)
	}
	return b.String(), p.Args
}

// SelectSQL renders the page query: projection plus relation columns,
// joins, filter, order, and LIMIT/OFFSET placeholders. Relation columns are
// aliased "<relation>_<column>" so one flat scan covers the joined row.
func (p *Plan) SelectSQL(d *Descriptor) (string, []interface{}) {
	var b strings.Builder
	b.WriteString("SELECT ")

	cols := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		cols = append(cols, "t."+quoteIdent(c))
	}
	for i, rel := range d.Relations {
		alias := relAlias(i)
		for _, c := range rel.Columns {
			cols = append(cols, alias+"."+quoteIdent(c)+" AS "+quoteIdent(rel.Name+"_"+c))
		}
	}
	b.WriteString(strings.Join(cols, ", "))

	b.WriteString(" FROM ")
	b.WriteString(quoteIdent(d.Table))
	b.WriteString(" AS t")

	for i, rel := range d.Relations {
		writeJoin(&b, rel, relAlias(i))
	}

	if p.WhereSQL != "" {
		b.WriteString(" WHERE ")
		b.WriteString(p.WhereSQL)
	}

	b.WriteString(" ORDER BY t.")
	b.WriteString(quoteIdent(p.Sort.Column))
	if p.Sort.Desc {
		b.WriteString(" DESC")
	} else {
		b.WriteString(" ASC")
	}

	b.WriteString(" LIMIT ? OFFSET ?")
	args := make([]interface{}, 0, len(p.Args)+2)
	args = append(args, p.Args...)
	args = append(args, p.PageSize, p.Offset)

	return b.String(), args
}

// relAlias names relation join aliases r0, r1, ...
func relAlias(i int) string {
	return "r" + strconv.Itoa(i)
}

// writeJoin renders one relation join clause.
func writeJoin(b *strings.Builder, rel Relation, alias string) {
	if rel.Required {
		b.WriteString(" INNER JOIN ")
	} else {
		b.WriteString(" LEFT JOIN ")
	}
	b.WriteString(quoteIdent(rel.Table))
	b.WriteString(" AS ")
	b.WriteString(alias)
	b.WriteString(" ON ")
	b.WriteString(alias)
	b.WriteString(".")
	b.WriteString(quoteIdent(rel.RefKey))
	b.WriteString(" = t.")
	b.WriteString(quoteIdent(rel.ForeignKey))
}
