package listing

import (
	"net/url"
	"strings"
	"testing"
)

func testDescriptor() *Descriptor {
	return &Descriptor{
		Entity:  "customer",
		Table:   "customers",
		Columns: []string{"id", "name", "email", "status"},
		Searchable: []Field{
			{Name: "id", Kind: Numeric},
			{Name: "name", Kind: Text},
			{Name: "email", Kind: Text},
		},
		Sortable:    []string{"id", "name", "email"},
		DefaultSort: Sort{Column: "id", Desc: true},
	}
}

func TestBuildPlanDefaults(t *testing.T) {
	p := BuildPlan(testDescriptor(), Request{})

	if p.Page != 1 {
		t.Errorf("page = %d, want 1", p.Page)
	}
	if p.PageSize != 10 {
		t.Errorf("pageSize = %d, want 10", p.PageSize)
	}
	if p.Offset != 0 {
		t.Errorf("offset = %d, want 0", p.Offset)
	}
	if p.WhereSQL != "" || len(p.Args) != 0 {
		t.Errorf("empty search must yield the always-true filter, got %q", p.WhereSQL)
	}
	if p.Sort.Column != "id" || !p.Sort.Desc {
		t.Errorf("sort = %+v, want default (id, desc)", p.Sort)
	}
}

func TestBuildPlanNormalization(t *testing.T) {
	tests := []struct {
		name                           string
		page, limit                    string
		wantPage, wantSize, wantOffset int
	}{
		{"offset math", "3", "20", 3, 20, 40},
		{"zero page clamps to first", "0", "10", 1, 10, 0},
		{"negative page clamps to first", "-4", "10", 1, 10, 0},
		{"garbage page falls back", "abc", "", 1, 10, 0},
		{"limit clamped to max", "1", "5000", 1, MaxPageSize, 0},
		{"zero limit falls back", "2", "0", 2, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPlan(testDescriptor(), Request{Page: tt.page, Limit: tt.limit})
			if p.Page != tt.wantPage || p.PageSize != tt.wantSize || p.Offset != tt.wantOffset {
				t.Errorf("got (page=%d size=%d offset=%d), want (%d %d %d)",
					p.Page, p.PageSize, p.Offset, tt.wantPage, tt.wantSize, tt.wantOffset)
			}
		})
	}
}

func TestBuildPlanSort(t *testing.T) {
	d := testDescriptor()

	t.Run("allowed column applies", func(t *testing.T) {
		p := BuildPlan(d, Request{Column: "name", Order: "asc"})
		if p.Sort.Column != "name" || p.Sort.Desc {
			t.Errorf("sort = %+v, want (name, asc)", p.Sort)
		}
	})

	t.Run("direction defaults to ascending", func(t *testing.T) {
		p := BuildPlan(d, Request{Column: "name"})
		if p.Sort.Column != "name" || p.Sort.Desc {
			t.Errorf("sort = %+v, want (name, asc)", p.Sort)
		}
	})

	t.Run("unrecognized direction means ascending", func(t *testing.T) {
		p := BuildPlan(d, Request{Column: "name", Order: "sideways"})
		if p.Sort.Desc {
			t.Error("unrecognized direction must resolve ascending")
		}
	})

	t.Run("unknown column falls back silently", func(t *testing.T) {
		p := BuildPlan(d, Request{Column: "nonexistent_field", Order: "asc"})
		if p.Sort.Column != "id" || !p.Sort.Desc {
			t.Errorf("sort = %+v, want default (id, desc)", p.Sort)
		}
	})

	t.Run("column match is case-insensitive", func(t *testing.T) {
		p := BuildPlan(d, Request{Column: "NAME", Order: "desc"})
		if p.Sort.Column != "name" || !p.Sort.Desc {
			t.Errorf("sort = %+v, want (name, desc)", p.Sort)
		}
	})
}

func TestBuildPlanSearch(t *testing.T) {
	d := testDescriptor()
	p := BuildPlan(d, Request{Search: "Abc"})

	if len(p.Args) != 3 {
		t.Fatalf("got %d args, want one per searchable field", len(p.Args))
	}
	for i, a := range p.Args {
		if a != "%abc%" {
			t.Errorf("arg[%d] = %v, want lowercased %%abc%%", i, a)
		}
	}
	if got := strings.Count(p.WhereSQL, " OR "); got != 2 {
		t.Errorf("filter %q has %d ORs, want 2", p.WhereSQL, got)
	}
	// Numeric id goes through the string cast; text fields do not.
	if !strings.Contains(p.WhereSQL, "CAST(t.`id` AS CHAR)") {
		t.Errorf("numeric field missing string cast: %q", p.WhereSQL)
	}
	if strings.Contains(p.WhereSQL, "CAST(t.`name`") {
		t.Errorf("text field must not be cast: %q", p.WhereSQL)
	}
}

func TestBuildPlanBlankSearch(t *testing.T) {
	for _, s := range []string{"", "   "} {
		p := BuildPlan(testDescriptor(), Request{Search: s})
		if p.WhereSQL != "" {
			t.Errorf("search %q must yield no filter, got %q", s, p.WhereSQL)
		}
	}
}

func TestCountSQL(t *testing.T) {
	d := testDescriptor()

	p := BuildPlan(d, Request{Search: "x"})
	sql, args := p.CountSQL(d)
	if !strings.HasPrefix(sql, "SELECT COUNT(*) FROM `customers` AS t WHERE ") {
		t.Errorf("unexpected count SQL: %q", sql)
	}
	if len(args) != len(d.Searchable) {
		t.Errorf("got %d args, want %d", len(args), len(d.Searchable))
	}

	p = BuildPlan(d, Request{})
	sql, args = p.CountSQL(d)
	if sql != "SELECT COUNT(*) FROM `customers` AS t" {
		t.Errorf("unexpected unfiltered count SQL: %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("unfiltered count must carry no args, got %d", len(args))
	}
}

func TestCountSQLRequiredRelation(t *testing.T) {
	d := &Descriptor{
		Entity:      "order",
		Table:       "orders",
		Columns:     []string{"id"},
		Sortable:    []string{"id"},
		DefaultSort: Sort{Column: "id", Desc: true},
		Relations: []Relation{
			{Name: "customer", Table: "customers", ForeignKey: "customer_id", RefKey: "id", Columns: []string{"id"}},
			{Name: "product", Table: "products", ForeignKey: "product_id", RefKey: "id", Columns: []string{"id"}, Required: true},
		},
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("descriptor: %v", err)
	}

	sql, _ := BuildPlan(d, Request{}).CountSQL(d)
	// A required relation excludes unmatched base rows from the page, so the
	// count must apply the same join. The optional relation cannot change the
	// row count and stays out.
	if !strings.Contains(sql, "INNER JOIN `products` AS r1 ON r1.`id` = t.`product_id`") {
		t.Errorf("count SQL missing required join:\n%s", sql)
	}
	if strings.Contains(sql, "LEFT JOIN") {
		t.Errorf("count SQL must not join optional relations:\n%s", sql)
	}
}

func TestSelectSQL(t *testing.T) {
	d := testDescriptor()
	p := BuildPlan(d, Request{Page: "2", Limit: "5", Column: "email", Order: "desc"})

	sql, args := p.SelectSQL(d)
	if !strings.Contains(sql, "ORDER BY t.`email` DESC") {
		t.Errorf("missing order clause: %q", sql)
	}
	if !strings.HasSuffix(sql, "LIMIT ? OFFSET ?") {
		t.Errorf("missing pagination placeholders: %q", sql)
	}
	if len(args) != 2 {
		t.Fatalf("got %d args, want limit+offset", len(args))
	}
	if args[0] != 5 || args[1] != 5 {
		t.Errorf("limit/offset args = %v, want [5 5]", args)
	}
}

func TestSelectSQLRelations(t *testing.T) {
	d := &Descriptor{
		Entity:      "order",
		Table:       "orders",
		Columns:     []string{"id", "full_name"},
		Sortable:    []string{"id"},
		DefaultSort: Sort{Column: "id", Desc: true},
		Relations: []Relation{
			{Name: "customer", Table: "customers", ForeignKey: "customer_id", RefKey: "id", Columns: []string{"id", "name"}},
			{Name: "product", Table: "products", ForeignKey: "product_id", RefKey: "id", Columns: []string{"id", "title"}, Required: true},
		},
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("descriptor: %v", err)
	}

	sql, _ := BuildPlan(d, Request{}).SelectSQL(d)
	for _, want := range []string{
		"r0.`name` AS `customer_name`",
		"r1.`title` AS `product_title`",
		"LEFT JOIN `customers` AS r0 ON r0.`id` = t.`customer_id`",
		"INNER JOIN `products` AS r1 ON r1.`id` = t.`product_id`",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("select SQL missing %q:\n%s", want, sql)
		}
	}
}

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Descriptor)
		wantErr bool
	}{
		{"valid", func(d *Descriptor) {}, false},
		{"missing entity", func(d *Descriptor) { d.Entity = "" }, true},
		{"bad table", func(d *Descriptor) { d.Table = "cust omers" }, true},
		{"no columns", func(d *Descriptor) { d.Columns = nil }, true},
		{"injection in column", func(d *Descriptor) { d.Columns = []string{"id; DROP TABLE x"} }, true},
		{"bad sortable", func(d *Descriptor) { d.Sortable = []string{"1name"} }, true},
		{"bad default sort", func(d *Descriptor) { d.DefaultSort.Column = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDescriptor()
			tt.mutate(d)
			err := d.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseRequest(t *testing.T) {
	q := url.Values{}
	q.Set("page", "2")
	q.Set("limit", "25")
	q.Set("search", "shirt")
	q.Set("column", "title")
	q.Set("order", "DESC")

	r := ParseRequest(q)
	if r.Page != "2" || r.Limit != "25" || r.Search != "shirt" || r.Column != "title" || r.Order != "DESC" {
		t.Errorf("unexpected request: %+v", r)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{12, 5, 3},
		{100, 100, 1},
	}
	for _, tt := range tests {
		if got := totalPages(tt.total, tt.pageSize); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}
