package restdata

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildListQueryPagination(t *testing.T) {
	cases := []struct {
		page, perPage int
		limit, offset int
	}{
		{1, 25, 25, 0},
		{2, 25, 25, 25},
		{3, 10, 10, 20},
		{1, 1, 1, 0},
		{7, 50, 50, 300},
	}
	for _, tc := range cases {
		v := buildListQuery(Pagination{Page: tc.page, PerPage: tc.perPage}, Sort{}, nil, nil)
		limit, _ := v.Get("limit")
		offset, _ := v.Get("offset")
		if limit != tc.limit || offset != tc.offset {
			t.Errorf("page=%d perPage=%d: got limit=%v offset=%v, want limit=%d offset=%d",
				tc.page, tc.perPage, limit, offset, tc.limit, tc.offset)
		}
	}
}

func TestBuildListQuerySortNormalized(t *testing.T) {
	v := buildListQuery(Pagination{Page: 1, PerPage: 10}, Sort{Field: "title", Order: "DESC"}, nil, nil)
	if got, want := v.Encode(), "limit=10&offset=0&sort[title]=desc"; got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestBuildListQueryOmitsEmptySort(t *testing.T) {
	v := buildListQuery(Pagination{Page: 1, PerPage: 10}, Sort{}, nil, nil)
	if _, ok := v.Get("sort"); ok {
		t.Fatalf("empty sort must not emit a sort key, got query %q", v.Encode())
	}
}

func TestBuildListQueryWrapsFilterInOrder(t *testing.T) {
	filter := Filter{
		{Name: "status", Value: "published"},
		{Name: "author", Value: 7},
	}
	v := buildListQuery(Pagination{Page: 1, PerPage: 10}, Sort{}, filter, nil)
	want := "limit=10&offset=0&filter[status]=equals%3Apublished&filter[author]=equals%3A7"
	if got := v.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestBuildListQueryEmptyFilterStillPresent(t *testing.T) {
	v := buildListQuery(Pagination{Page: 1, PerPage: 10}, Sort{}, nil, nil)
	if _, ok := v.Get("filter"); !ok {
		t.Fatal("filter key must be present even when empty")
	}
	if got, want := v.Encode(), "limit=10&offset=0"; got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestBuildListQueryWrapsFalsyValues(t *testing.T) {
	filter := Filter{
		{Name: "title", Value: ""},
		{Name: "count", Value: 0},
		{Name: "active", Value: false},
	}
	v := buildListQuery(Pagination{Page: 1, PerPage: 5}, Sort{}, filter, nil)
	want := "limit=5&offset=0&filter[title]=equals%3A&filter[count]=equals%3A0&filter[active]=equals%3Afalse"
	if got := v.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestBuildListQueryExtractsSearchTerm(t *testing.T) {
	filter := Filter{
		{Name: "q", Value: "search term"},
		{Name: "status", Value: "published"},
	}
	v := buildListQuery(Pagination{Page: 1, PerPage: 10}, Sort{}, filter, nil)
	want := "limit=10&offset=0&q=search+term&filter[status]=equals%3Apublished"
	if got := v.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestBuildListQueryMetaFilterWins(t *testing.T) {
	filter := Filter{
		{Name: "status", Value: "draft"},
		{Name: "author", Value: 7},
	}
	meta := &Meta{Filter: Filter{
		{Name: "status", Value: "published"},
		{Name: "lang", Value: "en"},
	}}
	v := buildListQuery(Pagination{Page: 1, PerPage: 10}, Sort{}, filter, meta)
	want := "limit=10&offset=0&filter[status]=equals%3Apublished&filter[author]=equals%3A7&filter[lang]=equals%3Aen"
	if got := v.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestBuildListQuerySearchNeverInFilterMap(t *testing.T) {
	filter := Filter{{Name: "status", Value: "published"}}
	meta := &Meta{Filter: Filter{{Name: "q", Value: "from meta"}}}
	v := buildListQuery(Pagination{Page: 1, PerPage: 10}, Sort{}, filter, meta)
	want := "limit=10&offset=0&q=from+meta&filter[status]=equals%3Apublished"
	if got := v.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestBuildListQueryDoesNotMutateInputs(t *testing.T) {
	filter := Filter{
		{Name: "q", Value: "term"},
		{Name: "status", Value: "draft"},
	}
	meta := &Meta{Filter: Filter{{Name: "status", Value: "published"}}}
	before := make(Filter, len(filter))
	copy(before, filter)

	buildListQuery(Pagination{Page: 1, PerPage: 10}, Sort{}, filter, meta)

	if diff := cmp.Diff(before, filter); diff != "" {
		t.Fatalf("caller filter mutated (-want +got):\n%s", diff)
	}
}

func TestBuildItemQueryInclude(t *testing.T) {
	meta := &Meta{Include: Include{
		{Name: "foo"},
		{Name: "bar", Fields: []string{"baz"}},
	}}
	if got, want := buildItemQuery(meta).Encode(), "include[foo]=true&include[bar][]=baz"; got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestBuildItemQueryEmpty(t *testing.T) {
	if got := buildItemQuery(nil).Encode(); got != "" {
		t.Fatalf("Encode() = %q, want empty", got)
	}
	if got := buildItemQuery(&Meta{}).Encode(); got != "" {
		t.Fatalf("Encode() = %q, want empty", got)
	}
}

type article struct {
	ID    int
	Title string
}

type keyedRecord struct {
	key string
}

func (r keyedRecord) RecordID() any { return r.key }

func TestBuildIDListQueryReducesRecords(t *testing.T) {
	ids := []any{
		1,
		"abc",
		map[string]any{"id": 2, "title": "ignored"},
		article{ID: 3, Title: "ignored"},
		&article{ID: 4},
		keyedRecord{key: "k5"},
	}
	v := buildIDListQuery(ids)
	want := "id[]=1&id[]=abc&id[]=2&id[]=3&id[]=4&id[]=k5"
	if got := v.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestWithReferenceOverridesAndCopies(t *testing.T) {
	base := Filter{{Name: "post_id", Value: "stale"}, {Name: "lang", Value: "en"}}
	got := withReference(base, "post_id", 42)

	want := Filter{{Name: "post_id", Value: 42}, {Name: "lang", Value: "en"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("withReference mismatch (-want +got):\n%s", diff)
	}
	if base[0].Value != "stale" {
		t.Fatalf("withReference mutated caller filter: %v", base)
	}
}

func TestBuildListQueryRoundTripsEqualsValues(t *testing.T) {
	filter := Filter{{Name: "status", Value: "published"}}
	v := buildListQuery(Pagination{Page: 1, PerPage: 10}, Sort{}, filter, nil)

	decoded, err := url.ParseQuery(v.Encode())
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	if got, want := decoded.Get("filter[status]"), "equals:published"; got != want {
		t.Fatalf("decoded filter = %q, want %q", got, want)
	}
}
