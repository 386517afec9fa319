package restdata

import (
	"strings"

	"github.com/openadmin-hq/restdata-go/pkg/qs"
)

// equalsPrefix marks a filter value as an equality condition for the server.
const equalsPrefix = "equals:"

// buildItemQuery builds the query for single-record fetches: the embedded
// relations, when any are requested, and nothing else.
func buildItemQuery(meta *Meta) *qs.Values {
	v := qs.New()
	if meta == nil || len(meta.Include) == 0 {
		return v
	}
	include := qs.New()
	for _, rel := range meta.Include {
		if rel.Fields == nil {
			include.Set(rel.Name, true)
			continue
		}
		include.Set(rel.Name, rel.Fields)
	}
	v.Set("include", include)
	return v
}

// buildListQuery builds the query for paginated listings: limit/offset from
// the one-based page, embedded relations, the normalized sort, the free-text
// search term, and the equals-wrapped filter conditions. The filter key is
// always present, even when empty. Inputs are never mutated.
func buildListQuery(p Pagination, s Sort, f Filter, meta *Meta) *qs.Values {
	v := qs.New()
	v.Set("limit", p.PerPage)
	v.Set("offset", (p.Page-1)*p.PerPage)
	v.Merge(buildItemQuery(meta))

	if s.Field != "" {
		sort := qs.New()
		sort.Set(s.Field, strings.ToLower(s.Order))
		v.Set("sort", sort)
	}

	merged := f
	if meta != nil {
		merged = mergeFilter(f, meta.Filter)
	}
	search, merged := splitSearch(merged)

	if search != nil {
		v.Set(SearchField, search.Value)
	}

	filter := qs.New()
	for _, cond := range merged {
		filter.Set(cond.Name, equalsPrefix+qs.Scalar(cond.Value))
	}
	v.Set("filter", filter)
	return v
}

// buildIDListQuery reduces each element to its raw identifier and yields an
// id array query.
func buildIDListQuery(ids []any) *qs.Values {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, RecordID(id))
	}
	v := qs.New()
	v.Set("id", out)
	return v
}

// splitSearch separates the reserved free-text condition from the rest of
// the filter. The returned remainder is a fresh slice.
func splitSearch(f Filter) (*Field, Filter) {
	var search *Field
	rest := make(Filter, 0, len(f))
	for _, cond := range f {
		if cond.Name == SearchField {
			c := cond
			search = &c
			continue
		}
		rest = append(rest, cond)
	}
	return search, rest
}

// mergeFilter folds extra conditions into base, producing a new slice.
// An extra condition replaces a same-named base condition in place;
// otherwise it is appended.
func mergeFilter(base, extra Filter) Filter {
	merged := make(Filter, len(base))
	copy(merged, base)
	for _, cond := range extra {
		replaced := false
		for i := range merged {
			if merged[i].Name == cond.Name {
				merged[i].Value = cond.Value
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, cond)
		}
	}
	return merged
}

// withReference extends a filter with the reference-target condition,
// overriding a same-named condition if the caller supplied one.
func withReference(f Filter, target string, id any) Filter {
	return mergeFilter(f, Filter{{Name: target, Value: id}})
}
