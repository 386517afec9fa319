package restdata

import "encoding/json"

// Pagination selects a one-based page of PerPage records.
type Pagination struct {
	Page    int
	PerPage int
}

// Sort orders a listing by a field. Order is "asc" or "desc",
// case-insensitive. A zero Sort (empty Field) leaves the listing unsorted.
type Sort struct {
	Field string
	Order string
}

// Field is a single filter condition: the named field must equal Value.
type Field struct {
	Name  string
	Value any
}

// Filter is an ordered list of filter conditions. Order is preserved in the
// encoded query string. The reserved name "q" carries a free-text search
// term instead of a field equality.
type Filter []Field

// SearchField is the reserved filter name treated as a free-text search term.
const SearchField = "q"

// Relation names a related resource to embed in the response. A nil Fields
// slice embeds the whole relation; otherwise only the listed fields.
type Relation struct {
	Name   string
	Fields []string
}

// Include is an ordered list of relations to embed.
type Include []Relation

// Meta carries optional per-call options: relations to embed and extra
// filter conditions. Meta filter conditions override same-named conditions
// from the operation's own filter.
type Meta struct {
	Include Include
	Filter  Filter
}

// GetListParams parameterizes a paginated listing.
type GetListParams struct {
	Pagination Pagination
	Sort       Sort
	Filter     Filter
	Meta       *Meta
}

// GetOneParams fetches a single record by identifier.
type GetOneParams struct {
	ID   any
	Meta *Meta
}

// GetManyParams fetches a set of records by identifier. Elements may be bare
// identifiers or records carrying one; see RecordID.
type GetManyParams struct {
	IDs []any
}

// GetManyReferenceParams lists records whose Target field references ID.
type GetManyReferenceParams struct {
	Target     string
	ID         any
	Pagination Pagination
	Sort       Sort
	Filter     Filter
	Meta       *Meta
}

// CreateParams creates a record from Data.
type CreateParams struct {
	Data any
}

// UpdateParams replaces the record with identifier ID with Data.
type UpdateParams struct {
	ID   any
	Data any
}

// UpdateManyParams applies the same Data to every record in IDs.
type UpdateManyParams struct {
	IDs  []any
	Data any
}

// DeleteParams deletes a single record.
type DeleteParams struct {
	ID any
}

// DeleteManyParams deletes every record in IDs.
type DeleteManyParams struct {
	IDs []any
}

// Result wraps a single record.
type Result struct {
	Data json.RawMessage `json:"data"`
}

// ListResult wraps a page of records plus the total count across all pages.
type ListResult struct {
	Data  []json.RawMessage `json:"data"`
	Total int64             `json:"total"`
}

// ManyResult wraps an unordered set of records.
type ManyResult struct {
	Data []json.RawMessage `json:"data"`
}

// DeleteManyResult acknowledges a bulk delete by echoing the identifiers the
// caller asked to delete.
type DeleteManyResult struct {
	Data []any `json:"data"`
}
