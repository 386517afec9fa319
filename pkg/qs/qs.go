// Package qs serializes structured values into URL query strings using
// bracket notation: nested keys render as parent[child], array values as
// repeated parent[]=value entries. Only values are percent-encoded; bracket
// syntax in keys stays literal. Keys render in insertion order.
package qs

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Values is an insertion-ordered collection of query parameters. Values may
// be scalars, slices of scalars, or nested *Values.
type Values struct {
	keys []string
	vals map[string]any
}

// New returns an empty Values.
func New() *Values {
	return &Values{vals: make(map[string]any)}
}

// Set stores value under key. Setting an existing key replaces its value but
// keeps the key's original position.
func (v *Values) Set(key string, value any) {
	if _, ok := v.vals[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.vals[key] = value
}

// Get returns the value stored under key.
func (v *Values) Get(key string) (any, bool) {
	val, ok := v.vals[key]
	return val, ok
}

// Merge appends every entry of other, in order, as if Set had been called.
func (v *Values) Merge(other *Values) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		v.Set(key, other.vals[key])
	}
}

// Encode renders the collection as a query string without a leading "?".
// Empty nested containers and empty slices contribute nothing.
func (v *Values) Encode() string {
	if v == nil {
		return ""
	}
	var pairs []string
	v.encodeInto(&pairs, "")
	return strings.Join(pairs, "&")
}

func (v *Values) encodeInto(pairs *[]string, prefix string) {
	for _, key := range v.keys {
		name := key
		if prefix != "" {
			name = prefix + "[" + key + "]"
		}
		encodeValue(pairs, name, v.vals[key])
	}
}

func encodeValue(pairs *[]string, name string, value any) {
	switch val := value.(type) {
	case *Values:
		val.encodeInto(pairs, name)
	case []any:
		for _, elem := range val {
			*pairs = append(*pairs, name+"[]="+url.QueryEscape(Scalar(elem)))
		}
	case []string:
		for _, elem := range val {
			*pairs = append(*pairs, name+"[]="+url.QueryEscape(elem))
		}
	default:
		*pairs = append(*pairs, name+"="+url.QueryEscape(Scalar(value)))
	}
}

// Scalar renders a scalar value the way it would appear inside a query
// string, before percent-encoding.
func Scalar(value any) string {
	switch val := value.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
