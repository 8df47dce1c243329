package organizer

import (
	"encoding/json"
	"net/url"
	"slices"
	"strings"
)

// SortBy selects the key a view is ordered by.
type SortBy string

// Supported sort keys.
const (
	SortByTitle     SortBy = "title"
	SortByCreatedAt SortBy = "createdAt"
)

// SortOrder selects the direction of a view's ordering.
type SortOrder string

// Supported sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

var (
	sortKeys   = []SortBy{SortByTitle, SortByCreatedAt}
	sortOrders = []SortOrder{SortAsc, SortDesc}
)

// ParseSortBy validates s as a sort key. An empty string yields SortByTitle.
func ParseSortBy(s string) (SortBy, error) {
	if s == "" {
		return SortByTitle, nil
	}
	v := SortBy(s)
	if !slices.Contains(sortKeys, v) {
		return "", invalidQuery("sortBy", s)
	}
	return v, nil
}

// ParseSortOrder validates s as a sort order. An empty string yields SortAsc.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return SortAsc, nil
	}
	v := SortOrder(s)
	if !slices.Contains(sortOrders, v) {
		return "", invalidQuery("sortOrder", s)
	}
	return v, nil
}

// UnmarshalJSON validates that the decoded string is a known sort key.
func (s *SortBy) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseSortBy(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalJSON validates that the decoded string is a known sort order.
func (o *SortOrder) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseSortOrder(raw)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Query holds the parameters that turn the working set into a view.
// The zero value matches everything, ordered by title ascending.
type Query struct {
	Search    string    `json:"search"`
	Tags      []string  `json:"tags"`
	SortBy    SortBy    `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
}

// Validate reports ErrInvalidQuery for unknown sort keys or orders.
func (q Query) Validate() error {
	if _, err := ParseSortBy(string(q.SortBy)); err != nil {
		return err
	}
	if _, err := ParseSortOrder(string(q.SortOrder)); err != nil {
		return err
	}
	return nil
}

// Normalize fills default sort parameters and returns a copy that shares nothing with q.
func (q Query) Normalize() Query {
	if q.SortBy == "" {
		q.SortBy = SortByTitle
	}
	if q.SortOrder == "" {
		q.SortOrder = SortAsc
	}
	if q.Tags == nil {
		q.Tags = []string{}
	} else {
		q.Tags = slices.Clone(q.Tags)
	}
	return q
}

// QueryFromValues reads a Query from URL parameters: search, tags, sort_by, sort_order.
// Tags may be repeated or comma-separated; blank entries are dropped.
func QueryFromValues(values url.Values) (Query, error) {
	sortBy, err := ParseSortBy(values.Get("sort_by"))
	if err != nil {
		return Query{}, err
	}

	sortOrder, err := ParseSortOrder(values.Get("sort_order"))
	if err != nil {
		return Query{}, err
	}

	tags := []string{}
	for _, v := range values["tags"] {
		for tag := range strings.SplitSeq(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	return Query{
		Search:    values.Get("search"),
		Tags:      tags,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}, nil
}
