// Package table does the client-side work a data grid does with the rows a
// getAll call returns: free-text filter, column sort, pagination and export.
package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Query is what a grid asks for. Page is 1-based.
type Query struct {
	Search   string
	Sort     string
	Desc     bool
	Page     int
	PageSize int
}

// ParseQuery reads q, sort, order, page and page_size, clamping anything out
// of range to the defaults.
func ParseQuery(v url.Values) Query {
	q := Query{
		Search:   strings.TrimSpace(v.Get("q")),
		Sort:     v.Get("sort"),
		Desc:     strings.EqualFold(v.Get("order"), "desc"),
		Page:     1,
		PageSize: DefaultPageSize,
	}
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	if s, err := strconv.Atoi(v.Get("page_size")); err == nil && s > 0 {
		q.PageSize = min(s, MaxPageSize)
	}
	return q
}

type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Pages    int `json:"pages"`
}

// Apply filters, sorts and slices rows. Rows are compared on their JSON
// representation so any entity works. The input slice is not modified.
func Apply[T any](rows []T, q Query) (Page[T], error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	flat := make([]map[string]string, len(rows))
	for i, row := range rows {
		f, err := Flatten(row)
		if err != nil {
			return Page[T]{}, err
		}
		flat[i] = f
	}

	idx := make([]int, 0, len(rows))
	needle := strings.ToLower(q.Search)
	for i := range rows {
		if needle == "" || matches(flat[i], needle) {
			idx = append(idx, i)
		}
	}

	if q.Sort != "" {
		sort.SliceStable(idx, func(a, b int) bool {
			c := compare(flat[idx[a]][q.Sort], flat[idx[b]][q.Sort])
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}

	total := len(idx)
	pages := (total + q.PageSize - 1) / q.PageSize
	// Pages past the end are empty; clamp before multiplying so huge
	// values cannot overflow.
	if q.Page > pages+1 {
		q.Page = pages + 1
	}
	start := min((q.Page-1)*q.PageSize, total)
	end := min(start+q.PageSize, total)

	items := make([]T, 0, end-start)
	for _, i := range idx[start:end] {
		items = append(items, rows[i])
	}
	return Page[T]{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize, Pages: pages}, nil
}

func matches(row map[string]string, needle string) bool {
	for _, v := range row {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// compare orders numbers numerically and everything else case-insensitively.
// Empty values sort first.
func compare(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Flatten renders the top-level JSON fields of v as display strings. Nested
// objects show their name or title when they have one; arrays are comma-joined.
func Flatten(v interface{}) (map[string]string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("table: encode row: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("table: row is not an object: %w", err)
	}

	out := make(map[string]string, len(fields))
	for k, val := range fields {
		out[k] = display(val)
	}
	return out, nil
}

func display(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []interface{}:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = display(e)
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		for _, k := range labelKeys {
			if l, ok := t[k].(string); ok && l != "" {
				return l
			}
		}
		b, _ := json.Marshal(t)
		return string(b)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// labelKeys are tried in order to show an embedded object by name.
var labelKeys = []string{"name", "title", "companyName", "slug", "email", "id"}
