package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterOp is a comparison operator recognized in list query strings
type FilterOp string

const (
	FilterOpEq  FilterOp = "eq"
	FilterOpGt  FilterOp = "gt"
	FilterOpGte FilterOp = "gte"
	FilterOpLt  FilterOp = "lt"
	FilterOpLte FilterOp = "lte"
	FilterOpIn  FilterOp = "in"
)

// Filter is a single field condition, e.g. fundingGoal[gte]=1000
type Filter struct {
	Field  string
	Op     FilterOp
	Values []string
}

// SortField is one component of a sort clause
type SortField struct {
	Field string
	Desc  bool
}

// ListQuery holds the recognized list endpoint parameters: field filters,
// projection, sort, pagination and populate (cross-entity join) requests.
type ListQuery struct {
	Filters  []Filter
	Select   []string
	Sort     []SortField
	Populate []string
	Page     int
	Limit    int
}

var reservedParams = map[string]bool{
	"select":   true,
	"sort":     true,
	"page":     true,
	"limit":    true,
	"populate": true,
}

var filterOps = map[string]FilterOp{
	"gt":  FilterOpGt,
	"gte": FilterOpGte,
	"lt":  FilterOpLt,
	"lte": FilterOpLte,
	"in":  FilterOpIn,
}

// ParseListQuery extracts a ListQuery from raw URL query values.
// Every non-reserved parameter is treated as a field filter; bracket
// suffixes select the operator (`deadline[lte]=...`, `status[in]=a,b`).
func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{Page: 1, Limit: DefaultLimit}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		raw := vals[0]

		switch key {
		case "page":
			if n, err := strconv.Atoi(raw); err == nil {
				q.Page = n
			}
			continue
		case "limit":
			if n, err := strconv.Atoi(raw); err == nil {
				q.Limit = n
			}
			continue
		case "select":
			q.Select = splitList(raw)
			continue
		case "sort":
			for _, f := range splitList(raw) {
				if strings.HasPrefix(f, "-") {
					q.Sort = append(q.Sort, SortField{Field: f[1:], Desc: true})
				} else {
					q.Sort = append(q.Sort, SortField{Field: f})
				}
			}
			continue
		case "populate":
			q.Populate = splitList(raw)
			continue
		}

		field, op, ok := splitFilterKey(key)
		if !ok {
			continue
		}
		f := Filter{Field: field, Op: op}
		if op == FilterOpIn {
			f.Values = splitList(raw)
		} else {
			f.Values = []string{raw}
		}
		q.Filters = append(q.Filters, f)
	}

	q.Page, q.Limit = NormalizePage(q.Page, q.Limit)
	return q
}

// splitFilterKey parses "field" or "field[op]" keys
func splitFilterKey(key string) (string, FilterOp, bool) {
	if reservedParams[key] {
		return "", "", false
	}
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, FilterOpEq, true
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", false
	}
	op, ok := filterOps[key[open+1:len(key)-1]]
	if !ok {
		return "", "", false
	}
	return key[:open], op, true
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
