package types

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode"
)

// PaginationMeta carries both pagination conventions the backend uses.
//
// Older endpoints send page/limit/total; newer ones send currentPage,
// totalPages, pageSize, has{Next,Prev}Page and a resource-named counter such
// as totalUsers. Fields are pointers so presence survives a round trip; the
// accessor methods read whichever convention is present.
type PaginationMeta struct {
	Page  *int `json:"page,omitempty" yaml:"page,omitempty"`
	Limit *int `json:"limit,omitempty" yaml:"limit,omitempty"`
	Total *int `json:"total,omitempty" yaml:"total,omitempty"`

	CurrentPage *int  `json:"currentPage,omitempty" yaml:"currentPage,omitempty"`
	TotalPages  *int  `json:"totalPages,omitempty" yaml:"totalPages,omitempty"`
	PageSize    *int  `json:"pageSize,omitempty" yaml:"pageSize,omitempty"`
	HasNextPage *bool `json:"hasNextPage,omitempty" yaml:"hasNextPage,omitempty"`
	HasPrevPage *bool `json:"hasPrevPage,omitempty" yaml:"hasPrevPage,omitempty"`

	// Counts holds resource-named totals keyed as sent (totalUsers, totalOrders, ...).
	Counts map[string]int `json:"-" yaml:"counts,omitempty"`
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

type paginationFields PaginationMeta

// UnmarshalJSON decodes both field sets and collects total<Resource> counters.
func (p *PaginationMeta) UnmarshalJSON(data []byte) error {
	var fields paginationFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		if !isResourceCounter(key) {
			continue
		}
		var n float64
		if err := json.Unmarshal(value, &n); err != nil {
			continue
		}
		if fields.Counts == nil {
			fields.Counts = make(map[string]int)
		}
		fields.Counts[key] = int(n)
	}

	*p = PaginationMeta(fields)
	return nil
}

// MarshalJSON writes only the fields that were present.
func (p PaginationMeta) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(paginationFields(p))
	if err != nil {
		return nil, err
	}
	if len(p.Counts) == 0 {
		return base, nil
	}

	out := make(map[string]json.RawMessage, len(p.Counts)+8)
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	for key, n := range p.Counts {
		v, _ := json.Marshal(n)
		out[key] = v
	}
	return json.Marshal(out)
}

// isResourceCounter matches totalUsers, totalOrders, ... but not total or totalPages.
func isResourceCounter(key string) bool {
	if !strings.HasPrefix(key, "total") || key == "totalPages" {
		return false
	}
	rest := key[len("total"):]
	return rest != "" && unicode.IsUpper(rune(rest[0]))
}

// CurrentPageNumber returns the 1-based page, preferring the newer field.
func (p *PaginationMeta) CurrentPageNumber() int {
	switch {
	case p == nil:
		return 1
	case p.CurrentPage != nil:
		return *p.CurrentPage
	case p.Page != nil:
		return *p.Page
	default:
		return 1
	}
}

// PageSizeValue returns the page size, or 0 when neither field is present.
func (p *PaginationMeta) PageSizeValue() int {
	switch {
	case p == nil:
		return 0
	case p.PageSize != nil:
		return *p.PageSize
	case p.Limit != nil:
		return *p.Limit
	default:
		return 0
	}
}

// TotalItems returns the item count from total or the first resource counter.
func (p *PaginationMeta) TotalItems() int {
	if p == nil {
		return 0
	}
	if p.Total != nil {
		return *p.Total
	}
	if len(p.Counts) == 0 {
		return 0
	}
	keys := make([]string, 0, len(p.Counts))
	for k := range p.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return p.Counts[keys[0]]
}

// TotalPageCount returns totalPages, deriving it from total and size when absent.
func (p *PaginationMeta) TotalPageCount() int {
	if p == nil {
		return 0
	}
	if p.TotalPages != nil {
		return *p.TotalPages
	}
	size := p.PageSizeValue()
	if size <= 0 {
		return 0
	}
	total := p.TotalItems()
	return (total + size - 1) / size
}

// HasNext reports whether a later page exists.
func (p *PaginationMeta) HasNext() bool {
	if p == nil {
		return false
	}
	if p.HasNextPage != nil {
		return *p.HasNextPage
	}
	return p.CurrentPageNumber() < p.TotalPageCount()
}

// HasPrev reports whether an earlier page exists.
func (p *PaginationMeta) HasPrev() bool {
	if p == nil {
		return false
	}
	if p.HasPrevPage != nil {
		return *p.HasPrevPage
	}
	return p.CurrentPageNumber() > 1
}
