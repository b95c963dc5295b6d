package types

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPaginationMeta_UnmarshalLegacy(t *testing.T) {
	var p PaginationMeta
	require.NoError(t, json.Unmarshal([]byte(`{"page":2,"limit":20,"total":45}`), &p))

	assert.Equal(t, 2, p.CurrentPageNumber())
	assert.Equal(t, 20, p.PageSizeValue())
	assert.Equal(t, 45, p.TotalItems())
	assert.Equal(t, 3, p.TotalPageCount())
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrev())
	assert.Nil(t, p.CurrentPage)
}

func TestPaginationMeta_UnmarshalNew(t *testing.T) {
	var p PaginationMeta
	body := `{"currentPage":1,"totalPages":3,"pageSize":50,"totalUsers":120,"hasNextPage":true,"hasPrevPage":false}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, 1, p.CurrentPageNumber())
	assert.Equal(t, 50, p.PageSizeValue())
	assert.Equal(t, 120, p.TotalItems())
	assert.Equal(t, 3, p.TotalPageCount())
	assert.True(t, p.HasNext())
	assert.False(t, p.HasPrev())
	assert.Equal(t, map[string]int{"totalUsers": 120}, p.Counts)
	assert.Nil(t, p.Page)
}

func TestPaginationMeta_RoundTripKeepsOnlyPresentFields(t *testing.T) {
	in := `{"currentPage":1,"totalUsers":120}`

	var p PaginationMeta
	require.NoError(t, json.Unmarshal([]byte(in), &p))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestPaginationMeta_ExplicitFlagsWin(t *testing.T) {
	p := &PaginationMeta{Page: Int(1), TotalPages: Int(5), HasNextPage: Bool(false)}
	assert.False(t, p.HasNext(), "explicit hasNextPage must override the derived value")
}

func TestPaginationMeta_Nil(t *testing.T) {
	var p *PaginationMeta
	assert.Equal(t, 1, p.CurrentPageNumber())
	assert.Equal(t, 0, p.PageSizeValue())
	assert.Equal(t, 0, p.TotalItems())
	assert.Equal(t, 0, p.TotalPageCount())
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrev())
}

func TestIsResourceCounter(t *testing.T) {
	tests := map[string]bool{
		"total":       false,
		"totalPages":  false,
		"totalUsers":  true,
		"totalOrders": true,
		"totals":      false,
		"page":        false,
	}
	for key, want := range tests {
		assert.Equal(t, want, isResourceCounter(key), key)
	}
}

// Either field set alone must be readable through the same accessors.
func TestPaginationMeta_EitherShapeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		page := rapid.IntRange(1, 500).Draw(t, "page")
		size := rapid.IntRange(1, 200).Draw(t, "size")
		total := rapid.IntRange(0, 100000).Draw(t, "total")
		counter := rapid.SampledFrom([]string{"totalUsers", "totalOrders", "totalBusinesses", "totalPayouts"}).Draw(t, "counter")
		pages := (total + size - 1) / size

		legacy := fmt.Sprintf(`{"page":%d,"limit":%d,"total":%d}`, page, size, total)
		modern := fmt.Sprintf(`{"currentPage":%d,"pageSize":%d,"totalPages":%d,%q:%d}`, page, size, pages, counter, total)

		var a, b PaginationMeta
		if err := json.Unmarshal([]byte(legacy), &a); err != nil {
			t.Fatalf("legacy: %v", err)
		}
		if err := json.Unmarshal([]byte(modern), &b); err != nil {
			t.Fatalf("modern: %v", err)
		}

		if a.CurrentPageNumber() != b.CurrentPageNumber() {
			t.Fatalf("page mismatch: %d vs %d", a.CurrentPageNumber(), b.CurrentPageNumber())
		}
		if a.PageSizeValue() != b.PageSizeValue() {
			t.Fatalf("size mismatch: %d vs %d", a.PageSizeValue(), b.PageSizeValue())
		}
		if a.TotalItems() != b.TotalItems() {
			t.Fatalf("total mismatch: %d vs %d", a.TotalItems(), b.TotalItems())
		}
		if a.TotalPageCount() != b.TotalPageCount() {
			t.Fatalf("pages mismatch: %d vs %d", a.TotalPageCount(), b.TotalPageCount())
		}
		if a.HasNext() != b.HasNext() || a.HasPrev() != b.HasPrev() {
			t.Fatalf("navigation mismatch")
		}
	})
}
