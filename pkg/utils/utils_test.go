package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         Pagination
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", Pagination{}, 1, 20, 0},
		{"negative page", Pagination{Page: -3, PageSize: 10}, 1, 10, 0},
		{"size above max", Pagination{Page: 2, PageSize: 500}, 2, 50, 50},
		{"negative size", Pagination{Page: 1, PageSize: -1}, 1, 1, 0},
		{"third page", Pagination{Page: 3, PageSize: 20}, 3, 20, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSize, p.PageSize)
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestPageTotalPages(t *testing.T) {
	assert.Equal(t, 3, Page[int]{Total: 45, PageSize: 20}.TotalPages())
	assert.Equal(t, 0, Page[int]{Total: 0, PageSize: 20}.TotalPages())
	assert.Equal(t, []int{}, NewPage[int](nil, 0, Pagination{Page: 1, PageSize: 20}).Items)
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPassword("s3cret-pass", h))
	assert.False(t, CheckPassword("wrong", h))

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
