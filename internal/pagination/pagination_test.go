package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestPage(t *testing.T) {
	t.Parallel()

	items := makeItems(30)

	testCases := []struct {
		name     string
		page     int
		pageSize int
		expected []int
	}{
		{
			name:     "first page of twelve",
			page:     1,
			pageSize: 12,
			expected: makeItems(12),
		},
		{
			name:     "last partial page",
			page:     3,
			pageSize: 12,
			expected: []int{25, 26, 27, 28, 29, 30},
		},
		{
			name:     "page past the end",
			page:     4,
			pageSize: 12,
			expected: nil,
		},
		{
			name:     "page zero",
			page:     0,
			pageSize: 12,
			expected: nil,
		},
		{
			name:     "negative page",
			page:     -1,
			pageSize: 12,
			expected: nil,
		},
		{
			name:     "page size larger than collection",
			page:     1,
			pageSize: 100,
			expected: makeItems(30),
		},
		{
			name:     "zero page size",
			page:     1,
			pageSize: 0,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Page(items, tc.page, tc.pageSize)

			if tc.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestPageOnEmptyCollection(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Page([]int{}, 1, 12))
	assert.Empty(t, Page[int](nil, 1, 12))
}

func TestPageMiddleSlice(t *testing.T) {
	t.Parallel()

	items := makeItems(30)

	got := Page(items, 2, 12)
	require.Len(t, got, 12)
	assert.Equal(t, 13, got[0])
	assert.Equal(t, 24, got[11])
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		totalItems int
		pageSize   int
		expected   int
	}{
		{30, 12, 3},
		{24, 12, 2},
		{1, 12, 1},
		{0, 12, 0},
		{-5, 12, 0},
		{30, 0, 0},
		{12, 12, 1},
		{13, 12, 2},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, TotalPages(tc.totalItems, tc.pageSize),
			"TotalPages(%d, %d)", tc.totalItems, tc.pageSize)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Clamp(0, 5))
	assert.Equal(t, 1, Clamp(-3, 5))
	assert.Equal(t, 5, Clamp(9, 5))
	assert.Equal(t, 3, Clamp(3, 5))
	assert.Equal(t, 1, Clamp(7, 0))
}
