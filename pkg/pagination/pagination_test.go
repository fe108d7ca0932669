package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{raw: "", want: 1},
		{raw: "abc", want: 1},
		{raw: "2", want: 2},
		{raw: " 3 ", want: 3},
		{raw: "-4", want: -4},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, ParseNumber(tt.raw))
		})
	}
}

func TestBound_Clamps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		count  int
		number int
		want   Window
	}{
		{name: "first page", count: 13, number: 1, want: Window{Number: 1, NumPages: 2, Offset: 0, Limit: 10}},
		{name: "last page", count: 13, number: 2, want: Window{Number: 2, NumPages: 2, Offset: 10, Limit: 3}},
		{name: "beyond last", count: 13, number: 99, want: Window{Number: 2, NumPages: 2, Offset: 10, Limit: 3}},
		{name: "zero", count: 13, number: 0, want: Window{Number: 1, NumPages: 2, Offset: 0, Limit: 10}},
		{name: "negative", count: 13, number: -7, want: Window{Number: 1, NumPages: 2, Offset: 0, Limit: 10}},
		{name: "empty", count: 0, number: 5, want: Window{Number: 1, NumPages: 1, Offset: 0, Limit: 0}},
		{name: "exact multiple", count: 20, number: 2, want: Window{Number: 2, NumPages: 2, Offset: 10, Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Bound(tt.count, tt.number, 10))
		})
	}
}

func TestPaginate_PageCountAndLastPage(t *testing.T) {
	t.Parallel()

	for perPage := 1; perPage <= 12; perPage++ {
		for n := 1; n <= 40; n++ {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}

			wantPages := (n + perPage - 1) / perPage
			wantLast := n % perPage
			if wantLast == 0 {
				wantLast = perPage
			}

			last := Paginate(items, wantPages, perPage)
			require.Equal(t, wantPages, last.NumPages)
			require.Len(t, last.Items, wantLast)
			require.False(t, last.HasNext)
			require.Equal(t, items[n-1], last.Items[len(last.Items)-1])
		}
	}
}

func TestPaginate_ThirteenItems(t *testing.T) {
	t.Parallel()

	items := make([]string, 13)

	first := Paginate(items, 1, DefaultPerPage)
	require.Len(t, first.Items, 10)
	require.True(t, first.HasNext)
	require.False(t, first.HasPrevious)
	require.Equal(t, 13, first.Count)

	second := Paginate(items, 2, DefaultPerPage)
	require.Len(t, second.Items, 3)
	require.False(t, second.HasNext)
	require.True(t, second.HasPrevious)
}

func TestPaginate_Empty(t *testing.T) {
	t.Parallel()

	page := Paginate([]int(nil), 3, DefaultPerPage)
	require.Empty(t, page.Items)
	require.Equal(t, 1, page.Number)
	require.Equal(t, 1, page.NumPages)
	require.False(t, page.HasNext)
	require.False(t, page.HasPrevious)
}
