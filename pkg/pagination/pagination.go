package pagination

import (
	"strconv"
	"strings"
)

const DefaultPerPage = 10

// Window is the slice of an ordered sequence that backs one page.
type Window struct {
	Number   int
	NumPages int
	Offset   int
	Limit    int
}

type Page[T any] struct {
	Items       []T
	Number      int
	NumPages    int
	Count       int
	HasNext     bool
	HasPrevious bool
}

// ParseNumber reads a page number from a query value. Anything that is not an
// integer yields the first page.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// NumPages never returns less than one: an empty sequence still has an empty
// first page.
func NumPages(count, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if count <= 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}

// Bound clamps number into [1, NumPages] and returns the window for it.
func Bound(count, number, perPage int) Window {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	pages := NumPages(count, perPage)
	number = min(max(number, 1), pages)

	offset := (number - 1) * perPage
	limit := min(perPage, max(count-offset, 0))

	return Window{
		Number:   number,
		NumPages: pages,
		Offset:   offset,
		Limit:    limit,
	}
}

// NewPage wraps items already fetched for w.
func NewPage[T any](items []T, count int, w Window) Page[T] {
	return Page[T]{
		Items:       items,
		Number:      w.Number,
		NumPages:    w.NumPages,
		Count:       count,
		HasNext:     w.Number < w.NumPages,
		HasPrevious: w.Number > 1,
	}
}

// Paginate slices an in-memory sequence.
func Paginate[T any](items []T, number, perPage int) Page[T] {
	w := Bound(len(items), number, perPage)
	return NewPage(items[w.Offset:w.Offset+w.Limit], len(items), w)
}
