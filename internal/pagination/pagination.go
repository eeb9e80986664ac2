package pagination

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the blog index page size.
	DefaultPageSize = 9
	// Param is the query parameter carrying the 1-based page number.
	Param = "page"
)

// Page describes one page of a list. Start and End are slice bounds into the
// full list; both equal TotalItems when the page is past the end.
type Page struct {
	Number     int
	Size       int
	TotalItems int
	TotalPages int
	Start      int
	End        int
	HasPrev    bool
	HasNext    bool
	Numbers    []int
}

// Parse returns the requested page number. Missing, malformed or non-positive
// values yield 1.
func Parse(values url.Values) int {
	if values == nil {
		return 1
	}
	return ParseString(values.Get(Param))
}

// ParseString is Parse for a raw value.
func ParseString(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// FromRequest parses the page parameter from r.
func FromRequest(r *http.Request) int {
	if r == nil {
		return 1
	}
	return Parse(r.URL.Query())
}

// Paginate computes the window for page over total items. A page past the
// end is not clamped: it reports an empty window while TotalPages still
// reflects total.
func Paginate(total, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	if page < 1 {
		page = 1
	}

	pages := (total + size - 1) / size
	start := (page - 1) * size
	if start > total || page > pages {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	numbers := make([]int, 0, pages)
	for i := 1; i <= pages; i++ {
		numbers = append(numbers, i)
	}

	return Page{
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
		Start:      start,
		End:        end,
		HasPrev:    page > 1 && pages > 0,
		HasNext:    page < pages,
		Numbers:    numbers,
	}
}

// Empty reports whether the window holds no items.
func (p Page) Empty() bool { return p.Start >= p.End }

// Prev returns the previous page number, clamped to the last real page.
func (p Page) Prev() int {
	if p.Number-1 > p.TotalPages {
		return p.TotalPages
	}
	return p.Number - 1
}

// Next returns the following page number.
func (p Page) Next() int { return p.Number + 1 }

// Slice returns the items on page. The result shares items' backing array.
func Slice[T any](items []T, page, size int) ([]T, Page) {
	p := Paginate(len(items), page, size)
	return items[p.Start:p.End], p
}
