// Package pagination splits ordered sequences into fixed-size, 1-indexed pages.
//
// Requested page numbers are never an error: missing or non-numeric values
// resolve to the first page, numbers below 1 clamp to 1 and numbers past the
// end clamp to the last page. An empty sequence still has one (empty) page.
package pagination

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// PageSize is the default number of items per page.
const PageSize = 10

// LastPage is the page number that always resolves to the final page. No numeric
// query value parses to it.
const LastPage = math.MinInt

// lastPageToken is accepted in the page query parameter in place of a number.
const lastPageToken = "last"

// ParsePageNumber converts a raw page query parameter into a requested page number.
// The result is not yet clamped to the sequence's page range. Integers too large for
// an int saturate in their sign's direction.
func ParsePageNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == lastPageToken {
		return LastPage
	}
	n, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange) && strings.HasPrefix(raw, "-"):
		return LastPage + 1
	case errors.Is(err, strconv.ErrRange):
		return math.MaxInt
	case err != nil:
		return 1
	case n == LastPage:
		return LastPage + 1
	}
	return n
}

// NumPages returns the number of pages needed for count items, never less than one.
func NumPages(count int64, pageSize int) int {
	if count <= 0 {
		return 1
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}

// resolve clamps requested into [1, numPages]. clamped reports an out-of-range request;
// LastPage is a valid request and is not reported.
func resolve(requested, numPages int) (number int, clamped bool) {
	switch {
	case requested == LastPage:
		return numPages, false
	case requested < 1:
		return 1, true
	case requested > numPages:
		return numPages, true
	default:
		return requested, false
	}
}

// Page is one window of a paginated sequence.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Number   int   `json:"number"`
	NumPages int   `json:"num_pages"`
	Count    int64 `json:"count"`
	PageSize int   `json:"page_size"`
	// Clamped is set when the requested page number was outside [1, NumPages].
	Clamped bool `json:"-"`
}

func (p *Page[T]) HasPrevious() bool   { return p.Number > 1 }
func (p *Page[T]) HasNext() bool       { return p.Number < p.NumPages }
func (p *Page[T]) HasOtherPages() bool { return p.HasPrevious() || p.HasNext() }
func (p *Page[T]) Len() int            { return len(p.Items) }

// PreviousPageNumber returns the previous page number, or 0 on the first page.
func (p *Page[T]) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return 0
	}
	return p.Number - 1
}

// NextPageNumber returns the next page number, or 0 on the last page.
func (p *Page[T]) NextPageNumber() int {
	if !p.HasNext() {
		return 0
	}
	return p.Number + 1
}

// StartIndex returns the 1-based position of the first item on the page, or 0 if the page is empty.
func (p *Page[T]) StartIndex() int64 {
	if p.Count == 0 {
		return 0
	}
	return int64(p.Number-1)*int64(p.PageSize) + 1
}

// EndIndex returns the 1-based position of the last item on the page, or 0 if the page is empty.
func (p *Page[T]) EndIndex() int64 {
	if p.Number == p.NumPages {
		return p.Count
	}
	return int64(p.Number) * int64(p.PageSize)
}

// PageRange lists every page number, 1 through NumPages.
func (p *Page[T]) PageRange() []int {
	return lo.RangeFrom(1, p.NumPages)
}

// MarshalJSON adds the navigation flags to the encoded page.
func (p *Page[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Items       []T   `json:"items"`
		Number      int   `json:"number"`
		NumPages    int   `json:"num_pages"`
		Count       int64 `json:"count"`
		PageSize    int   `json:"page_size"`
		HasPrevious bool  `json:"has_previous"`
		HasNext     bool  `json:"has_next"`
	}{
		Items:       p.Items,
		Number:      p.Number,
		NumPages:    p.NumPages,
		Count:       p.Count,
		PageSize:    p.PageSize,
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
	})
}

func newPage[T any](count int64, pageSize, requested int) *Page[T] {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	numPages := NumPages(count, pageSize)
	number, clamped := resolve(requested, numPages)
	return &Page[T]{
		Items:    []T{},
		Number:   number,
		NumPages: numPages,
		Count:    count,
		PageSize: pageSize,
		Clamped:  clamped,
	}
}

func (p *Page[T]) offset() int {
	return (p.Number - 1) * p.PageSize
}

// Paginate returns the requested page of an in-memory sequence.
func Paginate[T any](items []T, pageSize int, raw string) *Page[T] {
	p := newPage[T](int64(len(items)), pageSize, ParsePageNumber(raw))
	start := p.offset()
	end := min(start+p.PageSize, len(items))
	if start < end {
		p.Items = append(p.Items, items[start:end]...)
	}
	return p
}

// FetchParams is the window a Source must return.
type FetchParams struct {
	Limit  int
	Offset int
}

// Source is a store-backed ordered sequence.
type Source[T any] interface {
	// Count returns the total number of items in the sequence.
	Count(ctx context.Context) (int64, error)
	// Fetch returns the items in [Offset, Offset+Limit) in sequence order.
	Fetch(ctx context.Context, params FetchParams) ([]T, error)
}

// SourceFuncs adapts a pair of functions to Source.
type SourceFuncs[T any] struct {
	CountFunc func(ctx context.Context) (int64, error)
	FetchFunc func(ctx context.Context, params FetchParams) ([]T, error)
}

func (s SourceFuncs[T]) Count(ctx context.Context) (int64, error) { return s.CountFunc(ctx) }

func (s SourceFuncs[T]) Fetch(ctx context.Context, params FetchParams) ([]T, error) {
	return s.FetchFunc(ctx, params)
}

// Paginator pages a Source. The resolved window is read with a single Fetch.
type Paginator[T any] struct {
	Source   Source[T]
	PageSize int
}

// Page counts the source, resolves raw to a page number and fetches that page.
func (pg Paginator[T]) Page(ctx context.Context, raw string) (*Page[T], error) {
	count, err := pg.Source.Count(ctx)
	if err != nil {
		return nil, err
	}

	p := newPage[T](count, pg.PageSize, ParsePageNumber(raw))
	if count == 0 {
		return p, nil
	}

	items, err := pg.Source.Fetch(ctx, FetchParams{Limit: p.PageSize, Offset: p.offset()})
	if err != nil {
		return nil, err
	}
	if items != nil {
		p.Items = items
	}
	return p, nil
}
