package catalog

import "fmt"

// Pager owns the cursor for one rendering surface. Each call to Next appends
// the following page to the surface; once the catalog is exhausted further
// calls render nothing.
//
// A Pager is not safe for concurrent use. Callers that can be triggered
// repeatedly must serialise calls themselves.
type Pager struct {
	cat      *Catalog
	sink     Sink
	pageSize int
	cursor   int
	last     Page
	started  bool
}

// NewPager returns a Pager positioned at the start of cat.
func NewPager(cat *Catalog, sink Sink, pageSize int) (*Pager, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}
	return &Pager{cat: cat, sink: sink, pageSize: pageSize}, nil
}

// Next renders the next page and advances the cursor.
func (p *Pager) Next() (Page, error) {
	page, err := p.cat.RenderNextPage(p.sink, p.cursor, p.pageSize)
	p.cursor = page.Cursor
	p.last = page
	p.started = true
	return page, err
}

// FastForward renders pages until the cursor reaches at least target or the
// catalog is exhausted. At least one page is always rendered.
func (p *Pager) FastForward(target int) (Page, error) {
	for {
		page, err := p.Next()
		if err != nil || page.Exhausted || page.Cursor >= target {
			return page, err
		}
	}
}

// Cursor returns the number of entries rendered so far.
func (p *Pager) Cursor() int {
	return p.cursor
}

// Exhausted reports whether the last call reached the end of the catalog.
// A Pager that has not rendered anything yet is exhausted only when the
// catalog is empty.
func (p *Pager) Exhausted() bool {
	if !p.started {
		return p.cat.Len() == 0
	}
	return p.last.Exhausted
}
