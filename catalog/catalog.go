// Package catalog holds the fixed, ordered list of chronicle entries and the
// incremental renderer that pages through it.
//
// A Catalog is built once and never mutated. Rendering is append-only: each
// call hands the next slice of entries to a Sink and reports the new cursor,
// leaving the caller in charge of remembering where it stopped.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by Entry.Date.
const DateLayout = "2006-01-02"

// ErrInvalidPageSize is returned when a page size below 1 is requested.
var ErrInvalidPageSize = errors.New("catalog: page size must be positive")

// Entry is a single chronicle record.
type Entry struct {
	Date    string `json:"date" yaml:"date"`
	Title   string `json:"title" yaml:"title"`
	Excerpt string `json:"excerpt" yaml:"excerpt"`
}

// Time parses Date. The zero time is returned for malformed dates.
func (e Entry) Time() time.Time {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Anchor returns a URL fragment identifying e, derived from its title.
func (e Entry) Anchor() string {
	var b strings.Builder
	b.WriteString("chronicle")
	prev := true
	for _, r := range strings.ToLower(strings.TrimSpace(e.Title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if prev {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			prev = false
		default:
			prev = true
		}
	}
	return b.String()
}

// Catalog is an immutable, ordered sequence of entries.
type Catalog struct {
	entries []Entry
}

// New builds a Catalog from entries. The slice is copied, so later changes
// to entries do not leak into the catalog.
func New(entries []Entry) *Catalog {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Catalog{entries: cp}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of every entry in catalog order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	cp := make([]Entry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

// Sink receives rendered entries. Implementations append; they are never
// asked to remove or rewrite earlier output.
type Sink interface {
	Append(Entry) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Entry) error

// Append calls f(e).
func (f SinkFunc) Append(e Entry) error {
	return f(e)
}

// Page reports the outcome of one RenderNextPage call.
type Page struct {
	Rendered  int  `json:"rendered"`
	Cursor    int  `json:"cursor"`
	Exhausted bool `json:"exhausted"`
}

// Clamp limits cursor to [0, Len()].
func (c *Catalog) Clamp(cursor int) int {
	n := c.Len()
	switch {
	case cursor < 0:
		return 0
	case cursor > n:
		return n
	}
	return cursor
}

// RenderNextPage appends entries [cursor, min(cursor+pageSize, N)) to sink
// in catalog order and returns the advanced cursor. Exhausted is set once the
// cursor reaches the end of the catalog; a cursor already at the end renders
// nothing and is not an error.
//
// If sink fails, the returned Page covers only the entries appended before the
// failure, so feeding its Cursor back resumes without duplicates.
func (c *Catalog) RenderNextPage(sink Sink, cursor, pageSize int) (Page, error) {
	if pageSize <= 0 {
		return Page{}, fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}
	n := c.Len()
	start := c.Clamp(cursor)
	// start+pageSize may overflow for very large page sizes.
	end := n
	if pageSize < n-start {
		end = start + pageSize
	}

	for i := start; i < end; i++ {
		if err := sink.Append(c.entries[i]); err != nil {
			return Page{Rendered: i - start, Cursor: i, Exhausted: false},
				fmt.Errorf("catalog: append entry %d: %w", i, err)
		}
	}
	return Page{Rendered: end - start, Cursor: end, Exhausted: end == n}, nil
}

// Collect returns the entries RenderNextPage would append, without a sink.
func (c *Catalog) Collect(cursor, pageSize int) ([]Entry, Page, error) {
	var out []Entry
	page, err := c.RenderNextPage(SinkFunc(func(e Entry) error {
		out = append(out, e)
		return nil
	}), cursor, pageSize)
	return out, page, err
}
