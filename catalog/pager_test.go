package catalog

import (
	"errors"
	"math"
	"testing"
)

func TestPagerWalksCatalog(t *testing.T) {
	entries := sampleEntries(5)
	rec := &recorder{}
	p, err := NewPager(New(entries), rec, 2)
	if err != nil {
		t.Fatalf("NewPager: %v", err)
	}
	if p.Exhausted() {
		t.Fatal("fresh pager over a non-empty catalog should not be exhausted")
	}

	wantCursors := []int{2, 4, 5, 5}
	for i, want := range wantCursors {
		page, err := p.Next()
		if err != nil {
			t.Fatalf("Next %d: %v", i+1, err)
		}
		if page.Cursor != want || p.Cursor() != want {
			t.Fatalf("Next %d: cursor = %d/%d, want %d", i+1, page.Cursor, p.Cursor(), want)
		}
	}
	if !p.Exhausted() {
		t.Fatal("expected pager to be exhausted")
	}
	if len(rec.got) != 5 {
		t.Fatalf("rendered %d entries, want 5", len(rec.got))
	}
}

func TestPagerEmptyCatalogIsExhausted(t *testing.T) {
	p, err := NewPager(New(nil), &recorder{}, 3)
	if err != nil {
		t.Fatalf("NewPager: %v", err)
	}
	if !p.Exhausted() {
		t.Fatal("expected empty catalog pager to be exhausted before rendering")
	}
}

func TestPagerFastForward(t *testing.T) {
	entries := sampleEntries(7)
	rec := &recorder{}
	p, _ := NewPager(New(entries), rec, 2)

	page, err := p.FastForward(5)
	if err != nil {
		t.Fatalf("FastForward: %v", err)
	}
	if page.Cursor != 6 || page.Exhausted {
		t.Fatalf("got %+v, want cursor 6 and not exhausted", page)
	}
	if len(rec.got) != 6 {
		t.Fatalf("rendered %d entries, want 6", len(rec.got))
	}
}

func TestPagerFastForwardRendersAtLeastOnePage(t *testing.T) {
	rec := &recorder{}
	p, _ := NewPager(New(sampleEntries(7)), rec, 3)
	page, err := p.FastForward(0)
	if err != nil {
		t.Fatalf("FastForward: %v", err)
	}
	if page.Cursor != 3 || len(rec.got) != 3 {
		t.Fatalf("got %+v with %d entries, want first page only", page, len(rec.got))
	}
}

func TestPagerHugePageSize(t *testing.T) {
	rec := &recorder{}
	p, _ := NewPager(New(sampleEntries(4)), rec, math.MaxInt)
	page, err := p.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if page.Cursor != 4 || !page.Exhausted || len(rec.got) != 4 {
		t.Fatalf("got %+v with %d entries, want all 4 in one page", page, len(rec.got))
	}
}

func TestNewPagerRejectsBadPageSize(t *testing.T) {
	if _, err := NewPager(New(nil), &recorder{}, 0); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("err = %v, want ErrInvalidPageSize", err)
	}
}
