package views

import (
	"context"
	"io"

	"github.com/eringen/atomicsite/catalog"
)

// ChroniclesContainerID is the element new entries are appended to.
const ChroniclesContainerID = "chronicles-container"

// EntryWriter is a catalog.Sink that renders each entry as HTML onto w.
type EntryWriter struct {
	ctx context.Context
	w   io.Writer
}

// NewEntryWriter returns a sink writing entry markup to w.
func NewEntryWriter(ctx context.Context, w io.Writer) *EntryWriter {
	return &EntryWriter{ctx: ctx, w: w}
}

// Append renders e after everything written so far.
func (ew *EntryWriter) Append(e catalog.Entry) error {
	return ChronicleEntry(e).Render(ew.ctx, ew.w)
}

var _ catalog.Sink = (*EntryWriter)(nil)
