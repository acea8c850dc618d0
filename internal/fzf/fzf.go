package fzf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/quire/internal/binder"
	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/preview"
)

// ErrNoSelection is returned when the picker is closed without a choice.
var ErrNoSelection = errors.New("no document selected")

// FuzzyFinder picks a document from a loaded binder.
type FuzzyFinder struct {
	binder   *binder.Binder
	renderer *preview.Renderer
	Header   string
	items    []*outline.Item
	labels   []string
}

func NewFuzzyFinder(b *binder.Binder, theme, header string) *FuzzyFinder {
	return &FuzzyFinder{
		binder:   b,
		renderer: preview.New(theme),
		Header:   header,
	}
}

// Find runs the picker, seeded with query, and returns the chosen item.
func (f *FuzzyFinder) Find(query string) (*outline.Item, error) {
	f.items = f.binder.Documents()
	if len(f.items) == 0 {
		return nil, fmt.Errorf("project has no documents")
	}

	f.labels = make([]string, len(f.items))
	for i, item := range f.items {
		f.labels[i] = f.entry(item)
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := fuzzyfinder.Find(f.items, func(i int) string {
		return f.labels[i]
	}, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return nil, ErrNoSelection
	}
	if err != nil {
		return nil, fmt.Errorf("error selecting document: %w", err)
	}

	return f.items[idx], nil
}

// entry is the line shown for an item: its title, where it lives, and its
// status when it has one.
func (f *FuzzyFinder) entry(item *outline.Item) string {
	parts := []string{item.Title}
	if parent := binder.Parent(item.ID); parent != "" {
		parts = append(parts, "("+parent+")")
	}
	if md, ok := f.binder.Metadata[item.ID]; ok && md.Status != outline.StatusNone {
		parts = append(parts, "["+md.Status.String()+"]")
	}
	return strings.Join(parts, " ")
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	out, err := f.renderer.Item(f.binder, f.items[i].ID, w-4)
	if err != nil {
		return "Error rendering preview"
	}
	return out
}
