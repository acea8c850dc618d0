package binder

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"github.com/Paintersrp/quire/internal/outline"
)

// ErrNoFrontMatter is returned when saving metadata for a document that cannot
// carry frontmatter, such as an image.
var ErrNoFrontMatter = errors.New("binder: document cannot hold metadata")

// SaveMetadata writes md back to disk and swaps it into a fresh Metadata
// snapshot. Documents get their frontmatter rewritten; folders get their
// _folder.yaml. Document bodies and keys the binder does not manage are kept.
func (b *Binder) SaveMetadata(id string, md outline.Metadata) error {
	id = normalizeID(id)
	item, err := b.Find(id)
	if err != nil {
		return err
	}
	p, err := b.Path(id)
	if err != nil {
		return err
	}

	if item.IsFolder() {
		err = saveFolderMetadata(p, md)
	} else if item.Kind == outline.KindText {
		err = saveDocumentMetadata(p, md)
	} else {
		err = fmt.Errorf("%w: %s is a %s", ErrNoFrontMatter, id, item.Kind)
	}
	if err != nil {
		return err
	}

	next := maps.Clone(b.Metadata)
	if prev, ok := next[id]; ok {
		md.Modified = prev.Modified
	}
	next[id] = md
	b.Metadata = next

	b.log.WithField("id", id).WithField("status", md.Status.String()).Info("saved metadata")
	return nil
}

func saveDocumentMetadata(p string, md outline.Metadata) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	src, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	front, body, _ := splitFrontMatter(src)
	merged, err := mergeMetadata(front, md)
	if err != nil {
		return fmt.Errorf("failed to parse frontmatter of %s: %w", p, err)
	}

	var out bytes.Buffer
	if !isEmptyMapping(merged) {
		out.WriteString("---\n")
		out.Write(merged)
		out.WriteString("---\n")
	}
	out.Write(body)

	if err := os.WriteFile(p, out.Bytes(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

func saveFolderMetadata(dir string, md outline.Metadata) error {
	p := filepath.Join(dir, FolderMetaFile)

	src, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to save folder metadata: %w", err)
	}

	merged, err := mergeMetadata(src, md)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", p, err)
	}
	if isEmptyMapping(merged) {
		if src == nil {
			return nil
		}
		merged = nil
	}

	if err := os.WriteFile(p, merged, 0o644); err != nil {
		return fmt.Errorf("failed to save folder metadata: %w", err)
	}
	return nil
}

func isEmptyMapping(out []byte) bool {
	trimmed := bytes.TrimSpace(out)
	return len(trimmed) == 0 || string(trimmed) == "{}"
}

// Body returns a text document's source without its frontmatter. Other kinds
// have no body.
func (b *Binder) Body(id string) (string, error) {
	item, err := b.Find(id)
	if err != nil {
		return "", err
	}
	if item.Kind != outline.KindText {
		return "", nil
	}

	p, err := b.Path(item.ID)
	if err != nil {
		return "", err
	}
	src, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", item.ID, err)
	}
	_, body, _ := splitFrontMatter(src)
	return string(body), nil
}
