// Package binder loads a project directory into the outline tree and supplies
// the content and metadata snapshots the outliner sorts by.
package binder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/quire/internal/logger"
	"github.com/Paintersrp/quire/internal/outline"
)

// FolderMetaFile holds a folder's own metadata and child order.
const FolderMetaFile = "_folder.yaml"

var ErrNotFound = errors.New("binder: item not found")

var kindsByExt = map[string]outline.Kind{
	".md":         outline.KindText,
	".markdown":   outline.KindText,
	".txt":        outline.KindText,
	".png":        outline.KindImage,
	".jpg":        outline.KindImage,
	".jpeg":       outline.KindImage,
	".gif":        outline.KindImage,
	".webp":       outline.KindImage,
	".svg":        outline.KindImage,
	".pdf":        outline.KindPDF,
	".webarchive": outline.KindWebArchive,
	".html":       outline.KindWebArchive,
	".htm":        outline.KindWebArchive,
}

// KindOf reports the binder kind of a file name, or false when the binder
// ignores it.
func KindOf(name string) (outline.Kind, bool) {
	k, ok := kindsByExt[strings.ToLower(filepath.Ext(name))]
	return k, ok
}

// Binder is a loaded project. Root, Contents and Metadata are replaced as a
// whole on Reload and must be treated as read-only snapshots.
type Binder struct {
	Root     *outline.Item
	Contents outline.Contents
	Metadata outline.MetadataMap

	dir     string
	paths   map[string]string
	palette map[string]string
	log     *logrus.Entry
}

type Option func(*Binder)

// WithLogger routes load warnings and saves to l.
func WithLogger(l *logrus.Logger) Option {
	return func(b *Binder) {
		if l != nil {
			b.log = logrus.NewEntry(l)
		}
	}
}

// WithPalette supplies colors for labels that name no color of their own.
func WithPalette(palette map[string]string) Option {
	return func(b *Binder) {
		b.palette = palette
	}
}

// Load reads the project rooted at dir.
func Load(dir string, opts ...Option) (*Binder, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	b := &Binder{
		dir: abs,
		log: logrus.NewEntry(logger.Discard()),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.WithField("project", abs)

	if err := b.Reload(); err != nil {
		return nil, err
	}
	return b, nil
}

// Dir is the absolute project directory.
func (b *Binder) Dir() string {
	return b.dir
}

// Reload re-reads the whole project.
func (b *Binder) Reload() error {
	info, err := os.Stat(b.dir)
	if err != nil {
		return fmt.Errorf("failed to read project: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project %s is not a directory", b.dir)
	}

	l := &loader{
		b:        b,
		contents: make(outline.Contents),
		metadata: make(outline.MetadataMap),
		paths:    make(map[string]string),
	}

	root, err := l.folder("", b.dir, filepath.Base(b.dir), info)
	if err != nil {
		return err
	}

	b.Root = root
	b.Contents = l.contents
	b.Metadata = l.metadata
	b.paths = l.paths
	return nil
}

// Find returns the item with the given identifier.
func (b *Binder) Find(id string) (*outline.Item, error) {
	if it, ok := b.Root.Find(normalizeID(id)); ok {
		return it, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Folder returns the folder with the given identifier. A document resolves to
// the folder holding it.
func (b *Binder) Folder(id string) (*outline.Item, error) {
	it, err := b.Find(id)
	if err != nil {
		return nil, err
	}
	if it.IsFolder() {
		return it, nil
	}
	return b.Find(Parent(it.ID))
}

// Path is the file (or directory, for folders) behind an identifier.
func (b *Binder) Path(id string) (string, error) {
	p, ok := b.paths[normalizeID(id)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

// Documents lists every non-folder item in binder order.
func (b *Binder) Documents() []*outline.Item {
	var docs []*outline.Item
	b.Root.Walk(func(it *outline.Item) bool {
		if !it.IsFolder() {
			docs = append(docs, it)
		}
		return true
	})
	return docs
}

// Files lists the project files the binder reads, relative to Dir, including
// folder metadata files.
func (b *Binder) Files() []string {
	var files []string
	for id, p := range b.paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			meta := filepath.Join(p, FolderMetaFile)
			if _, err := os.Stat(meta); err == nil {
				files = append(files, path.Join(id, FolderMetaFile))
			}
			continue
		}
		files = append(files, id)
	}
	slices.Sort(files)
	return files
}

// Parent is the identifier of the folder holding id.
func Parent(id string) string {
	id = normalizeID(id)
	if id == "" {
		return ""
	}
	parent := path.Dir(id)
	if parent == "." {
		return ""
	}
	return parent
}

func normalizeID(id string) string {
	id = strings.Trim(filepath.ToSlash(strings.TrimSpace(id)), "/")
	if id == "." {
		return ""
	}
	return path.Clean("/" + id)[1:]
}

type loader struct {
	b        *Binder
	contents outline.Contents
	metadata outline.MetadataMap
	paths    map[string]string
}

func (l *loader) folder(id, dir, name string, info fs.FileInfo) (*outline.Item, error) {
	item := &outline.Item{ID: id, Title: name, Kind: outline.KindFolder}
	l.paths[id] = dir

	var fm frontMatter
	if data, err := os.ReadFile(filepath.Join(dir, FolderMetaFile)); err == nil {
		fm, err = parseFrontMatter(data)
		if err != nil {
			l.b.log.WithError(err).WithField("id", id).Warn("malformed folder metadata")
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		l.b.log.WithError(err).WithField("id", id).Warn("unreadable folder metadata")
	}
	if fm.Title != "" {
		item.Title = fm.Title
	}
	l.metadata[id] = l.b.metadataFrom(fm, info.ModTime(), id)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if id == "" {
			return nil, fmt.Errorf("failed to read project: %w", err)
		}
		l.b.log.WithError(err).WithField("id", id).Warn("unreadable folder")
		return item, nil
	}

	for _, entry := range orderEntries(entries, fm.Order) {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		childID := path.Join(id, name)
		childPath := filepath.Join(dir, name)

		childInfo, err := entry.Info()
		if err != nil {
			l.b.log.WithError(err).WithField("id", childID).Warn("skipping unreadable entry")
			continue
		}

		if entry.IsDir() {
			child, err := l.folder(childID, childPath, name, childInfo)
			if err != nil {
				return nil, err
			}
			item.Children = append(item.Children, child)
			continue
		}

		kind, ok := KindOf(name)
		if !ok {
			continue
		}
		item.Children = append(item.Children, l.document(childID, childPath, name, kind, childInfo))
	}

	return item, nil
}

func (l *loader) document(id, p, name string, kind outline.Kind, info fs.FileInfo) *outline.Item {
	item := &outline.Item{
		ID:    id,
		Title: strings.TrimSuffix(name, filepath.Ext(name)),
		Kind:  kind,
	}
	l.paths[id] = p

	if kind != outline.KindText {
		l.metadata[id] = l.b.metadataFrom(frontMatter{}, info.ModTime(), id)
		return item
	}

	data, err := os.ReadFile(p)
	if err != nil {
		l.b.log.WithError(err).WithField("id", id).Warn("unreadable document")
		l.metadata[id] = l.b.metadataFrom(frontMatter{}, info.ModTime(), id)
		return item
	}

	front, body, _ := splitFrontMatter(data)
	fm, err := parseFrontMatter(front)
	if err != nil {
		l.b.log.WithError(err).WithField("id", id).Warn("malformed frontmatter")
		fm = frontMatter{}
	}
	if fm.Title != "" {
		item.Title = fm.Title
	}

	l.metadata[id] = l.b.metadataFrom(fm, info.ModTime(), id)
	if strings.EqualFold(filepath.Ext(name), ".txt") {
		l.contents[id] = strings.TrimSpace(string(body))
	} else {
		l.contents[id] = plainText(body)
	}

	return item
}

func (b *Binder) metadataFrom(fm frontMatter, modTime time.Time, id string) outline.Metadata {
	md := outline.Metadata{
		Synopsis: strings.TrimSpace(fm.Synopsis),
		Status:   outline.ParseStatus(fm.Status),
	}

	if fm.Label != nil && fm.Label.Name != "" {
		color := fm.Label.Color
		if color == "" {
			color = b.palette[fm.Label.Name]
		}
		md.Label = &outline.Label{Name: fm.Label.Name, Color: color}
	}

	modified := modTime
	if raw := strings.TrimSpace(fm.Modified); raw != "" {
		if t, err := dateparse.ParseAny(raw); err == nil {
			modified = t
		} else {
			b.log.WithError(err).WithField("id", id).Warn("unparseable modified date")
		}
	}
	if !modified.IsZero() {
		md.Modified = &modified
	}

	return md
}

// orderEntries puts the names listed in order first, in that order, followed
// by the remaining entries by name.
func orderEntries(entries []fs.DirEntry, order []string) []fs.DirEntry {
	if len(order) == 0 {
		return entries
	}

	byName := make(map[string]fs.DirEntry, len(entries))
	for _, e := range entries {
		byName[e.Name()] = e
	}

	out := make([]fs.DirEntry, 0, len(entries))
	placed := make(map[string]bool, len(order))
	for _, name := range order {
		if e, ok := byName[name]; ok && !placed[name] {
			out = append(out, e)
			placed[name] = true
		}
	}
	for _, e := range entries {
		if !placed[e.Name()] {
			out = append(out, e)
		}
	}
	return out
}
