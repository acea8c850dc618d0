// Package outline projects a folder of the binder into sortable, column-filtered
// rows for the outliner.
package outline

import "strings"

// Kind tags what an item in the binder holds.
type Kind int

const (
	KindFolder Kind = iota
	KindText
	KindImage
	KindPDF
	KindWebArchive
)

var kindNames = map[Kind]string{
	KindFolder:     "folder",
	KindText:       "text",
	KindImage:      "image",
	KindPDF:        "pdf",
	KindWebArchive: "web-archive",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a kind name back to its Kind. Unknown names report false.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindText, false
}

// Item is a node of the binder tree. Only folders carry children.
type Item struct {
	ID       string
	Title    string
	Kind     Kind
	Children []*Item
}

func (i *Item) IsFolder() bool {
	return i != nil && i.Kind == KindFolder
}

// Walk visits i and every descendant depth first, in binder order. Returning
// false from fn stops the walk.
func (i *Item) Walk(fn func(*Item) bool) bool {
	if i == nil {
		return true
	}
	if !fn(i) {
		return false
	}
	for _, child := range i.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the item with the given identifier below (or at) i.
func (i *Item) Find(id string) (*Item, bool) {
	var found *Item
	i.Walk(func(it *Item) bool {
		if it.ID == id {
			found = it
			return false
		}
		return true
	})
	return found, found != nil
}
