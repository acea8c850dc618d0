package outline

import (
	"strings"
	"time"
)

// Status is the ordered writing status of a document. The zero value is
// StatusNone and sorts lowest.
type Status int

const (
	StatusNone Status = iota
	StatusToDo
	StatusInProgress
	StatusFirstDraft
	StatusRevisedDraft
	StatusFinalDraft
	StatusDone
)

var statusNames = []string{
	"No Status",
	"To Do",
	"In Progress",
	"First Draft",
	"Revised Draft",
	"Final Draft",
	"Done",
}

// Statuses returns every status in enumeration order.
func Statuses() []Status {
	out := make([]Status, len(statusNames))
	for i := range statusNames {
		out[i] = Status(i)
	}
	return out
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return statusNames[StatusNone]
	}
	return statusNames[s]
}

// Next cycles forward through the enumeration, wrapping after Done.
func (s Status) Next() Status {
	return Status((int(s) + 1) % len(statusNames))
}

// Prev cycles backward through the enumeration, wrapping before No Status.
func (s Status) Prev() Status {
	return Status((int(s) - 1 + len(statusNames)) % len(statusNames))
}

// ParseStatus matches a display name case-insensitively, ignoring spaces,
// dashes and underscores. Anything unrecognised is StatusNone.
func ParseStatus(name string) Status {
	key := normalizeStatus(name)
	if key == "" {
		return StatusNone
	}
	for i, n := range statusNames {
		if normalizeStatus(n) == key {
			return Status(i)
		}
	}
	return StatusNone
}

func normalizeStatus(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Label is a named, colored tag. Color is a hex value such as "#f5a623".
type Label struct {
	Name  string
	Color string
}

// Metadata is the per-item record supplied by the metadata provider.
type Metadata struct {
	Synopsis string
	Status   Status
	Label    *Label
	Modified *time.Time
}

func (m Metadata) labelName() string {
	if m.Label == nil {
		return ""
	}
	return m.Label.Name
}

func (m Metadata) modified() time.Time {
	if m.Modified == nil {
		return time.Unix(0, 0).UTC()
	}
	return *m.Modified
}

// Contents maps item identifiers to their raw text.
type Contents map[string]string

// MetadataMap maps item identifiers to their metadata.
type MetadataMap map[string]Metadata
