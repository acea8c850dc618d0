package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/Paintersrp/quire/internal/outline"
)

// StatusLine summarises the loaded project for the outliner footer.
func (s *State) StatusLine() string {
	if s == nil || s.Binder == nil {
		return ""
	}

	words := 0
	for _, text := range s.Binder.Contents {
		words += outline.WordCount(text)
	}

	return formatProjectStatus(s.ProjectName, len(s.Binder.Documents()), words, s.LoadedAt)
}

func formatProjectStatus(name string, docs, words int, loaded time.Time) string {
	parts := []string{}
	if name != "" {
		parts = append(parts, name)
	}
	parts = append(parts, fmt.Sprintf("%d docs", docs), fmt.Sprintf("%d words", words))
	if !loaded.IsZero() {
		parts = append(parts, fmt.Sprintf("loaded %s", loaded.Local().Format("15:04")))
	}

	return strings.Join(parts, " · ")
}
