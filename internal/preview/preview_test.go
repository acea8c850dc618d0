package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/quire/internal/binder"
)

func loadProject(t *testing.T, files map[string]string) *binder.Binder {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	b, err := binder.Load(root)
	require.NoError(t, err)
	return b
}

func TestMarkdownDocument(t *testing.T) {
	b := loadProject(t, map[string]string{
		"ch1.md": "---\ntitle: Arrival\nsynopsis: The ship lands.\nstatus: in progress\nlabel: Scene\nmodified: 2024-01-02 09:00\n---\nFour words right here.\n",
	})

	md, err := Markdown(b, "ch1.md")
	require.NoError(t, err)
	assert.Contains(t, md, "# Arrival\n")
	assert.Contains(t, md, "**In Progress** · _Scene_ · 4 words · Jan 2, 2024 09:00")
	assert.Contains(t, md, "> The ship lands.\n")
	assert.Contains(t, md, "Four words right here.")
	assert.NotContains(t, md, "status:")
}

func TestMarkdownFolderAndImage(t *testing.T) {
	b := loadProject(t, map[string]string{
		"draft/a.md":       "a",
		"draft/b.md":       "b",
		"research/map.png": "png",
		"empty/.keep":      "",
	})

	md, err := Markdown(b, "draft")
	require.NoError(t, err)
	assert.Contains(t, md, "- a\n- b\n")

	md, err = Markdown(b, "research/map.png")
	require.NoError(t, err)
	assert.Contains(t, md, "_image file: `research/map.png`_")

	md, err = Markdown(b, "empty")
	require.NoError(t, err)
	assert.Contains(t, md, "_Empty folder_")

	_, err = Markdown(b, "nope.md")
	assert.ErrorIs(t, err, binder.ErrNotFound)
}

func TestRenderPlainTheme(t *testing.T) {
	r := New("notty")
	out, err := r.Render("# Heading\n\nSome *text*.", 40)
	require.NoError(t, err)
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "text")
	assert.Len(t, r.renderers, 1)

	_, err = r.Render("again", 40)
	require.NoError(t, err)
	assert.Len(t, r.renderers, 1, "renderers are reused per width")
}

func TestColorProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.Ascii, ColorProfile("notty"))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, ColorProfile("dark"))
}
