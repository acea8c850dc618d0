package pathutil

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestProjectRelativeReturnsForwardSlashes(t *testing.T) {
	projectParts := []string{"home", "user", "novel"}
	fileParts := append(append([]string{}, projectParts...), "draft", "one.md")

	posixProject := filepath.Join(projectParts...)
	posixFile := filepath.Join(fileParts...)

	rel, err := ProjectRelative(posixProject, posixFile)
	if err != nil {
		t.Fatalf("ProjectRelative returned error for POSIX paths: %v", err)
	}
	if rel != "draft/one.md" {
		t.Fatalf("expected relative path 'draft/one.md', got %q", rel)
	}

	windowsProject := strings.ReplaceAll(posixProject, string(filepath.Separator), "\\")
	windowsFile := strings.ReplaceAll(posixFile, string(filepath.Separator), "\\")

	rel, err = ProjectRelative(windowsProject, windowsFile)
	if err != nil {
		t.Fatalf("ProjectRelative returned error for Windows paths: %v", err)
	}
	if rel != "draft/one.md" {
		t.Fatalf("expected relative path 'draft/one.md', got %q", rel)
	}
}

func TestProjectRelativeOutsideProject(t *testing.T) {
	rel, err := ProjectRelative(filepath.Join("a", "novel"), filepath.Join("a", "other.md"))
	if err != nil {
		t.Fatalf("ProjectRelative returned error: %v", err)
	}
	if rel != "" {
		t.Fatalf("expected empty path outside the project, got %q", rel)
	}

	rel, err = ProjectRelative(filepath.Join("a", "novel"), filepath.Join("a", "novel"))
	if err != nil {
		t.Fatalf("ProjectRelative returned error: %v", err)
	}
	if rel != "" {
		t.Fatalf("expected empty path for the project root, got %q", rel)
	}
}

func TestItemID(t *testing.T) {
	project := t.TempDir()

	cases := []struct {
		arg  string
		want string
	}{
		{"draft/one.md", "draft/one.md"},
		{"/draft/one.md/", "draft/one.md"},
		{"draft\\one.md", "draft/one.md"},
		{filepath.Join(project, "draft", "two.md"), "draft/two.md"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := ItemID(project, tc.arg); got != tc.want {
			t.Fatalf("ItemID(%q) = %q, want %q", tc.arg, got, tc.want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/writing")
	if err != nil {
		t.Fatalf("ExpandHome returned error: %v", err)
	}
	if got != filepath.Join(home, "writing") {
		t.Fatalf("expected %q, got %q", filepath.Join(home, "writing"), got)
	}

	got, err = ExpandHome("/abs/path")
	if err != nil {
		t.Fatalf("ExpandHome returned error: %v", err)
	}
	if got != "/abs/path" {
		t.Fatalf("expected path unchanged, got %q", got)
	}
}
