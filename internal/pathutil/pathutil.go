package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~\\") {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, p[1:]), nil
}

// ProjectRelative returns the path to target relative to the project directory,
// always with forward slashes. Targets outside the project yield an empty
// string.
func ProjectRelative(projectDir, target string) (string, error) {
	base := NormalizePath(projectDir)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", nil
	}
	return rel, nil
}

// ItemID turns a command-line argument into a binder identifier. Arguments
// may be identifiers already, or paths to files inside the project.
func ItemID(projectDir, arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return ""
	}

	if filepath.IsAbs(NormalizePath(arg)) {
		if rel, err := ProjectRelative(projectDir, arg); err == nil && rel != "" {
			return rel
		}
	}

	return strings.Trim(filepath.ToSlash(NormalizePath(arg)), "/")
}
