// Package editor builds and runs the command that opens a project file in the
// configured editor.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

var ErrNoTerminal = errors.New("editor needs an interactive terminal")

// Launch is a prepared editor command. Terminal editors set Wait; GUI editors
// are started and left running.
type Launch struct {
	Cmd  *exec.Cmd
	Wait bool
}

type editorCommand struct {
	command string
	args    []string
	wait    bool
	silence bool
}

func (c *editorCommand) launch() *Launch {
	cmd := exec.Command(c.command, c.args...)
	if c.silence {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	}
	return &Launch{Cmd: cmd, Wait: c.wait}
}

// ForPath prepares the editor from the active project's settings.
func ForPath(path string) (*Launch, error) {
	return For(
		path,
		strings.TrimSpace(viper.GetString("editor")),
		strings.TrimSpace(viper.GetString("editor_args")),
	)
}

// For prepares editor with extra args to open path without starting it.
func For(path, editor, extra string) (*Launch, error) {
	c, err := buildCommand(path, editor, strings.Fields(extra))
	if err != nil {
		return nil, err
	}
	return c.launch(), nil
}

func buildCommand(path, editor string, extra []string) (*editorCommand, error) {
	switch editor {
	case "nvim", "vim", "nano", "emacs", "hx":
		args := append(append([]string{}, extra...), path)
		if editor == "emacs" {
			args = append([]string{"-nw"}, args...)
		}
		return &editorCommand{command: editor, args: args, wait: true}, nil
	case "vscode", "code":
		return buildVSCodeCommand(path)
	case "custom", "":
		return buildEnvCommand(path, editor, extra)
	default:
		return nil, fmt.Errorf("unsupported editor: %s", editor)
	}
}

func buildVSCodeCommand(path string) (*editorCommand, error) {
	switch runtime.GOOS {
	case "darwin":
		return &editorCommand{command: "open", args: []string{"-n", "-b", "com.microsoft.VSCode", "--args", path}, silence: true}, nil
	case "linux":
		return &editorCommand{command: "code", args: []string{path}, silence: true}, nil
	case "windows":
		return &editorCommand{command: "cmd", args: []string{"/c", "code", path}, silence: true}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// buildEnvCommand falls back to $VISUAL or $EDITOR. A custom editor with extra
// args uses the first field of editor_args as the command itself.
func buildEnvCommand(path, editor string, extra []string) (*editorCommand, error) {
	if editor == "custom" && len(extra) > 0 {
		return &editorCommand{command: extra[0], args: append(append([]string{}, extra[1:]...), path), wait: true}, nil
	}

	for _, key := range []string{"VISUAL", "EDITOR"} {
		fields := strings.Fields(os.Getenv(key))
		if len(fields) == 0 {
			continue
		}
		args := append(append(fields[1:], extra...), path)
		return &editorCommand{command: fields[0], args: args, wait: true}, nil
	}

	if editor == "custom" {
		return nil, fmt.Errorf("custom editor requires editor_args or $EDITOR")
	}
	return nil, fmt.Errorf("editor not configured")
}

// Open runs the editor on path, blocking for terminal editors.
func Open(path string) error {
	launch, err := ForPath(path)
	if err != nil {
		return err
	}
	return launch.Run()
}

func (l *Launch) Run() error {
	if l.Wait {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return ErrNoTerminal
		}
		if l.Cmd.Stdin == nil {
			l.Cmd.Stdin = os.Stdin
		}
		if l.Cmd.Stdout == nil {
			l.Cmd.Stdout = os.Stdout
		}
		if l.Cmd.Stderr == nil {
			l.Cmd.Stderr = os.Stderr
		}
	}

	if err := l.Cmd.Start(); err != nil {
		return fmt.Errorf("error starting editor: %w", err)
	}

	if !l.Wait {
		return nil
	}

	if err := l.Cmd.Wait(); err != nil {
		return fmt.Errorf("error waiting for editor to close: %w", err)
	}
	return nil
}
