package editor

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Editor implements ports.SceneEditor using the user's preferred editor
type Editor struct {
	lookupEnv func(string) string
	lookPath  func(string) (string, error)
	tempDir   string
}

// New creates an editor that honors $EDITOR and $VISUAL
func New() *Editor {
	return &Editor{
		lookupEnv: os.Getenv,
		lookPath:  exec.LookPath,
	}
}

// Prepare writes text to a scratch file and returns the command that edits it
// This is useful for integrating with bubbletea's ExecProcess
func (e *Editor) Prepare(sceneName, text string) (*exec.Cmd, string, error) {
	editor := e.findEditor()
	if editor == "" {
		return nil, "", fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	stem := strings.Trim(unsafeChars.ReplaceAllString(sceneName, "-"), "-")
	if stem == "" {
		stem = "scene"
	}

	f, err := os.CreateTemp(e.tempDir, "scrivano-"+stem+"-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	path := f.Name()
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(path)
		return nil, "", fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, "", err
	}

	// $EDITOR may carry flags, e.g. "code --wait"
	fields := strings.Fields(editor)
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, path, nil
}

// Collect reads the edited scratch file and removes it
func (e *Editor) Collect(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch file: %w", err)
	}
	return string(data), nil
}

// findEditor returns the editor to use
func (e *Editor) findEditor() string {
	// Check $EDITOR first
	if editor := e.lookupEnv("EDITOR"); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := e.lookupEnv("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano", "code"}
	for _, editor := range editors {
		if path, err := e.lookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
