package ports

import "os/exec"

// SceneEditor edits scene text in the user's external editor
type SceneEditor interface {
	// Prepare writes text to a scratch file and returns the command that opens it.
	// The command is meant for bubbletea's ExecProcess or a plain Run.
	Prepare(sceneName, text string) (cmd *exec.Cmd, path string, err error)

	// Collect reads the edited scratch file back and removes it
	Collect(path string) (string, error)
}
