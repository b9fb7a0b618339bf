package github

import (
	"fmt"
	"strings"

	"github.com/cli/safeexec"
	"github.com/pkg/errors"
)

var (
	// ErrMissingTool is returned when a required command is not on PATH
	ErrMissingTool = errors.New("required tool not found")
	// ErrCommandFailed is returned when a gh invocation exits non-zero
	ErrCommandFailed = errors.New("gh command failed")
)

// LookPathFunc resolves an executable name to a path
type LookPathFunc func(file string) (string, error)

// CheckPrerequisites verifies that every tool can be found.
// A nil lookPath uses safeexec, which never resolves from the current directory.
func CheckPrerequisites(tools []string, lookPath LookPathFunc) error {
	if lookPath == nil {
		lookPath = safeexec.LookPath
	}

	var missing []string
	for _, tool := range tools {
		if _, err := lookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrMissingTool, "please install %s", strings.Join(missing, ", "))
	}
	return nil
}

// CommandError carries the stderr of a failed gh invocation
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("gh %s: %v", strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is reports every CommandError as ErrCommandFailed
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}
