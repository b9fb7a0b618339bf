package github

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPrerequisites(t *testing.T) {
	installed := map[string]bool{"gh": true}
	lookPath := func(file string) (string, error) {
		if installed[file] {
			return "/usr/bin/" + file, nil
		}
		return "", exec.ErrNotFound
	}

	tests := []struct {
		name          string
		tools         []string
		expectError   bool
		errorContains string
	}{
		{
			name:  "all tools present",
			tools: []string{"gh"},
		},
		{
			name: "nothing required",
		},
		{
			name:          "one tool missing",
			tools:         []string{"gh", "jq"},
			expectError:   true,
			errorContains: "please install jq",
		},
		{
			name:          "every missing tool is named",
			tools:         []string{"jq", "gh", "yq"},
			expectError:   true,
			errorContains: "please install jq, yq",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPrerequisites(tt.tools, lookPath)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingTool))
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestCommandError(t *testing.T) {
	err := &CommandError{
		Args:   []string{"pr", "list"},
		Stderr: "  no git remotes found\n",
		Err:    errors.New("exit status 1"),
	}

	assert.Equal(t, "gh pr list: exit status 1: no git remotes found", err.Error())
	assert.True(t, errors.Is(err, ErrCommandFailed))
}
