// Package config loads the optional YAML settings of gh-pr-status.
//
// Defaults cover every field, so running without a config file renders
// PR_Status.md through the gh CLI for the repository of the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ryo246912/gh-pr-status/internal/report"
	"github.com/ryo246912/gh-pr-status/internal/status"
)

// Fetch backends
const (
	BackendCLI = "cli"
	BackendAPI = "api"
)

// Config models the YAML configuration file
type Config struct {
	Backend         string   `yaml:"backend" validate:"oneof=cli api"`
	Repo            string   `yaml:"repo" validate:"omitempty,repo"`
	Limit           int      `yaml:"limit" validate:"min=1,max=100"`
	OutputFile      string   `yaml:"output_file" validate:"required,excludesall=/"`
	Title           string   `yaml:"title" validate:"required"`
	UnassignedLabel string   `yaml:"unassigned_label" validate:"required"`
	TimestampFormat string   `yaml:"timestamp_format" validate:"required"`
	RequiredTools   []string `yaml:"required_tools" validate:"dive,required"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Backend:         BackendCLI,
		Limit:           100,
		OutputFile:      report.DefaultFileName,
		Title:           "PR Status",
		UnassignedLabel: status.DefaultUnassignedLabel,
		TimestampFormat: "2006-01-02 15:04:05",
	}
}

// DefaultRequiredTools returns the commands a backend depends on
func DefaultRequiredTools(backend string) []string {
	if backend == BackendAPI {
		return []string{"gh"}
	}
	return []string{"gh", "jq"}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config file %s not found", path)
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Finalize fills backend-dependent defaults and validates the result
func (c *Config) Finalize() error {
	if c.RequiredTools == nil {
		c.RequiredTools = DefaultRequiredTools(c.Backend)
	}
	return Validate(*c)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("repo", func(fl validator.FieldLevel) bool {
		owner, name, ok := strings.Cut(fl.Field().String(), "/")
		return ok && owner != "" && name != "" && !strings.Contains(name, "/")
	})
	return v
}

// Validate checks cfg against its field constraints
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
