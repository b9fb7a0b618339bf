package github

import (
	"bytes"
	"encoding/json"
	"strconv"

	gh "github.com/cli/go-gh/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ryo246912/gh-pr-status/internal/models"
)

const (
	prListFields   = "number,title,author,createdAt,updatedAt,url,isDraft"
	prDetailFields = "reviews,reviewRequests"
)

// ExecFunc runs gh with the given arguments
type ExecFunc func(args ...string) (stdout, stderr bytes.Buffer, err error)

// CLIClient reads PRs by shelling out to the gh CLI
type CLIClient struct {
	exec   ExecFunc
	repo   string
	logger *zap.Logger
}

// NewCLIClient creates a client for repo ("owner/name"); an empty repo lets
// gh resolve the repository of the working directory.
func NewCLIClient(repo string, logger *zap.Logger) *CLIClient {
	return NewCLIClientWithExec(gh.Exec, repo, logger)
}

// NewCLIClientWithExec creates a client that runs gh through exec
func NewCLIClientWithExec(exec ExecFunc, repo string, logger *zap.Logger) *CLIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLIClient{exec: exec, repo: repo, logger: logger}
}

// ListOpenPRs runs `gh pr list` for open PRs
func (c *CLIClient) ListOpenPRs(limit int) ([]models.PullRequest, error) {
	args := []string{
		"pr", "list",
		"--state", "open",
		"--limit", strconv.Itoa(clampLimit(limit)),
		"--json", prListFields,
	}
	out, err := c.run(args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pull requests")
	}
	c.logger.Info("pull request list payload", zap.ByteString("json", out))

	var prs []models.PullRequest
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, errors.Wrap(err, "failed to decode pull request list")
	}
	return prs, nil
}

// GetReviewDetail runs `gh pr view` for reviews and pending review requests
func (c *CLIClient) GetReviewDetail(prNumber int) (models.ReviewDetail, error) {
	out, err := c.run("pr", "view", strconv.Itoa(prNumber), "--json", prDetailFields)
	if err != nil {
		return models.ReviewDetail{}, errors.Wrapf(err, "failed to fetch reviews of #%d", prNumber)
	}
	c.logger.Info("pull request detail payload", zap.Int("number", prNumber), zap.ByteString("json", out))

	var detail models.ReviewDetail
	if err := json.Unmarshal(out, &detail); err != nil {
		return models.ReviewDetail{}, errors.Wrapf(err, "failed to decode reviews of #%d", prNumber)
	}
	return detail, nil
}

func (c *CLIClient) run(args ...string) ([]byte, error) {
	if c.repo != "" {
		args = append(args, "--repo", c.repo)
	}
	stdout, stderr, err := c.exec(args...)
	if err != nil {
		return nil, &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}
