package github

import (
	"github.com/ryo246912/gh-pr-status/internal/models"
)

// MaxPullRequests is the most PRs fetched in a single run
const MaxPullRequests = 100

// PRFetcher defines the interface for reading PR review activity
type PRFetcher interface {
	ListOpenPRs(limit int) ([]models.PullRequest, error)
	GetReviewDetail(prNumber int) (models.ReviewDetail, error)
}

// RepositoryInfo defines repository information interface
type RepositoryInfo interface {
	GetOwner() string
	GetName() string
}

// Ensure both backends implement PRFetcher
var (
	_ PRFetcher = (*Client)(nil)
	_ PRFetcher = (*CLIClient)(nil)
)

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxPullRequests {
		return MaxPullRequests
	}
	return limit
}
