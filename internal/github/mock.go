package github

import (
	"fmt"

	"github.com/ryo246912/gh-pr-status/internal/models"
)

// MockClient implements PRFetcher for testing
type MockClient struct {
	// Control test behavior
	OpenPRs      []models.PullRequest
	OpenPRsError error
	Details      map[int]models.ReviewDetail
	DetailErrors map[int]error

	// Track method calls
	ListOpenPRsCalled      bool
	ListOpenLimit          int
	DetailRequestedNumbers []int
}

// ListOpenPRs mocks the PR list call
func (m *MockClient) ListOpenPRs(limit int) ([]models.PullRequest, error) {
	m.ListOpenPRsCalled = true
	m.ListOpenLimit = limit
	return m.OpenPRs, m.OpenPRsError
}

// GetReviewDetail mocks the per-PR detail call
func (m *MockClient) GetReviewDetail(prNumber int) (models.ReviewDetail, error) {
	m.DetailRequestedNumbers = append(m.DetailRequestedNumbers, prNumber)
	if err := m.DetailErrors[prNumber]; err != nil {
		return models.ReviewDetail{}, err
	}
	return m.Details[prNumber], nil
}

// MockRepository implements repository information for testing
type MockRepository struct {
	Owner string
	Name  string
}

func (m *MockRepository) GetOwner() string {
	return m.Owner
}

func (m *MockRepository) GetName() string {
	return m.Name
}

// CreateTestPRs builds count open PRs numbered from 1
func CreateTestPRs(count int) []models.PullRequest {
	prs := make([]models.PullRequest, count)
	for i := 0; i < count; i++ {
		prs[i] = models.PullRequest{
			Number:    i + 1,
			Title:     fmt.Sprintf("Test PR #%d", i+1),
			URL:       fmt.Sprintf("https://github.com/owner/repo/pull/%d", i+1),
			Author:    models.User{Login: fmt.Sprintf("user%d", i+1)},
			IsDraft:   false,
			UpdatedAt: "2023-01-01T12:00:00Z",
			CreatedAt: "2023-01-01T10:00:00Z",
		}
	}
	return prs
}

// NewAPIError builds an error resembling a failed API call
func NewAPIError(message string) error {
	return fmt.Errorf("API error: %s", message)
}
