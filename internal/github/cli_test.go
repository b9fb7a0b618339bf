package github

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ryo246912/gh-pr-status/internal/models"
)

type fakeGh struct {
	outputs map[string]string
	stderr  string
	err     error
	calls   [][]string
}

func (f *fakeGh) exec(args ...string) (stdout, stderr bytes.Buffer, err error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		stderr.WriteString(f.stderr)
		return stdout, stderr, f.err
	}
	stdout.WriteString(f.outputs[args[1]])
	return stdout, stderr, nil
}

func TestCLIClient_ListOpenPRs(t *testing.T) {
	gh := &fakeGh{outputs: map[string]string{
		"list": `[
			{"number": 42, "title": "Fix | bug", "url": "https://github.com/o/r/pull/42",
			 "author": {"login": "alice"}, "createdAt": "2024-05-01T09:30:00Z",
			 "updatedAt": "2024-05-02T10:00:00Z", "isDraft": false},
			{"number": 7, "title": "WIP", "url": "https://github.com/o/r/pull/7",
			 "author": {"login": "carol"}, "createdAt": "2024-04-01T00:00:00Z",
			 "updatedAt": "2024-04-02T00:00:00Z", "isDraft": true}
		]`,
	}}
	client := NewCLIClientWithExec(gh.exec, "", nil)

	prs, err := client.ListOpenPRs(100)
	require.NoError(t, err)
	require.Len(t, prs, 2)

	assert.Equal(t, models.PullRequest{
		Number:    42,
		Title:     "Fix | bug",
		URL:       "https://github.com/o/r/pull/42",
		Author:    models.User{Login: "alice"},
		CreatedAt: "2024-05-01T09:30:00Z",
		UpdatedAt: "2024-05-02T10:00:00Z",
	}, prs[0])
	assert.True(t, prs[1].IsDraft)

	require.Len(t, gh.calls, 1)
	assert.Equal(t, []string{
		"pr", "list", "--state", "open", "--limit", "100",
		"--json", "number,title,author,createdAt,updatedAt,url,isDraft",
	}, gh.calls[0])
}

func TestCLIClient_ListOpenPRs_LimitAndRepo(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected string
	}{
		{name: "within bounds", limit: 20, expected: "20"},
		{name: "above maximum", limit: 500, expected: "100"},
		{name: "zero", limit: 0, expected: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := &fakeGh{outputs: map[string]string{"list": "[]"}}
			client := NewCLIClientWithExec(gh.exec, "owner/repo", nil)

			prs, err := client.ListOpenPRs(tt.limit)
			require.NoError(t, err)
			assert.Empty(t, prs)

			args := gh.calls[0]
			assert.Equal(t, tt.expected, args[5])
			assert.Equal(t, []string{"--repo", "owner/repo"}, args[len(args)-2:])
		})
	}
}

func TestCLIClient_GetReviewDetail(t *testing.T) {
	gh := &fakeGh{outputs: map[string]string{
		"view": `{
			"reviews": [
				{"author": {"login": "bob"}, "state": "CHANGES_REQUESTED"},
				{"author": {"login": "bob"}, "state": "APPROVED"}
			],
			"reviewRequests": [
				{"__typename": "User", "login": "dave"},
				{"__typename": "Team", "name": "Core", "slug": "core"}
			]
		}`,
	}}
	client := NewCLIClientWithExec(gh.exec, "", nil)

	detail, err := client.GetReviewDetail(9)
	require.NoError(t, err)

	assert.Equal(t, []models.Review{
		{Author: models.User{Login: "bob"}, State: models.StateChangesRequested},
		{Author: models.User{Login: "bob"}, State: models.StateApproved},
	}, detail.Reviews)
	assert.Equal(t, []models.ReviewRequest{
		{Login: "dave"},
		{Name: "Core", Slug: "core"},
	}, detail.ReviewRequests)
	assert.Equal(t, []string{"pr", "view", "9", "--json", "reviews,reviewRequests"}, gh.calls[0])
}

func TestCLIClient_Errors(t *testing.T) {
	t.Run("command failure carries stderr", func(t *testing.T) {
		gh := &fakeGh{err: errors.New("exit status 1"), stderr: "HTTP 401: Bad credentials\n"}
		client := NewCLIClientWithExec(gh.exec, "", nil)

		_, err := client.ListOpenPRs(100)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCommandFailed))
		assert.Contains(t, err.Error(), "Bad credentials")
		assert.Contains(t, err.Error(), "failed to list pull requests")
	})

	t.Run("detail failure names the PR", func(t *testing.T) {
		gh := &fakeGh{err: errors.New("exit status 1")}
		client := NewCLIClientWithExec(gh.exec, "", nil)

		_, err := client.GetReviewDetail(12)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCommandFailed))
		assert.Contains(t, err.Error(), "#12")
	})

	t.Run("malformed json", func(t *testing.T) {
		gh := &fakeGh{outputs: map[string]string{"list": "not json"}}
		client := NewCLIClientWithExec(gh.exec, "", nil)

		_, err := client.ListOpenPRs(100)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode pull request list")
	})
}

func TestCLIClient_LogsRawPayloads(t *testing.T) {
	const listBody = `[{"number":9,"title":"Docs","author":{"login":"erin"},"isDraft":false}]`
	const viewBody = `{"reviews":[],"reviewRequests":[{"__typename":"User","login":"dave"}]}`

	core, logs := observer.New(zapcore.InfoLevel)
	gh := &fakeGh{outputs: map[string]string{"list": listBody, "view": viewBody}}
	client := NewCLIClientWithExec(gh.exec, "", zap.New(core))

	_, err := client.ListOpenPRs(100)
	require.NoError(t, err)
	_, err = client.GetReviewDetail(9)
	require.NoError(t, err)

	assert.Equal(t, []string{listBody}, payloads(logs, "pull request list payload"))
	assert.Equal(t, []string{viewBody}, payloads(logs, "pull request detail payload"))

	detail := logs.FilterMessage("pull request detail payload").All()[0]
	assert.Equal(t, int64(9), detail.ContextMap()["number"])
}
