package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cli/go-gh/v2/pkg/api"
	graphql "github.com/cli/shurcooL-graphql"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ryo246912/gh-pr-status/internal/models"
)

// reviewPageSize is the per_page value of the single reviews request
const reviewPageSize = 100

// Client reads PRs through the GitHub REST and GraphQL APIs
type Client struct {
	rest   *api.RESTClient
	gql    *api.GraphQLClient
	repo   RepositoryInfo
	logger *zap.Logger
}

// NewClient creates a client authenticated from the gh configuration
func NewClient(repo RepositoryInfo, logger *zap.Logger) (*Client, error) {
	return NewClientWithOptions(api.ClientOptions{}, repo, logger)
}

// NewClientWithOptions creates a client from explicit go-gh options.
// Empty options resolve host and token from the gh configuration.
func NewClientWithOptions(opts api.ClientOptions, repo RepositoryInfo, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	restClient, err := api.NewRESTClient(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create REST client")
	}

	gqlOpts := opts
	gqlOpts.Transport = &payloadTransport{
		base:    opts.Transport,
		logger:  logger,
		message: "pull request list payload",
	}
	gqlClient, err := api.NewGraphQLClient(gqlOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GraphQL client")
	}

	return &Client{rest: restClient, gql: gqlClient, repo: repo, logger: logger}, nil
}

// payloadTransport logs every response body before the client decodes it
type payloadTransport struct {
	base    http.RoundTripper
	logger  *zap.Logger
	message string
}

func (t *payloadTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	t.logger.Info(t.message, zap.ByteString("json", body))
	return resp, nil
}

// ListOpenPRs fetches open pull requests using GraphQL
func (c *Client) ListOpenPRs(limit int) ([]models.PullRequest, error) {
	var q struct {
		Repository struct {
			PullRequests struct {
				Nodes []struct {
					Number    int
					Title     string
					URL       string `graphql:"url"`
					IsDraft   bool
					CreatedAt string
					UpdatedAt string
					Author    struct {
						Login string
					}
				}
			} `graphql:"pullRequests(states: OPEN, first: $first, orderBy: {field: CREATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(c.repo.GetOwner()),
		"name":  graphql.String(c.repo.GetName()),
		"first": graphql.Int(clampLimit(limit)),
	}

	if err := c.gql.Query("OpenPullRequests", &q, variables); err != nil {
		return nil, errors.Wrap(err, "failed to fetch pull requests")
	}

	prs := make([]models.PullRequest, 0, len(q.Repository.PullRequests.Nodes))
	for _, node := range q.Repository.PullRequests.Nodes {
		prs = append(prs, models.PullRequest{
			Number:    node.Number,
			Title:     node.Title,
			URL:       node.URL,
			Author:    models.User{Login: node.Author.Login},
			CreatedAt: node.CreatedAt,
			UpdatedAt: node.UpdatedAt,
			IsDraft:   node.IsDraft,
		})
	}

	return prs, nil
}

// GetReviewDetail fetches reviews and pending review requests using REST
func (c *Client) GetReviewDetail(prNumber int) (models.ReviewDetail, error) {
	owner, repo := c.repo.GetOwner(), c.repo.GetName()

	var reviews []models.Review
	reviewPath := fmt.Sprintf("repos/%s/%s/pulls/%d/reviews?per_page=%d", owner, repo, prNumber, reviewPageSize)
	if err := c.getJSON(reviewPath, &reviews); err != nil {
		return models.ReviewDetail{}, errors.Wrapf(err, "failed to fetch reviews of #%d", prNumber)
	}
	if len(reviews) >= reviewPageSize {
		c.logger.Warn("review page is full, later reviews are not shown",
			zap.Int("number", prNumber), zap.Int("reviews", len(reviews)))
	}

	var requested struct {
		Users []models.User `json:"users"`
		Teams []struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"teams"`
	}
	requestPath := fmt.Sprintf("repos/%s/%s/pulls/%d/requested_reviewers", owner, repo, prNumber)
	if err := c.getJSON(requestPath, &requested); err != nil {
		return models.ReviewDetail{}, errors.Wrapf(err, "failed to fetch review requests of #%d", prNumber)
	}

	detail := models.ReviewDetail{
		Reviews:        reviews,
		ReviewRequests: make([]models.ReviewRequest, 0, len(requested.Users)+len(requested.Teams)),
	}
	for _, u := range requested.Users {
		detail.ReviewRequests = append(detail.ReviewRequests, models.ReviewRequest{Login: u.Login})
	}
	for _, t := range requested.Teams {
		detail.ReviewRequests = append(detail.ReviewRequests, models.ReviewRequest{Name: t.Name, Slug: t.Slug})
	}
	return detail, nil
}

// getJSON performs a GET, logs the raw body and decodes it into v
func (c *Client) getJSON(path string, v interface{}) error {
	resp, err := c.rest.Request(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}
	c.logger.Info("api payload", zap.String("path", path), zap.ByteString("json", body))

	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
