package models

// PullRequest represents open PR metadata as delivered by `gh pr list --json`
type PullRequest struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Author    User   `json:"author"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	IsDraft   bool   `json:"isDraft"`
}

// User represents a GitHub user
type User struct {
	Login string `json:"login"`
	Type  string `json:"type,omitempty"`
}

// Review represents a PR review.
// The gh CLI and GraphQL deliver the reviewer as "author", REST as "user".
type Review struct {
	Author User   `json:"author"`
	User   User   `json:"user"`
	State  string `json:"state"`
}

// Login returns the reviewer login, preferring author over user
func (r Review) Login() string {
	if r.Author.Login != "" {
		return r.Author.Login
	}
	return r.User.Login
}

// ReviewRequest represents a pending review request for a user or a team
type ReviewRequest struct {
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
	Slug  string `json:"slug,omitempty"`
}

// Reviewer returns the requested login, falling back to the team slug or name
func (r ReviewRequest) Reviewer() string {
	switch {
	case r.Login != "":
		return r.Login
	case r.Slug != "":
		return r.Slug
	default:
		return r.Name
	}
}

// ReviewDetail holds the review activity of one PR
type ReviewDetail struct {
	Reviews        []Review        `json:"reviews"`
	ReviewRequests []ReviewRequest `json:"reviewRequests"`
}

// Review states reported by GitHub
const (
	StateApproved         = "APPROVED"
	StateChangesRequested = "CHANGES_REQUESTED"
	StateCommented        = "COMMENTED"
	StatePending          = "PENDING"
	StateDismissed        = "DISMISSED"
)
