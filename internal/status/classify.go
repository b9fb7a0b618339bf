package status

import (
	"sort"
	"strings"

	"github.com/ryo246912/gh-pr-status/internal/models"
)

// PR status labels
const (
	Draft            = "Draft"
	Approved         = "Approved"
	ChangesRequested = "Changes requested"
	InReview         = "In review"
	NotReviewed      = "Not reviewed"
)

// DefaultUnassignedLabel is shown when a PR has no reviewers at all
const DefaultUnassignedLabel = "Unassigned"

// ReviewerStatus is the latest display state of one reviewer
type ReviewerStatus struct {
	Login string
	State string
}

// Classify derives the status label of a PR.
// Draft wins over everything, then any approval, then any change request.
func Classify(pr models.PullRequest, reviews []models.Review) string {
	if pr.IsDraft {
		return Draft
	}
	if hasState(reviews, models.StateApproved) {
		return Approved
	}
	if hasState(reviews, models.StateChangesRequested) {
		return ChangesRequested
	}
	if len(reviews) > 0 {
		return InReview
	}
	return NotReviewed
}

func hasState(reviews []models.Review, state string) bool {
	for _, r := range reviews {
		if r.State == state {
			return true
		}
	}
	return false
}

// ReviewerStates returns each reviewer's latest state sorted by login.
// Reviews are taken in delivery order and the last one per login wins;
// a pending review request overrides any earlier review.
func ReviewerStates(detail models.ReviewDetail) []ReviewerStatus {
	latest := make(map[string]string)
	for _, r := range detail.Reviews {
		login := r.Login()
		if login == "" {
			continue
		}
		state := r.State
		if state == "" {
			state = models.StateCommented
		}
		latest[login] = state
	}
	for _, req := range detail.ReviewRequests {
		if login := req.Reviewer(); login != "" {
			latest[login] = models.StatePending
		}
	}

	logins := make([]string, 0, len(latest))
	for login := range latest {
		logins = append(logins, login)
	}
	sort.Strings(logins)

	statuses := make([]ReviewerStatus, 0, len(logins))
	for _, login := range logins {
		statuses = append(statuses, ReviewerStatus{Login: login, State: latest[login]})
	}
	return statuses
}

// FormatReviewer annotates a reviewer login with the glyph of its state
func FormatReviewer(rs ReviewerStatus) string {
	switch rs.State {
	case models.StateApproved:
		return rs.Login + "✅"
	case models.StateChangesRequested:
		return rs.Login + "❌"
	case models.StateCommented:
		return rs.Login + "💬"
	case models.StatePending, "":
		return rs.Login + "⏳"
	default:
		return rs.Login
	}
}

// FormatReviewers joins formatted reviewers with sep, or returns unassigned
// when there are none.
func FormatReviewers(statuses []ReviewerStatus, sep, unassigned string) string {
	if len(statuses) == 0 {
		return unassigned
	}
	tokens := make([]string, len(statuses))
	for i, rs := range statuses {
		tokens[i] = FormatReviewer(rs)
	}
	return strings.Join(tokens, sep)
}
