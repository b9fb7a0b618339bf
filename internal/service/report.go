package service

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ryo246912/gh-pr-status/internal/github"
	"github.com/ryo246912/gh-pr-status/internal/report"
	"github.com/ryo246912/gh-pr-status/internal/status"
	"github.com/ryo246912/gh-pr-status/internal/ui"
)

// ErrOverwriteDeclined is returned when the user keeps the existing report
var ErrOverwriteDeclined = errors.New("overwrite declined")

// Options controls what the report contains and where it goes
type Options struct {
	Limit           int
	OutputFile      string
	Title           string
	UnassignedLabel string
	TimestampFormat string
	Confirm         bool
}

// Result describes a finished run
type Result struct {
	Path    string
	Summary []ui.SummaryItem
}

// ReportService contains the business logic
type ReportService struct {
	client   github.PRFetcher
	prompter ui.Prompter
	logger   *zap.Logger
	options  Options
	now      func() time.Time
}

// NewReportService creates a new service instance
func NewReportService(client github.PRFetcher, prompter ui.Prompter, logger *zap.Logger, opts Options) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.UnassignedLabel == "" {
		opts.UnassignedLabel = status.DefaultUnassignedLabel
	}
	return &ReportService{
		client:   client,
		prompter: prompter,
		logger:   logger,
		options:  opts,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for the generation timestamp
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Generate fetches every open PR, renders the status page and writes it
// into outputDir. Nothing is written unless every fetch succeeds.
func (s *ReportService) Generate(outputDir string) (*Result, error) {
	path := report.OutputPath(outputDir, s.options.OutputFile)

	if s.options.Confirm {
		if err := s.confirmOverwrite(path); err != nil {
			return nil, err
		}
	}

	prs, err := s.client.ListOpenPRs(s.options.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get open PRs: %w", err)
	}
	s.logger.Debug("fetched open pull requests", zap.Int("count", len(prs)))

	rows := make([]report.Row, 0, len(prs))
	summary := make([]ui.SummaryItem, 0, len(prs))
	for _, pr := range prs {
		detail, err := s.client.GetReviewDetail(pr.Number)
		if err != nil {
			return nil, fmt.Errorf("failed to get review detail: %w", err)
		}

		prStatus := status.Classify(pr, detail.Reviews)
		reviewers := status.ReviewerStates(detail)

		rows = append(rows, report.Row{
			Number:    pr.Number,
			Title:     pr.Title,
			URL:       pr.URL,
			Status:    prStatus,
			Author:    pr.Author.Login,
			Reviewers: status.FormatReviewers(reviewers, report.LineBreak, s.options.UnassignedLabel),
			CreatedAt: pr.CreatedAt,
			UpdatedAt: pr.UpdatedAt,
		})
		summary = append(summary, ui.SummaryItem{
			Number:    pr.Number,
			Title:     pr.Title,
			Author:    pr.Author.Login,
			Status:    prStatus,
			Reviewers: status.FormatReviewers(reviewers, ", ", s.options.UnassignedLabel),
		})
	}

	content := report.Render(report.Document{
		Title:       s.options.Title,
		GeneratedAt: s.now(),
		TimeFormat:  s.options.TimestampFormat,
		Rows:        rows,
	})
	if err := report.WriteFile(path, content); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	s.logger.Debug("report written", zap.String("path", path), zap.Int("rows", len(rows)))
	return &Result{Path: path, Summary: summary}, nil
}

func (s *ReportService) confirmOverwrite(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	ok, err := s.prompter.ConfirmOverwrite(path)
	if err != nil {
		return fmt.Errorf("failed to confirm overwrite: %w", err)
	}
	if !ok {
		return ErrOverwriteDeclined
	}
	return nil
}
