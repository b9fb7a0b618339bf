package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryo246912/gh-pr-status/internal/config"
	"github.com/ryo246912/gh-pr-status/internal/github"
	"github.com/ryo246912/gh-pr-status/internal/logging"
	"github.com/ryo246912/gh-pr-status/internal/schedule"
	"github.com/ryo246912/gh-pr-status/internal/service"
	"github.com/ryo246912/gh-pr-status/internal/ui"
)

// RepositoryAdapter adapts repository.Repository to our interface
type RepositoryAdapter struct {
	repo repository.Repository
}

func (r *RepositoryAdapter) GetOwner() string {
	return r.repo.Owner
}

func (r *RepositoryAdapter) GetName() string {
	return r.repo.Name
}

type options struct {
	configPath string
	repo       string
	backend    string
	confirm    bool
	summary    bool
	quiet      bool
	every      time.Duration
}

func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("repo") {
		cfg.Repo = opts.repo
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = opts.backend
	}
	if err := cfg.Finalize(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newFetcher(cfg config.Config, logger *zap.Logger) (github.PRFetcher, error) {
	if cfg.Backend == config.BackendCLI {
		return github.NewCLIClient(cfg.Repo, logger), nil
	}

	var (
		repo repository.Repository
		err  error
	)
	if cfg.Repo != "" {
		repo, err = repository.Parse(cfg.Repo)
	} else {
		repo, err = repository.Current()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current repository: %w", err)
	}

	client, err := github.NewClient(&RepositoryAdapter{repo: repo}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, nil
}

func runCommand(cmd *cobra.Command, outputDir string, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(opts.quiet)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := github.CheckPrerequisites(cfg.RequiredTools, nil); err != nil {
		return err
	}

	client, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}

	reportService := service.NewReportService(client, &ui.DefaultPrompter{}, logger, service.Options{
		Limit:           cfg.Limit,
		OutputFile:      cfg.OutputFile,
		Title:           cfg.Title,
		UnassignedLabel: cfg.UnassignedLabel,
		TimestampFormat: cfg.TimestampFormat,
		Confirm:         opts.confirm,
	})

	out := cmd.OutOrStdout()
	generate := func() error {
		return generateReport(out, reportService, outputDir, opts.summary)
	}

	if opts.every > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return schedule.Run(ctx, opts.every, generate, logger)
	}
	return generate()
}

func generateReport(out io.Writer, reportService *service.ReportService, outputDir string, summary bool) error {
	result, err := reportService.Generate(outputDir)
	if errors.Is(err, service.ErrOverwriteDeclined) {
		fmt.Fprintln(out, "Overwrite cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	if summary {
		ui.PrintSummary(out, result.Summary)
	}
	fmt.Fprintf(out, "PR status written to %s\n", result.Path)
	return nil
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "pr-status [output-dir]",
		Short: "Render the review status of open pull requests into a Markdown page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir := "."
			if len(args) == 1 {
				outputDir = args[0]
			}
			return runCommand(cmd, outputDir, opts)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.StringVarP(&opts.repo, "repo", "R", "", "repository in owner/name form (default: current repository)")
	flags.StringVar(&opts.backend, "backend", config.BackendCLI, "fetch backend: cli or api")
	flags.BoolVar(&opts.confirm, "confirm", false, "ask before overwriting an existing report")
	flags.BoolVar(&opts.summary, "summary", false, "print a summary of every PR")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "hide raw API payloads")
	flags.DurationVar(&opts.every, "every", 0, "regenerate the report at this interval until interrupted")
	cmd.MarkFlagsMutuallyExclusive("confirm", "every")

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
