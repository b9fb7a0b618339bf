package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Run calls task immediately and then every interval until ctx is done.
// Runs never overlap. A failing first run is returned; later failures
// are logged and the schedule continues.
func Run(ctx context.Context, interval time.Duration, task func() error, logger *zap.Logger) error {
	if interval <= 0 {
		return errors.New("interval must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := task(); err != nil {
		return err
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := task(); err != nil {
				logger.Error("scheduled run failed", zap.Error(err))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule run: %w", err)
	}

	logger.Info("regenerating periodically", zap.Duration("interval", interval))
	s.Start()
	<-ctx.Done()

	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	return nil
}
