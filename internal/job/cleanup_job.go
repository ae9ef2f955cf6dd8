package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"form-service/internal/storage"
)

// ArtifactRemover deletes export artifacts older than a cutoff
type ArtifactRemover interface {
	RemoveOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// CleanupJob removes expired export artifacts from the artifact store
type CleanupJob struct {
	store   ArtifactRemover
	maxAge  time.Duration
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

var _ ArtifactRemover = (storage.ArtifactStore)(nil)

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(store ArtifactRemover, maxAge time.Duration, logger *zap.Logger) *CleanupJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupJob{
		store:   store,
		maxAge:  maxAge,
		timeout: time.Minute,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes the cleanup job.
// It implements cron.Job so it can be scheduled directly.
func (j *CleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cutoff := j.now().Add(-j.maxAge)
	j.logger.Info("Starting cleanup job for expired export artifacts", zap.Time("cutoff", cutoff))

	removed, err := j.store.RemoveOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to remove expired export artifacts",
			zap.Int("removed", removed),
			zap.Error(err),
		)
		return
	}

	j.logger.Info("Cleanup job completed", zap.Int("removed", removed))
}

// Schedule registers the job on a new cron scheduler without starting it
func (j *CleanupJob) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddJob(spec, j); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", spec, err)
	}
	return c, nil
}
