package repository

import (
	"context"
	"errors"
	"fmt"

	"adventure-server/internal/model"

	"github.com/jackc/pgx/v5"

	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ StoryJobRepository = (*pgStoryJobRepository)(nil)

type pgStoryJobRepository struct {
	logger *zap.Logger
}

func NewPgStoryJobRepository(logger *zap.Logger) StoryJobRepository {
	return &pgStoryJobRepository{
		logger: logger.Named("PgStoryJobRepo"),
	}
}

const createStoryJobQuery = `
INSERT INTO story_jobs (job_id, session_id, theme, status)
VALUES ($1, $2, $3, $4)
RETURNING created_at`

const getStoryJobQuery = `
SELECT job_id, session_id, theme, status, story_id, error, created_at, completed_at
FROM story_jobs
WHERE job_id = $1`

// Status transitions are guarded in SQL: a job only moves forward from
// the expected previous status, never backwards.
const markJobProcessingQuery = `
UPDATE story_jobs
SET status = 'processing'
WHERE job_id = $1 AND status = 'pending'`

const markJobCompletedQuery = `
UPDATE story_jobs
SET status = 'completed', story_id = $2, completed_at = now()
WHERE job_id = $1 AND status = 'processing'`

const markJobFailedQuery = `
UPDATE story_jobs
SET status = 'failed', error = $2, completed_at = now()
WHERE job_id = $1 AND status IN ('pending', 'processing')`

// Create inserts a new job record in pending status.
func (r *pgStoryJobRepository) Create(ctx context.Context, querier DBTX, job *model.StoryJob) error {
	if job.Status == "" {
		job.Status = model.JobStatusPending
	}
	err := querier.QueryRow(ctx, createStoryJobQuery,
		job.JobID,
		job.SessionID,
		job.Theme,
		job.Status,
	).Scan(&job.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create story job", zap.String("jobID", job.JobID), zap.Error(err))
		return fmt.Errorf("failed to create story job: %w", err)
	}
	r.logger.Info("Story job created", zap.String("jobID", job.JobID))
	return nil
}

// GetByJobID retrieves a job by its client-visible identifier.
func (r *pgStoryJobRepository) GetByJobID(ctx context.Context, querier DBTX, jobID string) (*model.StoryJob, error) {
	job := &model.StoryJob{}
	err := querier.QueryRow(ctx, getStoryJobQuery, jobID).Scan(
		&job.JobID,
		&job.SessionID,
		&job.Theme,
		&job.Status,
		&job.StoryID,
		&job.Error,
		&job.CreatedAt,
		&job.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Story job not found", zap.String("jobID", jobID))
			return nil, model.ErrJobNotFound
		}
		r.logger.Error("Failed to get story job", zap.String("jobID", jobID), zap.Error(err))
		return nil, fmt.Errorf("failed to get story job %s: %w", jobID, err)
	}
	return job, nil
}

// MarkProcessing moves a pending job to processing.
func (r *pgStoryJobRepository) MarkProcessing(ctx context.Context, querier DBTX, jobID string) error {
	return r.transition(ctx, querier, markJobProcessingQuery, jobID)
}

// MarkCompleted moves a processing job to completed with its story id.
func (r *pgStoryJobRepository) MarkCompleted(ctx context.Context, querier DBTX, jobID string, storyID int64) error {
	return r.transition(ctx, querier, markJobCompletedQuery, jobID, storyID)
}

// MarkFailed moves a pending or processing job to failed with its
// error text. Pending is accepted so a job whose background task never
// started can still be closed out.
func (r *pgStoryJobRepository) MarkFailed(ctx context.Context, querier DBTX, jobID string, errMsg string) error {
	return r.transition(ctx, querier, markJobFailedQuery, jobID, errMsg)
}

func (r *pgStoryJobRepository) transition(ctx context.Context, querier DBTX, query string, jobID string, args ...any) error {
	tag, err := querier.Exec(ctx, query, append([]any{jobID}, args...)...)
	if err != nil {
		r.logger.Error("Failed to update story job status", zap.String("jobID", jobID), zap.Error(err))
		return fmt.Errorf("failed to update story job %s: %w", jobID, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Story job status transition matched no row", zap.String("jobID", jobID))
		return model.ErrJobNotFound
	}
	return nil
}
