package repository

import (
	"context"

	"adventure-server/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts over a pgx pool or transaction so repositories can run
// inside or outside an explicit transaction boundary.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StoryRepository persists story root records.
//
//go:generate mockery --name StoryRepository --output ../mocks --outpkg mocks --case=underscore
type StoryRepository interface {
	// Create inserts a story and returns its assigned id.
	Create(ctx context.Context, querier DBTX, story *model.Story) (int64, error)

	// GetByID returns a story or model.ErrStoryNotFound.
	GetByID(ctx context.Context, querier DBTX, id int64) (*model.Story, error)

	// ListBySession returns summaries of a session's stories, newest first.
	ListBySession(ctx context.Context, querier DBTX, sessionID string) ([]model.StorySummary, error)
}

// StoryNodeRepository persists individual story tree nodes.
//
//go:generate mockery --name StoryNodeRepository --output ../mocks --outpkg mocks --case=underscore
type StoryNodeRepository interface {
	// Create inserts a node with its current options list and returns
	// the assigned id immediately, so parents can reference it.
	Create(ctx context.Context, querier DBTX, node *model.StoryNode) (int64, error)

	// UpdateOptions finalizes a node's options list in a single write.
	UpdateOptions(ctx context.Context, querier DBTX, nodeID int64, options []model.StoryOption) error

	// ListByStoryID returns every node of a story.
	ListByStoryID(ctx context.Context, querier DBTX, storyID int64) ([]model.StoryNode, error)
}

// StoryJobRepository persists generation job lifecycle records.
//
//go:generate mockery --name StoryJobRepository --output ../mocks --outpkg mocks --case=underscore
type StoryJobRepository interface {
	// Create inserts a new job in pending status.
	Create(ctx context.Context, querier DBTX, job *model.StoryJob) error

	// GetByJobID returns a job or model.ErrJobNotFound.
	GetByJobID(ctx context.Context, querier DBTX, jobID string) (*model.StoryJob, error)

	// MarkProcessing moves a pending job to processing.
	MarkProcessing(ctx context.Context, querier DBTX, jobID string) error

	// MarkCompleted moves a job to completed, recording the story id
	// and completion time.
	MarkCompleted(ctx context.Context, querier DBTX, jobID string, storyID int64) error

	// MarkFailed moves a job to failed, recording the error text and
	// completion time.
	MarkFailed(ctx context.Context, querier DBTX, jobID string, errMsg string) error
}
