package repository

import (
	"context"
	"errors"
	"fmt"

	"adventure-server/internal/model"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ StoryRepository = (*pgStoryRepository)(nil)

type pgStoryRepository struct {
	logger *zap.Logger
}

func NewPgStoryRepository(logger *zap.Logger) StoryRepository {
	return &pgStoryRepository{
		logger: logger.Named("PgStoryRepo"),
	}
}

const createStoryQuery = `
INSERT INTO stories (title, session_id)
VALUES ($1, $2)
RETURNING id, created_at`

const getStoryByIDQuery = `
SELECT id, title, session_id, created_at
FROM stories
WHERE id = $1`

const listStoriesBySessionQuery = `
SELECT id, title, created_at
FROM stories
WHERE session_id = $1
ORDER BY id DESC`

// Create inserts a new story record and returns its assigned id.
func (r *pgStoryRepository) Create(ctx context.Context, querier DBTX, story *model.Story) (int64, error) {
	err := querier.QueryRow(ctx, createStoryQuery, story.Title, story.SessionID).
		Scan(&story.ID, &story.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create story", zap.Error(err), zap.String("title", story.Title))
		return 0, fmt.Errorf("failed to create story: %w", err)
	}
	r.logger.Info("Story created", zap.Int64("storyID", story.ID))
	return story.ID, nil
}

// GetByID retrieves a story by its unique id.
func (r *pgStoryRepository) GetByID(ctx context.Context, querier DBTX, id int64) (*model.Story, error) {
	story := &model.Story{}
	err := querier.QueryRow(ctx, getStoryByIDQuery, id).Scan(
		&story.ID,
		&story.Title,
		&story.SessionID,
		&story.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Story not found", zap.Int64("storyID", id))
			return nil, model.ErrStoryNotFound
		}
		r.logger.Error("Failed to get story by ID", zap.Int64("storyID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get story %d: %w", id, err)
	}
	return story, nil
}

// ListBySession returns summaries of all stories owned by a session.
func (r *pgStoryRepository) ListBySession(ctx context.Context, querier DBTX, sessionID string) ([]model.StorySummary, error) {
	var summaries []model.StorySummary
	if err := pgxscan.Select(ctx, querier, &summaries, listStoriesBySessionQuery, sessionID); err != nil {
		r.logger.Error("Failed to list stories for session", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to list stories for session %s: %w", sessionID, err)
	}
	return summaries, nil
}
