package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"adventure-server/internal/model"

	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ StoryNodeRepository = (*pgStoryNodeRepository)(nil)

type pgStoryNodeRepository struct {
	logger *zap.Logger
}

func NewPgStoryNodeRepository(logger *zap.Logger) StoryNodeRepository {
	return &pgStoryNodeRepository{
		logger: logger.Named("PgStoryNodeRepo"),
	}
}

const createStoryNodeQuery = `
INSERT INTO story_nodes (story_id, content, is_root, is_ending, is_winning_ending, options)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

const updateStoryNodeOptionsQuery = `
UPDATE story_nodes
SET options = $2
WHERE id = $1`

const listStoryNodesQuery = `
SELECT id, story_id, content, is_root, is_ending, is_winning_ending, options
FROM story_nodes
WHERE story_id = $1
ORDER BY id`

// Create inserts a node row and returns the database-assigned id. The
// id is available to the caller immediately so a parent can reference
// the node before its own options are finalized.
func (r *pgStoryNodeRepository) Create(ctx context.Context, querier DBTX, node *model.StoryNode) (int64, error) {
	optionsJSON, err := marshalOptions(node.Options)
	if err != nil {
		return 0, err
	}

	err = querier.QueryRow(ctx, createStoryNodeQuery,
		node.StoryID,
		node.Content,
		node.IsRoot,
		node.IsEnding,
		node.IsWinningEnding,
		optionsJSON,
	).Scan(&node.ID)
	if err != nil {
		r.logger.Error("Failed to create story node", zap.Error(err), zap.Int64("storyID", node.StoryID))
		return 0, fmt.Errorf("failed to create story node: %w", err)
	}
	return node.ID, nil
}

// UpdateOptions writes the full options list in one finalizing update.
func (r *pgStoryNodeRepository) UpdateOptions(ctx context.Context, querier DBTX, nodeID int64, options []model.StoryOption) error {
	optionsJSON, err := marshalOptions(options)
	if err != nil {
		return err
	}

	tag, err := querier.Exec(ctx, updateStoryNodeOptionsQuery, nodeID, optionsJSON)
	if err != nil {
		r.logger.Error("Failed to update node options", zap.Int64("nodeID", nodeID), zap.Error(err))
		return fmt.Errorf("failed to update options of node %d: %w", nodeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update options of node %d: %w", nodeID, model.ErrNotFound)
	}
	return nil
}

// ListByStoryID loads every node of a story in one pass.
func (r *pgStoryNodeRepository) ListByStoryID(ctx context.Context, querier DBTX, storyID int64) ([]model.StoryNode, error) {
	rows, err := querier.Query(ctx, listStoryNodesQuery, storyID)
	if err != nil {
		r.logger.Error("Failed to query story nodes", zap.Int64("storyID", storyID), zap.Error(err))
		return nil, fmt.Errorf("failed to query nodes of story %d: %w", storyID, err)
	}
	defer rows.Close()

	var nodes []model.StoryNode
	for rows.Next() {
		var node model.StoryNode
		var optionsJSON []byte
		if err := rows.Scan(
			&node.ID,
			&node.StoryID,
			&node.Content,
			&node.IsRoot,
			&node.IsEnding,
			&node.IsWinningEnding,
			&optionsJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan story node: %w", err)
		}
		if err := json.Unmarshal(optionsJSON, &node.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options of node %d: %w", node.ID, err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read story nodes: %w", err)
	}

	return nodes, nil
}

// marshalOptions encodes an options list as the jsonb column value,
// normalizing nil to an empty array.
func marshalOptions(options []model.StoryOption) ([]byte, error) {
	if options == nil {
		options = []model.StoryOption{}
	}
	data, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode node options: %w", err)
	}
	return data, nil
}
