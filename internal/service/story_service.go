package service

import (
	"context"
	"errors"
	"fmt"

	"adventure-server/internal/model"
	"adventure-server/internal/repository"
	"adventure-server/pkg/ai"
	"adventure-server/pkg/taskrunner"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"go.uber.org/zap"
)

// CompletionClient produces raw story material from a theme. The return
// value is opaque; the normalizer coerces it to text.
//
//go:generate mockery --name CompletionClient --output ../mocks --outpkg mocks --case=underscore
type CompletionClient interface {
	GenerateStoryCompletion(ctx context.Context, theme string) (interface{}, error)
}

// ImageGenerator produces scene illustrations on demand. Satisfied by
// pkg/ai.Client.
//
//go:generate mockery --name ImageGenerator --output ../mocks --outpkg mocks --case=underscore
type ImageGenerator interface {
	GenerateSceneImage(ctx context.Context, description string) (string, error)
}

// TransactionManager runs a function inside a single database
// transaction. Satisfied by pkg/database.Database.
type TransactionManager interface {
	ExecuteInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// TaskSubmitter schedules background work. Satisfied by
// pkg/taskrunner.Runner.
type TaskSubmitter interface {
	Submit(fn taskrunner.TaskFunc) error
}

// StoryService owns the generation pipeline and story retrieval.
//
//go:generate mockery --name StoryService --output ../mocks --outpkg mocks --case=underscore
type StoryService interface {
	// StartGeneration records a new pending job and schedules the
	// generation pipeline in the background. The returned job is the
	// client's polling handle.
	StartGeneration(ctx context.Context, theme, sessionID string) (*model.StoryJob, error)

	// RunGenerationJob executes the pipeline for a previously recorded
	// job: invoke the model, normalize, parse, materialize, then close
	// the job out as completed or failed.
	RunGenerationJob(ctx context.Context, jobID string)

	// GetJob returns a job's current state or model.ErrJobNotFound.
	GetJob(ctx context.Context, jobID string) (*model.StoryJob, error)

	// GetCompleteStory assembles the full story tree in one response.
	GetCompleteStory(ctx context.Context, storyID int64) (*model.CompleteStoryResponse, error)

	// ListSessionStories returns summaries of a session's stories,
	// newest first.
	ListSessionStories(ctx context.Context, sessionID string) ([]model.StorySummary, error)
}

// Compile-time check to ensure implementation satisfies the interface.
var _ StoryService = (*storyService)(nil)

type storyService struct {
	db      repository.DBTX
	tx      TransactionManager
	stories repository.StoryRepository
	nodes   repository.StoryNodeRepository
	jobs    repository.StoryJobRepository
	client  CompletionClient
	runner  TaskSubmitter
	logger  *zap.Logger
}

func NewStoryService(
	db repository.DBTX,
	tx TransactionManager,
	stories repository.StoryRepository,
	nodes repository.StoryNodeRepository,
	jobs repository.StoryJobRepository,
	client CompletionClient,
	runner TaskSubmitter,
	logger *zap.Logger,
) StoryService {
	return &storyService{
		db:      db,
		tx:      tx,
		stories: stories,
		nodes:   nodes,
		jobs:    jobs,
		client:  client,
		runner:  runner,
		logger:  logger.Named("StoryService"),
	}
}

// StartGeneration creates the job record first, so the client's polling
// handle exists before any background work starts. If the background
// task cannot be scheduled the job is failed immediately instead of
// staying pending forever.
func (s *storyService) StartGeneration(ctx context.Context, theme, sessionID string) (*model.StoryJob, error) {
	job := &model.StoryJob{
		JobID:     uuid.NewString(),
		SessionID: sessionID,
		Theme:     theme,
		Status:    model.JobStatusPending,
	}
	if err := s.jobs.Create(ctx, s.db, job); err != nil {
		return nil, err
	}

	jobID := job.JobID
	err := s.runner.Submit(func(taskCtx context.Context) {
		s.RunGenerationJob(taskCtx, jobID)
	})
	if err != nil {
		s.logger.Error("Failed to schedule generation task",
			zap.String("jobID", jobID), zap.Error(err))
		if failErr := s.jobs.MarkFailed(ctx, s.db, jobID, "generation task could not be scheduled"); failErr != nil {
			s.logger.Error("Failed to fail unscheduled job",
				zap.String("jobID", jobID), zap.Error(failErr))
		}
		return nil, fmt.Errorf("failed to schedule story generation: %w", err)
	}

	s.logger.Info("Story generation scheduled",
		zap.String("jobID", jobID), zap.String("sessionID", sessionID))
	return job, nil
}

// RunGenerationJob is the background half of StartGeneration. A missing
// job record means the poll handle was never persisted or was removed;
// there is nowhere to report progress to, so the task aborts quietly.
func (s *storyService) RunGenerationJob(ctx context.Context, jobID string) {
	job, err := s.jobs.GetByJobID(ctx, s.db, jobID)
	if err != nil {
		if errors.Is(err, model.ErrJobNotFound) {
			s.logger.Warn("Generation task started for unknown job, aborting",
				zap.String("jobID", jobID))
			return
		}
		s.logger.Error("Failed to load job for generation task",
			zap.String("jobID", jobID), zap.Error(err))
		return
	}

	if err := s.jobs.MarkProcessing(ctx, s.db, jobID); err != nil {
		s.logger.Error("Failed to mark job processing",
			zap.String("jobID", jobID), zap.Error(err))
		return
	}

	story, err := s.generateStory(ctx, job.SessionID, job.Theme)
	if err != nil {
		s.logger.Error("Story generation failed",
			zap.String("jobID", jobID), zap.Error(err))
		if failErr := s.jobs.MarkFailed(ctx, s.db, jobID, err.Error()); failErr != nil {
			s.logger.Error("Failed to mark job failed",
				zap.String("jobID", jobID), zap.Error(failErr))
		}
		return
	}

	if err := s.jobs.MarkCompleted(ctx, s.db, jobID, story.ID); err != nil {
		s.logger.Error("Failed to mark job completed",
			zap.String("jobID", jobID), zap.Error(err))
		return
	}

	s.logger.Info("Story generation completed",
		zap.String("jobID", jobID), zap.Int64("storyID", story.ID))
}

// generateStory runs the ingestion pipeline: model call, normalization,
// parsing, then materialization of the whole tree inside one
// transaction. Either the complete story lands or nothing does.
func (s *storyService) generateStory(ctx context.Context, sessionID, theme string) (*model.Story, error) {
	raw, err := s.client.GenerateStoryCompletion(ctx, theme)
	if err != nil {
		return nil, fmt.Errorf("model invocation failed: %w", err)
	}

	text := ai.NormalizeResponse(raw)
	parsed, err := ai.ParseStoryResponse(text)
	if err != nil {
		return nil, err
	}

	story := &model.Story{
		Title:     parsed.Title,
		SessionID: sessionID,
	}
	err = s.tx.ExecuteInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.stories.Create(ctx, tx, story); err != nil {
			return err
		}
		_, err := s.materializeNode(ctx, tx, story.ID, parsed.RootNode, true)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist story: %w", err)
	}

	return story, nil
}

// materializeNode inserts a node, recurses into its children, then
// finalizes the node's options with the children's assigned ids in a
// single update. Insert order is parent before children; option order
// follows the parsed tree.
func (s *storyService) materializeNode(ctx context.Context, tx repository.DBTX, storyID int64, llmNode *model.StoryNodeLLM, isRoot bool) (int64, error) {
	node := &model.StoryNode{
		StoryID:         storyID,
		Content:         llmNode.Content,
		IsRoot:          isRoot,
		IsEnding:        llmNode.IsEnding,
		IsWinningEnding: llmNode.IsWinningEnding,
	}
	nodeID, err := s.nodes.Create(ctx, tx, node)
	if err != nil {
		return 0, err
	}

	if len(llmNode.Options) == 0 {
		return nodeID, nil
	}

	options := make([]model.StoryOption, 0, len(llmNode.Options))
	for _, opt := range llmNode.Options {
		childID, err := s.materializeNode(ctx, tx, storyID, opt.NextNode, false)
		if err != nil {
			return 0, err
		}
		options = append(options, model.StoryOption{
			Text:   opt.Text,
			NodeID: childID,
		})
	}

	if err := s.nodes.UpdateOptions(ctx, tx, nodeID, options); err != nil {
		return 0, err
	}
	return nodeID, nil
}

// GetJob returns the persisted state of a generation job.
func (s *storyService) GetJob(ctx context.Context, jobID string) (*model.StoryJob, error) {
	return s.jobs.GetByJobID(ctx, s.db, jobID)
}

// GetCompleteStory loads a story and all of its nodes and assembles the
// full tree response. A story without a root node violates the
// materializer's guarantee and surfaces as model.ErrRootNotFound.
func (s *storyService) GetCompleteStory(ctx context.Context, storyID int64) (*model.CompleteStoryResponse, error) {
	story, err := s.stories.GetByID(ctx, s.db, storyID)
	if err != nil {
		return nil, err
	}

	nodes, err := s.nodes.ListByStoryID(ctx, s.db, storyID)
	if err != nil {
		return nil, err
	}

	allNodes := make(map[int64]model.CompleteStoryNodeResponse, len(nodes))
	var rootID int64
	var rootFound bool
	for _, node := range nodes {
		allNodes[node.ID] = model.CompleteStoryNodeResponse{
			ID:              node.ID,
			Content:         node.Content,
			IsEnding:        node.IsEnding,
			IsWinningEnding: node.IsWinningEnding,
			Options:         node.Options,
		}
		if node.IsRoot {
			rootID = node.ID
			rootFound = true
		}
	}
	if !rootFound {
		s.logger.Error("Story has no root node", zap.Int64("storyID", storyID))
		return nil, fmt.Errorf("story %d: %w", storyID, model.ErrRootNotFound)
	}

	return &model.CompleteStoryResponse{
		ID:        story.ID,
		Title:     story.Title,
		SessionID: story.SessionID,
		CreatedAt: story.CreatedAt,
		RootNode:  allNodes[rootID],
		AllNodes:  allNodes,
	}, nil
}

// ListSessionStories returns the stories owned by a session.
func (s *storyService) ListSessionStories(ctx context.Context, sessionID string) ([]model.StorySummary, error) {
	return s.stories.ListBySession(ctx, s.db, sessionID)
}
