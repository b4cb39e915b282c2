package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"adventure-server/internal/mocks"
	"adventure-server/internal/model"
	"adventure-server/internal/repository"
	"adventure-server/internal/service"
	"adventure-server/pkg/taskrunner"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

// memStore is a shared in-memory backing store for the fake
// repositories, so transactional writes and later reads see the same
// data without a database.
type memStore struct {
	mu          sync.Mutex
	nextStoryID int64
	nextNodeID  int64
	stories     map[int64]model.Story
	nodes       map[int64]model.StoryNode
	jobs        map[string]model.StoryJob
	jobHistory  map[string][]model.JobStatus
}

func newMemStore() *memStore {
	return &memStore{
		stories:    make(map[int64]model.Story),
		nodes:      make(map[int64]model.StoryNode),
		jobs:       make(map[string]model.StoryJob),
		jobHistory: make(map[string][]model.JobStatus),
	}
}

type fakeStoryRepo struct{ s *memStore }

func (f *fakeStoryRepo) Create(_ context.Context, _ repository.DBTX, story *model.Story) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.nextStoryID++
	story.ID = f.s.nextStoryID
	story.CreatedAt = time.Now()
	f.s.stories[story.ID] = *story
	return story.ID, nil
}

func (f *fakeStoryRepo) GetByID(_ context.Context, _ repository.DBTX, id int64) (*model.Story, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	story, ok := f.s.stories[id]
	if !ok {
		return nil, model.ErrStoryNotFound
	}
	return &story, nil
}

func (f *fakeStoryRepo) ListBySession(_ context.Context, _ repository.DBTX, sessionID string) ([]model.StorySummary, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var summaries []model.StorySummary
	for _, story := range f.s.stories {
		if story.SessionID == sessionID {
			summaries = append(summaries, model.StorySummary{
				ID:        story.ID,
				Title:     story.Title,
				CreatedAt: story.CreatedAt,
			})
		}
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID > summaries[j].ID })
	return summaries, nil
}

type fakeNodeRepo struct{ s *memStore }

func (f *fakeNodeRepo) Create(_ context.Context, _ repository.DBTX, node *model.StoryNode) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.nextNodeID++
	node.ID = f.s.nextNodeID
	stored := *node
	if stored.Options == nil {
		stored.Options = []model.StoryOption{}
	}
	f.s.nodes[node.ID] = stored
	return node.ID, nil
}

func (f *fakeNodeRepo) UpdateOptions(_ context.Context, _ repository.DBTX, nodeID int64, options []model.StoryOption) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	node, ok := f.s.nodes[nodeID]
	if !ok {
		return model.ErrNotFound
	}
	node.Options = options
	f.s.nodes[nodeID] = node
	return nil
}

func (f *fakeNodeRepo) ListByStoryID(_ context.Context, _ repository.DBTX, storyID int64) ([]model.StoryNode, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var nodes []model.StoryNode
	for _, node := range f.s.nodes {
		if node.StoryID == storyID {
			nodes = append(nodes, node)
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes, nil
}

// fakeJobRepo enforces the same forward-only transitions the SQL
// queries do and records every status a job passes through.
type fakeJobRepo struct{ s *memStore }

func (f *fakeJobRepo) Create(_ context.Context, _ repository.DBTX, job *model.StoryJob) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if job.Status == "" {
		job.Status = model.JobStatusPending
	}
	job.CreatedAt = time.Now()
	f.s.jobs[job.JobID] = *job
	f.s.jobHistory[job.JobID] = append(f.s.jobHistory[job.JobID], job.Status)
	return nil
}

func (f *fakeJobRepo) GetByJobID(_ context.Context, _ repository.DBTX, jobID string) (*model.StoryJob, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	job, ok := f.s.jobs[jobID]
	if !ok {
		return nil, model.ErrJobNotFound
	}
	return &job, nil
}

func (f *fakeJobRepo) MarkProcessing(_ context.Context, _ repository.DBTX, jobID string) error {
	return f.transition(jobID, model.JobStatusProcessing, model.JobStatusPending)
}

func (f *fakeJobRepo) MarkCompleted(_ context.Context, _ repository.DBTX, jobID string, storyID int64) error {
	if err := f.transition(jobID, model.JobStatusCompleted, model.JobStatusProcessing); err != nil {
		return err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	job := f.s.jobs[jobID]
	job.StoryID = &storyID
	now := time.Now()
	job.CompletedAt = &now
	f.s.jobs[jobID] = job
	return nil
}

func (f *fakeJobRepo) MarkFailed(_ context.Context, _ repository.DBTX, jobID string, errMsg string) error {
	if err := f.transition(jobID, model.JobStatusFailed, model.JobStatusPending, model.JobStatusProcessing); err != nil {
		return err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	job := f.s.jobs[jobID]
	job.Error = &errMsg
	now := time.Now()
	job.CompletedAt = &now
	f.s.jobs[jobID] = job
	return nil
}

func (f *fakeJobRepo) transition(jobID string, to model.JobStatus, from ...model.JobStatus) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	job, ok := f.s.jobs[jobID]
	if !ok {
		return model.ErrJobNotFound
	}
	allowed := false
	for _, status := range from {
		if job.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return model.ErrJobNotFound
	}
	job.Status = to
	f.s.jobs[jobID] = job
	f.s.jobHistory[jobID] = append(f.s.jobHistory[jobID], to)
	return nil
}

// fakeTxManager runs the function directly; the fakes ignore the
// querier argument entirely.
type fakeTxManager struct{}

func (fakeTxManager) ExecuteInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// syncRunner executes submitted tasks inline so tests observe the
// finished state without waiting.
type syncRunner struct{}

func (syncRunner) Submit(fn taskrunner.TaskFunc) error {
	fn(context.Background())
	return nil
}

type failingRunner struct{}

func (failingRunner) Submit(taskrunner.TaskFunc) error {
	return errors.New("maximum number of concurrent tasks reached")
}

func newTestService(client service.CompletionClient, runner service.TaskSubmitter) (service.StoryService, *memStore) {
	store := newMemStore()
	return service.NewStoryService(
		nil,
		fakeTxManager{},
		&fakeStoryRepo{s: store},
		&fakeNodeRepo{s: store},
		&fakeJobRepo{s: store},
		client,
		runner,
		zap.NewNop(),
	), store
}

const lostCaveResponse = "Sure, here is your story!\n```json\n" + `{
  "title": "The Lost Cave",
  "rootNode": {
    "content": "You stand at the mouth of a dark cave.",
    "options": [
      {
        "text": "Enter the cave",
        "nextNode": {
          "content": "You find a chest of gold.",
          "isEnding": true,
          "isWinningEnding": true
        }
      },
      {
        "text": "Walk away",
        "nextNode": {
          "content": "You go home empty-handed.",
          "isEnding": true
        }
      }
    ]
  }
}` + "\n```"

func TestStartGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("successful pipeline completes the job and persists the tree", func(t *testing.T) {
		client := mocks.NewMockCompletionClient(t)
		client.On("GenerateStoryCompletion", mock.Anything, "a lost cave").
			Return(lostCaveResponse, nil).Once()

		svc, store := newTestService(client, syncRunner{})

		job, err := svc.StartGeneration(ctx, "a lost cave", "session-1")
		require.NoError(t, err)
		require.NotEmpty(t, job.JobID)

		final, err := svc.GetJob(ctx, job.JobID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusCompleted, final.Status)
		require.NotNil(t, final.StoryID)
		assert.NotNil(t, final.CompletedAt)
		assert.Nil(t, final.Error)
		assert.Equal(t,
			[]model.JobStatus{model.JobStatusPending, model.JobStatusProcessing, model.JobStatusCompleted},
			store.jobHistory[job.JobID])

		story, err := svc.GetCompleteStory(ctx, *final.StoryID)
		require.NoError(t, err)
		assert.Equal(t, "The Lost Cave", story.Title)
		assert.Equal(t, "session-1", story.SessionID)
		require.Len(t, story.AllNodes, 3)

		root := story.RootNode
		assert.Equal(t, "You stand at the mouth of a dark cave.", root.Content)
		assert.False(t, root.IsEnding)
		require.Len(t, root.Options, 2)

		winning, ok := story.AllNodes[root.Options[0].NodeID]
		require.True(t, ok)
		assert.Equal(t, "Enter the cave", root.Options[0].Text)
		assert.True(t, winning.IsEnding)
		assert.True(t, winning.IsWinningEnding)
		assert.Empty(t, winning.Options)

		losing, ok := story.AllNodes[root.Options[1].NodeID]
		require.True(t, ok)
		assert.True(t, losing.IsEnding)
		assert.False(t, losing.IsWinningEnding)

		client.AssertExpectations(t)
	})

	t.Run("malformed output fails the job and persists nothing", func(t *testing.T) {
		client := mocks.NewMockCompletionClient(t)
		client.On("GenerateStoryCompletion", mock.Anything, mock.Anything).
			Return("Once upon a time there was a cave, the end.", nil).Once()

		svc, store := newTestService(client, syncRunner{})

		job, err := svc.StartGeneration(ctx, "a lost cave", "session-1")
		require.NoError(t, err)

		final, err := svc.GetJob(ctx, job.JobID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusFailed, final.Status)
		assert.Nil(t, final.StoryID)
		require.NotNil(t, final.Error)
		assert.Contains(t, *final.Error, "invalid model output")
		assert.Equal(t,
			[]model.JobStatus{model.JobStatusPending, model.JobStatusProcessing, model.JobStatusFailed},
			store.jobHistory[job.JobID])

		assert.Empty(t, store.stories)
		assert.Empty(t, store.nodes)
	})

	t.Run("model invocation error fails the job", func(t *testing.T) {
		client := mocks.NewMockCompletionClient(t)
		client.On("GenerateStoryCompletion", mock.Anything, mock.Anything).
			Return(nil, errors.New("upstream unavailable")).Once()

		svc, _ := newTestService(client, syncRunner{})

		job, err := svc.StartGeneration(ctx, "a lost cave", "session-1")
		require.NoError(t, err)

		final, err := svc.GetJob(ctx, job.JobID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusFailed, final.Status)
		require.NotNil(t, final.Error)
		assert.Contains(t, *final.Error, "upstream unavailable")
	})

	t.Run("unschedulable task fails the job immediately", func(t *testing.T) {
		client := mocks.NewMockCompletionClient(t)
		svc, store := newTestService(client, failingRunner{})

		_, err := svc.StartGeneration(ctx, "a lost cave", "session-1")
		require.Error(t, err)

		require.Len(t, store.jobs, 1)
		for _, job := range store.jobs {
			assert.Equal(t, model.JobStatusFailed, job.Status)
		}
	})
}

func TestRunGenerationJob(t *testing.T) {
	t.Run("unknown job aborts without side effects", func(t *testing.T) {
		client := mocks.NewMockCompletionClient(t)
		svc, store := newTestService(client, syncRunner{})

		svc.RunGenerationJob(context.Background(), "no-such-job")

		assert.Empty(t, store.stories)
		assert.Empty(t, store.nodes)
		client.AssertNotCalled(t, "GenerateStoryCompletion", mock.Anything, mock.Anything)
	})
}

func TestGenerationRoundTrip(t *testing.T) {
	// A deeper asymmetric tree: the persisted story must reproduce the
	// parsed tree exactly, option order included.
	tree := &model.StoryNodeLLM{
		Content: "level 0",
		Options: []model.StoryOptionLLM{
			{Text: "left", NextNode: &model.StoryNodeLLM{
				Content: "level 1 left",
				Options: []model.StoryOptionLLM{
					{Text: "deeper", NextNode: &model.StoryNodeLLM{
						Content: "level 2", IsEnding: true, IsWinningEnding: true,
					}},
					{Text: "stop", NextNode: &model.StoryNodeLLM{
						Content: "level 2 early end", IsEnding: true,
					}},
				},
			}},
			{Text: "right", NextNode: &model.StoryNodeLLM{
				Content: "level 1 right", IsEnding: true,
			}},
		},
	}
	payload, err := json.Marshal(model.StoryLLMResponse{Title: "Round Trip", RootNode: tree})
	require.NoError(t, err)

	client := mocks.NewMockCompletionClient(t)
	client.On("GenerateStoryCompletion", mock.Anything, mock.Anything).
		Return(string(payload), nil).Once()

	svc, store := newTestService(client, syncRunner{})
	ctx := context.Background()

	job, err := svc.StartGeneration(ctx, "round trip", "session-rt")
	require.NoError(t, err)

	final, err := svc.GetJob(ctx, job.JobID)
	require.NoError(t, err)
	require.Equal(t, model.JobStatusCompleted, final.Status)
	require.NotNil(t, final.StoryID)

	story, err := svc.GetCompleteStory(ctx, *final.StoryID)
	require.NoError(t, err)
	assert.Equal(t, "Round Trip", story.Title)
	assert.Len(t, story.AllNodes, 5)

	rootCount := 0
	for _, node := range store.nodes {
		if node.IsRoot {
			rootCount++
		}
	}
	assert.Equal(t, 1, rootCount)

	assertSubtreeEqual(t, tree, story.RootNode, story.AllNodes)
}

// assertSubtreeEqual walks the expected tree and the persisted node
// graph in lockstep.
func assertSubtreeEqual(t *testing.T, expected *model.StoryNodeLLM, got model.CompleteStoryNodeResponse, all map[int64]model.CompleteStoryNodeResponse) {
	t.Helper()

	assert.Equal(t, expected.Content, got.Content)
	assert.Equal(t, expected.IsEnding, got.IsEnding)
	assert.Equal(t, expected.IsWinningEnding, got.IsWinningEnding)
	require.Len(t, got.Options, len(expected.Options))

	for i, opt := range expected.Options {
		assert.Equal(t, opt.Text, got.Options[i].Text)
		child, ok := all[got.Options[i].NodeID]
		require.True(t, ok, "option %q points to a missing node", opt.Text)
		assertSubtreeEqual(t, opt.NextNode, child, all)
	}
}

func TestGetCompleteStory(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown story", func(t *testing.T) {
		svc, _ := newTestService(mocks.NewMockCompletionClient(t), syncRunner{})

		_, err := svc.GetCompleteStory(ctx, 12345)
		assert.ErrorIs(t, err, model.ErrStoryNotFound)
	})

	t.Run("story without a root node", func(t *testing.T) {
		svc, store := newTestService(mocks.NewMockCompletionClient(t), syncRunner{})
		store.stories[1] = model.Story{ID: 1, Title: "Broken", SessionID: "s"}
		store.nodes[1] = model.StoryNode{ID: 1, StoryID: 1, Content: "orphan", Options: []model.StoryOption{}}

		_, err := svc.GetCompleteStory(ctx, 1)
		assert.ErrorIs(t, err, model.ErrRootNotFound)
	})
}

func TestListSessionStories(t *testing.T) {
	svc, store := newTestService(mocks.NewMockCompletionClient(t), syncRunner{})
	store.stories[1] = model.Story{ID: 1, Title: "First", SessionID: "mine"}
	store.stories[2] = model.Story{ID: 2, Title: "Other", SessionID: "theirs"}
	store.stories[3] = model.Story{ID: 3, Title: "Second", SessionID: "mine"}

	summaries, err := svc.ListSessionStories(context.Background(), "mine")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Second", summaries[0].Title)
	assert.Equal(t, "First", summaries[1].Title)
}
