package mocks

import (
	"context"

	"adventure-server/internal/model"
	"adventure-server/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockStoryService is a mock type for the StoryService type
type MockStoryService struct {
	mock.Mock
}

// StartGeneration provides a mock function with given fields: ctx, theme, sessionID
func (_m *MockStoryService) StartGeneration(ctx context.Context, theme string, sessionID string) (*model.StoryJob, error) {
	ret := _m.Called(ctx, theme, sessionID)

	var r0 *model.StoryJob
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *model.StoryJob); ok {
		r0 = rf(ctx, theme, sessionID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.StoryJob)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, theme, sessionID)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// RunGenerationJob provides a mock function with given fields: ctx, jobID
func (_m *MockStoryService) RunGenerationJob(ctx context.Context, jobID string) {
	_m.Called(ctx, jobID)
}

// GetJob provides a mock function with given fields: ctx, jobID
func (_m *MockStoryService) GetJob(ctx context.Context, jobID string) (*model.StoryJob, error) {
	ret := _m.Called(ctx, jobID)

	var r0 *model.StoryJob
	if rf, ok := ret.Get(0).(func(context.Context, string) *model.StoryJob); ok {
		r0 = rf(ctx, jobID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.StoryJob)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, jobID)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// GetCompleteStory provides a mock function with given fields: ctx, storyID
func (_m *MockStoryService) GetCompleteStory(ctx context.Context, storyID int64) (*model.CompleteStoryResponse, error) {
	ret := _m.Called(ctx, storyID)

	var r0 *model.CompleteStoryResponse
	if rf, ok := ret.Get(0).(func(context.Context, int64) *model.CompleteStoryResponse); ok {
		r0 = rf(ctx, storyID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.CompleteStoryResponse)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, storyID)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// ListSessionStories provides a mock function with given fields: ctx, sessionID
func (_m *MockStoryService) ListSessionStories(ctx context.Context, sessionID string) ([]model.StorySummary, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 []model.StorySummary
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.StorySummary); ok {
		r0 = rf(ctx, sessionID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.StorySummary)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, sessionID)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// NewMockStoryService creates a new instance of MockStoryService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockStoryService(t interface {
	mock.TestingT
	Helper()
}) *MockStoryService {
	m := &MockStoryService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.StoryService = (*MockStoryService)(nil)
