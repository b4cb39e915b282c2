package mocks

import (
	"context"

	"adventure-server/internal/model"
	"adventure-server/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockStoryJobRepository is a mock type for the StoryJobRepository type
type MockStoryJobRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, querier, job
func (_m *MockStoryJobRepository) Create(ctx context.Context, querier repository.DBTX, job *model.StoryJob) error {
	ret := _m.Called(ctx, querier, job)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, *model.StoryJob) error); ok {
		r0 = rf(ctx, querier, job)
	} else {
		err := ret.Error(0)
		if err != nil {
			r0 = err
		}
	}

	return r0
}

// GetByJobID provides a mock function with given fields: ctx, querier, jobID
func (_m *MockStoryJobRepository) GetByJobID(ctx context.Context, querier repository.DBTX, jobID string) (*model.StoryJob, error) {
	ret := _m.Called(ctx, querier, jobID)

	var r0 *model.StoryJob
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, string) *model.StoryJob); ok {
		r0 = rf(ctx, querier, jobID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.StoryJob)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, repository.DBTX, string) error); ok {
		r1 = rf(ctx, querier, jobID)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// MarkProcessing provides a mock function with given fields: ctx, querier, jobID
func (_m *MockStoryJobRepository) MarkProcessing(ctx context.Context, querier repository.DBTX, jobID string) error {
	ret := _m.Called(ctx, querier, jobID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, string) error); ok {
		r0 = rf(ctx, querier, jobID)
	} else {
		err := ret.Error(0)
		if err != nil {
			r0 = err
		}
	}

	return r0
}

// MarkCompleted provides a mock function with given fields: ctx, querier, jobID, storyID
func (_m *MockStoryJobRepository) MarkCompleted(ctx context.Context, querier repository.DBTX, jobID string, storyID int64) error {
	ret := _m.Called(ctx, querier, jobID, storyID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, string, int64) error); ok {
		r0 = rf(ctx, querier, jobID, storyID)
	} else {
		err := ret.Error(0)
		if err != nil {
			r0 = err
		}
	}

	return r0
}

// MarkFailed provides a mock function with given fields: ctx, querier, jobID, errMsg
func (_m *MockStoryJobRepository) MarkFailed(ctx context.Context, querier repository.DBTX, jobID string, errMsg string) error {
	ret := _m.Called(ctx, querier, jobID, errMsg)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, string, string) error); ok {
		r0 = rf(ctx, querier, jobID, errMsg)
	} else {
		err := ret.Error(0)
		if err != nil {
			r0 = err
		}
	}

	return r0
}

// NewMockStoryJobRepository creates a new instance of MockStoryJobRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockStoryJobRepository(t interface {
	mock.TestingT
	Helper()
}) *MockStoryJobRepository {
	m := &MockStoryJobRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.StoryJobRepository = (*MockStoryJobRepository)(nil)
