package mocks

import (
	"context"

	"adventure-server/internal/model"
	"adventure-server/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockStoryNodeRepository is a mock type for the StoryNodeRepository type
type MockStoryNodeRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, querier, node
func (_m *MockStoryNodeRepository) Create(ctx context.Context, querier repository.DBTX, node *model.StoryNode) (int64, error) {
	ret := _m.Called(ctx, querier, node)

	var r0 int64
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, *model.StoryNode) int64); ok {
		r0 = rf(ctx, querier, node)
	} else {
		r0 = ret.Get(0).(int64)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, repository.DBTX, *model.StoryNode) error); ok {
		r1 = rf(ctx, querier, node)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// UpdateOptions provides a mock function with given fields: ctx, querier, nodeID, options
func (_m *MockStoryNodeRepository) UpdateOptions(ctx context.Context, querier repository.DBTX, nodeID int64, options []model.StoryOption) error {
	ret := _m.Called(ctx, querier, nodeID, options)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, int64, []model.StoryOption) error); ok {
		r0 = rf(ctx, querier, nodeID, options)
	} else {
		err := ret.Error(0)
		if err != nil {
			r0 = err
		}
	}

	return r0
}

// ListByStoryID provides a mock function with given fields: ctx, querier, storyID
func (_m *MockStoryNodeRepository) ListByStoryID(ctx context.Context, querier repository.DBTX, storyID int64) ([]model.StoryNode, error) {
	ret := _m.Called(ctx, querier, storyID)

	var r0 []model.StoryNode
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, int64) []model.StoryNode); ok {
		r0 = rf(ctx, querier, storyID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.StoryNode)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, repository.DBTX, int64) error); ok {
		r1 = rf(ctx, querier, storyID)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// NewMockStoryNodeRepository creates a new instance of MockStoryNodeRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockStoryNodeRepository(t interface {
	mock.TestingT
	Helper()
}) *MockStoryNodeRepository {
	m := &MockStoryNodeRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.StoryNodeRepository = (*MockStoryNodeRepository)(nil)
