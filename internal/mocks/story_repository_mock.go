package mocks

import (
	"context"

	"adventure-server/internal/model"
	"adventure-server/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockStoryRepository is a mock type for the StoryRepository type
type MockStoryRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, querier, story
func (_m *MockStoryRepository) Create(ctx context.Context, querier repository.DBTX, story *model.Story) (int64, error) {
	ret := _m.Called(ctx, querier, story)

	var r0 int64
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, *model.Story) int64); ok {
		r0 = rf(ctx, querier, story)
	} else {
		r0 = ret.Get(0).(int64)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, repository.DBTX, *model.Story) error); ok {
		r1 = rf(ctx, querier, story)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// GetByID provides a mock function with given fields: ctx, querier, id
func (_m *MockStoryRepository) GetByID(ctx context.Context, querier repository.DBTX, id int64) (*model.Story, error) {
	ret := _m.Called(ctx, querier, id)

	var r0 *model.Story
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, int64) *model.Story); ok {
		r0 = rf(ctx, querier, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.Story)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, repository.DBTX, int64) error); ok {
		r1 = rf(ctx, querier, id)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// ListBySession provides a mock function with given fields: ctx, querier, sessionID
func (_m *MockStoryRepository) ListBySession(ctx context.Context, querier repository.DBTX, sessionID string) ([]model.StorySummary, error) {
	ret := _m.Called(ctx, querier, sessionID)

	var r0 []model.StorySummary
	if rf, ok := ret.Get(0).(func(context.Context, repository.DBTX, string) []model.StorySummary); ok {
		r0 = rf(ctx, querier, sessionID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.StorySummary)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, repository.DBTX, string) error); ok {
		r1 = rf(ctx, querier, sessionID)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// NewMockStoryRepository creates a new instance of MockStoryRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockStoryRepository(t interface {
	mock.TestingT
	Helper()
}) *MockStoryRepository {
	m := &MockStoryRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.StoryRepository = (*MockStoryRepository)(nil)
