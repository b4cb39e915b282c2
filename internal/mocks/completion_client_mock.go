package mocks

import (
	"context"

	"adventure-server/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockCompletionClient is a mock type for the CompletionClient type
type MockCompletionClient struct {
	mock.Mock
}

// GenerateStoryCompletion provides a mock function with given fields: ctx, theme
func (_m *MockCompletionClient) GenerateStoryCompletion(ctx context.Context, theme string) (interface{}, error) {
	ret := _m.Called(ctx, theme)

	var r0 interface{}
	if rf, ok := ret.Get(0).(func(context.Context, string) interface{}); ok {
		r0 = rf(ctx, theme)
	} else {
		r0 = ret.Get(0)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, theme)
	} else {
		err := ret.Error(1)
		if err != nil {
			r1 = err
		}
	}

	return r0, r1
}

// NewMockCompletionClient creates a new instance of MockCompletionClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockCompletionClient(t interface {
	mock.TestingT
	Helper()
}) *MockCompletionClient {
	m := &MockCompletionClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.CompletionClient = (*MockCompletionClient)(nil)
