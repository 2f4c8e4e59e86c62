package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTemplateSource is a mock implementation of port.TemplateSource.
type MockTemplateSource struct {
	mock.Mock
}

func (m *MockTemplateSource) Load(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockTemplateSource) Describe() string {
	args := m.Called()
	return args.String(0)
}
