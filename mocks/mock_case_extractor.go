package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gpcaffidavit/internal/port"
)

// MockCaseExtractor is a mock implementation of port.CaseExtractor.
type MockCaseExtractor struct {
	mock.Mock
}

func (m *MockCaseExtractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ExtractOutput), args.Error(1)
}
