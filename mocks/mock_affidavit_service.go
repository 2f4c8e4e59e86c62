package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gpcaffidavit/internal/domain"
)

// MockAffidavitService is a mock implementation of service.AffidavitService.
type MockAffidavitService struct {
	mock.Mock
}

func (m *MockAffidavitService) Generate(ctx context.Context, req *domain.AffidavitRequest) (*domain.GeneratedAffidavit, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedAffidavit), args.Error(1)
}

func (m *MockAffidavitService) GenerateForCase(ctx context.Context, c *domain.ExtractedCase) ([]domain.GeneratedAffidavit, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedAffidavit), args.Error(1)
}

func (m *MockAffidavitService) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
