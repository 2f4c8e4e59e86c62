package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gpcaffidavit/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, obj port.Object) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *MockObjectStorage) Get(ctx context.Context, ref port.ObjectRef) ([]byte, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStorage) PresignGet(ctx context.Context, ref port.ObjectRef, ttl time.Duration) (string, error) {
	args := m.Called(ctx, ref, ttl)
	return args.String(0), args.Error(1)
}
