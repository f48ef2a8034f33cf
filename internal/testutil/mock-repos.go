package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sg-cli/internal/core/domain"
	ports "sg-cli/internal/core/ports/output"
)

// MockMetadataRepo is a mock of MetadataRepository.
type MockMetadataRepo struct {
	mock.Mock
}

func (m *MockMetadataRepo) List(ctx context.Context, filter ports.MetadataFilter) ([]*domain.MetadataRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MetadataRecord), args.Error(1)
}

func (m *MockMetadataRepo) Create(ctx context.Context, record *domain.MetadataRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockMetadataRepo) Update(ctx context.Context, record *domain.MetadataRecord) (*domain.MetadataRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetadataRecord), args.Error(1)
}

func (m *MockMetadataRepo) GetCurrentStage(ctx context.Context) (uint8, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint8), args.Error(1)
}

func (m *MockMetadataRepo) SetCurrentStage(ctx context.Context, stage uint8) (uint8, error) {
	args := m.Called(ctx, stage)
	return args.Get(0).(uint8), args.Error(1)
}

// MockMetadataFeed is a mock of MetadataFeed.
type MockMetadataFeed struct {
	mock.Mock
}

func (m *MockMetadataFeed) Fetch(ctx context.Context, source string) ([]*domain.MetadataRecord, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MetadataRecord), args.Error(1)
}

// MockSnapshotWriter is a mock of SnapshotWriter.
type MockSnapshotWriter struct {
	mock.Mock
}

func (m *MockSnapshotWriter) Write(ctx context.Context, records []*domain.MetadataRecord) (string, error) {
	args := m.Called(ctx, records)
	return args.String(0), args.Error(1)
}
