package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicelens/internal/domain"
	"invoicelens/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Process(ctx context.Context, input service.ProcessInput) (*domain.DocumentResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentResult), args.Error(1)
}
