package mocks

import (
	"github.com/stretchr/testify/mock"

	"invoicelens/internal/domain"
)

// MockPageSplitter is a mock implementation of port.PageSplitter.
type MockPageSplitter struct {
	mock.Mock
}

func (m *MockPageSplitter) Split(data []byte) ([]domain.PageImage, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PageImage), args.Error(1)
}
