package audit

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
)

// MockLogger is a mock implementation of ports.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debugf(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Infof(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Warnf(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Errorf(ctx context.Context, err error, format string, args ...any) {
	m.Called(ctx, err, format, args)
}

func (m *MockLogger) WithFields(fields map[string]any) ports.Logger {
	args := m.Called(fields)
	return args.Get(0).(ports.Logger)
}

// NewTestLogger creates a MockLogger that accepts any call.
func NewTestLogger() *MockLogger {
	mockLogger := new(MockLogger)
	mockLogger.On("WithFields", mock.Anything).Maybe().Return(mockLogger)
	mockLogger.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	mockLogger.On("Infof", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	mockLogger.On("Warnf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	mockLogger.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	return mockLogger
}
