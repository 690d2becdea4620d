package output

import "github.com/stretchr/testify/mock"

// MockSink is a mock implementation of Sink using testify/mock.
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Deliver(text string) error {
	args := m.Called(text)
	return args.Error(0)
}
