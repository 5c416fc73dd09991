package mocks

import (
	"context"
	"testing"

	"purposepay/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock whose expectations are asserted on cleanup.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockSessionTokenGenerator mocks service.SessionTokenGenerator.
type MockSessionTokenGenerator struct {
	mock.Mock
}

// NewMockSessionTokenGenerator creates a mock whose expectations are asserted on cleanup.
func NewMockSessionTokenGenerator(t *testing.T) *MockSessionTokenGenerator {
	m := &MockSessionTokenGenerator{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionTokenGenerator) Generate() (string, string, error) {
	args := m.Called()

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockSessionTokenGenerator) HashToken(raw string) string {
	return m.Called(raw).String(0)
}

// MockEventPublisher mocks service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock whose expectations are asserted on cleanup.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishVendorEvent(ctx context.Context, event *service.VendorEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}
