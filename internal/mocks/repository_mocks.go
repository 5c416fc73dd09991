// Package mocks contains testify mocks of the domain interfaces for use in tests.
package mocks

import (
	"context"
	"testing"
	"time"

	"purposepay/internal/domain/entity"
	"purposepay/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock whose expectations are asserted on cleanup.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) CreateCredential(ctx context.Context, cred *entity.Credential) error {
	return m.Called(ctx, cred).Error(0)
}

func (m *MockUserRepository) FindCredentialByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Credential), args.Error(1)
}

// MockSessionRepository mocks repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

// NewMockSessionRepository creates a mock whose expectations are asserted on cleanup.
func NewMockSessionRepository(t *testing.T) *MockSessionRepository {
	m := &MockSessionRepository{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionRepository) Replace(ctx context.Context, token *entity.SessionToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockSessionRepository) FindByTokenHash(ctx context.Context, hash string) (*entity.SessionToken, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.SessionToken), args.Error(1)
}

func (m *MockSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// MockVendorRepository mocks repository.VendorRepository.
type MockVendorRepository struct {
	mock.Mock
}

// NewMockVendorRepository creates a mock whose expectations are asserted on cleanup.
func NewMockVendorRepository(t *testing.T) *MockVendorRepository {
	m := &MockVendorRepository{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockVendorRepository) Create(ctx context.Context, profile *entity.VendorProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VendorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.VendorProfile), args.Error(1)
}

func (m *MockVendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VendorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.VendorProfile), args.Error(1)
}

func (m *MockVendorRepository) Update(ctx context.Context, profile *entity.VendorProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockVendorRepository) List(ctx context.Context, filter repository.VendorListFilter) ([]*entity.VendorProfile, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.VendorProfile), args.Error(1)
}

func (m *MockVendorRepository) UpdateState(ctx context.Context, id uuid.UUID, from, to entity.VerificationState, reviewedBy *uuid.UUID, approvedAt *time.Time) error {
	return m.Called(ctx, id, from, to, reviewedBy, approvedAt).Error(0)
}

func (m *MockVendorRepository) DecrementBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *MockVendorRepository) CreditBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *MockVendorRepository) AddDocument(ctx context.Context, doc *entity.VerificationDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockVendorRepository) DeleteDocument(ctx context.Context, profileID, docID uuid.UUID) error {
	return m.Called(ctx, profileID, docID).Error(0)
}

func (m *MockVendorRepository) AddLocation(ctx context.Context, loc *entity.BusinessLocation) error {
	return m.Called(ctx, loc).Error(0)
}

func (m *MockVendorRepository) DeleteLocation(ctx context.Context, profileID, locID uuid.UUID) error {
	return m.Called(ctx, profileID, locID).Error(0)
}

// MockPayoutRepository mocks repository.PayoutRepository.
type MockPayoutRepository struct {
	mock.Mock
}

// NewMockPayoutRepository creates a mock whose expectations are asserted on cleanup.
func NewMockPayoutRepository(t *testing.T) *MockPayoutRepository {
	m := &MockPayoutRepository{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPayoutRepository) Create(ctx context.Context, payout *entity.PayoutRequest) error {
	return m.Called(ctx, payout).Error(0)
}

func (m *MockPayoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PayoutRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.PayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) FindByVendorProfileID(ctx context.Context, profileID uuid.UUID) ([]*entity.PayoutRequest, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.PayoutRequest), args.Error(1)
}

// StubRepositoryFactory hands out fixed repositories, standing in for a
// transaction-bound factory.
type StubRepositoryFactory struct {
	Users    repository.UserRepository
	Sessions repository.SessionRepository
	Vendors  repository.VendorRepository
	Payouts  repository.PayoutRepository
}

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository       { return f.Users }
func (f *StubRepositoryFactory) SessionRepo() repository.SessionRepository { return f.Sessions }
func (f *StubRepositoryFactory) VendorRepo() repository.VendorRepository   { return f.Vendors }
func (f *StubRepositoryFactory) PayoutRepo() repository.PayoutRepository   { return f.Payouts }

// StubTransactionManager runs the transactional function against the stub
// factory without any real transaction semantics.
type StubTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (s *StubTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s.Factory)
}
