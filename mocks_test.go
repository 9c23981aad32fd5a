package vitals_test

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-vitals"
)

// testIdentity implements vitals.Identity
type testIdentity struct {
	id        string
	email     string
	firstName string
	lastName  string
}

func (t testIdentity) ID() string        { return t.id }
func (t testIdentity) Email() string     { return t.email }
func (t testIdentity) FirstName() string { return t.firstName }
func (t testIdentity) LastName() string  { return t.lastName }

// MockIdentityProvider implements vitals.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, email, password string) (vitals.Identity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(vitals.Identity), args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (vitals.Identity, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(vitals.Identity), args.Error(1)
}

// MockUserStore implements vitals.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*vitals.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vitals.User), args.Error(1)
}

func (m *MockUserStore) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*vitals.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vitals.User), args.Error(1)
}

func (m *MockUserStore) TrackSuccessfulLogin(ctx context.Context, user *vitals.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockUsers implements vitals.Users. The embedded interface covers the
// generic repository surface; only the methods under test are stubbed.
type MockUsers struct {
	repository.Repository[*vitals.User]
	mock.Mock
}

func (m *MockUsers) Register(ctx context.Context, user *vitals.User) (*vitals.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vitals.User), args.Error(1)
}

func (m *MockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *vitals.User) (*vitals.User, error) {
	args := m.Called(ctx, tx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vitals.User), args.Error(1)
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*vitals.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vitals.User), args.Error(1)
}

func (m *MockUsers) GetByProviderID(ctx context.Context, providerID string) (*vitals.User, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vitals.User), args.Error(1)
}

func (m *MockUsers) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*vitals.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vitals.User), args.Error(1)
}

func (m *MockUsers) TrackSuccessfulLogin(ctx context.Context, user *vitals.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsers) TrackSuccessfulLoginTx(ctx context.Context, tx bun.IDB, user *vitals.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUsers) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRepositoryManager implements vitals.RepositoryManager backed by mock
// repositories. RunInTx executes the callback with a zero transaction so
// service-level flows run without a database.
type MockRepositoryManager struct {
	UsersRepo *MockUsers
}

func (m *MockRepositoryManager) Users() vitals.Users       { return m.UsersRepo }
func (m *MockRepositoryManager) Readings() vitals.Readings { return nil }
func (m *MockRepositoryManager) Images() vitals.Images     { return nil }
func (m *MockRepositoryManager) Albums() vitals.Albums     { return nil }
func (m *MockRepositoryManager) Validate() error           { return nil }
func (m *MockRepositoryManager) MustValidate()             {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}
