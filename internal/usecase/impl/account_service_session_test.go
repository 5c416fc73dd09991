package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"purposepay/config"
	"purposepay/internal/domain/entity"
	domainerrors "purposepay/internal/domain/errors"
	"purposepay/internal/domain/repository"
	"purposepay/internal/infra/auth"
	"purposepay/internal/mocks"
	"purposepay/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// sessionTableFake is an in-memory session store keyed by user, honoring the
// replace-on-conflict contract: storing a token supersedes any prior token
// for the same user.
type sessionTableFake struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]*entity.SessionToken
}

func newSessionTableFake() *sessionTableFake {
	return &sessionTableFake{byUser: map[uuid.UUID]*entity.SessionToken{}}
}

func (f *sessionTableFake) Replace(_ context.Context, token *entity.SessionToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *token
	f.byUser[token.UserID] = &stored

	return nil
}

func (f *sessionTableFake) FindByTokenHash(_ context.Context, hash string) (*entity.SessionToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, token := range f.byUser {
		if token.TokenHash == hash {
			snapshot := *token

			return &snapshot, nil
		}
	}

	return nil, repository.ErrSessionNotFound
}

func (f *sessionTableFake) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.byUser, userID)

	return nil
}

func (f *sessionTableFake) liveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.byUser)
}

// identityStoreFake is an in-memory user and credential store.
type identityStoreFake struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	creds map[uuid.UUID]*entity.Credential
}

func newIdentityStoreFake() *identityStoreFake {
	return &identityStoreFake{
		users: map[uuid.UUID]*entity.User{},
		creds: map[uuid.UUID]*entity.Credential{},
	}
}

func (f *identityStoreFake) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user.ID = uuid.New()
	stored := *user
	f.users[user.ID] = &stored

	return nil
}

func (f *identityStoreFake) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	snapshot := *user

	return &snapshot, nil
}

func (f *identityStoreFake) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			snapshot := *user

			return &snapshot, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *identityStoreFake) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	stored := *user
	f.users[user.ID] = &stored

	return nil
}

func (f *identityStoreFake) CreateCredential(_ context.Context, cred *entity.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *cred
	f.creds[cred.UserID] = &stored

	return nil
}

func (f *identityStoreFake) FindCredentialByUserID(_ context.Context, userID uuid.UUID) (*entity.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cred, ok := f.creds[userID]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}
	snapshot := *cred

	return &snapshot, nil
}

func createRoundTripAccountService(t *testing.T) (usecase.AccountUsecase, *sessionTableFake) {
	t.Helper()

	users := newIdentityStoreFake()
	sessions := newSessionTableFake()
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}

	svc := NewAccountService(AccountServiceParams{
		TxManager: &mocks.StubTransactionManager{
			Factory: &mocks.StubRepositoryFactory{Users: users, Sessions: sessions},
		},
		UserRepo:    users,
		SessionRepo: sessions,
		Hasher:      auth.NewBcryptHasher(cfg),
		TokenGen:    auth.NewOpaqueTokenGenerator(cfg),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, sessions
}

func TestAccountService_LoginInvalidatesExactlyOnePriorToken(t *testing.T) {
	svc, sessions := createRoundTripAccountService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &usecase.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)

	identity, err := svc.Authenticate(ctx, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, identity.ID)

	loggedIn, err := svc.Login(ctx, &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEqual(t, registered.Token, loggedIn.Token)

	// The reissue supersedes the registration token and nothing else.
	_, err = svc.Authenticate(ctx, registered.Token)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	identity, err = svc.Authenticate(ctx, loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, identity.ID)

	assert.Equal(t, 1, sessions.liveCount())
}

func TestAccountService_RoundTrip_RevokedTokenNeverResolvesAgain(t *testing.T) {
	svc, sessions := createRoundTripAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &usecase.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	loggedIn, err := svc.Login(ctx, &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	identity, err := svc.Authenticate(ctx, loggedIn.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, identity))
	assert.Equal(t, 0, sessions.liveCount())

	_, err = svc.Authenticate(ctx, loggedIn.Token)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	// Repeated logout of a revoked session stays a no-op.
	require.NoError(t, svc.Logout(ctx, identity))

	_, err = svc.Authenticate(ctx, loggedIn.Token)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestAccountService_TokensFromDistinctUsersCoexist(t *testing.T) {
	svc, sessions := createRoundTripAccountService(t)
	ctx := context.Background()

	ada, err := svc.Register(ctx, &usecase.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	grace, err := svc.Register(ctx, &usecase.RegisterInput{
		Name:     "Grace",
		Email:    "grace@example.com",
		Password: "battery staple",
	})
	require.NoError(t, err)

	// One live token per user, not per system.
	assert.Equal(t, 2, sessions.liveCount())

	_, err = svc.Authenticate(ctx, ada.Token)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, grace.Token)
	require.NoError(t, err)
}
