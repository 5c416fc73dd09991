// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "purposepay/internal/delivery/context"
	"purposepay/internal/domain/entity"
	domainerrors "purposepay/internal/domain/errors"
	"purposepay/internal/domain/policy"
	"purposepay/internal/domain/repository"
	"purposepay/internal/domain/service"
	"purposepay/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      service.PasswordHasher
	tokenGen    service.SessionTokenGenerator
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	Hasher      service.PasswordHasher
	TokenGen    service.SessionTokenGenerator
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		sessionRepo: params.SessionRepo,
		hasher:      params.Hasher,
		tokenGen:    params.TokenGen,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the account, its credential and its first session token
// in one transaction, so a half-registered account can never log in.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email), slog.Bool("vendor", input.Vendor))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	rawToken, tokenHash, err := srv.tokenGen.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session token during registration")
	}

	roles := entity.Roles{entity.RoleCustomer}
	if input.Vendor {
		roles = append(roles, entity.RoleVendor)
	}

	newUser := &entity.User{
		Email: input.Email,
		Name:  input.Name,
		Roles: roles,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		cred := &entity.Credential{
			UserID:       newUser.ID,
			PasswordHash: hashedPassword,
		}
		if err := repoFactory.UserRepo().CreateCredential(ctx, cred); err != nil {
			return errors.Wrap(err, "failed to create credential during registration")
		}

		token := &entity.SessionToken{
			UserID:    newUser.ID,
			TokenHash: tokenHash,
			IssuedAt:  time.Now().UTC(),
		}
		if err := repoFactory.SessionRepo().Replace(ctx, token); err != nil {
			return errors.Wrap(err, "failed to store session token during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{User: newUser, Token: rawToken}, nil
}

// Login verifies the credential and replaces the live session token. The
// replacement is a single upsert, so the previous token stops resolving
// exactly when the new one starts.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown email", slog.String("email", input.Email))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	cred, err := srv.userRepo.FindCredentialByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find credential during login")
	}

	if !srv.hasher.Check(input.Password, cred.PasswordHash) {
		srv.log(ctx).Warn("Login attempt with wrong password", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	rawToken, tokenHash, err := srv.tokenGen.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session token during login")
	}

	token := &entity.SessionToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		IssuedAt:  time.Now().UTC(),
	}
	if err := srv.sessionRepo.Replace(ctx, token); err != nil {
		return nil, errors.Wrap(err, "failed to replace session token during login")
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Token: rawToken}, nil
}

// Authenticate resolves a raw token to its account. Every failure mode
// collapses into ErrUnauthenticated so callers cannot probe which part
// of the lookup failed.
func (srv *accountService) Authenticate(ctx context.Context, rawToken string) (*entity.User, error) {
	if rawToken == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	tokenHash := srv.tokenGen.HashToken(rawToken)

	session, err := srv.sessionRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrUnauthenticated
		}

		return nil, errors.Wrap(err, "failed to resolve session token")
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated
		}

		return nil, errors.Wrap(err, "failed to load user for session")
	}

	return user, nil
}

// Logout revokes the caller's session. Revoking an already revoked
// session succeeds, so retried logouts stay harmless.
func (srv *accountService) Logout(ctx context.Context, identity *entity.User) error {
	if identity == nil {
		return domainerrors.ErrUnauthenticated
	}

	if err := srv.sessionRepo.DeleteByUserID(ctx, identity.ID); err != nil {
		return errors.Wrap(err, "failed to delete session token during logout")
	}

	srv.log(ctx).Info("Logout completed", slog.Any("userID", identity.ID))

	return nil
}

// GetAccount returns the caller's own account.
func (srv *accountService) GetAccount(ctx context.Context, identity *entity.User) (*entity.User, error) {
	if identity == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	if err := policy.Authorize(identity, policy.OpAccountRead, policy.Resource{OwnerID: identity.ID.String()}); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	return user, nil
}

// UpdateAccount modifies the caller's own account.
func (srv *accountService) UpdateAccount(ctx context.Context, identity *entity.User, input *usecase.UpdateAccountInput) (*entity.User, error) {
	if identity == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	if err := policy.Authorize(identity, policy.OpAccountUpdate, policy.Resource{OwnerID: identity.ID.String()}); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load account for update")
	}

	user.Name = input.Name
	if input.Email != "" {
		user.Email = input.Email
	}
	// Owners may toggle their vendor capability; staff stays out of reach.
	if input.Vendor != nil {
		if *input.Vendor {
			user.Roles = user.Roles.With(entity.RoleVendor)
		} else {
			user.Roles = user.Roles.Without(entity.RoleVendor)
		}
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update account")
	}

	srv.log(ctx).Debug("Account updated", slog.Any("userID", user.ID))

	return user, nil
}
