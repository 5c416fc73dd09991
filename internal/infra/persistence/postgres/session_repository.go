package postgres

import (
	"context"

	"purposepay/internal/domain/entity"
	domainerrors "purposepay/internal/domain/errors"
	"purposepay/internal/domain/repository"
	"purposepay/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionRepository implements the repository.SessionRepository interface using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{
		db: db,
	}
}

// Replace atomically installs the given token as the single live session
// for its user. Any previously stored token for the same user is
// overwritten in the same statement, so the old token stops resolving the
// moment the new one is persisted.
func (repo *sessionRepository) Replace(ctx context.Context, token *entity.SessionToken) error {
	tokenM := fromSessionTokenDomain(token)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_hash", "issued_at"}),
		}).
		Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to replace session token")
	}

	return nil
}

// FindByTokenHash resolves a stored session by the hash of the presented token.
func (repo *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.SessionToken, error) {
	var tokenM model.SessionTokenModel

	if err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by token hash")
	}

	return toSessionTokenDomain(&tokenM), nil
}

// DeleteByUserID removes the user's live session. Deleting a user with no
// session is not an error, so logout stays idempotent.
func (repo *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.SessionTokenModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session token")
	}

	return nil
}

func toSessionTokenDomain(m *model.SessionTokenModel) *entity.SessionToken {
	return &entity.SessionToken{
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		IssuedAt:  m.IssuedAt,
	}
}

func fromSessionTokenDomain(t *entity.SessionToken) *model.SessionTokenModel {
	return &model.SessionTokenModel{
		UserID:    t.UserID,
		TokenHash: t.TokenHash,
		IssuedAt:  t.IssuedAt,
	}
}
