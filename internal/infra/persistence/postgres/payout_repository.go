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
)

// payoutRepository implements the repository.PayoutRepository interface using GORM.
type payoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository is the constructor for payoutRepository.
func NewPayoutRepository(db *gorm.DB) repository.PayoutRepository {
	return &payoutRepository{
		db: db,
	}
}

// Create persists a new payout request.
func (repo *payoutRepository) Create(ctx context.Context, payout *entity.PayoutRequest) error {
	payoutM := fromPayoutRequestDomain(payout)

	if err := repo.db.WithContext(ctx).Create(payoutM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrVendorNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidAmount.WrapMessage("payout amount must be positive")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create payout request")
	}

	payout.ID = payoutM.ID
	payout.CreatedAt = payoutM.CreatedAt

	return nil
}

// FindByID retrieves a payout request by its ID.
func (repo *payoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PayoutRequest, error) {
	var payoutM model.PayoutRequestModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&payoutM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPayoutNotFound
		}

		return nil, errors.Wrap(err, "failed to find payout request by ID")
	}

	return toPayoutRequestDomain(&payoutM), nil
}

// FindByVendorProfileID lists a vendor's payout requests, newest first.
func (repo *payoutRepository) FindByVendorProfileID(ctx context.Context, profileID uuid.UUID) ([]*entity.PayoutRequest, error) {
	var payoutMs []model.PayoutRequestModel

	if err := repo.db.WithContext(ctx).
		Where("vendor_profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&payoutMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list payout requests")
	}

	payouts := make([]*entity.PayoutRequest, 0, len(payoutMs))
	for i := range payoutMs {
		payouts = append(payouts, toPayoutRequestDomain(&payoutMs[i]))
	}

	return payouts, nil
}

func toPayoutRequestDomain(m *model.PayoutRequestModel) *entity.PayoutRequest {
	return &entity.PayoutRequest{
		ID:              m.ID,
		VendorProfileID: m.VendorProfileID,
		Amount:          m.Amount,
		Status:          entity.PayoutStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		DecidedAt:       m.DecidedAt,
	}
}

func fromPayoutRequestDomain(p *entity.PayoutRequest) *model.PayoutRequestModel {
	return &model.PayoutRequestModel{
		ID:              p.ID,
		VendorProfileID: p.VendorProfileID,
		Amount:          p.Amount,
		Status:          string(p.Status),
		DecidedAt:       p.DecidedAt,
	}
}
