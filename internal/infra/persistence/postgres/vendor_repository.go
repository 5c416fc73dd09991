package postgres

import (
	"context"
	"time"

	"purposepay/internal/domain/entity"
	domainerrors "purposepay/internal/domain/errors"
	"purposepay/internal/domain/repository"
	"purposepay/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// vendorRepository implements the repository.VendorRepository interface using GORM.
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository is the constructor for vendorRepository.
func NewVendorRepository(db *gorm.DB) repository.VendorRepository {
	return &vendorRepository{
		db: db,
	}
}

// Create persists a new vendor profile.
func (repo *vendorRepository) Create(ctx context.Context, profile *entity.VendorProfile) error {
	profileM := fromVendorProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrVendorAlreadyExists.WrapMessage("vendor profile or business name already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create vendor profile")
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByID retrieves a vendor profile by its ID, with documents and locations.
func (repo *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VendorProfile, error) {
	var profileM model.VendorProfileModel

	if err := repo.db.WithContext(ctx).
		Preload("Documents").
		Preload("Locations").
		Where("id = ?", id).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor profile by ID")
	}

	return toVendorProfileDomain(&profileM), nil
}

// FindByUserID retrieves the vendor profile owned by the given user.
func (repo *vendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VendorProfile, error) {
	var profileM model.VendorProfileModel

	if err := repo.db.WithContext(ctx).
		Preload("Documents").
		Preload("Locations").
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor profile by user ID")
	}

	return toVendorProfileDomain(&profileM), nil
}

// Update modifies the mutable business fields of a profile. State and
// balance are deliberately excluded; they only move through the
// conditional primitives below.
func (repo *vendorRepository) Update(ctx context.Context, profile *entity.VendorProfile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VendorProfileModel{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"business_name":         profile.BusinessName,
			"category":              string(profile.Category),
			"payout_account_number": profile.PayoutAccountNumber,
			"payout_bank_name":      profile.PayoutBankName,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrVendorAlreadyExists.WrapMessage("business name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update vendor profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVendorNotFound
	}

	return nil
}

// List returns vendor profiles matching the filter, newest first.
func (repo *vendorRepository) List(ctx context.Context, filter repository.VendorListFilter) ([]*entity.VendorProfile, error) {
	query := repo.db.WithContext(ctx).
		Preload("Documents").
		Preload("Locations").
		Order("created_at DESC")

	if filter.State != nil {
		query = query.Where("state = ?", filter.State.String())
	}

	var profileMs []model.VendorProfileModel
	if err := query.Find(&profileMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vendor profiles")
	}

	profiles := make([]*entity.VendorProfile, 0, len(profileMs))
	for i := range profileMs {
		profiles = append(profiles, toVendorProfileDomain(&profileMs[i]))
	}

	return profiles, nil
}

// UpdateState performs the conditional transition "set state = to where
// state = from". A zero row count means the profile either does not exist
// or sits in another state; both surface as ErrStateConflict and the
// caller decides how to report it.
func (repo *vendorRepository) UpdateState(ctx context.Context, id uuid.UUID, from, to entity.VerificationState, reviewedBy *uuid.UUID, approvedAt *time.Time) error {
	updates := map[string]any{
		"state": to.String(),
	}
	if reviewedBy != nil {
		updates["reviewed_by"] = *reviewedBy
	}
	if approvedAt != nil {
		updates["approved_at"] = *approvedAt
	}

	result := repo.db.WithContext(ctx).
		Model(&model.VendorProfileModel{}).
		Where("id = ? AND state = ?", id, from.String()).
		Updates(updates)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update vendor state")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStateConflict
	}

	return nil
}

// DecrementBalance performs the conditional update that enforces the
// never-negative balance invariant. The WHERE clause carries both the
// approval check and the funds check so two concurrent payouts against
// the same row cannot both succeed past the available balance.
func (repo *vendorRepository) DecrementBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VendorProfileModel{}).
		Where("id = ? AND state = ? AND balance >= ?", id, entity.StateApproved.String(), amount).
		Update("balance", gorm.Expr("balance - ?", amount))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement vendor balance")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBalanceConflict
	}

	return nil
}

// CreditBalance adds funds to a vendor's balance.
func (repo *vendorRepository) CreditBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VendorProfileModel{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", amount))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to credit vendor balance")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVendorNotFound
	}

	return nil
}

// AddDocument attaches a verification document to a profile.
func (repo *vendorRepository) AddDocument(ctx context.Context, doc *entity.VerificationDocument) error {
	docM := fromVerificationDocumentDomain(doc)

	if err := repo.db.WithContext(ctx).Create(docM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrVendorNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add verification document")
	}

	doc.ID = docM.ID
	doc.CreatedAt = docM.CreatedAt

	return nil
}

// DeleteDocument removes a verification document from a profile. The
// profile ID is part of the predicate so a document can only be deleted
// through its owning profile.
func (repo *vendorRepository) DeleteDocument(ctx context.Context, profileID, docID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND vendor_profile_id = ?", docID, profileID).
		Delete(&model.VerificationDocumentModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete verification document")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDocumentNotFound
	}

	return nil
}

// AddLocation attaches a business location to a profile.
func (repo *vendorRepository) AddLocation(ctx context.Context, loc *entity.BusinessLocation) error {
	locM := fromBusinessLocationDomain(loc)

	if err := repo.db.WithContext(ctx).Create(locM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrVendorNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add business location")
	}

	loc.ID = locM.ID
	loc.CreatedAt = locM.CreatedAt

	return nil
}

// DeleteLocation removes a business location from a profile.
func (repo *vendorRepository) DeleteLocation(ctx context.Context, profileID, locID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND vendor_profile_id = ?", locID, profileID).
		Delete(&model.BusinessLocationModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete business location")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLocationNotFound
	}

	return nil
}

// --- mapping helpers ---

func toVendorProfileDomain(m *model.VendorProfileModel) *entity.VendorProfile {
	docs := make([]entity.VerificationDocument, 0, len(m.Documents))
	for i := range m.Documents {
		docs = append(docs, *toVerificationDocumentDomain(&m.Documents[i]))
	}

	locs := make([]entity.BusinessLocation, 0, len(m.Locations))
	for i := range m.Locations {
		locs = append(locs, *toBusinessLocationDomain(&m.Locations[i]))
	}

	return &entity.VendorProfile{
		ID:                  m.ID,
		UserID:              m.UserID,
		BusinessName:        m.BusinessName,
		Category:            entity.VendorCategory(m.Category),
		State:               entity.VerificationState(m.State),
		Balance:             m.Balance,
		PayoutAccountNumber: m.PayoutAccountNumber,
		PayoutBankName:      m.PayoutBankName,
		ApprovedAt:          m.ApprovedAt,
		ReviewedBy:          m.ReviewedBy,
		Documents:           docs,
		Locations:           locs,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func fromVendorProfileDomain(p *entity.VendorProfile) *model.VendorProfileModel {
	return &model.VendorProfileModel{
		ID:                  p.ID,
		UserID:              p.UserID,
		BusinessName:        p.BusinessName,
		Category:            string(p.Category),
		State:               p.State.String(),
		Balance:             p.Balance,
		PayoutAccountNumber: p.PayoutAccountNumber,
		PayoutBankName:      p.PayoutBankName,
		ApprovedAt:          p.ApprovedAt,
		ReviewedBy:          p.ReviewedBy,
	}
}

func toVerificationDocumentDomain(m *model.VerificationDocumentModel) *entity.VerificationDocument {
	return &entity.VerificationDocument{
		ID:              m.ID,
		VendorProfileID: m.VendorProfileID,
		Title:           m.Title,
		Reference:       m.Reference,
		CreatedAt:       m.CreatedAt,
	}
}

func fromVerificationDocumentDomain(d *entity.VerificationDocument) *model.VerificationDocumentModel {
	return &model.VerificationDocumentModel{
		ID:              d.ID,
		VendorProfileID: d.VendorProfileID,
		Title:           d.Title,
		Reference:       d.Reference,
	}
}

func toBusinessLocationDomain(m *model.BusinessLocationModel) *entity.BusinessLocation {
	return &entity.BusinessLocation{
		ID:              m.ID,
		VendorProfileID: m.VendorProfileID,
		Label:           m.Label,
		Address:         m.Address,
		CreatedAt:       m.CreatedAt,
	}
}

func fromBusinessLocationDomain(l *entity.BusinessLocation) *model.BusinessLocationModel {
	return &model.BusinessLocationModel{
		ID:              l.ID,
		VendorProfileID: l.VendorProfileID,
		Label:           l.Label,
		Address:         l.Address,
	}
}
