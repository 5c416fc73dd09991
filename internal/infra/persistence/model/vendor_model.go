package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorProfileModel mirrors the 'vendor_profiles' table. The CHECK constraint
// on balance is the database-level backstop for the never-negative invariant;
// the conditional decrement in the repository is what callers rely on.
type VendorProfileModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID              uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	BusinessName        string          `gorm:"type:varchar(255);unique;not null"`
	Category            string          `gorm:"type:varchar(50);not null"`
	State               string          `gorm:"type:varchar(20);not null;index"`
	Balance             decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0;check:balance >= 0"`
	PayoutAccountNumber string          `gorm:"type:varchar(50)"`
	PayoutBankName      string          `gorm:"type:varchar(100)"`
	ApprovedAt          *time.Time
	ReviewedBy          *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Documents []VerificationDocumentModel `gorm:"foreignKey:VendorProfileID"`
	Locations []BusinessLocationModel     `gorm:"foreignKey:VendorProfileID"`
}

// TableName explicitly sets the table name for GORM.
func (VendorProfileModel) TableName() string {
	return "vendor_profiles"
}

// VerificationDocumentModel mirrors the 'verification_documents' table.
type VerificationDocumentModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VendorProfileID uuid.UUID `gorm:"type:uuid;index;not null"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Reference       string    `gorm:"type:varchar(512);not null"`
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (VerificationDocumentModel) TableName() string {
	return "verification_documents"
}

// BusinessLocationModel mirrors the 'business_locations' table.
type BusinessLocationModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VendorProfileID uuid.UUID `gorm:"type:uuid;index;not null"`
	Label           string    `gorm:"type:varchar(100);not null"`
	Address         string    `gorm:"type:text;not null"`
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (BusinessLocationModel) TableName() string {
	return "business_locations"
}
