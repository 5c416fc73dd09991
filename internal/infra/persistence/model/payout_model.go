package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutRequestModel mirrors the 'payout_requests' table. Rows are append-only
// once decided.
type PayoutRequestModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VendorProfileID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null;check:amount > 0"`
	Status          string          `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time
	DecidedAt       *time.Time
}

// TableName explicitly sets the table name for GORM.
func (PayoutRequestModel) TableName() string {
	return "payout_requests"
}
