package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionTokenModel mirrors the 'session_tokens' table. The primary key on
// user_id is what enforces the single-live-token invariant: issuing a new
// token is an upsert against this row, never an insert of a second one.
type SessionTokenModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	TokenHash string    `gorm:"type:char(64);uniqueIndex;not null"`
	IssuedAt  time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (SessionTokenModel) TableName() string {
	return "session_tokens"
}
