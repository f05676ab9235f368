package models

import "time"

// OutstandingToken records every refresh token ever minted, keyed by its jti.
// Rows are created at issuance and referenced by LoginSession and
// BlacklistedToken; they are only removed by the expired-token flush.
type OutstandingToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	JTI       string    `gorm:"uniqueIndex;size:64;not null" json:"jti"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (OutstandingToken) TableName() string { return "outstanding_tokens" }

// BlacklistedToken marks one OutstandingToken as revoked. The unique index on
// TokenID makes concurrent duplicate revocations collapse to a single row;
// there is no un-revoke, a token present here is permanently invalid.
type BlacklistedToken struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	TokenID       uint              `gorm:"uniqueIndex;not null" json:"token_id"`
	Token         *OutstandingToken `gorm:"foreignKey:TokenID" json:"token,omitempty"`
	BlacklistedAt time.Time         `gorm:"autoCreateTime" json:"blacklisted_at"`
}

func (BlacklistedToken) TableName() string { return "blacklisted_tokens" }
