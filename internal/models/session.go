package models

import "time"

// LoginSession is the audit record of one successful login. It is created
// alongside the refresh token's OutstandingToken row, never mutated and never
// deleted; revocation only makes it logically inert.
type LoginSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	JTI       string    `gorm:"uniqueIndex;size:64;not null" json:"jti"`
	UserAgent string    `gorm:"size:500" json:"user_agent"`
	IPAddress string    `gorm:"size:64" json:"ip_address"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Derived: true iff the jti appears in blacklisted_tokens. Populated by
	// the session listing query, not stored.
	IsRevoked bool `gorm:"-" json:"is_revoked"`
}

func (LoginSession) TableName() string { return "login_sessions" }
