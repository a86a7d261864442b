package models

import "time"

// RefreshToken is a stored, revocable refresh credential. Tokens are
// rotated: each successful refresh revokes the presented token and
// issues a new row.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// NewRefreshToken builds an unrevoked token row expiring after ttl.
func NewRefreshToken(userID, token string, ttl time.Duration) RefreshToken {
	return RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}
}
