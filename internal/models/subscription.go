package models

import "time"

// Subscription is a follow edge: UserID follows AuthorID.
// A user cannot follow themselves; the pair is unique.
type Subscription struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_subscription_pair" json:"user_id"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_subscription_pair" json:"author_id"`

	CreatedAt time.Time `json:"created_at"`

	User   User `gorm:"foreignKey:UserID" json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}
