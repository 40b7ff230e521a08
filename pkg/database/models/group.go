package models

import "time"

// Membership statuses.
const (
	MemberPending  = "pending"
	MemberAccepted = "accepted"
)

// User is the part of a user the leaderboards show.
type User struct {
	ID        uint    `gorm:"primaryKey"`
	Username  string  `gorm:"type:varchar(50);not null"`
	AvatarURL *string `gorm:"column:avatar_url"`
	CreatedAt time.Time
}

// Group is a friend group.
type Group struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	CreatorID uint   `gorm:"not null"`
	CreatedAt time.Time
}

// GroupMember is a user membership on a group.
type GroupMember struct {
	ID        uint   `gorm:"primaryKey"`
	GroupID   uint   `gorm:"not null"`
	UserID    uint   `gorm:"not null"`
	Role      string `gorm:"type:varchar(20);not null;default:member"`
	Status    string `gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt time.Time
}
