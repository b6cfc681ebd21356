package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/permissions"
)

type Member struct {
	ID          int64           `gorm:"primaryKey"`
	ChannelID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_members_channel_user"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_members_channel_user"`
	Permissions permissions.Bit `gorm:"not null"`
	JoinedAt    time.Time

	// Связи
	User User `gorm:"foreignKey:UserID"`
}
