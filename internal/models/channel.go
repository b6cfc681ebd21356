package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Channel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	DisplayName string    `gorm:"not null"`
	Type        string    `gorm:"not null;check:type IN ('direct','group','broadcast')"`
	Public      bool      `gorm:"default:false"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time

	// Связи
	Members  []Member  `gorm:"foreignKey:ChannelID;constraint:OnDelete:CASCADE"`
	Messages []Message `gorm:"foreignKey:ChannelID;constraint:OnDelete:CASCADE"`
}

func (c *Channel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
