package models

import (
	"github.com/google/uuid"
	"time"
)

// Message: ID монотонно растёт, поэтому он же ключ сортировки истории
type Message struct {
	ID            int64     `gorm:"primaryKey"`
	ChannelID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID      int64     `gorm:"not null"`
	Content       string    `gorm:"not null"`
	AttachmentIDs []int64   `gorm:"serializer:json"`
	CreatedAt     time.Time
	EditedAt      *time.Time

	// Связи
	Author Member `gorm:"foreignKey:AuthorID"`
}

func (m *Message) IsAuthor(member *Member) bool {
	return m.AuthorID == member.ID
}
