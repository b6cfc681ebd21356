package models

import (
	"github.com/google/uuid"
	"time"
)

// Attachment принадлежит загрузившему пользователю, не сообщению.
// Pending снимается после подтверждения загрузки клиентом.
type Attachment struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	StorageKey  string    `gorm:"uniqueIndex;not null"`
	Filename    string    `gorm:"not null"`
	ContentType string
	Size        int64
	Pending     bool `gorm:"default:true"`
	CreatedAt   time.Time
}
