package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/pelican/internal/database"
	"github.com/thereayou/pelican/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Channel{},
		&models.Member{},
		&models.Message{},
		&models.Attachment{},
	))

	return database.NewDatabase(db)
}

func createTestUser(t *testing.T, db *database.Database, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.SaveUser(user))
	return user
}

// recordingBus — синхронная шина для проверки fan-out в тестах
type recordingBus struct {
	mu    sync.Mutex
	calls []publishCall
}

type publishCall struct {
	recipients []uuid.UUID
	payload    interface{}
	eventType  string
}

func (b *recordingBus) Publish(recipients []uuid.UUID, payload interface{}, eventType string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, publishCall{
		recipients: append([]uuid.UUID(nil), recipients...),
		payload:    payload,
		eventType:  eventType,
	})
}

func (b *recordingBus) Calls() []publishCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]publishCall(nil), b.calls...)
}
