package registry

import (
	"fmt"
	"testing"
	"time"

	"github.com/goyibnazarovasliddin/letters-registery/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testNow is the wall clock every test service runs on.
var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive for the whole
	// test and serializes write transactions the way the production store
	// does with row locks.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.Index{},
		&models.Letter{},
		&models.File{},
		&models.YearCounter{},
		&models.SystemSettings{},
	))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewService(db)
	svc.now = func() time.Time { return testNow }
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		FullName:     username,
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedIndex(t *testing.T, db *gorm.DB, code string) models.Index {
	t.Helper()
	index := models.Index{Code: code, Name: "Index " + code, Status: models.IndexActive}
	require.NoError(t, db.Create(&index).Error)
	return index
}

func seedSettings(t *testing.T, db *gorm.DB, allowPastDates bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.SystemSettings{AllowPastDates: allowPastDates}).Error)
}

// seedDraft inserts a letter directly, bypassing the service, so tests can
// construct arbitrary states.
func seedDraft(t *testing.T, db *gorm.DB, owner models.User, index *models.Index, letterDate string) models.Letter {
	t.Helper()
	letter := models.Letter{
		LetterDate: letterDate,
		Recipient:  "Ministry of Finance",
		Subject:    "Quarterly report",
		Content:    "summary",
		Status:     models.StatusDraft,
		UserID:     owner.ID,
	}
	if index != nil {
		letter.IndexID = &index.ID
	}
	require.NoError(t, db.Create(&letter).Error)
	return letter
}

func actorFor(user models.User) Actor {
	return Actor{UserID: user.ID, Role: user.Role}
}
