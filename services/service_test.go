package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yusufkaya/experience_marketplace/models"
	"github.com/yusufkaya/experience_marketplace/utils"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.GuideProfile{},
		&models.Experience{},
		&models.Booking{},
		&models.Review{},
	))
	return db
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: "hashed-password",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createGuide(t *testing.T, db *gorm.DB, city string, approved bool) *models.User {
	t.Helper()
	guide := createUser(t, db, "Guide "+city)
	guide.IsExperienceGuide = true
	require.NoError(t, db.Save(guide).Error)

	profile := &models.GuideProfile{
		UserID:        guide.ID,
		FirstName:     "Guide",
		LastName:      city,
		Bio:           "Showing people around since forever.",
		Expertise:     "local culture",
		ActivityField: "walking tours",
		City:          city,
		ActivityArea:  city + " old town",
		ContactEmail:  guide.Email,
		ContactPhone:  "+90 555 000 0000",
		IsApproved:    approved,
	}
	require.NoError(t, db.Create(profile).Error)
	guide.GuideProfile = profile
	return guide
}

type experienceOpts struct {
	capacity int
	price    float64
	dateTime time.Time
	category string
	active   bool
}

func defaultExperienceOpts() experienceOpts {
	return experienceOpts{
		capacity: 10,
		price:    25.0,
		dateTime: time.Now().Add(48 * time.Hour),
		category: "culture",
		active:   true,
	}
}

func createExperience(t *testing.T, db *gorm.DB, guideID uuid.UUID, opts experienceOpts) *models.Experience {
	t.Helper()
	experience := &models.Experience{
		Title:           "Hidden corners walk",
		Category:        opts.category,
		Description:     "A slow walk through the neighbourhoods tourists skip.",
		Steps:           []string{"Meet at the fountain", "Walk the bazaar", "Coffee break"},
		DateTime:        opts.dateTime,
		DurationMinutes: 180,
		Capacity:        opts.capacity,
		Price:           opts.price,
		Address:         "Fountain Square 1",
		GuideID:         guideID,
		Images:          []string{},
		IsActive:        opts.active,
	}
	require.NoError(t, db.Create(experience).Error)
	return experience
}

func requireKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok, "expected *utils.AppError, got %T: %v", err, err)
	require.Equal(t, kind, appErr.Kind, "unexpected error kind for: %v", err)
}
