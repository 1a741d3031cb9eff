package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkaya/experience_marketplace/models"
	"github.com/yusufkaya/experience_marketplace/utils"
)

func validApplication() GuideApplicationInput {
	return GuideApplicationInput{
		FirstName:     "Ayse",
		LastName:      "Demir",
		Bio:           "Born and raised in the old town.",
		Expertise:     "local food",
		ActivityField: "culinary tours",
		City:          "Istanbul",
		ActivityArea:  "Kadikoy",
		ContactEmail:  "ayse@example.com",
		ContactPhone:  "+90 555 000 0000",
	}
}

func TestApplyAsGuide(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "Ayse")

	profile, err := ApplyAsGuide(db, user.ID, validApplication())
	require.NoError(t, err)
	assert.False(t, profile.IsApproved)
	assert.Equal(t, user.ID, profile.UserID)
	assert.NotNil(t, profile.SocialMedia)
	assert.NotNil(t, profile.SkillDocuments)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.True(t, reloaded.IsExperienceGuide)

	_, err = ApplyAsGuide(db, uuid.New(), validApplication())
	requireKind(t, err, utils.KindNotFound)
}

func TestApplyAsGuide_ReapplyOverwritesPendingProfile(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "Ayse")

	_, err := ApplyAsGuide(db, user.ID, validApplication())
	require.NoError(t, err)

	second := validApplication()
	second.City = "Ankara"
	second.Bio = "Moved north."
	profile, err := ApplyAsGuide(db, user.ID, second)
	require.NoError(t, err)
	assert.Equal(t, "Ankara", profile.City)
	assert.False(t, profile.IsApproved)

	var count int64
	require.NoError(t, db.Model(&models.GuideProfile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplyAsGuide_ReapplyKeepsOriginalTimestamp(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "Ayse")

	first, err := ApplyAsGuide(db, user.ID, validApplication())
	require.NoError(t, err)

	_, err = ApplyAsGuide(db, user.ID, validApplication())
	require.NoError(t, err)

	var reloaded models.GuideProfile
	require.NoError(t, db.First(&reloaded, "user_id = ?", user.ID).Error)
	assert.WithinDuration(t, first.CreatedAt, reloaded.CreatedAt, time.Second)
	assert.False(t, reloaded.CreatedAt.IsZero())
}

func TestApplyAsGuide_ApprovedGuideCannotReapply(t *testing.T) {
	db := setupTestDB(t)
	guide := createGuide(t, db, "Istanbul", true)

	_, err := ApplyAsGuide(db, guide.ID, validApplication())
	requireKind(t, err, utils.KindStateConflict)
}

func TestGetOwnGuideProfile(t *testing.T) {
	db := setupTestDB(t)

	plain := createUser(t, db, "Plain")
	_, err := GetOwnGuideProfile(db, plain.ID)
	requireKind(t, err, utils.KindAuthorization)

	pending := createGuide(t, db, "Izmir", false)
	profile, err := GetOwnGuideProfile(db, pending.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsApproved)
}

func TestUpdateGuideProfile_AllowList(t *testing.T) {
	db := setupTestDB(t)
	guide := createGuide(t, db, "Izmir", true)

	newBio := "Updated bio."
	newCity := "Bodrum"
	profile, err := UpdateGuideProfile(db, guide.ID, UpdateGuideProfileInput{
		Bio:         &newBio,
		City:        &newCity,
		SocialMedia: map[string]string{"instagram": "@ayse"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated bio.", profile.Bio)
	assert.Equal(t, "Bodrum", profile.City)
	assert.Equal(t, "@ayse", profile.SocialMedia["instagram"])
	// approval cannot be touched through a profile update
	assert.True(t, profile.IsApproved)

	plain := createUser(t, db, "Plain")
	_, err = UpdateGuideProfile(db, plain.ID, UpdateGuideProfileInput{Bio: &newBio})
	requireKind(t, err, utils.KindAuthorization)
}

func TestGetPublicGuideProfile(t *testing.T) {
	db := setupTestDB(t)

	approved := createGuide(t, db, "Istanbul", true)
	public, err := GetPublicGuideProfile(db, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Istanbul", public.City)

	pending := createGuide(t, db, "Izmir", false)
	_, err = GetPublicGuideProfile(db, pending.ID)
	requireKind(t, err, utils.KindNotFound)

	_, err = GetPublicGuideProfile(db, uuid.New())
	requireKind(t, err, utils.KindNotFound)
}
