package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/yusufkaya/experience_marketplace/models"
	"github.com/yusufkaya/experience_marketplace/utils"
	"gorm.io/gorm"
)

type GuideApplicationInput struct {
	FirstName      string
	LastName       string
	Bio            string
	Expertise      string
	ActivityField  string
	City           string
	ActivityArea   string
	ContactEmail   string
	ContactPhone   string
	SocialMedia    map[string]string
	SkillDocuments []string
	ProfileImage   string
}

// ApplyAsGuide files (or re-files) a guide application. The profile always
// lands unapproved; approval happens in the back office.
func ApplyAsGuide(db *gorm.DB, userID uuid.UUID, in GuideApplicationInput) (*models.GuideProfile, error) {
	var profile models.GuideProfile
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Preload("GuideProfile").First(&user, "id = ?", userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("User not found")
			}
			return utils.UnexpectedError("Failed to submit application", err)
		}

		if user.CanActAsGuide() {
			return utils.StateConflictError("You are already an approved experience guide")
		}

		profile = models.GuideProfile{
			UserID:         userID,
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			Bio:            in.Bio,
			Expertise:      in.Expertise,
			ActivityField:  in.ActivityField,
			City:           in.City,
			ActivityArea:   in.ActivityArea,
			ContactEmail:   in.ContactEmail,
			ContactPhone:   in.ContactPhone,
			SocialMedia:    in.SocialMedia,
			SkillDocuments: in.SkillDocuments,
			ProfileImage:   in.ProfileImage,
			IsApproved:     false,
		}
		if profile.SocialMedia == nil {
			profile.SocialMedia = map[string]string{}
		}
		if profile.SkillDocuments == nil {
			profile.SkillDocuments = []string{}
		}

		if user.GuideProfile != nil {
			// Re-application replaces the profile but keeps the original
			// application timestamp.
			profile.CreatedAt = user.GuideProfile.CreatedAt
			if err := tx.Save(&profile).Error; err != nil {
				return utils.UnexpectedError("Failed to submit application", err)
			}
		} else {
			if err := tx.Create(&profile).Error; err != nil {
				return utils.UnexpectedError("Failed to submit application", err)
			}
		}

		if !user.IsExperienceGuide {
			if err := tx.Model(&user).Update("is_experience_guide", true).Error; err != nil {
				return utils.UnexpectedError("Failed to submit application", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetOwnGuideProfile returns the caller's guide profile, approved or not.
func GetOwnGuideProfile(db *gorm.DB, userID uuid.UUID) (*models.GuideProfile, error) {
	var user models.User
	err := db.Preload("GuideProfile").First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("User not found")
		}
		return nil, utils.UnexpectedError("Failed to get guide profile", err)
	}
	if !user.IsExperienceGuide || user.GuideProfile == nil {
		return nil, utils.AuthorizationError("You are not registered as an experience guide")
	}
	return user.GuideProfile, nil
}

// UpdateGuideProfileInput is the allow-list of self-mutable profile fields.
// Approval and identity fields are deliberately absent.
type UpdateGuideProfileInput struct {
	FirstName      *string
	LastName       *string
	Bio            *string
	Expertise      *string
	ActivityField  *string
	City           *string
	ActivityArea   *string
	ContactEmail   *string
	ContactPhone   *string
	SocialMedia    map[string]string
	SkillDocuments []string
	ProfileImage   *string
}

func UpdateGuideProfile(db *gorm.DB, userID uuid.UUID, in UpdateGuideProfileInput) (*models.GuideProfile, error) {
	profile, err := GetOwnGuideProfile(db, userID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		profile.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		profile.LastName = *in.LastName
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.Expertise != nil {
		profile.Expertise = *in.Expertise
	}
	if in.ActivityField != nil {
		profile.ActivityField = *in.ActivityField
	}
	if in.City != nil {
		profile.City = *in.City
	}
	if in.ActivityArea != nil {
		profile.ActivityArea = *in.ActivityArea
	}
	if in.ContactEmail != nil {
		profile.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		profile.ContactPhone = *in.ContactPhone
	}
	if in.SocialMedia != nil {
		profile.SocialMedia = in.SocialMedia
	}
	if in.SkillDocuments != nil {
		profile.SkillDocuments = in.SkillDocuments
	}
	if in.ProfileImage != nil {
		profile.ProfileImage = *in.ProfileImage
	}

	if err := db.Save(profile).Error; err != nil {
		return nil, utils.UnexpectedError("Failed to update guide profile", err)
	}
	return profile, nil
}

// GetPublicGuideProfile returns the public projection of an approved guide.
func GetPublicGuideProfile(db *gorm.DB, guideID uuid.UUID) (*models.PublicGuideProfile, error) {
	var user models.User
	err := db.Preload("GuideProfile").First(&user, "id = ?", guideID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Guide not found")
		}
		return nil, utils.UnexpectedError("Failed to get guide profile", err)
	}
	if !user.CanActAsGuide() {
		return nil, utils.NotFoundError("This user is not an approved experience guide")
	}
	public := user.GuideProfile.Public()
	return &public, nil
}
