package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yusufkaya/experience_marketplace/models"
	"github.com/yusufkaya/experience_marketplace/utils"
	"gorm.io/gorm"
)

type CreateExperienceInput struct {
	Title           string
	Category        string
	Description     string
	Steps           []string
	DateTime        time.Time
	DurationMinutes int
	Capacity        int
	Price           float64
	Address         string
	Images          []string
}

// CreateExperience publishes a new listing. Only approved guides may
// publish.
func CreateExperience(db *gorm.DB, guideID uuid.UUID, in CreateExperienceInput) (*models.Experience, error) {
	var user models.User
	err := db.Preload("GuideProfile").First(&user, "id = ?", guideID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("User not found")
		}
		return nil, utils.UnexpectedError("Failed to create experience", err)
	}
	if !user.CanActAsGuide() {
		return nil, utils.AuthorizationError("You must be an approved experience guide to create experiences")
	}

	experience := models.Experience{
		Title:           in.Title,
		Category:        in.Category,
		Description:     in.Description,
		Steps:           in.Steps,
		DateTime:        in.DateTime,
		DurationMinutes: in.DurationMinutes,
		Capacity:        in.Capacity,
		Price:           in.Price,
		Address:         in.Address,
		GuideID:         guideID,
		Images:          in.Images,
		IsActive:        true,
	}
	if experience.Images == nil {
		experience.Images = []string{}
	}
	if err := db.Create(&experience).Error; err != nil {
		return nil, utils.UnexpectedError("Failed to create experience", err)
	}
	return &experience, nil
}

type ExperienceFilter struct {
	Category string
	City     string
	MinPrice *float64
	MaxPrice *float64
	DateFrom *time.Time
	DateTo   *time.Time
}

type ExperiencePage struct {
	Experiences []models.Experience `json:"experiences"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	TotalCount  int64               `json:"totalCount"`
}

// ListExperiences is the public catalog query: active listings only,
// soonest first. Filtering by city joins against approved guide profiles;
// a city with no approved guides yields an empty page, not an error.
func ListExperiences(db *gorm.DB, filter ExperienceFilter, page utils.PageParams) (*ExperiencePage, error) {
	query := db.Model(&models.Experience{}).Where("is_active = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.DateFrom != nil {
		query = query.Where("date_time >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date_time <= ?", *filter.DateTo)
	}

	if filter.City != "" {
		var guideIDs []uuid.UUID
		err := db.Model(&models.GuideProfile{}).
			Where("city = ? AND is_approved = ?", filter.City, true).
			Pluck("user_id", &guideIDs).Error
		if err != nil {
			return nil, utils.UnexpectedError("Failed to get experiences", err)
		}
		if len(guideIDs) == 0 {
			return &ExperiencePage{
				Experiences: []models.Experience{},
				TotalPages:  0,
				CurrentPage: page.Page,
				TotalCount:  0,
			}, nil
		}
		query = query.Where("guide_id IN ?", guideIDs)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, utils.UnexpectedError("Failed to get experiences", err)
	}

	experiences := []models.Experience{}
	err := query.Preload("Guide.GuideProfile").
		Order("date_time asc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&experiences).Error
	if err != nil {
		return nil, utils.UnexpectedError("Failed to get experiences", err)
	}

	return &ExperiencePage{
		Experiences: experiences,
		TotalPages:  utils.TotalPages(totalCount, page.Limit),
		CurrentPage: page.Page,
		TotalCount:  totalCount,
	}, nil
}

// GetExperience returns a single active listing. Inactive listings are
// reported as not found, same as absent ones.
func GetExperience(db *gorm.DB, experienceID uuid.UUID) (*models.Experience, error) {
	var experience models.Experience
	err := db.Preload("Guide.GuideProfile").First(&experience, "id = ?", experienceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Experience not found")
		}
		return nil, utils.UnexpectedError("Failed to get experience", err)
	}
	if !experience.IsActive {
		return nil, utils.NotFoundError("This experience is no longer available")
	}
	return &experience, nil
}

// UpdateExperienceInput carries the allow-list of mutable fields. Ownership
// and aggregate fields (guide, rating, review count, bookings) are not
// reachable through updates.
type UpdateExperienceInput struct {
	Title           *string
	Category        *string
	Description     *string
	Steps           []string
	DateTime        *time.Time
	DurationMinutes *int
	Capacity        *int
	Price           *float64
	Address         *string
	Images          []string
}

func UpdateExperience(db *gorm.DB, guideID, experienceID uuid.UUID, in UpdateExperienceInput) (*models.Experience, error) {
	var experience models.Experience
	err := db.First(&experience, "id = ?", experienceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Experience not found")
		}
		return nil, utils.UnexpectedError("Failed to update experience", err)
	}
	if experience.GuideID != guideID {
		return nil, utils.AuthorizationError("You can only update your own experiences")
	}

	if in.Title != nil {
		experience.Title = *in.Title
	}
	if in.Category != nil {
		experience.Category = *in.Category
	}
	if in.Description != nil {
		experience.Description = *in.Description
	}
	if in.Steps != nil {
		experience.Steps = in.Steps
	}
	if in.DateTime != nil {
		experience.DateTime = *in.DateTime
	}
	if in.DurationMinutes != nil {
		experience.DurationMinutes = *in.DurationMinutes
	}
	if in.Capacity != nil {
		experience.Capacity = *in.Capacity
	}
	if in.Price != nil {
		experience.Price = *in.Price
	}
	if in.Address != nil {
		experience.Address = *in.Address
	}
	if in.Images != nil {
		experience.Images = in.Images
	}

	if err := db.Save(&experience).Error; err != nil {
		return nil, utils.UnexpectedError("Failed to update experience", err)
	}
	return &experience, nil
}

// DeleteExperience soft-deletes the listing by flipping the active flag.
func DeleteExperience(db *gorm.DB, guideID, experienceID uuid.UUID) error {
	var experience models.Experience
	err := db.First(&experience, "id = ?", experienceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("Experience not found")
		}
		return utils.UnexpectedError("Failed to delete experience", err)
	}
	if experience.GuideID != guideID {
		return utils.AuthorizationError("You can only delete your own experiences")
	}

	err = db.Model(&experience).Update("is_active", false).Error
	if err != nil {
		return utils.UnexpectedError("Failed to delete experience", err)
	}
	return nil
}

// ListGuideExperiences returns the guide's own listings, inactive ones
// included, newest first. status may be "active", "inactive" or "all".
func ListGuideExperiences(db *gorm.DB, guideID uuid.UUID, status string, page utils.PageParams) (*ExperiencePage, error) {
	query := db.Model(&models.Experience{}).Where("guide_id = ?", guideID)
	switch status {
	case "", "all":
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	default:
		return nil, utils.ValidationError("Invalid status")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, utils.UnexpectedError("Failed to get your experiences", err)
	}

	experiences := []models.Experience{}
	err := query.Order("created_at desc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&experiences).Error
	if err != nil {
		return nil, utils.UnexpectedError("Failed to get your experiences", err)
	}

	return &ExperiencePage{
		Experiences: experiences,
		TotalPages:  utils.TotalPages(totalCount, page.Limit),
		CurrentPage: page.Page,
		TotalCount:  totalCount,
	}, nil
}
