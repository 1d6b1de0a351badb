package repository

import (
	"gorm.io/gorm"

	"github.com/ramoneds/linkwhats/app/models"
)

// linkRepository implements the LinkRepository interface
type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a new link repository instance
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

// Create creates a new link in the database
func (r *linkRepository) Create(link *models.Link) error {
	return r.db.Create(link).Error
}

// GetByID retrieves a link by its ID
func (r *linkRepository) GetByID(id uint) (*models.Link, error) {
	var link models.Link
	err := r.db.First(&link, id).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetByUUID retrieves a link by its UUID
func (r *linkRepository) GetByUUID(uuid string) (*models.Link, error) {
	var link models.Link
	err := r.db.Where("uuid = ?", uuid).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetBySlug retrieves a link by its public slug
func (r *linkRepository) GetBySlug(slug string) (*models.Link, error) {
	var link models.Link
	err := r.db.Where("slug = ?", slug).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetByUserID retrieves all links owned by a user, newest first
func (r *linkRepository) GetByUserID(userID uint) ([]models.Link, error) {
	var links []models.Link
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&links).Error
	return links, err
}

// Update updates an existing link. The slug column is deliberately
// excluded, slugs are immutable once created.
func (r *linkRepository) Update(link *models.Link) error {
	return r.db.Model(link).Omit("slug").Updates(map[string]interface{}{
		"name":           link.Name,
		"whatsapp":       link.Whatsapp,
		"message":        link.Message,
		"is_active":      link.IsActive,
		"bg_color":       link.BgColor,
		"btn_color":      link.BtnColor,
		"schedule_start": link.ScheduleStart,
		"schedule_end":   link.ScheduleEnd,
		"redirect":       link.Redirect,
		"profile_image":  link.ProfileImage,
		"social_json":    link.SocialJSON,
	}).Error
}

// Delete soft-deletes a link
func (r *linkRepository) Delete(id uint) error {
	return r.db.Delete(&models.Link{}, id).Error
}

// SlugExists checks if a slug is already taken
func (r *linkRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Link{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// CountByUserID returns the number of links owned by a user
func (r *linkRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Link{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// StatsByUserID counts a user's links and sums their click counters in
// a single query.
func (r *linkRepository) StatsByUserID(userID uint) (UserLinkStats, error) {
	var stats UserLinkStats
	err := r.db.Model(&models.Link{}).
		Where("user_id = ?", userID).
		Select("COUNT(*) AS link_count, COALESCE(SUM(click_count), 0) AS total_clicks").
		Row().Scan(&stats.LinkCount, &stats.TotalClicks)
	return stats, err
}
