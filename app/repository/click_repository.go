package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ramoneds/linkwhats/app/models"
)

// clickLogRepository implements the ClickLogRepository interface
type clickLogRepository struct {
	db *gorm.DB
}

// NewClickLogRepository creates a new click log repository instance
func NewClickLogRepository(db *gorm.DB) ClickLogRepository {
	return &clickLogRepository{db: db}
}

// Create persists a single click record
func (r *clickLogRepository) Create(log *models.ClickLog) error {
	return r.db.Create(log).Error
}

// CountByLinkID returns the number of logged clicks for a link
func (r *clickLogRepository) CountByLinkID(linkID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ClickLog{}).Where("link_id = ?", linkID).Count(&count).Error
	return count, err
}

// GetRecentByLinkID returns the most recent clicks for a link
func (r *clickLogRepository) GetRecentByLinkID(linkID uint, limit int) ([]models.ClickLog, error) {
	var logs []models.ClickLog
	err := r.db.Where("link_id = ?", linkID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// GetDailyCounts aggregates clicks per day inside the date range
func (r *clickLogRepository) GetDailyCounts(linkID uint, startDate, endDate time.Time) ([]DailyClicks, error) {
	type row struct {
		Day   string
		Count int64
	}
	var rows []row
	err := r.db.Model(&models.ClickLog{}).
		Select("DATE(created_at) as day, COUNT(*) as count").
		Where("link_id = ? AND created_at BETWEEN ? AND ?", linkID, startDate, endDate).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]DailyClicks, 0, len(rows))
	for _, r := range rows {
		day, perr := time.Parse("2006-01-02", r.Day)
		if perr != nil {
			continue
		}
		counts = append(counts, DailyClicks{Date: day, Count: r.Count})
	}
	return counts, nil
}
