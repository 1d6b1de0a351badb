package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ramoneds/linkwhats/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, *models.UserSettings, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// LinkRepository defines the interface for link-related database operations
type LinkRepository interface {
	Create(link *models.Link) error
	GetByID(id uint) (*models.Link, error)
	GetByUUID(uuid string) (*models.Link, error)
	GetBySlug(slug string) (*models.Link, error)
	GetByUserID(userID uint) ([]models.Link, error)
	Update(link *models.Link) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
	CountByUserID(userID uint) (int64, error)
	StatsByUserID(userID uint) (UserLinkStats, error)
}

// ClickLogRepository defines the interface for click log persistence
type ClickLogRepository interface {
	Create(log *models.ClickLog) error
	CountByLinkID(linkID uint) (int64, error)
	GetRecentByLinkID(linkID uint, limit int) ([]models.ClickLog, error)
	GetDailyCounts(linkID uint, startDate, endDate time.Time) ([]DailyClicks, error)
}

// PlanRepository defines the interface for the pricing catalog
type PlanRepository interface {
	GetAll() ([]models.Plan, error)
	GetByName(name string) (*models.Plan, error)
	Save(plan *models.Plan) error
}

// DailyClicks is one row of the per-day click aggregation used by the
// dashboard stats page.
type DailyClicks struct {
	Date  time.Time
	Count int64
}

// UserLinkStats provides aggregated counts for a single user's dashboard.
type UserLinkStats struct {
	LinkCount   int64
	TotalClicks int64
}

// Repositories struct holds all repository instances
type Repositories struct {
	User  UserRepository
	Link  LinkRepository
	Click ClickLogRepository
	Plan  PlanRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:  NewUserRepository(db),
		Link:  NewLinkRepository(db),
		Click: NewClickLogRepository(db),
		Plan:  NewPlanRepository(db),
	}
}
