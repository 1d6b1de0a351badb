package statistics

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ramoneds/linkwhats/app/models"
	"github.com/ramoneds/linkwhats/internal/pkg/cache"
	"github.com/ramoneds/linkwhats/internal/pkg/database"
)

const (
	CacheKeyLinksTotal  = "statistics:links:total"
	CacheKeyUsersTotal  = "statistics:users:total"
	CacheKeyClicksDaily = "statistics:clicks:daily:%s" // Format with date YYYY-MM-DD
	CacheExpiration     = 30 * time.Minute
)

// StatisticsData holds the aggregate numbers shown on the home page
type StatisticsData struct {
	TotalLinks  int
	TotalUsers  int
	TodayClicks int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached figures are stale
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Errorf("Failed to update statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache recomputes all aggregate numbers and stores them in Redis
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalLinks int64
	if err := db.Model(&models.Link{}).Count(&totalLinks).Error; err != nil {
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	var todayClicks int64
	if err := db.Model(&models.ClickLog{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayClicks).Error; err != nil {
		return err
	}

	if err := cache.Set(CacheKeyLinksTotal, strconv.FormatInt(totalLinks, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyUsersTotal, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		return err
	}
	dailyKey := fmt.Sprintf(CacheKeyClicksDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayClicks, 10), CacheExpiration); err != nil {
		return err
	}

	return nil
}

// GetStatisticsData returns all statistics for the home page
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TotalLinks:  getCachedInt(CacheKeyLinksTotal, countLinks),
		TotalUsers:  getCachedInt(CacheKeyUsersTotal, countUsers),
		TodayClicks: getCachedInt(fmt.Sprintf(CacheKeyClicksDaily, time.Now().Format("2006-01-02")), countTodayClicks),
	}
}

// getCachedInt reads a counter from cache, falling back to the database loader
func getCachedInt(key string, load func() int64) int {
	val, err := cache.Get(key)
	if err != nil {
		count := load()
		if err := cache.Set(key, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Errorf("Failed to cache %s: %v", key, err)
		}
		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

func countLinks() int64 {
	var count int64
	if err := database.GetDB().Model(&models.Link{}).Count(&count).Error; err != nil {
		log.Errorf("Error counting links: %v", err)
	}
	return count
}

func countUsers() int64 {
	var count int64
	if err := database.GetDB().Model(&models.User{}).Count(&count).Error; err != nil {
		log.Errorf("Error counting users: %v", err)
	}
	return count
}

func countTodayClicks() int64 {
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	var count int64
	if err := database.GetDB().Model(&models.ClickLog{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
		log.Errorf("Error counting today's clicks: %v", err)
	}
	return count
}
