package store

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go-brochure/internal/config"
)

// Run is one persisted workflow result in server mode.
type Run struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Kind      string    `json:"kind"` // "summary" or "brochure"
	URL       string    `json:"url"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"createdAt"`
}

var DB *gorm.DB

// Init opens the configured database and migrates the Run model.
// Sqlite by default, postgres when the config names it.
func Init(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		return err
	}

	DB = db
	log.Printf("Database connected and migrated (%s)", cfg.Database.Driver)
	return nil
}

// SaveRun persists one workflow result.
func SaveRun(run *Run) error {
	return DB.Create(run).Error
}

// ListRuns returns the most recent runs, newest first.
func ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []Run
	err := DB.Order("created_at desc").Limit(limit).Find(&runs).Error
	return runs, err
}
