package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/saodatov/hotel-pms/config"
	"github.com/saodatov/hotel-pms/internal/auth"
	"github.com/saodatov/hotel-pms/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured engine. Business logic never sees which
// engine is behind the *gorm.DB; the choice is purely configuration.
func Open(cfg *config.Config) *gorm.DB {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBEngine {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	case "sqlite":
		// immediate txlock serializes write transactions up front and
		// busy_timeout queues concurrent writers instead of failing them
		dsn := fmt.Sprintf("%s?_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", cfg.SQLitePath)
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	default:
		log.Fatalf("unknown DB_ENGINE %q (want sqlite or postgres)", cfg.DBEngine)
	}
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return db
}

// Initialize migrates the schema, creates the partial unique index that
// enforces one active reservation per (room, date), and seeds the
// superuser and the base rooms. Called once from the bootstrap, never as
// an import side effect.
func Initialize(db *gorm.DB, cfg *config.Config) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Partial unique index: cancelled/checked-out history may pile up on
	// the same room/date, but at most one BOOKED or CHECKED_IN row can
	// exist. This is the authoritative double-booking guard; the
	// allocator's read is only advisory.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS ux_room_date_active
		ON reservations (room_id, stay_date)
		WHERE status IN ('BOOKED', 'CHECKED_IN')
	`).Error; err != nil {
		return fmt.Errorf("create partial unique index: %w", err)
	}

	if err := seed(db, cfg); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func seed(db *gorm.DB, cfg *config.Config) error {
	var superusers int64
	if err := db.Model(&models.User{}).
		Where("username = ?", config.SuperuserUsername).
		Count(&superusers).Error; err != nil {
		return err
	}
	if superusers == 0 {
		hashed, err := auth.HashPassword(config.SuperuserDefaultPassword)
		if err != nil {
			return err
		}
		if err := db.Create(&models.User{
			Username:     config.SuperuserUsername,
			PasswordHash: hashed,
			Role:         models.RoleSuperuser,
		}).Error; err != nil {
			return err
		}
		log.Printf("[DB] seeded superuser %q", config.SuperuserUsername)
	}

	var rooms int64
	if err := db.Model(&models.Room{}).Count(&rooms).Error; err != nil {
		return err
	}
	if rooms == 0 {
		for i := 101; i <= 105; i++ {
			if err := db.Create(&models.Room{
				RoomNumber: fmt.Sprintf("%d", i),
				Status:     models.RoomActive,
				BaseRate:   cfg.BaseRate,
			}).Error; err != nil {
				return err
			}
		}
		log.Printf("[DB] seeded rooms 101-105")
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
// GORM's TranslateError normalizes this for both engines; the string
// checks cover driver versions that predate the translation.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
