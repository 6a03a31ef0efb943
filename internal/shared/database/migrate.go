package database

import (
	"gorm.io/gorm"

	"tigertix/internal/bookings"
	"tigertix/internal/events"
	"tigertix/internal/users"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&bookings.Booking{},
	); err != nil {
		return err
	}

	return migrateIndexes(db)
}

// migrateIndexes adds indexes AutoMigrate does not cover. The partial index
// keeps the sold-out filter cheap, it only contains events with stock left.
func migrateIndexes(db *gorm.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_events_available
			ON events (date) WHERE tickets_available > 0`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user_id
			ON bookings (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_event_id
			ON bookings (event_id)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
