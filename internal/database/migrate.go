package database

import (
	"fmt"

	"gorm.io/gorm"

	"roombooking/internal/domain"
)

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&domain.Building{},
		&domain.Room{},
		&domain.Booking{},
	}
}

// Migrate creates or updates the schema. On PostgreSQL it also installs the
// exclusion constraint that forbids overlapping bookings of one room.
func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("create btree_gist: %w", err)
	}
	err := db.Exec(`
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (room_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&);
	END IF;
END $$;
`).Error
	if err != nil {
		return fmt.Errorf("create bookings_no_overlap: %w", err)
	}
	return nil
}
