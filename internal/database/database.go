package database

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the cgo-free sqlite driver used for local development.
	_ "modernc.org/sqlite"
)

// Connect opens the store by DSN prefix: postgres for production,
// sqlite for local development and tests.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// IsPostgres reports whether the connection speaks postgres; some
// constraints below only exist there.
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// EnsureOverlapConstraint installs the exclusion constraint that makes
// double-booking impossible at the storage layer: two rows for the same
// room with overlapping [check_in, check_out) ranges cannot both be in a
// blocking status. The availability pre-check stays advisory; this is the
// authoritative guard. Sqlite has no equivalent, so local dev relies on
// the pre-check alone.
func EnsureOverlapConstraint(db *gorm.DB) error {
	if !IsPostgres(db) {
		return nil
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	return db.Exec(`
DO $$ BEGIN
  ALTER TABLE bookings ADD CONSTRAINT no_room_overlap
    EXCLUDE USING gist (
      room_id WITH =,
      daterange(check_in_date::date, check_out_date::date, '[)') WITH &&
    ) WHERE (status IN ('Booked', 'Checked-In') AND room_id IS NOT NULL);
EXCEPTION
  WHEN duplicate_object THEN NULL;
END $$`).Error
}
