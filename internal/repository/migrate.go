package repository

import "gorm.io/gorm"

// bookingsNoOverlap closes the check-then-act race on overlapping bookings at
// the storage layer. Two concurrent creations for the same office and an
// overlapping [start, end) range cannot both commit; the loser surfaces as a
// constraint violation the booking service maps to an availability error.
const bookingsNoOverlap = `
DO $$ BEGIN
	ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
		EXCLUDE USING gist (
			office_id WITH =,
			tstzrange(start_time, end_time, '[)') WITH &&
		) WHERE (status IN ('pending', 'scheduled'));
EXCEPTION
	WHEN duplicate_object THEN NULL;
END $$`

// Migrate creates the schema from the row models. The overlap exclusion
// constraint needs btree_gist and applies only on PostgreSQL; the SQLite dev
// path relies on the service-level availability check alone.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&branchModel{},
		&officeModel{},
		&inactivityModel{},
		&bookingModel{},
		&membershipModel{},
		&acquisitionModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
			return err
		}
		if err := db.Exec(bookingsNoOverlap).Error; err != nil {
			return err
		}
	}
	return nil
}
