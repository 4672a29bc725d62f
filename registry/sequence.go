package registry

import (
	"fmt"
	"strconv"

	"github.com/goyibnazarovasliddin/letters-registery/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NextSequence advances the counter for year and returns the new value.
// The first allocation for a year creates its row with last_sequence = 1.
//
// The increment is a single upsert (INSERT ... ON DUPLICATE KEY UPDATE on
// MySQL, ON CONFLICT DO UPDATE on SQLite), never a read-then-write pair, so
// two concurrent registrations in the same year cannot receive the same
// value. tx must be the same transaction that persists the letter update:
// if that update fails, the allocation rolls back with it and no number is
// burned.
func NextSequence(tx *gorm.DB, year int) (int, error) {
	counter := models.YearCounter{Year: year, LastSequence: 1}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_sequence": gorm.Expr("last_sequence + 1"),
		}),
	}).Create(&counter).Error
	if err != nil {
		return 0, fmt.Errorf("advance year counter %d: %w", year, err)
	}

	// The upsert holds the row lock until the transaction ends, so this
	// read observes exactly the value this allocation produced.
	var current models.YearCounter
	if err := tx.First(&current, "year = ?", year).Error; err != nil {
		return 0, fmt.Errorf("read year counter %d: %w", year, err)
	}
	return current.LastSequence, nil
}

// YearOf extracts the counter year from a letter date in YYYY-MM-DD form.
// A malformed prefix is an error, never silently defaulted.
func YearOf(letterDate string) (int, error) {
	if len(letterDate) < 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, letterDate)
	}
	year, err := strconv.Atoi(letterDate[:4])
	if err != nil || year < 1000 || year > 9999 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, letterDate)
	}
	return year, nil
}
