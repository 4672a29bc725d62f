package registry

import (
	"errors"
	"testing"

	"github.com/goyibnazarovasliddin/letters-registery/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNextSequenceFirstUseCreatesCounter(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		seq, err := NextSequence(tx, 2025)
		require.NoError(t, err)
		require.Equal(t, 1, seq)
		return nil
	})
	require.NoError(t, err)

	var counter models.YearCounter
	require.NoError(t, db.First(&counter, "year = ?", 2025).Error)
	require.Equal(t, 1, counter.LastSequence)
}

func TestNextSequenceIncrementsByOne(t *testing.T) {
	db := newTestDB(t)

	for want := 1; want <= 5; want++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			seq, err := NextSequence(tx, 2025)
			require.NoError(t, err)
			require.Equal(t, want, seq)
			return nil
		})
		require.NoError(t, err)
	}
}

func TestNextSequenceYearsAreIndependent(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < 3; i++ {
			if _, err := NextSequence(tx, 2024); err != nil {
				return err
			}
		}
		seq, err := NextSequence(tx, 2025)
		require.NoError(t, err)
		require.Equal(t, 1, seq)
		return nil
	})
	require.NoError(t, err)
}

func TestNextSequenceRollsBackWithTransaction(t *testing.T) {
	db := newTestDB(t)

	sentinel := errors.New("boom")
	err := db.Transaction(func(tx *gorm.DB) error {
		seq, err := NextSequence(tx, 2025)
		require.NoError(t, err)
		require.Equal(t, 1, seq)
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	// The allocation rolled back with the transaction: no number was burned.
	var count int64
	require.NoError(t, db.Model(&models.YearCounter{}).Where("year = ?", 2025).Count(&count).Error)
	require.Zero(t, count)

	err = db.Transaction(func(tx *gorm.DB) error {
		seq, err := NextSequence(tx, 2025)
		require.NoError(t, err)
		require.Equal(t, 1, seq)
		return nil
	})
	require.NoError(t, err)
}

func TestYearOf(t *testing.T) {
	cases := []struct {
		date    string
		want    int
		wantErr bool
	}{
		{date: "2025-06-01", want: 2025},
		{date: "1999-12-31", want: 1999},
		{date: "2025", want: 2025},
		{date: "", wantErr: true},
		{date: "abc", wantErr: true},
		{date: "20-06-01", wantErr: true},
		{date: "junk-06-01", wantErr: true},
	}

	for _, tc := range cases {
		got, err := YearOf(tc.date)
		if tc.wantErr {
			require.ErrorIs(t, err, ErrInvalidDate, "date %q", tc.date)
			continue
		}
		require.NoError(t, err, "date %q", tc.date)
		require.Equal(t, tc.want, got, "date %q", tc.date)
	}
}
