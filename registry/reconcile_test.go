package registry

import (
	"context"
	"testing"
	"time"

	"github.com/goyibnazarovasliddin/letters-registery/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// breakRegisteredAt simulates a row migrated from the old registry: status
// REGISTERED with no registration timestamp. UpdateColumns keeps updated_at
// as it was, so the reconciler's patch value is deterministic.
func breakRegisteredAt(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	err := db.Model(&models.Letter{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"status":        models.StatusRegistered,
			"letter_number": "01-02/99",
			"registered_at": nil,
		}).Error
	require.NoError(t, err)
}

func TestReconcilePatchesMissingRegisteredAt(t *testing.T) {
	svc, db := newTestService(t)
	seedSettings(t, db, true)
	owner := seedUser(t, db, "bobur", models.RoleUser)
	index := seedIndex(t, db, "01-02")
	letter := seedDraft(t, db, owner, &index, "2025-06-01")

	breakRegisteredAt(t, db, letter.ID)

	var stored models.Letter
	require.NoError(t, db.First(&stored, "id = ?", letter.ID).Error)
	require.Nil(t, stored.RegisteredAt)

	got, err := svc.GetLetter(context.Background(), letter.ID, actorFor(owner))
	require.NoError(t, err)

	// The view is patched immediately with the row's updated_at.
	require.NotNil(t, got.RegisteredAt)
	require.WithinDuration(t, stored.UpdatedAt, *got.RegisteredAt, time.Second)
}

func TestReconcileRepairsRowInBackground(t *testing.T) {
	svc, db := newTestService(t)
	seedSettings(t, db, true)
	owner := seedUser(t, db, "bobur", models.RoleUser)
	index := seedIndex(t, db, "01-02")
	letter := seedDraft(t, db, owner, &index, "2025-06-01")

	breakRegisteredAt(t, db, letter.ID)

	_, err := svc.GetLetter(context.Background(), letter.ID, actorFor(owner))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		var stored models.Letter
		if err := db.First(&stored, "id = ?", letter.ID).Error; err != nil {
			return false
		}
		return stored.RegisteredAt != nil
	}, 2*time.Second, 10*time.Millisecond, "background repair never persisted")
}

func TestReconcileRepairDoesNotBumpUpdatedAt(t *testing.T) {
	svc, db := newTestService(t)
	seedSettings(t, db, true)
	owner := seedUser(t, db, "bobur", models.RoleUser)
	index := seedIndex(t, db, "01-02")
	letter := seedDraft(t, db, owner, &index, "2025-06-01")

	breakRegisteredAt(t, db, letter.ID)

	var before models.Letter
	require.NoError(t, db.First(&before, "id = ?", letter.ID).Error)

	_, err := svc.GetLetter(context.Background(), letter.ID, actorFor(owner))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		var stored models.Letter
		if err := db.First(&stored, "id = ?", letter.ID).Error; err != nil {
			return false
		}
		return stored.RegisteredAt != nil
	}, 2*time.Second, 10*time.Millisecond)

	var after models.Letter
	require.NoError(t, db.First(&after, "id = ?", letter.ID).Error)
	require.True(t, before.UpdatedAt.Equal(after.UpdatedAt), "repair must not touch updated_at")
}

func TestReconcileLeavesConsistentRowsAlone(t *testing.T) {
	svc, db := newTestService(t)
	seedSettings(t, db, true)
	owner := seedUser(t, db, "bobur", models.RoleUser)
	index := seedIndex(t, db, "01-02")
	letter := seedDraft(t, db, owner, &index, "2025-06-01")

	registered, err := svc.Register(context.Background(), letter.ID, actorFor(owner))
	require.NoError(t, err)
	want := *registered.RegisteredAt

	got, err := svc.GetLetter(context.Background(), letter.ID, actorFor(owner))
	require.NoError(t, err)
	require.NotNil(t, got.RegisteredAt)
	require.True(t, want.Equal(*got.RegisteredAt))

	// Drafts are untouched too.
	draft := seedDraft(t, db, owner, &index, "2025-06-01")
	got, err = svc.GetLetter(context.Background(), draft.ID, actorFor(owner))
	require.NoError(t, err)
	require.Nil(t, got.RegisteredAt)
}

func TestReconcileRunsOnListReads(t *testing.T) {
	svc, db := newTestService(t)
	seedSettings(t, db, true)
	owner := seedUser(t, db, "bobur", models.RoleUser)
	index := seedIndex(t, db, "01-02")
	letter := seedDraft(t, db, owner, &index, "2025-06-01")

	breakRegisteredAt(t, db, letter.ID)

	page, err := svc.ListLetters(context.Background(), ListFilter{}, actorFor(owner))
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	require.NotNil(t, page.Items[0].RegisteredAt)
}
