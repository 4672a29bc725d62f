package registry

import (
	"log"
	"time"

	"github.com/goyibnazarovasliddin/letters-registery/models"
)

// reconcile restores the invariant that a REGISTERED letter carries a
// registration timestamp. Rows migrated from the old registry can be
// REGISTERED with a NULL registered_at; the caller's view is patched with
// UpdatedAt immediately and the row is repaired in the background.
//
// The repair is fire-and-forget: it is never awaited, its failure is logged
// and discarded, and the read path has already returned a correct value. A
// lost repair is retried the next time the same row is read.
func (s *Service) reconcile(letter *models.Letter) {
	if letter == nil || letter.Status != models.StatusRegistered || letter.RegisteredAt != nil {
		return
	}

	repairedAt := letter.UpdatedAt
	letter.RegisteredAt = &repairedAt

	go s.repairRegisteredAt(letter.ID, repairedAt)
}

func (s *Service) repairRegisteredAt(id string, registeredAt time.Time) {
	// UpdateColumn keeps updated_at untouched; the repair must not make the
	// row look freshly edited. The IS NULL guard makes concurrent repairs
	// harmless.
	err := s.db.Model(&models.Letter{}).
		Where("id = ? AND registered_at IS NULL", id).
		UpdateColumn("registered_at", registeredAt).Error
	if err != nil {
		log.Printf("letter %s: background registered_at repair failed: %v", id, err)
	}
}
