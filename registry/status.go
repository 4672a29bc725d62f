package registry

import (
	"fmt"

	"github.com/goyibnazarovasliddin/letters-registery/models"
)

// Transition validates a status change. The only legal move is
// DRAFT -> REGISTERED; REGISTERED is terminal. Staying in the current
// status is always allowed.
func Transition(from, to models.LetterStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidState, to)
	}
	if from == to {
		return nil
	}
	if from == models.StatusDraft && to == models.StatusRegistered {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidState, from, to)
}
