package audit

import (
	"context"
	"log"

	"github.com/goyibnazarovasliddin/letters-registery/utils/events"
)

// StartConsumer drains the letter event bus and writes an audit line per
// event. It runs until ctx is cancelled. Registration lines include the
// assigned number so the registry log can be grepped by letter number.
func StartConsumer(ctx context.Context) {
	log.Println("✅ Audit consumer started")

	for {
		select {
		case <-ctx.Done():
			return
		case e := <-events.LetterEventBus:
			switch e.Type {
			case events.LetterRegistered:
				log.Printf("[audit] letter %s registered as %q by user %d", e.Letter.ID, e.Letter.LetterNumber, e.ActorID)
			case events.LetterCreated:
				log.Printf("[audit] letter %s created (%s) by user %d", e.Letter.ID, e.Letter.Status, e.ActorID)
			case events.LetterDeleted:
				log.Printf("[audit] letter %s deleted by user %d", e.Letter.ID, e.ActorID)
			}
		}
	}
}
