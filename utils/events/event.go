package events

import (
	"github.com/goyibnazarovasliddin/letters-registery/models"
)

// LetterEventType names lifecycle events of a letter.
type LetterEventType string

const (
	// LetterCreated is published when a new letter is persisted.
	LetterCreated LetterEventType = "LetterCreated"

	// LetterRegistered is published when a letter receives its number.
	LetterRegistered LetterEventType = "LetterRegistered"

	// LetterDeleted is published when a draft is removed.
	LetterDeleted LetterEventType = "LetterDeleted"
)

// LetterEvent is the payload for letter events.
type LetterEvent struct {
	Type    LetterEventType
	Letter  models.Letter
	ActorID uint
}

// LetterEventBus carries letter events to background consumers. The channel
// is buffered so publishing never blocks an API handler.
var LetterEventBus = make(chan LetterEvent, 100)

// Publish drops the event if the bus is full; consumers are best-effort.
func Publish(event LetterEvent) {
	select {
	case LetterEventBus <- event:
	default:
	}
}
