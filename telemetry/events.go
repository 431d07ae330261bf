// Package telemetry provides frame timing, field statistics and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventImageQueued EventType = iota // Anchor became visible, load started
	EventImageLoaded                  // Field created from a finished load
	EventImageFailed                  // Decode failure or empty sample
	EventAnchorMissing                // Anchor absent during projection
	EventReset                        // Background particles reinitialised
)

func (t EventType) String() string {
	switch t {
	case EventImageQueued:
		return "image_queued"
	case EventImageLoaded:
		return "image_loaded"
	case EventImageFailed:
		return "image_failed"
	case EventAnchorMissing:
		return "anchor_missing"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type EventType
	Tick int32
	Key  string // Anchor key for image events

	// Optional fields depending on event type
	Count int // Particles for loads, count for resets and missing anchors
}

// NewImageQueuedEvent creates an image queued event.
func NewImageQueuedEvent(tick int32, key string) Event {
	return Event{Type: EventImageQueued, Tick: tick, Key: key}
}

// NewImageLoadedEvent creates an image loaded event.
func NewImageLoadedEvent(tick int32, key string, particles int) Event {
	return Event{Type: EventImageLoaded, Tick: tick, Key: key, Count: particles}
}

// NewImageFailedEvent creates an image failed event.
func NewImageFailedEvent(tick int32, key string) Event {
	return Event{Type: EventImageFailed, Tick: tick, Key: key}
}

// NewAnchorMissingEvent records how many anchored fields were skipped.
func NewAnchorMissingEvent(tick int32, count int) Event {
	return Event{Type: EventAnchorMissing, Tick: tick, Count: count}
}

// NewResetEvent records how many background particles were reinitialised.
func NewResetEvent(tick int32, count int) Event {
	return Event{Type: EventReset, Tick: tick, Count: count}
}
