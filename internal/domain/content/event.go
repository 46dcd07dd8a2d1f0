package content

type EventType string

const (
	EventCreated  EventType = "created"
	EventUpdated  EventType = "updated"
	EventDeleted  EventType = "deleted"
	EventReplaced EventType = "replaced"
	EventReset    EventType = "reset"
)

// Event announces a committed store mutation. EntityID is empty for
// singletons and resets.
type Event struct {
	Type       EventType `json:"event_type"`
	Collection string    `json:"collection"`
	EntityID   string    `json:"entity_id,omitempty"`
	OccurredAt int64     `json:"occurred_at"`
}
