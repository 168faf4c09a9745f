package events

import (
	"encoding/json"
	"time"
)

// Envelope is the event shape carried on the in-process bus. PartitionKey
// groups related events; for votes it is the session id.
type Envelope struct {
	EventID        string          `json:"event_id"`
	EventType      string          `json:"event_type"`
	SourceService  string          `json:"source_service"`
	OccurredAtUTC  time.Time       `json:"occurred_at_utc"`
	PartitionKey   string          `json:"partition_key"`
	EntityType     string          `json:"entity_type"`
	EntityID       string          `json:"entity_id"`
	PayloadVersion int             `json:"payload_version"`
	Payload        json.RawMessage `json:"payload"`
}
