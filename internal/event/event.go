package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a domain event raised by one of the services
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types
const (
	VisitLogged       Type = domain.EventTypeVisitLogged
	QuestCompleted    Type = domain.EventTypeQuestCompleted
	AccessoryGranted  Type = domain.EventTypeAccessoryGranted
	AccessoryEquipped Type = domain.EventTypeAccessoryEquipped
	CompanionUpdated  Type = domain.EventTypeCompanionUpdated
)

// AllTypes lists every event type the services publish
var AllTypes = []Type{VisitLogged, QuestCompleted, AccessoryGranted, AccessoryEquipped, CompanionUpdated}

// VisitLoggedPayloadV1 is the typed payload for visit.logged
type VisitLoggedPayloadV1 struct {
	UserID    string `json:"user_id"`
	PlaceID   string `json:"place_id"`
	PlaceName string `json:"onsen_name"`
	TotalMs   int64  `json:"total_ms"`
	Timestamp int64  `json:"timestamp"`
}

// QuestCompletedPayloadV1 is the typed payload for quest.completed
type QuestCompletedPayloadV1 struct {
	UserID    string `json:"user_id"`
	QuestID   int64  `json:"quest_id"`
	QuestName string `json:"quest_name"`
	PlaceID   string `json:"place_id"`
	Timestamp int64  `json:"timestamp"`
}

// AccessoryPayloadV1 is the typed payload for accessory.granted and accessory.equipped
type AccessoryPayloadV1 struct {
	UserID        string `json:"user_id"`
	AccessoryID   int64  `json:"accessary_id"`
	AccessoryName string `json:"accessary_name,omitempty"`
	Granted       bool   `json:"granted"`
	Timestamp     int64  `json:"timestamp"`
}

// CompanionUpdatedPayloadV1 is the typed payload for companion.updated
type CompanionUpdatedPayloadV1 struct {
	UserID    string `json:"user_id"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Exp       int    `json:"exp"`
	Happiness int    `json:"happiness"`
	Source    string `json:"source,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// NewVisitLoggedEvent creates a visit.logged event
func NewVisitLoggedEvent(log domain.VisitLog) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    VisitLogged,
		Payload: VisitLoggedPayloadV1{
			UserID:    log.UserID,
			PlaceID:   log.PlaceID,
			PlaceName: log.PlaceName,
			TotalMs:   log.TotalMs,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewQuestCompletedEvent creates a quest.completed event
func NewQuestCompletedEvent(userID string, questID int64, questName, placeID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    QuestCompleted,
		Payload: QuestCompletedPayloadV1{
			UserID:    userID,
			QuestID:   questID,
			QuestName: questName,
			PlaceID:   placeID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewAccessoryGrantedEvent creates an accessory.granted event. granted is false when
// the picked accessory was already owned.
func NewAccessoryGrantedEvent(userID string, result domain.AccessoryGrantResult, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AccessoryGranted,
		Payload: AccessoryPayloadV1{
			UserID:        userID,
			AccessoryID:   result.Accessory.ID,
			AccessoryName: result.Accessory.Name,
			Granted:       result.Granted,
			Timestamp:     time.Now().Unix(),
		},
		Metadata: Metadata{MetadataKeySource: source},
	}
}

// NewAccessoryEquippedEvent creates an accessory.equipped event. accessoryID 0 means unequipped.
func NewAccessoryEquippedEvent(userID string, accessoryID int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AccessoryEquipped,
		Payload: AccessoryPayloadV1{
			UserID:      userID,
			AccessoryID: accessoryID,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewCompanionUpdatedEvent creates a companion.updated event
func NewCompanionUpdatedEvent(before, after domain.Companion, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CompanionUpdated,
		Payload: CompanionUpdatedPayloadV1{
			UserID:    after.UserID,
			OldLevel:  before.Level(),
			NewLevel:  after.Level(),
			Exp:       after.Exp,
			Happiness: after.Happiness,
			Source:    source,
			Timestamp: time.Now().Unix(),
		},
		Metadata: Metadata{MetadataKeySource: source},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes a handler to every type in types
func SubscribeAll(bus Bus, handler Handler, types ...Type) {
	for _, t := range types {
		bus.Subscribe(t, handler)
	}
}
