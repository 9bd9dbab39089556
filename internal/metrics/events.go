package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/onsenkatsu/internal/event"
	"github.com/osse101/onsenkatsu/internal/logger"
)

// EventMetricsCollector subscribes to events and records business metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, e.HandleEvent, event.AllTypes...)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.VisitLogged:
		p, err := event.DecodePayload[event.VisitLoggedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		VisitsLogged.Inc()
		BathingSeconds.Add(float64(p.TotalMs) / 1000)

	case event.QuestCompleted:
		QuestsCompleted.Inc()

	case event.AccessoryGranted:
		p, err := event.DecodePayload[event.AccessoryPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		AccessoriesGranted.WithLabelValues(strconv.FormatBool(p.Granted)).Inc()

	case event.AccessoryEquipped:
		p, err := event.DecodePayload[event.AccessoryPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		action := ActionEquip
		if p.AccessoryID == 0 {
			action = ActionUnequip
		}
		AccessoryEquips.WithLabelValues(action).Inc()

	case event.CompanionUpdated:
		p, err := event.DecodePayload[event.CompanionUpdatedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		if p.NewLevel > p.OldLevel {
			CompanionLevelUps.Add(float64(p.NewLevel - p.OldLevel))
		}
	}

	return nil
}
