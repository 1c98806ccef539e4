package listeners

import (
	"context"
	"fmt"

	"gearguard/internal/events"
	"gearguard/pkg/eventbus"
)

// Broadcaster - то, чем рассылаются события подключённым клиентам (websocket.Hub).
type Broadcaster interface {
	Broadcast(messageType string, payload interface{}) error
}

// RealtimeListener пересылает смену статуса заявки во все открытые WebSocket-соединения.
type RealtimeListener struct {
	out Broadcaster
}

func NewRealtimeListener(out Broadcaster) *RealtimeListener {
	return &RealtimeListener{out: out}
}

func (l *RealtimeListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestStatusChanged, l.Handle)
}

func (l *RealtimeListener) Handle(_ context.Context, e eventbus.Event) error {
	event, ok := e.(events.RequestStatusChangedEvent)
	if !ok {
		return fmt.Errorf("RealtimeListener: неожиданный тип события %T", e)
	}
	return l.out.Broadcast(event.Name(), event)
}
