package listeners

import (
	"context"
	"fmt"

	"gearguard/internal/events"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/metrics"

	"go.uber.org/zap"
)

type StatusChangeListener struct {
	metrics *metrics.AppMetrics
	logger  *zap.Logger
}

func NewStatusChangeListener(m *metrics.AppMetrics, logger *zap.Logger) *StatusChangeListener {
	return &StatusChangeListener{metrics: m, logger: logger}
}

func (l *StatusChangeListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestStatusChanged, l.Handle)
}

func (l *StatusChangeListener) Handle(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.RequestStatusChangedEvent)
	if !ok {
		return fmt.Errorf("StatusChangeListener: неожиданный тип события %T", e)
	}

	l.metrics.IncTransition(event.OldStatus, event.NewStatus)
	l.logger.Info("Статус заявки изменён",
		zap.Uint64("requestID", event.RequestID),
		zap.String("from", event.OldStatus),
		zap.String("to", event.NewStatus),
		zap.Uint64("actorID", event.ActorID),
		zap.Time("changedAt", event.ChangedAt),
	)
	return nil
}
