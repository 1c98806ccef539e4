package listeners

import (
	"context"
	"sync"
	"testing"

	"gearguard/internal/events"
	"gearguard/pkg/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingBroadcaster struct {
	mu       sync.Mutex
	types    []string
	payloads []interface{}
}

func (r *recordingBroadcaster) Broadcast(messageType string, payload interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, messageType)
	r.payloads = append(r.payloads, payload)
	return nil
}

func TestRealtimeListenerForwardsStatusChange(t *testing.T) {
	out := &recordingBroadcaster{}
	bus := eventbus.New(zap.NewNop())
	NewRealtimeListener(out).Register(bus)

	bus.Publish(events.RequestStatusChangedEvent{RequestID: 9, OldStatus: "new", NewStatus: "scrap"})
	bus.Wait()

	require.Len(t, out.types, 1)
	assert.Equal(t, events.RequestStatusChanged, out.types[0])
	assert.Equal(t, uint64(9), out.payloads[0].(events.RequestStatusChangedEvent).RequestID)
}

func TestRealtimeListenerRejectsForeignEvent(t *testing.T) {
	assert.Error(t, NewRealtimeListener(&recordingBroadcaster{}).Handle(context.Background(), otherEvent{}))
}
