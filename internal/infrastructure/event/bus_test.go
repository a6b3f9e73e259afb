package event

import (
	"context"
	"errors"
	"testing"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.received = append(h.received, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newTestEvent(eventType string) shared.DomainEvent {
	return &brewing.BatchStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Batch", uuid.New(), uuid.New()),
	}
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("delivers events to matching handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{brewing.EventTypeBatchStatusChanged}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent(brewing.EventTypeBatchStatusChanged))
		require.NoError(t, err)
		assert.Len(t, handler.received, 1)
	})

	t.Run("does not deliver to handlers of other types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{brewing.EventTypeBatchPlanned}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent(brewing.EventTypeBatchStatusChanged))
		require.NoError(t, err)
		assert.Empty(t, handler.received)
	})

	t.Run("wildcard handler receives all events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(),
			newTestEvent(brewing.EventTypeBatchPlanned),
			newTestEvent(brewing.EventTypeBottlingRecorded),
		))
		assert.Len(t, handler.received, 2)
	})

	t.Run("handler error does not stop other handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{brewing.EventTypeBatchPlanned}, err: errors.New("db down")}
		healthy := &recordingHandler{types: []string{brewing.EventTypeBatchPlanned}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		err := bus.Publish(context.Background(), newTestEvent(brewing.EventTypeBatchPlanned))
		require.NoError(t, err)
		assert.Len(t, healthy.received, 1)
	})

	t.Run("handler panic is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{types: []string{brewing.EventTypeBatchPlanned}, panics: true}
		healthy := &recordingHandler{types: []string{brewing.EventTypeBatchPlanned}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NotPanics(t, func() {
			_ = bus.Publish(context.Background(), newTestEvent(brewing.EventTypeBatchPlanned))
		})
		assert.Len(t, healthy.received, 1)
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{brewing.EventTypeBatchPlanned}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent(brewing.EventTypeBatchPlanned)))
	assert.Empty(t, handler.received)
}

func TestProductionAuditHandler(t *testing.T) {
	handler := NewProductionAuditHandler(zap.NewNop())

	t.Run("subscribes to production lifecycle events", func(t *testing.T) {
		assert.Contains(t, handler.EventTypes(), brewing.EventTypeBatchStatusChanged)
		assert.Contains(t, handler.EventTypes(), brewing.EventTypeBottlingRecorded)
	})

	t.Run("handles events without error", func(t *testing.T) {
		err := handler.Handle(context.Background(), newTestEvent(brewing.EventTypeBatchStatusChanged))
		require.NoError(t, err)
	})
}
