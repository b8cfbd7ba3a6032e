package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishIsScopedToTopic(t *testing.T) {
	h := NewHub()
	acme, cleanupAcme := h.Subscribe("acme")
	defer cleanupAcme()
	other, cleanupOther := h.Subscribe("other")
	defer cleanupOther()

	delivered := h.Publish("acme", Event{Type: "attendance_alert", Data: "late"})
	assert.Equal(t, 1, delivered)

	select {
	case ev := <-acme:
		assert.Equal(t, "attendance_alert", ev.Type)
		assert.Equal(t, "late", ev.Data)
	default:
		t.Fatal("acme subscriber got nothing")
	}

	select {
	case ev := <-other:
		t.Fatalf("other tenant received %v", ev)
	default:
	}
}

func TestHub_FullBufferDropsEvent(t *testing.T) {
	h := NewHub()
	h.buffer = 1
	_, cleanup := h.Subscribe("acme")
	defer cleanup()

	assert.Equal(t, 1, h.Publish("acme", Event{Type: "a"}))
	assert.Equal(t, 0, h.Publish("acme", Event{Type: "b"}))
}

func TestHub_CleanupAndClose(t *testing.T) {
	h := NewHub()
	first, cleanupFirst := h.Subscribe("acme")
	second, cleanupSecond := h.Subscribe("acme")
	_, cleanupThird := h.Subscribe("other")
	defer cleanupSecond()
	defer cleanupThird()

	require.Equal(t, 2, h.SubscriberCount("acme"))
	require.Equal(t, 3, h.TotalSubscribers())

	cleanupFirst()
	cleanupFirst()
	_, open := <-first
	assert.False(t, open)
	assert.Equal(t, 1, h.SubscriberCount("acme"))

	h.Close()
	_, open = <-second
	assert.False(t, open)
	assert.Zero(t, h.TotalSubscribers())

	late, cleanupLate := h.Subscribe("acme")
	defer cleanupLate()
	_, open = <-late
	assert.False(t, open)
}
