package http

import (
	"context"
	"testing"

	"github.com/aretw0/storefront/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamManager_ObserveBroadcasts(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s1")
	defer cancel()

	prev := domain.NewState("s1")
	next := prev.NavigateTo(domain.PageProducts)
	sm.Observe(context.Background(), prev, &next)

	ev := <-ch
	assert.Equal(t, EventDiff, ev.Name)
	require.NotNil(t, ev.Diff.Page)
	assert.Equal(t, domain.PageProducts, *ev.Diff.Page)

	sm.Observe(context.Background(), &next, nil)
	ev = <-ch
	assert.Equal(t, EventDeleted, ev.Name)
	assert.Equal(t, "s1", ev.Diff.SessionID)
}

func TestStreamManager_CancelRemovesSubscriber(t *testing.T) {
	sm := NewStreamManager()
	_, cancel := sm.Subscribe("s1")
	assert.Equal(t, 1, sm.Subscribers("s1"))
	cancel()
	assert.Equal(t, 0, sm.Subscribers("s1"))
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s1")
	defer cancel()

	for i := 0; i < sm.buffer+5; i++ {
		sm.Broadcast("s1", Event{Name: EventDiff})
	}
	assert.Len(t, ch, sm.buffer)
}

func TestWatchFilter(t *testing.T) {
	page := domain.PageCart
	items := 1
	diff := &domain.StateDiff{SessionID: "s1", Page: &page, TotalItems: &items}

	assert.Equal(t, diff, parseWatch("").apply(diff))

	onlyPage := parseWatch("page").apply(diff)
	require.NotNil(t, onlyPage)
	assert.Nil(t, onlyPage.TotalItems)

	pageOnly := &domain.StateDiff{SessionID: "s1", Page: &page}
	assert.Nil(t, parseWatch("cart").apply(pageOnly))
}

func TestOpenAPISpec_Valid(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.NotNil(t, doc.Paths.Find("/sessions/{sessionId}/intents"))
}
