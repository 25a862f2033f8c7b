package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waabox/buildboard/internal/session"
)

func TestWindow_StartsOnView(t *testing.T) {
	w := session.NewWindow()
	assert.Equal(t, session.WindowView, w.Get())
}

func TestWindow_GetObservesLatestSet(t *testing.T) {
	w := session.NewWindow()
	w.Set(session.WindowTests)
	w.Set(session.WindowArtifacts)
	assert.Equal(t, session.WindowArtifacts, w.Get())
}

func TestWindow_NotifiesSubscribersOnChange(t *testing.T) {
	w := session.NewWindow()
	var seen []int
	w.Subscribe(func(id int) { seen = append(seen, id) })

	w.Set(session.WindowTests)
	w.Set(session.WindowTests)
	w.Set(session.WindowView)

	assert.Equal(t, []int{session.WindowTests, session.WindowView}, seen)
}

func TestWindow_UnsubscribeStopsNotifications(t *testing.T) {
	w := session.NewWindow()
	calls := 0
	unsubscribe := w.Subscribe(func(int) { calls++ })

	w.Set(session.WindowTests)
	unsubscribe()
	unsubscribe()
	w.Set(session.WindowArtifacts)

	assert.Equal(t, 1, calls)
}

func TestWindow_SubscriberCanReadCell(t *testing.T) {
	w := session.NewWindow()
	var read int
	w.Subscribe(func(int) { read = w.Get() })

	w.Set(session.WindowArtifacts)
	assert.Equal(t, session.WindowArtifacts, read)
}

func TestWindow_ChannelKeepsMostRecent(t *testing.T) {
	w := session.NewWindow()
	ch, unsubscribe := w.Channel()
	defer unsubscribe()

	w.Set(session.WindowTests)
	w.Set(session.WindowArtifacts)

	assert.Equal(t, session.WindowArtifacts, <-ch)
	select {
	case id := <-ch:
		t.Fatalf("unexpected extra id %d", id)
	default:
	}
}
