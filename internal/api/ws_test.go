package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
)

func dialFeed(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/feed"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	return conn
}

// waitForObserver blocks until the server side has attached its bus observer.
func waitForObserver(t *testing.T, env *testEnv, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for env.bus.Len() < n && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if env.bus.Len() < n {
		t.Fatalf("expected %d attached observers, got %d", n, env.bus.Len())
	}
}

func TestStream_DeliversChangeEvents(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	conn := dialFeed(t, server)
	defer conn.Close()
	waitForObserver(t, env, 1)

	post := samplePost()
	env.bus.Publish(models.ChangeEvent{
		EventID:   "evt-1",
		Action:    models.ActionCreate,
		Post:      post,
		Timestamp: time.Now(),
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev models.ChangeEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if ev.Action != models.ActionCreate {
		t.Errorf("expected create action, got %s", ev.Action)
	}
	if ev.Post == nil || ev.Post.ID != post.ID {
		t.Error("expected event to carry the post snapshot")
	}
}

func TestStream_DeleteEventCarriesOnlyID(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	conn := dialFeed(t, server)
	defer conn.Close()
	waitForObserver(t, env, 1)

	env.bus.Publish(models.ChangeEvent{
		EventID:   "evt-2",
		Action:    models.ActionDelete,
		PostID:    "post-9",
		Timestamp: time.Now(),
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev models.ChangeEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if ev.Action != models.ActionDelete {
		t.Errorf("expected delete action, got %s", ev.Action)
	}
	if ev.Post != nil {
		t.Error("expected no post snapshot on delete events")
	}
	if ev.PostID != "post-9" {
		t.Errorf("expected post ID post-9, got %s", ev.PostID)
	}
}

func TestStream_LateClientMissesEarlierEvents(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	// Published before any client attached; must not be replayed.
	env.bus.Publish(models.ChangeEvent{
		EventID:   "evt-early",
		Action:    models.ActionCreate,
		Post:      samplePost(),
		Timestamp: time.Now(),
	})

	conn := dialFeed(t, server)
	defer conn.Close()
	waitForObserver(t, env, 1)

	env.bus.Publish(models.ChangeEvent{
		EventID:   "evt-late",
		Action:    models.ActionUpdate,
		Post:      samplePost(),
		Timestamp: time.Now(),
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev models.ChangeEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if ev.EventID != "evt-late" {
		t.Errorf("expected only the late event, got %s", ev.EventID)
	}
}

func TestStream_DetachesOnDisconnect(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	conn := dialFeed(t, server)
	waitForObserver(t, env, 1)

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for env.bus.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if env.bus.Len() != 0 {
		t.Errorf("expected observer detached after disconnect, got %d", env.bus.Len())
	}
}
