package core

import (
	"context"
	"testing"
	"time"
)

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Clients() == n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", n, hub.Clients())
}

func TestHubBroadcastReachesEveryClient(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := NewClient("general", 0)
	bob := NewClient("random", 0)

	if !hub.RegisterClient(alice) || !hub.RegisterClient(bob) {
		t.Fatal("register failed")
	}
	waitForClients(t, hub, 2)

	hub.Broadcast(Message{From: "alice", Text: "hi"})

	// The sender receives its own message back, and the room segment does
	// not partition delivery.
	for _, c := range []*Client{alice, bob} {
		ev := mustEvent(t, c.Events, EventRoomMessage)
		if ev.Message.From != "alice" || ev.Message.Text != "hi" {
			t.Fatalf("unexpected message event: %+v", ev)
		}
	}
}

func TestHubUnregisterClosesEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := NewClient("", 0)
	hub.RegisterClient(alice)
	waitForClients(t, hub, 1)

	hub.UnregisterClient(alice)
	waitForClients(t, hub, 0)

	if _, ok := <-alice.Events; ok {
		t.Fatal("expected events channel to be closed")
	}

	// A second unregister is a no-op.
	hub.UnregisterClient(alice)
}

func TestHubDropsForSlowConsumer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	slow := NewClient("", 1)
	fast := NewClient("", 8)
	hub.RegisterClient(slow)
	hub.RegisterClient(fast)
	waitForClients(t, hub, 2)

	for _, text := range []string{"one", "two", "three"} {
		hub.Broadcast(Message{From: "bob", Text: text})
	}
	waitForClients(t, hub, 2)

	if got := len(slow.Events); got != 1 {
		t.Fatalf("slow client should hold exactly one event, got %d", got)
	}
	if got := len(fast.Events); got != 3 {
		t.Fatalf("fast client should hold all events, got %d", got)
	}
}

func TestHubShutdownSendsClosingNotice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := NewClient("general", 0)
	hub.RegisterClient(alice)
	waitForClients(t, hub, 1)

	cancel()
	<-hub.Done()

	ev, ok := <-alice.Events
	if !ok || ev.Kind != EventRoomClosing {
		t.Fatalf("expected closing notice, got %+v", ev)
	}
	if ev.Message.From != ServerName || ev.Message.Text != RoomClosingText {
		t.Fatalf("unexpected notice: %+v", ev.Message)
	}
	if _, ok := <-alice.Events; ok {
		t.Fatal("expected events channel to be closed after notice")
	}

	if hub.RegisterClient(NewClient("", 0)) {
		t.Fatal("register must fail after shutdown")
	}
	if hub.Broadcast(Message{Text: "late"}) {
		t.Fatal("broadcast must fail after shutdown")
	}
	if hub.Clients() != 0 {
		t.Fatal("expected no clients after shutdown")
	}
}

func TestHubClosingNoticeReachesSlowConsumer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub(nil)
	go hub.Run(ctx)

	slow := NewClient("", 1)
	hub.RegisterClient(slow)
	waitForClients(t, hub, 1)

	hub.Broadcast(Message{From: "bob", Text: "queued"})
	waitForClients(t, hub, 1)
	if got := len(slow.Events); got != 1 {
		t.Fatalf("expected a full buffer, got %d events", got)
	}

	cancel()
	<-hub.Done()

	ev, ok := <-slow.Events
	if !ok || ev.Kind != EventRoomClosing || ev.Message.Text != RoomClosingText {
		t.Fatalf("expected closing notice, got %+v", ev)
	}
	if _, ok := <-slow.Events; ok {
		t.Fatal("expected events channel to be closed after notice")
	}
}
