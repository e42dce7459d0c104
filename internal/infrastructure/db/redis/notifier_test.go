package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tracknest/issuetracker/internal/core/domain"
)

func TestPublishDeliversJSONOnDerivedChannel(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	userID := uuid.New()
	channel := "news." + userID.String()

	sub := client.Subscribe(ctx, channel)
	t.Cleanup(func() { _ = sub.Close() })
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	event := domain.NewIssueEvent(uuid.New())
	notifier := NewNotifier(client, zerolog.Nop())
	if err := notifier.Publish(ctx, "news", userID.String(), event); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case msg := <-sub.Channel():
		if msg.Channel != channel {
			t.Errorf("channel = %q, want %q", msg.Channel, channel)
		}
		var got domain.IssueEvent
		if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if got.Kind != domain.EventKindNewIssue || got.IssueID != event.IssueID {
			t.Errorf("payload %+v, want %+v", got, event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestPublishRejectsUnmarshalablePayload(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	notifier := NewNotifier(client, zerolog.Nop())
	if err := notifier.Publish(context.Background(), "news", "key", make(chan int)); err == nil {
		t.Fatal("expected marshal error, got nil")
	}
}
