package store_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/qrhunt/scavenger/internal/store"
)

// Runs against a real server only when MONGODB_URI is set.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := store.NewMongoStore(ctx, uri, "hunt_test_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()

	inserted, err := s.InsertIfAbsent(ctx, store.FullCompletion, "AB123499", store.Document{
		"registrationId": "AB123499",
		"completedAt":    time.Now(),
	})
	if err != nil || !inserted {
		t.Fatalf("first insert: inserted=%v err=%v", inserted, err)
	}
	inserted, err = s.InsertIfAbsent(ctx, store.FullCompletion, "AB123499", store.Document{
		"registrationId": "AB123499",
	})
	if err != nil || inserted {
		t.Fatalf("second insert: inserted=%v err=%v, want false/nil", inserted, err)
	}

	doc, err := s.FindOne(ctx, store.FullCompletion, store.Filter{"registrationId": "AB123499"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if _, ok := doc["_id"]; ok {
		t.Error("_id leaked into document")
	}
	if _, ok := doc.Time("completedAt"); !ok {
		t.Error("completedAt is not a time")
	}

	_, err = s.FindOne(ctx, store.FullCompletion, store.Filter{"registrationId": "nope"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing: err = %v, want ErrNotFound", err)
	}
}
