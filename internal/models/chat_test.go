package models

import (
	"strings"
	"testing"
	"time"
)

func TestNewChatSessionTruncatesTitle(t *testing.T) {
	long := strings.Repeat("x", 150)
	session := NewChatSession("u-1", long, time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC))
	if len(session.SessionTitle) != 100 {
		t.Errorf("title length: got %d, want 100", len(session.SessionTitle))
	}
	if session.SessionDate == nil || !session.SessionDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("session date should be the UTC day: got %v", session.SessionDate)
	}
}

func TestChatSessionMessageCountRecomputed(t *testing.T) {
	session := NewChatSession("u-1", "Planning", time.Now().UTC())
	session.ID = "s-1"
	session.Messages = append(session.Messages,
		ChatMessage{Role: ChatRoleUser, Content: "hi", Timestamp: time.Now().UTC()},
		ChatMessage{Role: ChatRoleAssistant, Content: "hello", Timestamp: time.Now().UTC()},
	)
	// A stale stored count must not survive a round trip.
	rec := session.ToRecord()
	rec["message_count"] = float64(99)

	got, err := ChatSessionFromRecord(rec)
	if err != nil {
		t.Fatalf("ChatSessionFromRecord: %v", err)
	}
	if got.MessageCount != 2 {
		t.Errorf("message_count: got %d, want 2", got.MessageCount)
	}
	if got.Messages[1].Role != ChatRoleAssistant || got.Messages[1].Content != "hello" {
		t.Errorf("messages round trip: got %+v", got.Messages)
	}
}
