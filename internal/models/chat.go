package models

import (
	"time"

	"go.uber.org/multierr"

	"onetask-api/internal/docstore"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

func (r ChatRole) Valid() bool {
	switch r {
	case ChatRoleUser, ChatRoleAssistant, ChatRoleSystem:
		return true
	}
	return false
}

// ChatMessage is one entry in a session's ordered message list.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// maxSessionTitleLength caps session titles at creation.
const maxSessionTitleLength = 100

// ChatSession holds an ordered message list. message_count is recomputed
// from the list length on every mutation, never incremented.
type ChatSession struct {
	BaseDocument
	SessionTitle string        `json:"session_title"`
	Messages     []ChatMessage `json:"messages"`
	SessionDate  *time.Time    `json:"session_date,omitempty"`
	MessageCount int           `json:"message_count"`
}

func (c *ChatSession) Base() *BaseDocument { return &c.BaseDocument }
func (c *ChatSession) Type() DocumentType  { return DocumentTypeChatSession }

// NewChatSession starts an empty session dated today.
func NewChatSession(userID, title string, now time.Time) *ChatSession {
	if len(title) > maxSessionTitleLength {
		title = title[:maxSessionTitleLength]
	}
	today := now.UTC().Truncate(24 * time.Hour)
	return &ChatSession{
		BaseDocument: BaseDocument{UserID: userID},
		SessionTitle: title,
		Messages:     []ChatMessage{},
		SessionDate:  &today,
	}
}

func (c *ChatSession) ToRecord() docstore.Record {
	rec := baseRecord(&c.BaseDocument, DocumentTypeChatSession)
	messages := make([]any, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, map[string]any{
			"role":      string(m.Role),
			"content":   m.Content,
			"timestamp": FormatTimestamp(m.Timestamp),
		})
	}
	rec["session_title"] = c.SessionTitle
	rec["messages"] = messages
	rec["message_count"] = len(c.Messages)
	setDatePtr(rec, "session_date", c.SessionDate)
	return rec
}

func ChatSessionFromRecord(rec docstore.Record) (*ChatSession, error) {
	base, err := baseFromRecord(rec, DocumentTypeChatSession)
	if err != nil {
		return nil, err
	}

	var messages []ChatMessage
	if raw, ok := rec["messages"].([]any); ok {
		messages = make([]ChatMessage, 0, len(raw))
		for _, item := range raw {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			messages = append(messages, ChatMessage{
				Role:      ChatRole(getString(entry, "role")),
				Content:   getString(entry, "content"),
				Timestamp: getTime(entry, "timestamp"),
			})
		}
	}
	if messages == nil {
		messages = []ChatMessage{}
	}

	return &ChatSession{
		BaseDocument: base,
		SessionTitle: getString(rec, "session_title"),
		Messages:     messages,
		SessionDate:  getDatePtr(rec, "session_date"),
		MessageCount: len(messages),
	}, nil
}

type CreateChatSessionRequest struct {
	SessionTitle string `json:"session_title"`
}

func (r *CreateChatSessionRequest) Validate() error {
	if r.SessionTitle == "" {
		return requiredFieldError("session_title")
	}
	return nil
}

type AddChatMessageRequest struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

func (r *AddChatMessageRequest) Validate() error {
	var err error
	if r.Role == "" {
		err = multierr.Append(err, requiredFieldError("role"))
	} else if !r.Role.Valid() {
		err = multierr.Append(err, invalidFieldError("role", r.Role))
	}
	if r.Content == "" {
		err = multierr.Append(err, requiredFieldError("content"))
	}
	return err
}
