package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"onetask-api/internal/docstore"
	"onetask-api/internal/models"
)

// defaultRecentSessionLimit bounds GetRecent when no limit is given.
const defaultRecentSessionLimit = 5

// ChatSessionRepository manages per-user chat history documents.
type ChatSessionRepository struct {
	store  docstore.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewChatSessionRepository(p Params) *ChatSessionRepository {
	return &ChatSessionRepository{store: p.Store, logger: p.Logger, now: time.Now}
}

// Create starts a new session with an empty message list.
func (r *ChatSessionRepository) Create(ctx context.Context, userID, title string) (*models.ChatSession, error) {
	now := r.now().UTC()
	session := models.NewChatSession(userID, title, now)
	session.ID = uuid.NewString()
	session.CreatedAt = now
	session.UpdatedAt = now

	created, err := r.store.Create(ctx, docstore.CollectionProfiles, userID, session.ToRecord())
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	r.logger.Info("created chat session",
		zap.String("user_id", userID), zap.String("session_id", session.ID))
	return models.ChatSessionFromRecord(created)
}

// Get reads one session, verifying it really is a chat session document.
func (r *ChatSessionRepository) Get(ctx context.Context, userID, sessionID string) (*models.ChatSession, error) {
	rec, err := r.store.Read(ctx, docstore.CollectionProfiles, sessionID, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read chat session: %w", err)
	}
	if docType, _ := rec["document_type"].(string); docType != string(models.DocumentTypeChatSession) {
		return nil, ErrNotFound
	}
	return models.ChatSessionFromRecord(rec)
}

// AddMessage re-reads the session, appends, recomputes message_count
// from the list length and writes the whole session back.
func (r *ChatSessionRepository) AddMessage(ctx context.Context, userID, sessionID string, message models.ChatMessage) (*models.ChatSession, error) {
	session, err := r.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if message.Timestamp.IsZero() {
		message.Timestamp = r.now().UTC()
	}
	session.Messages = append(session.Messages, message)
	session.MessageCount = len(session.Messages)
	session.UpdatedAt = r.now().UTC()

	replaced, err := r.store.Replace(ctx, docstore.CollectionProfiles, session.ID, userID, session.ToRecord())
	if err != nil {
		return nil, fmt.Errorf("failed to replace chat session: %w", err)
	}
	return models.ChatSessionFromRecord(replaced)
}

// GetRecent lists the user's sessions newest-first by updated_at.
func (r *ChatSessionRepository) GetRecent(ctx context.Context, userID string, limit int) ([]*models.ChatSession, error) {
	if limit <= 0 {
		limit = defaultRecentSessionLimit
	}
	records, err := r.store.Query(ctx, docstore.CollectionProfiles, docstore.Query{
		PartitionKey: userID,
		Filters: map[string]any{
			"user_id":       userID,
			"document_type": string(models.DocumentTypeChatSession),
		},
		OrderByDesc: "updated_at",
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query chat sessions: %w", err)
	}

	sessions := make([]*models.ChatSession, 0, len(records))
	for _, rec := range records {
		session, err := models.ChatSessionFromRecord(rec)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Delete removes one session.
func (r *ChatSessionRepository) Delete(ctx context.Context, userID, sessionID string) (bool, error) {
	if _, err := r.Get(ctx, userID, sessionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := r.store.Delete(ctx, docstore.CollectionProfiles, sessionID, userID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete chat session: %w", err)
	}
	return true, nil
}

// DeleteAllForUser removes every session for the user, as part of the
// profile cascade.
func (r *ChatSessionRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	records, err := r.store.Query(ctx, docstore.CollectionProfiles, docstore.Query{
		PartitionKey: userID,
		Filters: map[string]any{
			"user_id":       userID,
			"document_type": string(models.DocumentTypeChatSession),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to query chat sessions: %w", err)
	}

	for _, rec := range records {
		id, _ := rec["id"].(string)
		if err := r.store.Delete(ctx, docstore.CollectionProfiles, id, userID); err != nil && !errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("failed to delete chat session %s: %w", id, err)
		}
	}
	r.logger.Info("deleted chat sessions",
		zap.String("user_id", userID), zap.Int("count", len(records)))
	return nil
}
