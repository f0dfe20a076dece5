package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/repository"
)

const keyPrefix = "flaggame:session:"

type sessionRecord struct {
	ChatID    int64              `json:"chat_id"`
	UserID    int64              `json:"user_id"`
	MessageID int                `json:"message_id"`
	State     entities.GameState `json:"state"`
	Version   int64              `json:"version"`
	StartedAt time.Time          `json:"started_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// GameRepository stores game sessions as JSON values with a TTL.
type GameRepository struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewGameRepository creates a new GameRepository. A zero ttl keeps keys forever.
func NewGameRepository(client *goredis.Client, ttl time.Duration) *GameRepository {
	return &GameRepository{client: client, ttl: ttl}
}

func sessionKey(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}

// Get retrieves the game session of a chat.
func (r *GameRepository) Get(ctx context.Context, chatID int64) (*entities.GameSession, error) {
	data, err := r.client.Get(ctx, sessionKey(chatID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrGameNotFound
		}
		return nil, fmt.Errorf("get game session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode game session: %w", err)
	}

	return &entities.GameSession{
		ChatID:    rec.ChatID,
		UserID:    rec.UserID,
		MessageID: rec.MessageID,
		State:     rec.State,
		Version:   rec.Version,
		StartedAt: rec.StartedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

// Save writes the session if the stored version still matches.
func (r *GameRepository) Save(ctx context.Context, session *entities.GameSession) error {
	key := sessionKey(session.ChatID)
	next := session.Version + 1

	err := r.client.Watch(ctx, func(tx *goredis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, goredis.Nil):
		case err != nil:
			return err
		default:
			var current sessionRecord
			if err := json.Unmarshal(data, &current); err != nil {
				return fmt.Errorf("decode game session: %w", err)
			}
			if current.Version != session.Version {
				return repository.ErrOptimisticLock
			}
		}

		payload, err := json.Marshal(sessionRecord{
			ChatID:    session.ChatID,
			UserID:    session.UserID,
			MessageID: session.MessageID,
			State:     session.State,
			Version:   next,
			StartedAt: session.StartedAt,
			UpdatedAt: session.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("encode game session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, goredis.TxFailedErr) {
			return repository.ErrOptimisticLock
		}
		if errors.Is(err, repository.ErrOptimisticLock) {
			return err
		}
		return fmt.Errorf("save game session: %w", err)
	}

	session.Version = next
	return nil
}

// Delete removes the game session of a chat.
func (r *GameRepository) Delete(ctx context.Context, chatID int64) error {
	if err := r.client.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("delete game session: %w", err)
	}
	return nil
}
