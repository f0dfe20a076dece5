package service

import (
	"context"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

// GameRepository persists the live game session of each chat.
type GameRepository interface {
	Get(ctx context.Context, chatID int64) (*entities.GameSession, error)
	Save(ctx context.Context, session *entities.GameSession) error
	Delete(ctx context.Context, chatID int64) error
}

// MetricsRecorder receives game lifecycle events.
type MetricsRecorder interface {
	GameStarted()
	Answered(outcome entities.Outcome)
	GameFinished(score int)
}
