package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler depends on.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type GameService interface {
	Start(ctx context.Context, chatID, userID int64) (*entities.GameSession, error)
	Restart(ctx context.Context, chatID, userID int64) (*entities.GameSession, error)
	Get(ctx context.Context, chatID int64) (*entities.GameSession, error)
	Answer(ctx context.Context, chatID int64, round, index int) (*entities.GameSession, entities.Outcome, error)
	Continue(ctx context.Context, chatID int64) (*entities.GameSession, error)
	AttachMessage(ctx context.Context, chatID int64, messageID int) error
}
