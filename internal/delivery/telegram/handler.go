package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot         BotAPI
	logger      *zap.Logger
	gameService GameService
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	gameService GameService,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		gameService: gameService,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	var userID int64
	if update.Message.From != nil {
		userID = update.Message.From.ID
	}

	if !update.Message.IsCommand() {
		_ = h.withErrorHandling(h.handleText())(ctx, chatID)
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart(userID))(ctx, chatID)
	case "play":
		_ = h.withErrorHandling(h.handlePlay(userID))(ctx, chatID)
	case "score":
		_ = h.withErrorHandling(h.handleScore())(ctx, chatID)
	case "help":
		_ = h.withErrorHandling(h.handleHelp())(ctx, chatID)
	default:
		_ = h.withErrorHandling(h.handleUnknown())(ctx, chatID)
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the user's "clock" and shows an optional toast.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Warn("callback answer error",
			zap.String("callback_id", cb.ID),
			zap.Error(err),
		)
	}
}
