package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/repository"
	"github.com/aliskhannn/guess-the-flag-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb, "")
		return
	}

	data := decodeCallback(cb.Data)

	var (
		toast string
		err   error
	)
	switch data.Action {
	case actionFlag:
		toast, err = h.handleFlagCallback(ctx, cb, data.Params)
	case actionGame:
		toast, err = h.handleGameCallback(ctx, cb, data.Params)
	default:
		h.logger.Warn("unknown callback action", zap.String("data", cb.Data))
		toast = toastMalformed
	}

	if err != nil {
		h.logger.Error("handle callback",
			zap.Int64("chat_id", cb.Message.Chat.ID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		toast = msgInternalError
	}

	h.answerCallback(cb, toast)
}

// handleFlagCallback applies a flag tap and shows the outcome on the board.
func (h *Handler) handleFlagCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, params []string) (string, error) {
	chatID := cb.Message.Chat.ID

	round, index, err := parseFlagCallback(params)
	if err != nil {
		h.logger.Warn("invalid flag callback", zap.String("data", cb.Data))
		return toastMalformed, nil
	}

	current, err := h.isCurrentBoard(ctx, chatID, cb.Message.MessageID)
	if err != nil {
		return callbackToast(err)
	}
	if !current {
		return toastStale, nil
	}

	session, outcome, err := h.gameService.Answer(ctx, chatID, round, index)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidIndex) {
			h.logger.Error("flag index out of range",
				zap.Int64("chat_id", chatID),
				zap.Int("round", round),
				zap.Int("index", index),
			)
			return toastMalformed, nil
		}
		return callbackToast(err)
	}

	if err := h.editBoard(cb, &session.State); err != nil {
		return "", err
	}

	if outcome.IsCorrect() {
		return toastCorrect, nil
	}
	return toastWrong, nil
}

// handleGameCallback handles the Continue and Restart buttons.
func (h *Handler) handleGameCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, params []string) (string, error) {
	chatID := cb.Message.Chat.ID
	if len(params) != 1 {
		h.logger.Warn("invalid game callback", zap.String("data", cb.Data))
		return toastMalformed, nil
	}

	switch params[0] {
	case gameContinue:
		current, err := h.isCurrentBoard(ctx, chatID, cb.Message.MessageID)
		if err != nil {
			return callbackToast(err)
		}
		if !current {
			return toastStale, nil
		}

		session, err := h.gameService.Continue(ctx, chatID)
		if err != nil {
			return callbackToast(err)
		}
		return "", h.editBoard(cb, &session.State)

	case gameRestart:
		current, err := h.isCurrentBoard(ctx, chatID, cb.Message.MessageID)
		if err != nil {
			return callbackToast(err)
		}
		if !current {
			return toastStale, nil
		}

		var userID int64
		if cb.From != nil {
			userID = cb.From.ID
		}

		session, err := h.gameService.Restart(ctx, chatID, userID)
		if err != nil {
			return callbackToast(err)
		}
		if err := h.editBoard(cb, &session.State); err != nil {
			return "", err
		}
		return "", h.gameService.AttachMessage(ctx, chatID, cb.Message.MessageID)

	default:
		h.logger.Warn("unknown game callback", zap.String("data", cb.Data))
		return toastMalformed, nil
	}
}

// isCurrentBoard reports whether messageID displays the chat's live game.
func (h *Handler) isCurrentBoard(ctx context.Context, chatID int64, messageID int) (bool, error) {
	session, err := h.gameService.Get(ctx, chatID)
	if err != nil {
		return false, err
	}
	return session.MessageID == 0 || session.MessageID == messageID, nil
}

func (h *Handler) editBoard(cb *tgbotapi.CallbackQuery, state *entities.GameState) error {
	text, kb := renderState(state)
	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, text)
	edit.ReplyMarkup = &kb
	return h.send(edit)
}

// callbackToast maps expected game errors to a toast; other errors pass through.
func callbackToast(err error) (string, error) {
	switch {
	case errors.Is(err, service.ErrStaleRound):
		return toastStale, nil
	case errors.Is(err, entities.ErrGameAlreadyOver):
		return toastGameOver, nil
	case errors.Is(err, repository.ErrGameNotFound):
		return toastNoGame, nil
	default:
		return "", err
	}
}
