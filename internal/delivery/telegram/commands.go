package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/repository"
)

// handleStart greets the user and deals a new game.
func (h *Handler) handleStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.send(newMessage(chatID, welcomeMarkdownV2())); err != nil {
			return err
		}
		return h.startGame(ctx, chatID, userID)
	}
}

// handlePlay deals a new game, abandoning the current one.
func (h *Handler) handlePlay(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.startGame(ctx, chatID, userID)
	}
}

// handleScore shows the running score of the current game.
func (h *Handler) handleScore() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.gameService.Get(ctx, chatID)
		if err != nil {
			if errors.Is(err, repository.ErrGameNotFound) {
				return h.send(newPlainMessage(chatID, msgNoGame))
			}
			return err
		}

		return h.send(newMessage(chatID, formatScore(&session.State)))
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpMarkdownV2()))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) handleText() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgTextHint))
	}
}

// startGame resets the chat's game and posts a fresh board.
func (h *Handler) startGame(ctx context.Context, chatID, userID int64) error {
	session, err := h.gameService.Start(ctx, chatID, userID)
	if err != nil {
		return err
	}

	text, kb := renderState(&session.State)
	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb

	sent, err := h.bot.Send(msg)
	if err != nil {
		h.logger.Error("failed to send board",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return err
	}

	return h.gameService.AttachMessage(ctx, chatID, sent.MessageID)
}
