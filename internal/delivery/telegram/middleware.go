package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler and tells the chat something went wrong.
// Errors caused by shutdown are logged only.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, context.Canceled):
			h.logger.Debug("handler cancelled",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return nil
		default:
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
	}
}
