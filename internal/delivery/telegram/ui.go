package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

// buildFlagKeyboard builds one row with a button per candidate flag.
func buildFlagKeyboard(state *entities.GameState) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(state.Candidates))
	for i, c := range state.Candidates {
		label := c.Flag
		if label == "" {
			label = c.Code
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildFlagCallback(state.RoundsPlayed, i)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildOutcomeKeyboard offers Continue after a round, or Restart after the last one.
func buildOutcomeKeyboard(state *entities.GameState) tgbotapi.InlineKeyboardMarkup {
	if state.IsGameOver {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔄 Restart", buildRestartCallback()),
			),
		)
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Continue ▶️", buildContinueCallback()),
		),
	)
}

// renderState returns the text and keyboard for the current state:
// the outcome screen while an outcome is pending, the board otherwise.
func renderState(state *entities.GameState) (string, tgbotapi.InlineKeyboardMarkup) {
	if state.LastOutcome != nil {
		return formatOutcome(state), buildOutcomeKeyboard(state)
	}
	return formatBoard(state), buildFlagKeyboard(state)
}
