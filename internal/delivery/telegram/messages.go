// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

// Error and hint messages.
const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgNoGame         = "You have no game in progress. Send /play to start one."
	msgUnknownCommand = "Unknown command. Available commands:\n\n/play — start a new game\n/score — show your score\n/help — how to play"
	msgTextHint       = "Tap one of the flags on the board, or send /play to start a new game."
)

// Callback toasts.
const (
	toastCorrect   = "✅ Correct"
	toastWrong     = "❌ Wrong"
	toastStale     = "This round is already over."
	toastGameOver  = "The game is over. Tap Restart."
	toastNoGame    = "No game in progress. Send /play."
	toastMalformed = "Unknown button."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMarkdownV2 builds the /start greeting.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("Guess the Flag"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf(
		"Every round shows three flags and the name of a country. Tap the flag that belongs to it. "+
			"A right answer gives you 1 point, a wrong one takes 1 away (never below zero). "+
			"A game lasts %d rounds.", entities.MaxRounds)))
	sb.WriteString("\n\n")
	sb.WriteString(md("/play — start a new game"))
	sb.WriteString("\n")
	sb.WriteString(md("/score — show your score"))
	sb.WriteString("\n")
	sb.WriteString(md("/help — how to play"))

	return sb.String()
}

func helpMarkdownV2() string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s\n%s",
		bold("How to play"),
		md("1. Read the country name on the board."),
		md("2. Tap the flag you think belongs to it."),
		md("3. Press Continue for the next round."),
		md(fmt.Sprintf("4. After %d rounds you get your total score. Press Restart to play again.", entities.MaxRounds)),
	)
}

func formatScoreLine(state *entities.GameState) string {
	return md(fmt.Sprintf("Score: %d", state.Score))
}

// formatBoard renders the round prompt.
func formatBoard(state *entities.GameState) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s\n\n%s\n%s",
		bold("Guess the Flag"),
		md("Tap the flag of"),
		bold(state.Target().Name),
		formatScoreLine(state),
		md(fmt.Sprintf("Round %d of %d", state.RoundsPlayed+1, entities.MaxRounds)),
	)
}

// formatOutcome renders the result of the last answered round.
func formatOutcome(state *entities.GameState) string {
	o := state.LastOutcome
	if o == nil {
		return formatBoard(state)
	}

	var title, message string
	if o.IsCorrect() {
		title = "Correct"
		message = "You get 1 score!"
	} else {
		title = "Wrong"
		message = fmt.Sprintf("This is flag of %s", state.Candidates[o.WrongIndex].Name)
	}

	text := fmt.Sprintf("%s\n%s\n\n%s", bold(title), md(message), formatScoreLine(state))

	if state.IsGameOver {
		text += fmt.Sprintf(
			"\n\n%s\n%s",
			bold("Game Over"),
			md(fmt.Sprintf("Your total score is %d", state.Score)),
		)
	}

	return text
}

// formatScore renders the /score readout.
func formatScore(state *entities.GameState) string {
	if state.IsGameOver {
		return md(fmt.Sprintf("Game over. Your total score is %d. Send /play to start again.", state.Score))
	}

	return fmt.Sprintf(
		"%s\n%s",
		formatScoreLine(state),
		md(fmt.Sprintf("Rounds left: %d of %d", state.RoundsLeft(), entities.MaxRounds)),
	)
}
