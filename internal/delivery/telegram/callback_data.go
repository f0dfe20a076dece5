package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionFlag = "flag"
	actionGame = "game"
)

// Game sub-actions.
const (
	gameContinue = "continue"
	gameRestart  = "restart"
)

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildFlagCallback builds callback data for tapping the flag at index
// on the board rendered for round.
func buildFlagCallback(round, index int) string {
	return callbackData{
		Action: actionFlag,
		Params: []string{strconv.Itoa(round), strconv.Itoa(index)},
	}.encode()
}

// parseFlagCallback extracts round and index from flag callback params.
func parseFlagCallback(params []string) (round, index int, err error) {
	if len(params) != 2 {
		return 0, 0, errMalformedCallback
	}

	round, errRound := strconv.Atoi(params[0])
	index, errIndex := strconv.Atoi(params[1])
	if errRound != nil || errIndex != nil {
		return 0, 0, errMalformedCallback
	}

	return round, index, nil
}

func buildContinueCallback() string {
	return callbackData{Action: actionGame, Params: []string{gameContinue}}.encode()
}

func buildRestartCallback() string {
	return callbackData{Action: actionGame, Params: []string{gameRestart}}.encode()
}
