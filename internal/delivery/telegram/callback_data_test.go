package telegram

import (
	"errors"
	"testing"
)

func TestFlagCallbackRoundTrip(t *testing.T) {
	data := buildFlagCallback(5, 2)
	if data != "flag:5:2" {
		t.Fatalf("buildFlagCallback = %q", data)
	}

	cd := decodeCallback(data)
	if cd.Action != actionFlag {
		t.Fatalf("Action = %q", cd.Action)
	}

	round, index, err := parseFlagCallback(cd.Params)
	if err != nil || round != 5 || index != 2 {
		t.Fatalf("parseFlagCallback = %d, %d, %v", round, index, err)
	}
}

func TestParseFlagCallbackMalformed(t *testing.T) {
	cases := [][]string{
		nil,
		{"1"},
		{"1", "2", "3"},
		{"x", "1"},
		{"1", "y"},
	}

	for _, params := range cases {
		if _, _, err := parseFlagCallback(params); !errors.Is(err, errMalformedCallback) {
			t.Fatalf("parseFlagCallback(%v) err = %v", params, err)
		}
	}
}

func TestGameCallbacks(t *testing.T) {
	cases := []struct {
		data string
		want string
	}{
		{buildContinueCallback(), gameContinue},
		{buildRestartCallback(), gameRestart},
	}

	for _, tc := range cases {
		cd := decodeCallback(tc.data)
		if cd.Action != actionGame || len(cd.Params) != 1 || cd.Params[0] != tc.want {
			t.Fatalf("decodeCallback(%q) = %+v", tc.data, cd)
		}
	}
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	// Telegram rejects callback data longer than 64 bytes.
	for _, data := range []string{buildFlagCallback(7, 2), buildContinueCallback(), buildRestartCallback()} {
		if len(data) > 64 {
			t.Fatalf("callback %q is %d bytes", data, len(data))
		}
	}
}
