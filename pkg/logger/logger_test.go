package logger

import "testing"

func TestInitLevels(t *testing.T) {
	defer Init("info")

	cases := map[string]string{
		"debug":   "debug",
		"INFO":    "info",
		" warn ":  "warn",
		"warning": "warn",
		"error":   "error",
		"fatal":   "fatal",
		"bogus":   "info",
		"":        "info",
	}
	for in, want := range cases {
		Init(in)
		if got := LevelString(); got != want {
			t.Fatalf("Init(%q): level = %q, want %q", in, got, want)
		}
	}
}
