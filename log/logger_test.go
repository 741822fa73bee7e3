package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	type spec struct {
		in       string
		exp      Level
		expError string
	}
	specs := []spec{
		{"debug", Debug, ""},
		{"INFO", Info, ""},
		{"notice", Notice, ""},
		{"warn", Warning, ""},
		{"error", Error, ""},
		{"loud", Notice, `log: unknown level "loud"`},
	}

	for index, s := range specs {
		level, err := ParseLevel(s.in)
		if s.expError != "" {
			if err == nil || err.Error() != s.expError {
				t.Fatalf("[spec %d] expected error %s; got %v", index, s.expError, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if level != s.exp {
			t.Fatalf("[spec %d] expected level %d; got %d", index, s.exp, level)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	defer SetLevel(Notice)

	logger := New("logtest")

	SetLevel(Warning)
	logger.Notice("hidden")
	logger.Warning("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected notice message to be filtered; got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "[logtest]") {
		t.Fatalf("expected warning message tagged with module name; got %q", out)
	}
}
