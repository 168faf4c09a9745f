package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewJSONLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "json", "beastypage")
	logger.Info("hidden")
	logger.Warn("shown", "event", "test_event")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, `"service":"beastypage"`) || !strings.Contains(out, `"event":"test_event"`) {
		t.Fatalf("unexpected json output: %s", out)
	}
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug", "text", "svc").Debug("hello")
	if !strings.Contains(buf.String(), "msg=hello") || !strings.Contains(buf.String(), "service=svc") {
		t.Fatalf("unexpected text output: %s", buf.String())
	}
}
