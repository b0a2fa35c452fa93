package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoAndErrorCarryFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := SetLogger(zap.New(core))
	defer SetLogger(prev)

	Info("battle started", Fields{"key": "abc", "round": 1})
	Error("save failed", errors.New("disk full"), nil)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["key"]; got != "abc" {
		t.Fatalf("expected key field, got %v", got)
	}
	if got := entries[1].ContextMap()["error"]; got != "disk full" {
		t.Fatalf("expected error field, got %v", got)
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[1].Level)
	}
}

func TestBuildRejectsBadLevel(t *testing.T) {
	if _, err := Build(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
	if _, err := Build(Options{Level: "debug", Encoding: "console"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
