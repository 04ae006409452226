package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", ""} {
		l, err := New(mode)
		if err != nil {
			t.Errorf("New(%q): %v", mode, err)
			continue
		}
		l.Sync()
	}
	if _, err := New("verbose"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSanitize_RedactsDSN(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.Info("store opened", "driver", "postgres", "dsn", "postgres://u:hunter2@db/x")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	dsn, _ := entries[0].ContextMap()["dsn"].(string)
	if strings.Contains(dsn, "hunter2") {
		t.Errorf("dsn not redacted: %q", dsn)
	}
}

func TestWith_CarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := (&Logger{SugaredLogger: zap.New(core).Sugar()}).With("problem_id", "p-1")

	l.Warn("no conclusion")

	if got := logs.All()[0].ContextMap()["problem_id"]; got != "p-1" {
		t.Errorf("problem_id = %v, want p-1", got)
	}
}

func TestNewNop(t *testing.T) {
	NewNop().Error("discarded", "k", "v")
}
