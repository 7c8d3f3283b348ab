package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewConsoleFormatsSubject(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger = NewComponentLogger(logger, "driver")
	logger.Warn("no scattered light template",
		Observation("00032766002"),
		Filter("w2"))

	line := buf.String()
	if !strings.Contains(line, "WARN") {
		t.Errorf("expected level in output, got %q", line)
	}
	if !strings.Contains(line, "driver") {
		t.Errorf("expected component in output, got %q", line)
	}
	if !strings.Contains(line, "00032766002 (w2)") {
		t.Errorf("expected observation/filter subject, got %q", line)
	}
	if !strings.Contains(line, "no scattered light template") {
		t.Errorf("expected message in output, got %q", line)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("fit complete", Float64("exp_param", 1.2))
	if !strings.Contains(buf.String(), `"exp_param":1.2`) {
		t.Errorf("expected json attr, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info line should be filtered at warn level, got %q", buf.String())
	}

	logger.Error("kept")
	if buf.Len() == 0 {
		t.Error("error line should pass at warn level")
	}
}

func TestNopLoggerNeverPanics(t *testing.T) {
	logger := NewNop()
	logger.Info("ignored", String("k", "v"))

	component := NewComponentLogger(nil, "fitloop")
	component.Debug("also ignored")
}
