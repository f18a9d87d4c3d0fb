package config

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gaubuali/bingo-generator/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Range() != (domain.Range{Start: 1, End: 90}) {
		t.Errorf("unexpected range %+v", c.Range())
	}
	if c.NumbersPerCard != 24 || c.CardCount != 10 || c.FreeCenter {
		t.Errorf("unexpected card defaults: %+v", c)
	}
	if c.Criterion != domain.DuplicateOrdered {
		t.Errorf("expected ordered criterion, got %q", c.Criterion)
	}
	if c.CallPacing != 10*time.Second {
		t.Errorf("expected 10s pacing, got %s", c.CallPacing)
	}
	if c.Speaker != SpeakerConsole || c.LogLevel != slog.LevelInfo {
		t.Errorf("unexpected speaker/log level: %q %v", c.Speaker, c.LogLevel)
	}
	if len(c.PlayerArgs()) != 5 || c.PlayerArgs()[0] != "ffplay" {
		t.Errorf("unexpected player args %v", c.PlayerArgs())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BINGO_RANGE_START", "10")
	t.Setenv("BINGO_RANGE_END", "75")
	t.Setenv("BINGO_FREE_CENTER", "true")
	t.Setenv("BINGO_DUPLICATE_CRITERION", "set")
	t.Setenv("BINGO_CALL_PACING", "2500ms")
	t.Setenv("BINGO_LOG_LEVEL", "debug")
	t.Setenv("BINGO_TTS_VOICES", "nova, alloy")
	t.Setenv("BINGO_SEED", "42")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Range() != (domain.Range{Start: 10, End: 75}) || !c.FreeCenter {
		t.Errorf("unexpected config %+v", c)
	}
	if c.Criterion != domain.DuplicateSet {
		t.Errorf("expected set criterion, got %q", c.Criterion)
	}
	if c.CallPacing != 2500*time.Millisecond {
		t.Errorf("expected 2.5s pacing, got %s", c.CallPacing)
	}
	if c.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", c.LogLevel)
	}
	if len(c.TTSVoices) != 2 || c.Seed != 42 {
		t.Errorf("unexpected voices/seed: %v %d", c.TTSVoices, c.Seed)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"inverted range", "BINGO_RANGE_END", "1"},
		{"range wider than the cap", "BINGO_RANGE_END", "5000000"},
		{"zero cards", "BINGO_CARD_COUNT", "0"},
		{"negative pacing", "BINGO_CALL_PACING", "-1s"},
		{"unknown criterion", "BINGO_DUPLICATE_CRITERION", "fuzzy"},
		{"unknown speaker", "BINGO_SPEAKER", "radio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if !errors.Is(err, domain.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestLoad_UnparsableEnv(t *testing.T) {
	t.Setenv("BINGO_CARD_COUNT", "many")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParse_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("BINGO_CARD_COUNT", "4")
	t.Setenv("BINGO_RANGE_END", "75")

	fs := flag.NewFlagSet("cards", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c, err := Parse(fs, []string{"-count", "7", "-criterion", "set", "-o", "night"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.CardCount != 7 {
		t.Errorf("expected flag to win, got %d", c.CardCount)
	}
	if c.RangeEnd != 75 {
		t.Errorf("expected env value to survive, got %d", c.RangeEnd)
	}
	if c.Criterion != domain.DuplicateSet {
		t.Errorf("expected set criterion, got %q", c.Criterion)
	}
	if c.OutputPath() != "night.pdf" {
		t.Errorf("expected night.pdf, got %q", c.OutputPath())
	}
}

func TestOutputPath(t *testing.T) {
	for in, want := range map[string]string{
		"bingo.pdf": "bingo.pdf",
		"Cards.PDF": "Cards.PDF",
		"cards":     "cards.pdf",
	} {
		if got := (Config{Output: in}).OutputPath(); got != want {
			t.Errorf("OutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}
