package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"

	"github.com/gaubuali/bingo-generator/internal/adapters/speech/remote"
	"github.com/gaubuali/bingo-generator/internal/domain"
)

func testEvent() domain.CallEvent {
	return domain.CallEvent{Number: 11, Phrase: "Legs eleven", SequenceIndex: 1, Total: 90}
}

func TestClient_Synthesize_Success(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify method and path.
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/audio/speech" {
			t.Errorf("expected /audio/speech, got %s", r.URL.Path)
		}
		// Verify headers.
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("bad auth header: %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("bad content-type: %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3-fake-audio"))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.Client(), "test-key", srv.URL+"/", "tts-1", []string{"onyx"}, 0, nil, slog.Default())

	audio, err := client.Synthesize(context.Background(), "Legs eleven")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(audio) != "ID3-fake-audio" {
		t.Errorf("unexpected audio: %q", audio)
	}

	if gotReq["model"] != "tts-1" || gotReq["voice"] != "onyx" || gotReq["input"] != "Legs eleven" {
		t.Errorf("unexpected request: %v", gotReq)
	}
	if gotReq["speed"] != 1.0 {
		t.Errorf("expected default speed 1, got %v", gotReq["speed"])
	}
}

func TestClient_Synthesize_FallbackVoice(t *testing.T) {
	var voices []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		voice, _ := req["voice"].(string)
		voices = append(voices, voice)
		if voice == "broken" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.Client(), "", srv.URL, "tts-1", []string{"broken", "alloy"}, 1.2, nil, slog.Default())

	if _, err := client.Synthesize(context.Background(), "Lucky seven"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(voices) != 2 || voices[1] != "alloy" {
		t.Errorf("expected fallback to alloy, got %v", voices)
	}
}

func TestClient_Speak_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.Client(), "key", srv.URL, "tts-1", nil, 1, nil, slog.Default())

	err := client.Speak(context.Background(), testEvent())
	if !errors.Is(err, domain.ErrUpstreamTTS) {
		t.Fatalf("expected ErrUpstreamTTS, got %v", err)
	}
}

func TestClient_Speak_EmptyAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := remote.NewClient(srv.Client(), "key", srv.URL, "tts-1", nil, 1, nil, slog.Default())

	if err := client.Speak(context.Background(), testEvent()); err == nil {
		t.Fatal("expected error for empty audio, got nil")
	}
}

func TestClient_Speak_PlaysAudio(t *testing.T) {
	player, err := exec.LookPath("true")
	if err != nil {
		t.Skip("no 'true' binary available")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.Client(), "key", srv.URL, "tts-1", nil, 1, []string{player}, slog.Default())

	if err := client.Speak(context.Background(), testEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
