package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/gaubuali/bingo-generator/internal/domain"
)

// Client implements ports.Speaker with an OpenAI-compatible speech endpoint.
// Synthesized audio is written to a temp file and handed to a player command.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	voices     []string
	speed      float64
	player     []string
	logger     *slog.Logger
}

// NewClient builds a remote speaker. voices are tried in order until one
// succeeds; player is the command (plus args) that plays an audio file.
func NewClient(httpClient *http.Client, apiKey, baseURL, model string, voices []string, speed float64, player []string, logger *slog.Logger) *Client {
	if speed <= 0 {
		speed = 1
	}
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		voices:     voices,
		speed:      speed,
		player:     player,
		logger:     logger,
	}
}

type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed"`
	ResponseFormat string  `json:"response_format"`
}

func (c *Client) Speak(ctx context.Context, ev domain.CallEvent) error {
	audio, err := c.Synthesize(ctx, ev.Phrase)
	if err != nil {
		return err
	}
	if len(c.player) == 0 {
		return nil
	}
	return c.play(ctx, audio)
}

// Synthesize returns the audio for text, trying each configured voice.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	voices := c.voices
	if len(voices) == 0 {
		voices = []string{""}
	}

	var lastErr error
	for _, voice := range voices {
		audio, err := c.synthesizeWithVoice(ctx, text, voice)
		if err == nil {
			return audio, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if len(voices) > 1 {
			c.logger.WarnContext(ctx, "voice failed, trying next", "voice", voice, "error", err)
		}
	}

	return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamTTS, lastErr)
}

func (c *Client) synthesizeWithVoice(ctx context.Context, text, voice string) ([]byte, error) {
	body, err := json.Marshal(speechRequest{
		Model:          c.model,
		Input:          text,
		Voice:          voice,
		Speed:          c.speed,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/audio/speech"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}
	if len(respBody) == 0 {
		return nil, fmt.Errorf("empty audio response")
	}

	return respBody, nil
}

func (c *Client) play(ctx context.Context, audio []byte) error {
	f, err := os.CreateTemp("", "bingo-call-*.mp3")
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return fmt.Errorf("write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close audio file: %w", err)
	}

	args := append(append([]string{}, c.player[1:]...), f.Name())
	cmd := exec.CommandContext(ctx, c.player[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("play audio: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
