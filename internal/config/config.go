package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/gaubuali/bingo-generator/internal/domain"
)

// Speaker backends selectable through BINGO_SPEAKER.
const (
	SpeakerConsole = "console"
	SpeakerCommand = "command"
	SpeakerRemote  = "remote"
)

type Config struct {
	RangeStart      int                       `env:"BINGO_RANGE_START" envDefault:"1"`
	RangeEnd        int                       `env:"BINGO_RANGE_END" envDefault:"90"`
	NumbersPerCard  int                       `env:"BINGO_NUMBERS_PER_CARD" envDefault:"24"`
	FreeCenter      bool                      `env:"BINGO_FREE_CENTER" envDefault:"false"`
	CardCount       int                       `env:"BINGO_CARD_COUNT" envDefault:"10"`
	AllowDuplicates bool                      `env:"BINGO_ALLOW_DUPLICATES" envDefault:"false"`
	Criterion       domain.DuplicateCriterion `env:"BINGO_DUPLICATE_CRITERION" envDefault:"ordered"`
	Output          string                    `env:"BINGO_OUTPUT" envDefault:"bingo.pdf"`

	CallPacing   time.Duration `env:"BINGO_CALL_PACING" envDefault:"10s"`
	ColumnLabels bool          `env:"BINGO_CALL_COLUMN_LABELS" envDefault:"false"`
	PhrasesFile  string        `env:"BINGO_PHRASES_FILE"`

	Speaker       string        `env:"BINGO_SPEAKER" envDefault:"console"`
	SpeakCommand  string        `env:"BINGO_SPEAK_COMMAND" envDefault:"espeak"`
	TTSBaseURL    string        `env:"BINGO_TTS_BASE_URL" envDefault:"https://api.openai.com/v1"`
	TTSAPIKey     string        `env:"BINGO_TTS_API_KEY"`
	TTSModel      string        `env:"BINGO_TTS_MODEL" envDefault:"tts-1"`
	TTSVoices     []string      `env:"BINGO_TTS_VOICES" envDefault:"alloy" envSeparator:","`
	TTSSpeed      float64       `env:"BINGO_TTS_SPEED" envDefault:"1.0"`
	TTSTimeout    time.Duration `env:"BINGO_TTS_TIMEOUT" envDefault:"15s"`
	PlayerCommand string        `env:"BINGO_PLAYER_COMMAND" envDefault:"ffplay -nodisp -autoexit -loglevel quiet"`

	HTTPAddr string     `env:"BINGO_HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"BINGO_LOG_LEVEL" envDefault:"info"`
	Seed     uint64     `env:"BINGO_SEED" envDefault:"0"`
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Parse reads the environment, then lets command-line flags on fs override
// it. Flag defaults are the environment values, so an unset flag keeps them.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	c.bind(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) bind(fs *flag.FlagSet) {
	fs.IntVar(&c.RangeStart, "start", c.RangeStart, "lowest number that can appear")
	fs.IntVar(&c.RangeEnd, "end", c.RangeEnd, "highest number that can appear")
	fs.IntVar(&c.NumbersPerCard, "numbers", c.NumbersPerCard, "numbers printed on each card")
	fs.BoolVar(&c.FreeCenter, "free", c.FreeCenter, "mark the center cell FREE when the grid allows it")
	fs.IntVar(&c.CardCount, "count", c.CardCount, "number of cards to generate")
	fs.BoolVar(&c.AllowDuplicates, "allow-duplicates", c.AllowDuplicates, "allow identical cards in a batch")
	fs.Func("criterion", "duplicate criterion: ordered or set (default "+string(c.Criterion)+")", func(s string) error {
		c.Criterion = domain.DuplicateCriterion(s)
		return nil
	})
	fs.StringVar(&c.Output, "o", c.Output, "output PDF file")
	fs.DurationVar(&c.CallPacing, "pacing", c.CallPacing, "wait between called numbers")
	fs.BoolVar(&c.ColumnLabels, "columns", c.ColumnLabels, "prefix each call with its column letter")
	fs.StringVar(&c.PhrasesFile, "phrases", c.PhrasesFile, "YAML file overriding the call phrases")
	fs.StringVar(&c.Speaker, "speaker", c.Speaker, "speaker backend: console, command or remote")
	fs.StringVar(&c.HTTPAddr, "addr", c.HTTPAddr, "HTTP listen address")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "non-zero seed for reproducible draws")
}

// Validate checks cross-field rules the environment parser cannot express.
func (c Config) Validate() error {
	var errs []error
	if err := c.Range().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.NumbersPerCard < 1 {
		errs = append(errs, fmt.Errorf("numbers per card must be at least 1, got %d", c.NumbersPerCard))
	}
	if c.CardCount < 1 {
		errs = append(errs, fmt.Errorf("card count must be at least 1, got %d", c.CardCount))
	}
	if c.CallPacing < 0 {
		errs = append(errs, fmt.Errorf("call pacing must not be negative, got %s", c.CallPacing))
	}
	if !c.Criterion.Valid() {
		errs = append(errs, fmt.Errorf("unknown duplicate criterion %q", c.Criterion))
	}
	switch c.Speaker {
	case SpeakerConsole, SpeakerCommand, SpeakerRemote:
	default:
		errs = append(errs, fmt.Errorf("unknown speaker %q", c.Speaker))
	}
	if c.Speaker == SpeakerRemote && len(c.TTSVoices) == 0 {
		errs = append(errs, errors.New("BINGO_TTS_VOICES is required for the remote speaker"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return nil
}

func (c Config) Range() domain.Range {
	return domain.Range{Start: c.RangeStart, End: c.RangeEnd}
}

// OutputPath is Output with a ".pdf" extension ensured.
func (c Config) OutputPath() string {
	if strings.HasSuffix(strings.ToLower(c.Output), ".pdf") {
		return c.Output
	}
	return c.Output + ".pdf"
}

func (c Config) PlayerArgs() []string {
	return strings.Fields(c.PlayerCommand)
}
