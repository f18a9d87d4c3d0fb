package phrases

import (
	"context"
	"embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gaubuali/bingo-generator/internal/domain"
)

//go:embed data/default.yaml
var phraseFS embed.FS

const defaultTable = "data/default.yaml"

// Store serves the embedded classic call table, optionally merged with an
// override file. The file is read once, on first use.
type Store struct {
	overridePath string

	once  sync.Once
	table domain.PhraseTable
	err   error
}

// NewStore returns a store; overridePath may be empty.
func NewStore(overridePath string) *Store {
	return &Store{overridePath: overridePath}
}

func (s *Store) init() {
	raw, err := phraseFS.ReadFile(defaultTable)
	if err != nil {
		s.err = fmt.Errorf("read embedded phrases: %w", err)
		return
	}
	base, err := Parse(raw)
	if err != nil {
		s.err = fmt.Errorf("parse embedded phrases: %w", err)
		return
	}

	if s.overridePath != "" {
		raw, err := os.ReadFile(s.overridePath)
		if err != nil {
			s.err = fmt.Errorf("read phrases file %s: %w", s.overridePath, err)
			return
		}
		extra, err := Parse(raw)
		if err != nil {
			s.err = fmt.Errorf("parse phrases file %s: %w", s.overridePath, err)
			return
		}
		base = base.Merge(extra)
	}

	s.table = base
}

func (s *Store) PhraseTable(_ context.Context) (domain.PhraseTable, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.PhraseTable{}, s.err
	}
	return s.table, nil
}

// Parse decodes a YAML phrase table.
func Parse(raw []byte) (domain.PhraseTable, error) {
	var t domain.PhraseTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return domain.PhraseTable{}, err
	}
	return t, nil
}
