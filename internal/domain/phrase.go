package domain

import (
	"strconv"
	"strings"
)

// Template placeholders understood by FormatCall.
const (
	PlaceholderNumber = "{n}"
	PlaceholderWords  = "{words}"
	PlaceholderColumn = "{column}"
)

const (
	DefaultCallTemplate       = PlaceholderWords
	DefaultColumnCallTemplate = PlaceholderColumn + ", " + PlaceholderWords
)

// PhraseTable holds exact-number nicknames and the fallback templates.
type PhraseTable struct {
	Overrides map[int]string `yaml:"overrides" json:"overrides"`
	// Default announces a number without a nickname.
	Default string `yaml:"default" json:"default"`
	// WithColumn replaces Default when a column label is supplied.
	WithColumn string `yaml:"with_column" json:"with_column"`
}

// Merge returns t with other's overrides and non-empty templates on top.
func (t PhraseTable) Merge(other PhraseTable) PhraseTable {
	out := PhraseTable{
		Overrides:  make(map[int]string, len(t.Overrides)+len(other.Overrides)),
		Default:    t.Default,
		WithColumn: t.WithColumn,
	}
	for n, p := range t.Overrides {
		out.Overrides[n] = p
	}
	for n, p := range other.Overrides {
		out.Overrides[n] = p
	}
	if other.Default != "" {
		out.Default = other.Default
	}
	if other.WithColumn != "" {
		out.WithColumn = other.WithColumn
	}
	return out
}

// FormatCall turns a drawn number into the phrase to speak. An exact
// override wins; otherwise the default template is used, or the column
// template when column is non-empty.
func FormatCall(n int, table PhraseTable, column string) string {
	tmpl, ok := table.Overrides[n]
	if !ok || tmpl == "" {
		switch {
		case column != "" && table.WithColumn != "":
			tmpl = table.WithColumn
		case column != "":
			tmpl = DefaultColumnCallTemplate
		case table.Default != "":
			tmpl = table.Default
		default:
			tmpl = DefaultCallTemplate
		}
	}

	r := strings.NewReplacer(
		PlaceholderNumber, strconv.Itoa(n),
		PlaceholderWords, NumberWords(n),
		PlaceholderColumn, column,
	)
	return strings.TrimSpace(r.Replace(tmpl))
}

// ColumnLabel splits r into len(labels) equal bands and returns the label
// of the band holding n, e.g. "B" for 1..15 of a 1..75 game.
func ColumnLabel(n int, r Range, labels string) string {
	if labels == "" || r.Validate() != nil || !r.Contains(n) {
		return ""
	}
	letters := []rune(labels)
	idx := (n - r.Start) * len(letters) / r.Size()
	if idx >= len(letters) {
		idx = len(letters) - 1
	}
	return string(letters[idx])
}

var (
	smallWords = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tensWords = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
)

// NumberWords spells n in English, e.g. 47 -> "forty seven".
func NumberWords(n int) string {
	if n < 0 {
		// -(n+1) cannot overflow, even for math.MinInt.
		return "minus " + spell(uint64(-(n+1))+1)
	}
	return spell(uint64(n))
}

func spell(n uint64) string {
	if n < 20 {
		return smallWords[n]
	}
	if n < 100 {
		t, o := n/10, n%10
		if o == 0 {
			return tensWords[t]
		}
		return tensWords[t] + " " + smallWords[o]
	}
	if n < 1000 {
		h, rest := n/100, n%100
		if rest == 0 {
			return smallWords[h] + " hundred"
		}
		return smallWords[h] + " hundred and " + spell(rest)
	}
	th, rest := n/1000, n%1000
	if rest == 0 {
		return spell(th) + " thousand"
	}
	if rest < 100 {
		return spell(th) + " thousand and " + spell(rest)
	}
	return spell(th) + " thousand " + spell(rest)
}
