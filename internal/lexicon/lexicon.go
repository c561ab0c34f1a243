package lexicon

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"cleancut/internal/services"
)

//go:embed default_lexicon.yaml
var defaultLexiconYAML []byte

// File is the on-disk lexicon shape.
type File struct {
	Placeholder string              `yaml:"placeholder"`
	Tiers       TierTables          `yaml:"tiers"`
	Flexible    []string            `yaml:"flexible"`
	Exceptions  map[string][]string `yaml:"exceptions"`
}

// TierTables maps canonical words to replacements, per tier. Each table holds
// only the words introduced at that tier.
type TierTables struct {
	Mild     map[string]string `yaml:"mild"`
	Moderate map[string]string `yaml:"moderate"`
	Strict   map[string]string `yaml:"strict"`
}

func (t TierTables) table(tier Tier) map[string]string {
	switch tier {
	case TierMild:
		return t.Mild
	case TierModerate:
		return t.Moderate
	case TierStrict:
		return t.Strict
	default:
		return nil
	}
}

// Lexicon is an immutable, compiled set of tiered words. It is safe for
// concurrent use.
type Lexicon struct {
	placeholder string
	fingerprint string
	words       map[string]*Word
	// cumulative word lists per tier, longest canonical first
	byTier [TierStrict + 1][]*Word
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the built-in lexicon. It is compiled once per process.
func Default() (*Lexicon, error) {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = Parse(defaultLexiconYAML)
	})
	return defaultLex, defaultErr
}

// MustDefault is Default for callers that treat a broken built-in lexicon as
// a programming error.
func MustDefault() *Lexicon {
	lex, err := Default()
	if err != nil {
		panic(err)
	}
	return lex
}

// DefaultYAML returns the embedded lexicon source.
func DefaultYAML() []byte {
	return slices.Clone(defaultLexiconYAML)
}

// Load reads a lexicon file from disk. An empty path returns Default.
func Load(path string) (*Lexicon, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lexicon", "read", path, err)
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// Parse decodes and compiles YAML lexicon data.
func Parse(data []byte) (*Lexicon, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lexicon", "decode", "invalid lexicon yaml", err)
	}
	return New(file)
}

// New validates and compiles a lexicon definition.
func New(file File) (*Lexicon, error) {
	if err := file.Validate(); err != nil {
		return nil, err
	}

	flexible := make(map[string]struct{}, len(file.Flexible))
	for _, word := range file.Flexible {
		flexible[NormalizeWord(word)] = struct{}{}
	}
	exceptions := make(map[string][]string, len(file.Exceptions))
	for word, list := range file.Exceptions {
		exceptions[NormalizeWord(word)] = list
	}

	lex := &Lexicon{
		placeholder: file.Placeholder,
		words:       make(map[string]*Word),
	}
	var cumulative []*Word
	for _, tier := range Tiers[1:] {
		for raw, replacement := range file.Tiers.table(tier) {
			canonical := NormalizeWord(raw)
			_, isFlexible := flexible[canonical]
			word, err := newWord(canonical, strings.TrimSpace(replacement), tier, isFlexible, exceptions[canonical])
			if err != nil {
				return nil, err
			}
			lex.words[canonical] = word
			cumulative = append(cumulative, word)
		}
		sortLongestFirst(cumulative)
		lex.byTier[tier] = slices.Clone(cumulative)
	}

	if err := lex.checkReplacements(); err != nil {
		return nil, err
	}
	lex.fingerprint = lex.computeFingerprint()
	return lex, nil
}

func (l *Lexicon) computeFingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "placeholder=%s\n", l.placeholder)
	words := l.Words(TierStrict)
	sort.Slice(words, func(i, j int) bool { return words[i].Canonical < words[j].Canonical })
	for _, word := range words {
		fmt.Fprintf(h, "%s|%s|%d|%t|%s\n", word.Canonical, word.Replacement, word.Tier, word.Flexible, strings.Join(word.Exceptions, ","))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func sortLongestFirst(words []*Word) {
	sort.SliceStable(words, func(i, j int) bool {
		if len(words[i].Canonical) != len(words[j].Canonical) {
			return len(words[i].Canonical) > len(words[j].Canonical)
		}
		return words[i].Canonical < words[j].Canonical
	})
}

// Placeholder is the token custom words are replaced with.
func (l *Lexicon) Placeholder() string {
	return l.placeholder
}

// Fingerprint identifies the lexicon contents, so results computed against a
// different word list can be told apart.
func (l *Lexicon) Fingerprint() string {
	return l.fingerprint
}

// Lookup returns the compiled entry for a canonical word.
func (l *Lexicon) Lookup(canonical string) (*Word, bool) {
	word, ok := l.words[NormalizeWord(canonical)]
	return word, ok
}

// Words returns the cumulative word list for tier, longest canonical first.
// TierNone has no predefined words.
func (l *Lexicon) Words(tier Tier) []*Word {
	if !tier.Valid() {
		return nil
	}
	return slices.Clone(l.byTier[tier])
}

// Size reports the number of predefined words.
func (l *Lexicon) Size() int {
	return len(l.words)
}

// Validate re-runs the consistency checks on a compiled lexicon.
func (l *Lexicon) Validate() error {
	if strings.TrimSpace(l.placeholder) == "" {
		return configError("placeholder token must not be empty")
	}
	return l.checkReplacements()
}

// checkReplacements rejects replacements that would themselves be detected,
// which would make filtered text re-trigger the matcher.
func (l *Lexicon) checkReplacements() error {
	candidates := append(l.Words(TierStrict), &Word{Canonical: "placeholder", Replacement: l.placeholder})
	for _, source := range candidates {
		for _, word := range l.byTier[TierStrict] {
			if len(word.FindAll(source.Replacement)) > 0 {
				return configError(fmt.Sprintf("replacement %q for %q contains filtered word %q", source.Replacement, source.Canonical, word.Canonical))
			}
		}
	}
	return nil
}

// Validate checks a lexicon definition before compilation.
func (f File) Validate() error {
	if strings.TrimSpace(f.Placeholder) == "" {
		return configError("placeholder token must not be empty")
	}
	seen := make(map[string]Tier)
	for _, tier := range Tiers[1:] {
		for raw, replacement := range f.Tiers.table(tier) {
			canonical := NormalizeWord(raw)
			if canonical == "" {
				return configError(fmt.Sprintf("%s tier contains an empty word", strings.ToLower(tier.String())))
			}
			if prev, dup := seen[canonical]; dup {
				return configError(fmt.Sprintf("word %q listed in both %s and %s tiers", canonical, strings.ToLower(prev.String()), strings.ToLower(tier.String())))
			}
			if strings.TrimSpace(replacement) == "" {
				return configError(fmt.Sprintf("word %q has no replacement", canonical))
			}
			seen[canonical] = tier
		}
	}
	if len(seen) == 0 {
		return configError("lexicon defines no words")
	}
	flexible := make(map[string]struct{}, len(f.Flexible))
	for _, raw := range f.Flexible {
		canonical := NormalizeWord(raw)
		if _, ok := seen[canonical]; !ok {
			return configError(fmt.Sprintf("flexible word %q is not in any tier", canonical))
		}
		flexible[canonical] = struct{}{}
	}
	for raw, list := range f.Exceptions {
		canonical := NormalizeWord(raw)
		if _, ok := flexible[canonical]; !ok {
			return configError(fmt.Sprintf("exceptions defined for %q, which is not a flexible word", canonical))
		}
		for _, exc := range list {
			if strings.TrimSpace(exc) == "" {
				return configError(fmt.Sprintf("empty exception for %q", canonical))
			}
		}
	}
	return nil
}

func configError(message string) error {
	return services.Wrap(services.ErrConfiguration, "lexicon", "validate", message, nil)
}
