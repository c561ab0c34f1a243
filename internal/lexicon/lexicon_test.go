package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cleancut/internal/services"
)

func TestDefaultLexiconIsValid(t *testing.T) {
	lex, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	if err := lex.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if lex.Placeholder() == "" {
		t.Fatalf("expected placeholder token")
	}
	if len(lex.Words(TierNone)) != 0 {
		t.Fatalf("expected no predefined words at NONE")
	}
}

func TestTiersAreCumulative(t *testing.T) {
	lex := MustDefault()
	mild := canonicalSet(lex.Words(TierMild))
	moderate := canonicalSet(lex.Words(TierModerate))
	strict := canonicalSet(lex.Words(TierStrict))
	for word := range mild {
		if _, ok := moderate[word]; !ok {
			t.Fatalf("moderate tier missing mild word %q", word)
		}
	}
	for word := range moderate {
		if _, ok := strict[word]; !ok {
			t.Fatalf("strict tier missing moderate word %q", word)
		}
	}
	if len(strict) != lex.Size() {
		t.Fatalf("strict tier has %d words, lexicon has %d", len(strict), lex.Size())
	}
	if _, ok := mild["shit"]; ok {
		t.Fatalf("shit should not be a mild word")
	}
	if _, ok := moderate["damn"]; ok {
		t.Fatalf("damn should not be a moderate word")
	}
}

func TestWordsOrderedLongestFirst(t *testing.T) {
	words := MustDefault().Words(TierStrict)
	for i := 1; i < len(words); i++ {
		if len(words[i].Canonical) > len(words[i-1].Canonical) {
			t.Fatalf("words not longest first: %q before %q", words[i-1].Canonical, words[i].Canonical)
		}
	}
	words[0] = nil
	if MustDefault().Words(TierStrict)[0] == nil {
		t.Fatalf("Words must return a copy")
	}
}

func TestLookup(t *testing.T) {
	lex := MustDefault()
	word, ok := lex.Lookup("DAMN")
	if !ok {
		t.Fatalf("expected damn in lexicon")
	}
	if word.Replacement != "darn" || word.Tier != TierStrict || word.Flexible {
		t.Fatalf("unexpected entry %+v", word)
	}
	shit, _ := lex.Lookup("shit")
	if !shit.Flexible || len(shit.Exceptions) == 0 {
		t.Fatalf("expected shit to be flexible with exceptions: %+v", shit)
	}
}

func TestFileValidateErrors(t *testing.T) {
	valid := func() File {
		return File{
			Placeholder: "***",
			Tiers: TierTables{
				Mild:   map[string]string{"frak": "frick"},
				Strict: map[string]string{"gorram": "darn"},
			},
			Flexible:   []string{"frak"},
			Exceptions: map[string][]string{"frak": {"frakture"}},
		}
	}
	cases := []struct {
		name   string
		mutate func(*File)
		want   string
	}{
		{"empty placeholder", func(f *File) { f.Placeholder = " " }, "placeholder"},
		{"missing replacement", func(f *File) { f.Tiers.Mild["smeg"] = "" }, "no replacement"},
		{"flexible outside tiers", func(f *File) { f.Flexible = append(f.Flexible, "grud") }, "not in any tier"},
		{"exception on boundary word", func(f *File) { f.Exceptions["gorram"] = []string{"x"} }, "not a flexible word"},
		{"duplicate tier word", func(f *File) { f.Tiers.Moderate = map[string]string{"frak": "frick"} }, "both"},
		{"empty lexicon", func(f *File) { f.Tiers = TierTables{}; f.Flexible = nil; f.Exceptions = nil }, "no words"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			file := valid()
			tc.mutate(&file)
			_, err := New(file)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
	if _, err := New(valid()); err != nil {
		t.Fatalf("valid lexicon rejected: %v", err)
	}
}

func TestReplacementMustNotBeDetected(t *testing.T) {
	file := File{
		Placeholder: "***",
		Tiers: TierTables{
			Mild: map[string]string{"frak": "frakking heck", "heck": "gosh"},
		},
	}
	_, err := New(file)
	if err == nil || !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	data := "placeholder: \"[bleep]\"\ntiers:\n  mild:\n    frak: frick\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lex, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lex.Placeholder() != "[bleep]" || lex.Size() != 1 {
		t.Fatalf("unexpected lexicon: placeholder %q size %d", lex.Placeholder(), lex.Size())
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing file, got %v", err)
	}
	if err := os.WriteFile(path, []byte("tiers: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for bad yaml, got %v", err)
	}
	def, err := Load("")
	if err != nil || def != MustDefault() {
		t.Fatalf("empty path should return default lexicon")
	}
}

func canonicalSet(words []*Word) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word.Canonical] = struct{}{}
	}
	return set
}
