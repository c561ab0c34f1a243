package lexicon

import (
	"fmt"
	"strings"

	"cleancut/internal/services"
)

// Tier is a filtering strictness level. Tiers are cumulative: every word
// filtered at a tier is also filtered at every stricter tier.
type Tier int

const (
	TierNone Tier = iota
	TierMild
	TierModerate
	TierStrict
)

// Tiers lists every tier from least to most strict.
var Tiers = []Tier{TierNone, TierMild, TierModerate, TierStrict}

var tierNames = map[Tier]string{
	TierNone:     "NONE",
	TierMild:     "MILD",
	TierModerate: "MODERATE",
	TierStrict:   "STRICT",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Valid reports whether t is one of the four defined tiers.
func (t Tier) Valid() bool {
	return t >= TierNone && t <= TierStrict
}

// Filters reports whether the tier rewrites predefined words at all.
func (t Tier) Filters() bool {
	return t > TierNone
}

// ParseTier accepts a tier name in any case.
func ParseTier(value string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "off":
		return TierNone, nil
	case "mild":
		return TierMild, nil
	case "moderate":
		return TierModerate, nil
	case "strict":
		return TierStrict, nil
	default:
		return TierNone, services.Wrap(services.ErrValidation, "lexicon", "parse tier", fmt.Sprintf("unknown filter level %q", value), nil)
	}
}

// MarshalText encodes the tier as its lowercase name.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(strings.ToLower(t.String())), nil
}

// UnmarshalText decodes a tier name.
func (t *Tier) UnmarshalText(data []byte) error {
	parsed, err := ParseTier(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
