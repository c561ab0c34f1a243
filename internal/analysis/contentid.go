package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"cleancut/internal/profanity"
	"cleancut/internal/textutil"
)

// ContentID derives a stable identifier from a title and optional season and
// episode numbers, e.g. "the_office-s02e05".
func ContentID(title string, season, episode int) string {
	id := textutil.SanitizeToken(title)
	if season > 0 || episode > 0 {
		id = fmt.Sprintf("%s-s%02de%02d", id, season, episode)
	}
	return id
}

// TextContentID identifies subtitle text by content hash when the caller has
// no title to go on.
func TextContentID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "sha-" + hex.EncodeToString(sum[:6])
}

// signature fingerprints everything besides the key that shapes a result, so
// a persisted result is only reused when it was computed from the same input.
func signature(req Request, overlay profanity.Overlay, opts settings) string {
	h := sha256.New()
	write := func(parts ...string) {
		for _, part := range parts {
			h.Write([]byte(part))
			h.Write([]byte{0})
		}
	}
	write(req.Text)
	write(overlay.Custom()...)
	write("|")
	write(overlay.Whitelist()...)
	write(fmt.Sprintf("offset=%d speed=%g low=%d medium=%d ads=%t",
		req.OffsetMS, req.SpeedRatio, opts.thresholds.LowMax, opts.thresholds.MediumMax, opts.dropAds))
	return hex.EncodeToString(h.Sum(nil))
}

func normalizeContentID(id string) string {
	return strings.TrimSpace(id)
}
