// Package timeline turns per-caption filter results into a playback timeline.
//
// Synthesize produces an immutable Result: the original and filtered caption
// sequences, the audio muting ranges (one per profane caption), and summary
// statistics. Playback wraps a Result for the hot path a player polls several
// times a second; lookups are binary searches and TierNone disables muting and
// profane-caption cues outright.
package timeline
