// Package subtitles parses and serializes SRT caption files and repairs their
// timing.
//
// Parse is tolerant: malformed blocks are skipped and counted rather than
// failing the whole file, and caption text is cleaned of markup on the way in.
// Repair then makes the sequence ordered and non-overlapping so downstream
// consumers can binary search it. Serialize writes the displayed text of each
// entry, so a filtered document round-trips with its markers intact.
package subtitles
