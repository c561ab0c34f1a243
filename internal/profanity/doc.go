// Package profanity detects and rewrites profane words in caption text.
//
// Detection always scans the strictest tier plus the caller's custom words so
// the detected word list never depends on the filtering tier. Rewrite then
// substitutes only the words active at the requested tier, longest first,
// matching the capitalization of each occurrence and wrapping every
// replacement in zero-width markers (MarkerOpen, MarkerClose).
package profanity
