package services_test

import (
	"errors"
	"strings"
	"testing"

	"cleancut/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrParse, "subtitles", "parse", "bad timestamp", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"subtitles", "parse", "bad timestamp"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestIsDegradable(t *testing.T) {
	if !services.IsDegradable(nil) {
		t.Fatal("nil error should degrade")
	}
	notFound := services.Wrap(services.ErrNotFound, "analysis", "analyze", "no subtitles", nil)
	if !services.IsDegradable(notFound) {
		t.Fatal("missing subtitles should degrade to unfiltered playback")
	}
	cfgErr := services.Wrap(services.ErrConfiguration, "lexicon", "validate", "missing replacement", nil)
	if services.IsDegradable(cfgErr) {
		t.Fatal("configuration defects must not degrade silently")
	}
}
