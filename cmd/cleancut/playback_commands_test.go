package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestQueryAtMutedPosition(t *testing.T) {
	env := setupCLITestEnv(t)
	srt := sampleSubtitles(t)

	out, _, err := runCLI(t, env, "query", srt, "--level", "strict", "--at", "00:00:02,000", "--json")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	var view positionView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if !view.Muted {
		t.Fatalf("expected muted at 2s: %+v", view)
	}
	if !strings.Contains(view.Caption, "heck") || view.ProfaneCaption == "" {
		t.Fatalf("unexpected captions %+v", view)
	}
	if view.NextBoundaryMS == nil || *view.NextBoundaryMS != 3001 {
		t.Fatalf("expected boundary right after the range ends, got %v", view.NextBoundaryMS)
	}
}

func TestQueryRejectsNegativeSpeed(t *testing.T) {
	env := setupCLITestEnv(t)
	srt := sampleSubtitles(t)

	_, _, err := runCLI(t, env, "query", srt, "--at", "2s", "--speed=-1")
	if err == nil {
		t.Fatalf("expected negative speed to fail instead of playing unfiltered captions")
	}
	requireContains(t, err.Error(), "speed ratio")
}

func TestQueryAtCleanPosition(t *testing.T) {
	env := setupCLITestEnv(t)
	srt := sampleSubtitles(t)

	out, _, err := runCLI(t, env, "query", srt, "--level", "strict", "--at", "5.5s", "--json")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	var view positionView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if view.Muted || view.Caption != "Nothing to see here" || view.ProfaneCaption != "" {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.NextBoundaryMS != nil {
		t.Fatalf("expected no further boundary, got %d", *view.NextBoundaryMS)
	}
}

func TestQueryNoneNeverMutes(t *testing.T) {
	env := setupCLITestEnv(t)
	srt := sampleSubtitles(t)

	out, _, err := runCLI(t, env, "query", srt, "--level", "none", "--at", "2000")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	requireContains(t, out, "What the hell is this shit")
	requireContains(t, out, "Muted")
	requireContains(t, out, "no")
}

func TestQueryDegradesOnEmptyFile(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := filepath.Join(env.baseDir, "empty.srt")
	if err := os.WriteFile(empty, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, _, err := runCLI(t, env, "query", empty, "--at", "1000", "--json")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	var view positionView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if !view.Degraded || view.Muted || view.Caption != "" {
		t.Fatalf("expected degraded unmuted view, got %+v", view)
	}
}

func TestQueryRequiresPosition(t *testing.T) {
	env := setupCLITestEnv(t)
	srt := sampleSubtitles(t)

	if _, _, err := runCLI(t, env, "query", srt); err == nil {
		t.Fatal("expected an error without --at")
	}
}

func TestMuteFFmpegFilter(t *testing.T) {
	env := setupCLITestEnv(t)
	srt := sampleSubtitles(t)

	out, _, err := runCLI(t, env, "mute", srt, "--level", "strict", "--ffmpeg")
	if err != nil {
		t.Fatalf("mute: %v", err)
	}
	if got := strings.TrimSpace(out); got != "volume=enable='between(t,1.000,3.000)':volume=0" {
		t.Fatalf("unexpected filter %q", got)
	}
}

func TestMuteTableAndNone(t *testing.T) {
	env := setupCLITestEnv(t)
	srt := sampleSubtitles(t)

	out, _, err := runCLI(t, env, "mute", srt, "--level", "moderate")
	if err != nil {
		t.Fatalf("mute: %v", err)
	}
	requireContains(t, out, "00:00:01,000 --> 00:00:03,000")
	requireContains(t, out, "2.000s")

	out, _, err = runCLI(t, env, "mute", srt, "--level", "none")
	if err != nil {
		t.Fatalf("mute none: %v", err)
	}
	requireContains(t, out, "Nothing to mute")
}

func TestPlayPrintsTransitions(t *testing.T) {
	env := setupCLITestEnv(t)
	srt := sampleSubtitles(t)

	out, _, err := runCLI(t, env, "play", srt, "--level", "strict", "--no-wait")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	requireContains(t, out, "[00:00:01,000] mute on")
	requireContains(t, out, "[00:00:01,000] What the [heck] is this [shoot]")
	requireContains(t, out, "[00:00:03,250] mute off")
	requireContains(t, out, "[00:00:05,000] Nothing to see here")
	requireContains(t, out, "2 captions, 2 mute toggles")
}

func TestPlayWindowAndSpeedup(t *testing.T) {
	env := setupCLITestEnv(t)
	srt := sampleSubtitles(t)

	out, _, err := runCLI(t, env, "play", srt, "--from", "4s", "--to", "00:00:06,000", "--speedup", "1000")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	requireNotContains(t, out, "mute on")
	requireContains(t, out, "Nothing to see here")
	requireContains(t, out, "1 captions, 0 mute toggles")

	if _, _, err := runCLI(t, env, "play", srt, "--speedup", "0"); err == nil {
		t.Fatal("expected an error for a zero speedup")
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"00:01:02,500", 62500, false},
		{"1500", 1500, false},
		{"1m30s", 90000, false},
		{"", 0, true},
		{"-5", 0, true},
		{"later", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePosition(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parsePosition(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("parsePosition(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}
