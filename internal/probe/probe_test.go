package probe

import (
	"context"
	"errors"
	"testing"
)

func TestTitleFromFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"thunder.wav", "thunder"},
		{"/sfx/act1/door slam.mp3", "door slam"},
		{"noext", "noext"},
		{"dots.in.name.flac", "dots.in.name"},
	}
	for _, tc := range cases {
		if got := TitleFromFilename(tc.in); got != tc.want {
			t.Fatalf("TitleFromFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStaticProbe(t *testing.T) {
	p := &Static{Info: Info{DurationSeconds: 12.5}}
	info, err := p.Probe(context.Background(), []byte("x"), "rain.wav")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info.DurationSeconds != 12.5 {
		t.Fatalf("unexpected duration %v", info.DurationSeconds)
	}
	if info.Title != "rain" {
		t.Fatalf("expected filename fallback title, got %q", info.Title)
	}
}

func TestStaticProbeError(t *testing.T) {
	wantErr := errors.New("undecodable")
	p := &Static{Err: wantErr}
	if _, err := p.Probe(context.Background(), []byte("x"), "rain.wav"); !errors.Is(err, wantErr) {
		t.Fatalf("expected configured error, got %v", err)
	}
}
