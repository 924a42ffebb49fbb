// Package probe extracts playback metadata from imported audio payloads:
// duration via ffprobe and a display title from embedded tags, falling back
// to the filename stem.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Info is the metadata a probe yields for one payload.
type Info struct {
	DurationSeconds float64
	Title           string
}

// Prober turns an audio payload into playback metadata. Probing is the one
// import step that can fail synchronously; a failed probe aborts the import.
type Prober interface {
	Probe(ctx context.Context, data []byte, filename string) (Info, error)
}

// FFProbe shells out to ffprobe for the duration and reads embedded tags for
// the title. A single attempt per call, no retries.
type FFProbe struct {
	// Path overrides the ffprobe binary location; empty means $PATH lookup.
	Path string
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe writes the payload to a temp file, asks ffprobe for its duration,
// and pulls a title from embedded tags when one exists.
func (p *FFProbe) Probe(ctx context.Context, data []byte, filename string) (Info, error) {
	var zero Info
	if len(data) == 0 {
		return zero, fmt.Errorf("empty audio payload")
	}

	tmp, err := os.CreateTemp("", "cuebank-probe-*"+filepath.Ext(filename))
	if err != nil {
		return zero, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zero, err
	}
	if err := tmp.Close(); err != nil {
		return zero, err
	}

	duration, err := p.durationOf(ctx, tmpPath)
	if err != nil {
		return zero, err
	}

	return Info{DurationSeconds: duration, Title: titleOf(data, filename)}, nil
}

func (p *FFProbe) durationOf(ctx context.Context, path string) (float64, error) {
	bin := p.Path
	if bin == "" {
		bin = "ffprobe"
	}
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var out ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if out.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}
	duration, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", out.Format.Duration, err)
	}
	return duration, nil
}

// titleOf prefers the embedded tag title and falls back to the filename stem.
func titleOf(data []byte, filename string) string {
	if m, err := tag.ReadFrom(bytes.NewReader(data)); err == nil {
		if title := strings.TrimSpace(m.Title()); title != "" {
			return title
		}
	}
	return TitleFromFilename(filename)
}

// TitleFromFilename strips directories and the extension from a filename.
func TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Static returns fixed probe results; used by tests and by imports with a
// caller-supplied duration.
type Static struct {
	Info Info
	Err  error
}

// Probe returns the configured result. When no title is configured the
// filename stem is used, matching the real prober's fallback.
func (s *Static) Probe(_ context.Context, _ []byte, filename string) (Info, error) {
	if s.Err != nil {
		return Info{}, s.Err
	}
	info := s.Info
	if info.Title == "" {
		info.Title = TitleFromFilename(filename)
	}
	return info, nil
}
