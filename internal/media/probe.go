package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

// FFProbeOutput defines the structure for ffprobe JSON output relevant to duration.
type FFProbeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
}

// Probe is best effort metadata about an upload.
type Probe struct {
	Duration      time.Duration
	DurationKnown bool
	Title         string
	Format        string
}

// Prober extracts duration and tag metadata without touching the disk.
// WAV is decoded natively; other containers go through ffprobe when it is installed.
type Prober struct {
	FFProbePath string
	Logger      *logrus.Logger
}

// NewProber looks up ffprobe on PATH. A missing binary only disables duration probing
// for non WAV input.
func NewProber(logger *logrus.Logger) *Prober {
	path, err := exec.LookPath("ffprobe")
	if err != nil {
		logger.Debug("ffprobe not found on PATH, duration probing limited to WAV")
		path = ""
	}
	return &Prober{FFProbePath: path, Logger: logger}
}

// Probe never fails; anything it cannot determine is left empty.
func (p *Prober) Probe(ctx context.Context, in models.MediaInput) Probe {
	var out Probe

	if m, err := tag.ReadFrom(bytes.NewReader(in.Data)); err == nil {
		out.Title = m.Title()
		out.Format = string(m.FileType())
	}

	if in.MimeType == "audio/wav" {
		d, err := WAVDuration(in.Data)
		if err == nil {
			out.Duration, out.DurationKnown = d, true
			out.Format = "WAV"
			return out
		}
		p.Logger.WithError(err).Debug("WAV header could not be decoded")
	}

	if p.FFProbePath == "" {
		return out
	}
	d, format, err := GetMediaDuration(ctx, p.FFProbePath, in.Data)
	if err != nil {
		p.Logger.WithError(err).WithField("filename", in.Filename).Debug("ffprobe could not determine duration")
		return out
	}
	out.Duration, out.DurationKnown = d, true
	if out.Format == "" {
		out.Format = format
	}
	return out
}

// WAVDuration decodes the RIFF header and returns the playback duration.
func WAVDuration(data []byte) (time.Duration, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if err := dec.FwdToPCM(); err != nil {
		return 0, fmt.Errorf("read WAV header: %w", err)
	}
	if dec.AvgBytesPerSec == 0 {
		return 0, fmt.Errorf("WAV header has no byte rate")
	}
	return time.Duration(float64(dec.PCMSize) / float64(dec.AvgBytesPerSec) * float64(time.Second)), nil
}

// GetMediaDuration pipes the media bytes through ffprobe and returns the container duration.
func GetMediaDuration(ctx context.Context, ffprobePath string, data []byte) (time.Duration, string, error) {
	// ffprobe -v quiet -print_format json -show_format -i pipe:0
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-i", "pipe:0",
	)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, "", fmt.Errorf("ffprobe failed: %w\nStderr: %s", err, stderr.String())
	}

	var ffprobeOutput FFProbeOutput
	if err := json.Unmarshal(out.Bytes(), &ffprobeOutput); err != nil {
		return 0, "", fmt.Errorf("error unmarshalling ffprobe output: %w\nOutput: %s", err, out.String())
	}

	if ffprobeOutput.Format.Duration == "" {
		return 0, "", fmt.Errorf("could not retrieve duration from ffprobe output\nOutput: %s", out.String())
	}

	durationFloat, err := strconv.ParseFloat(ffprobeOutput.Format.Duration, 64)
	if err != nil {
		return 0, "", fmt.Errorf("error parsing duration string '%s': %w", ffprobeOutput.Format.Duration, err)
	}

	return time.Duration(durationFloat * float64(time.Second)), ffprobeOutput.Format.FormatName, nil
}
