package export

import (
	"fmt"
	"strings"

	"github.com/johnathanacortesd/johnascriber-sub000/internal/formatter"
	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

const (
	ContentTypeSRT = "application/x-subrip; charset=utf-8"
	ContentTypeVTT = "text/vtt; charset=utf-8"
)

// SRT renders a SubRip document. Segments without text are skipped and
// numbering stays contiguous.
func SRT(t *models.FormattedTranscript) ([]byte, error) {
	if err := requireTimestamps(t); err != nil {
		return nil, err
	}

	var b strings.Builder
	n := 0
	for _, s := range t.Segments {
		if s.Text == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", n,
			formatter.SubtitleTimestamp(s.StartSeconds, ","),
			formatter.SubtitleTimestamp(s.EndSeconds, ","),
			s.Text)
	}
	return []byte(b.String()), nil
}

// WebVTT renders a WebVTT document.
func WebVTT(t *models.FormattedTranscript) ([]byte, error) {
	if err := requireTimestamps(t); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, s := range t.Segments {
		if s.Text == "" {
			continue
		}
		fmt.Fprintf(&b, "%s --> %s\n%s\n\n",
			formatter.SubtitleTimestamp(s.StartSeconds, "."),
			formatter.SubtitleTimestamp(s.EndSeconds, "."),
			// "-->" inside a cue would end it early.
			strings.ReplaceAll(s.Text, "-->", "->"))
	}
	return []byte(b.String()), nil
}

func requireTimestamps(t *models.FormattedTranscript) error {
	if t == nil {
		return models.ValidationError("There is no transcript to export")
	}
	if !t.HasTimestamps {
		return models.ValidationError("Subtitles need a timestamped transcript; transcribe with the segmented format")
	}
	return nil
}
