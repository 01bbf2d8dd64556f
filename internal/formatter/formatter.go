// Package formatter turns raw API transcripts into display ready transcripts.
package formatter

import (
	"math"
	"strings"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

// Format normalizes text and timestamps. Segment order is preserved as returned
// by the API. A transcript without segments becomes a plain transcript with no
// timestamp column.
func Format(raw *models.RawTranscript, source string) (*models.FormattedTranscript, error) {
	if raw == nil {
		return nil, models.FormatError(nil, "The transcription service returned an empty response")
	}

	out := &models.FormattedTranscript{
		Source:   source,
		Language: strings.TrimSpace(raw.Language),
		Segments: []models.FormattedSegment{},
	}
	if validOffset(raw.Duration) {
		out.Duration = raw.Duration
	}

	if len(raw.Segments) == 0 {
		out.Text = Normalize(raw.Text)
		if out.Text != "" {
			out.Segments = append(out.Segments, models.FormattedSegment{Text: out.Text})
		}
		return out, nil
	}

	out.HasTimestamps = true
	texts := make([]string, 0, len(raw.Segments))
	for i, s := range raw.Segments {
		if !validOffset(s.Start) || !validOffset(s.End) || s.Start > s.End {
			return nil, models.FormatError(nil, "Segment %d has invalid timing (start %v, end %v)", i+1, s.Start, s.End)
		}

		text := Normalize(s.Text)
		out.Segments = append(out.Segments, models.FormattedSegment{
			Start:        FormatTimestamp(s.Start),
			End:          FormatTimestamp(s.End),
			StartSeconds: s.Start,
			EndSeconds:   s.End,
			Text:         text,
		})
		if text != "" {
			texts = append(texts, text)
		}
	}
	out.Text = strings.Join(texts, " ")
	return out, nil
}

func validOffset(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
