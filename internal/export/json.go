// Package export renders a formatted transcript into downloadable documents.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/johnathanacortesd/johnascriber-sub000/internal/formatter"
	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

// ContentTypeJSON is the media type of the JSON export.
const ContentTypeJSON = "application/json; charset=utf-8"

// JSON serializes t as an indented document. The output is produced in full
// before anything is returned, so callers never see a partial export.
func JSON(t *models.FormattedTranscript) ([]byte, error) {
	if t == nil {
		return nil, models.ValidationError("There is no transcript to export")
	}

	doc := *t
	if doc.Segments == nil {
		doc.Segments = []models.FormattedSegment{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode transcript: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseJSON reads a document produced by JSON. ParseJSON(JSON(t)) equals t.
func ParseJSON(b []byte) (*models.FormattedTranscript, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	var t models.FormattedTranscript
	if err := dec.Decode(&t); err != nil {
		return nil, models.FormatError(err, "The transcript document is not valid JSON")
	}
	if dec.More() {
		return nil, models.FormatError(nil, "The transcript document has trailing data")
	}
	if t.Segments == nil {
		t.Segments = []models.FormattedSegment{}
	}

	if t.HasTimestamps {
		for i, s := range t.Segments {
			start, err := formatter.ParseTimestamp(s.Start)
			if err != nil {
				return nil, models.FormatError(err, "Segment %d has an invalid start time", i+1)
			}
			end, err := formatter.ParseTimestamp(s.End)
			if err != nil {
				return nil, models.FormatError(err, "Segment %d has an invalid end time", i+1)
			}
			if end < start {
				return nil, models.FormatError(nil, "Segment %d ends before it starts", i+1)
			}
		}
	}
	return &t, nil
}
