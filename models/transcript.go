package models

// RawTranscript represents the structure of a transcription as returned by the remote API.
// It only lives in memory for the duration of one request.
type RawTranscript struct {
	Text     string              `json:"text"`
	Language string              `json:"language,omitempty"`
	Duration float64             `json:"duration,omitempty"`
	Segments []TranscriptSegment `json:"segments"`
}

// TranscriptSegment represents a single timed segment of a transcription.
// Start and End are offsets in seconds.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// FormattedTranscript is the human readable transcript shown in the UI and exported as JSON.
type FormattedTranscript struct {
	Source        string             `json:"source,omitempty"`
	Language      string             `json:"language,omitempty"`
	Duration      float64            `json:"duration,omitempty"`
	HasTimestamps bool               `json:"has_timestamps"`
	Text          string             `json:"text"`
	Segments      []FormattedSegment `json:"segments"`
}

// FormattedSegment is a segment with display formatted timestamps.
// Start and End are empty for transcripts without timing information.
type FormattedSegment struct {
	Start        string  `json:"start,omitempty"`
	End          string  `json:"end,omitempty"`
	StartSeconds float64 `json:"start_seconds,omitempty"`
	EndSeconds   float64 `json:"end_seconds,omitempty"`
	Text         string  `json:"text"`
}
