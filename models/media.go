package models

// ResponseFormat selects between a plain text transcript and a segmented one.
type ResponseFormat string

const (
	ResponseFormatPlain     ResponseFormat = "plain"
	ResponseFormatSegmented ResponseFormat = "segmented"
)

// MediaInput wraps an uploaded audio or video payload.
type MediaInput struct {
	Filename string `json:"filename" validate:"required"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size" validate:"gt=0"`
	Data     []byte `json:"-" validate:"min=1"`
}

// TranscriptionOptions are the optional parameters forwarded to the remote API.
type TranscriptionOptions struct {
	Model          string         `json:"model,omitempty" form:"model" validate:"omitempty,max=64"`
	Language       string         `json:"language,omitempty" form:"language" validate:"omitempty,bcp47_language_tag"`
	ResponseFormat ResponseFormat `json:"response_format,omitempty" form:"response_format" validate:"omitempty,oneof=plain segmented"`
	Temperature    float32        `json:"temperature,omitempty" form:"temperature" validate:"gte=0,lte=1"`
	Prompt         string         `json:"prompt,omitempty" form:"prompt" validate:"omitempty,max=1000"`
}

// Segmented reports whether segment level timestamps are requested.
// Segmented output is the default.
func (o TranscriptionOptions) Segmented() bool {
	return o.ResponseFormat != ResponseFormatPlain
}

// TranscriptionRequest is one user initiated transcription: exactly one media input plus options.
type TranscriptionRequest struct {
	Media   MediaInput           `json:"media"`
	Options TranscriptionOptions `json:"options"`
}
