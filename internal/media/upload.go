package media

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

// DefaultAllowedTypes are the containers accepted by OpenAI compatible transcription APIs.
var DefaultAllowedTypes = []string{
	"audio/flac",
	"audio/mpeg",
	"audio/mp4",
	"audio/x-m4a",
	"audio/ogg",
	"application/ogg",
	"audio/wav",
	"audio/webm",
	"video/mp4",
	"video/mpeg",
	"video/webm",
	"video/quicktime",
}

// extensionsByType lists the file extensions the remote API recognizes for each
// allowed type. The first entry is used when an upload's extension disagrees
// with its content.
var extensionsByType = map[string][]string{
	"audio/flac":      {".flac"},
	"audio/mpeg":      {".mp3", ".mpga", ".mpeg"},
	"audio/mp4":       {".m4a", ".mp4"},
	"audio/x-m4a":     {".m4a", ".mp4"},
	"audio/ogg":       {".ogg", ".oga", ".opus"},
	"application/ogg": {".ogg", ".oga"},
	"audio/wav":       {".wav"},
	"audio/webm":      {".webm", ".weba"},
	"video/mp4":       {".mp4", ".m4v"},
	"video/mpeg":      {".mpeg", ".mpg"},
	"video/webm":      {".webm"},
	"video/quicktime": {".mov", ".qt"},
}

var validate = validator.New()

// UploadPolicy constrains what Input Acquisition accepts.
type UploadPolicy struct {
	MaxBytes     int64
	MaxDuration  time.Duration
	AllowedTypes []string
}

// NewUploadPolicy returns a policy with the default allowlist.
func NewUploadPolicy(maxBytes int64, maxDuration time.Duration) UploadPolicy {
	return UploadPolicy{
		MaxBytes:     maxBytes,
		MaxDuration:  maxDuration,
		AllowedTypes: DefaultAllowedTypes,
	}
}

// ReadUpload reads a multipart file into a MediaInput, refusing to buffer more than MaxBytes.
func (p UploadPolicy) ReadUpload(fh *multipart.FileHeader) (models.MediaInput, error) {
	if fh == nil {
		return models.MediaInput{}, models.ValidationError("No file was uploaded")
	}
	if p.MaxBytes > 0 && fh.Size > p.MaxBytes {
		return models.MediaInput{}, models.ValidationError("File is too large (%d bytes, limit %d bytes)", fh.Size, p.MaxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return models.MediaInput{}, fmt.Errorf("open uploaded file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if p.MaxBytes > 0 {
		r = io.LimitReader(f, p.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return models.MediaInput{}, fmt.Errorf("read uploaded file: %w", err)
	}

	return models.MediaInput{
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}

// Validate checks the input against the policy and returns it with a sniffed
// MIME type and a filename carrying a matching extension.
func (p UploadPolicy) Validate(in models.MediaInput) (models.MediaInput, error) {
	if len(in.Data) == 0 {
		return in, models.ValidationError("The uploaded file is empty")
	}
	in.Size = int64(len(in.Data))
	if in.Filename == "" {
		in.Filename = "upload"
	}
	if err := validate.Struct(in); err != nil {
		return in, models.ValidationError("Invalid upload: %v", err)
	}
	if p.MaxBytes > 0 && in.Size > p.MaxBytes {
		return in, models.ValidationError("File is too large (%d bytes, limit %d bytes)", in.Size, p.MaxBytes)
	}

	detected := mimetype.Detect(in.Data)
	mimeType, ok := p.allowed(detected)
	if !ok && detected.Is("application/octet-stream") {
		mimeType, ok = p.allowedDeclared(in.MimeType)
	}
	if !ok {
		return in, models.ValidationError("Unsupported file type %q; upload an audio or video file", detected.String())
	}

	in.MimeType = mimeType
	in.Filename = withExtension(in.Filename, mimeType, detected)
	return in, nil
}

// withExtension makes the extension of name agree with the accepted type, since
// the remote API infers the container from it.
func withExtension(name, mimeType string, detected *mimetype.MIME) string {
	ext := filepath.Ext(name)
	known, ok := extensionsByType[mimeType]
	if !ok {
		if want := detected.Extension(); want != "" && !strings.EqualFold(ext, want) {
			return strings.TrimSuffix(name, ext) + want
		}
		return name
	}
	for _, k := range known {
		if strings.EqualFold(ext, k) {
			return name
		}
	}
	return strings.TrimSuffix(name, ext) + known[0]
}

func (p UploadPolicy) allowed(detected *mimetype.MIME) (string, bool) {
	for m := detected; m != nil; m = m.Parent() {
		for _, a := range p.AllowedTypes {
			if m.Is(a) {
				return a, true
			}
		}
	}
	return "", false
}

func (p UploadPolicy) allowedDeclared(declared string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return "", false
	}
	mediaType = strings.ToLower(mediaType)
	for _, a := range p.AllowedTypes {
		if a == mediaType {
			return a, true
		}
	}
	return "", false
}

// CheckDuration rejects media whose probed duration exceeds MaxDuration.
func (p UploadPolicy) CheckDuration(probe Probe) error {
	if p.MaxDuration <= 0 || !probe.DurationKnown {
		return nil
	}
	if probe.Duration > p.MaxDuration {
		return models.ValidationError("Media is too long (%s, limit %s)", probe.Duration.Round(time.Second), p.MaxDuration)
	}
	return nil
}
