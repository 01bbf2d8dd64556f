package aiclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

// DefaultTimeout bounds a single transcription call when none is configured.
const DefaultTimeout = 120 * time.Second

// OpenAIClient calls an OpenAI compatible /audio/transcriptions endpoint.
type OpenAIClient struct {
	client *openai.Client
	apiKey string
	model  string
}

// NewOpenAIClient creates a client for baseURL (api.openai.com when empty).
func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	if model == "" {
		model = openai.Whisper1
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		apiKey: apiKey,
		model:  model,
	}
}

// TranscribeFile uploads the file at path. Segmented options request verbose_json
// with segment timestamps; plain options request json.
func (c *OpenAIClient) TranscribeFile(ctx context.Context, path string, opts models.TranscriptionOptions) (*models.RawTranscript, error) {
	if c.apiKey == "" {
		return nil, models.AuthError(nil, "No API credential is configured; set OPENAI_API_KEY")
	}

	req := openai.AudioRequest{
		Model:       c.model,
		FilePath:    path,
		Prompt:      opts.Prompt,
		Temperature: opts.Temperature,
		Language:    opts.Language,
		Format:      openai.AudioResponseFormatJSON,
	}
	if opts.Model != "" {
		req.Model = opts.Model
	}
	if opts.Segmented() {
		req.Format = openai.AudioResponseFormatVerboseJSON
		req.TimestampGranularities = []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
		}
	}

	resp, err := c.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, classifyError(err)
	}

	raw := &models.RawTranscript{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}
	for _, s := range resp.Segments {
		raw.Segments = append(raw.Segments, models.TranscriptSegment{
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}
	return raw, nil
}
