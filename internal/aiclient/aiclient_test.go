package aiclient

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type capturedRequest struct {
	fields   map[string][]string
	fileName string
	fileData string
	auth     string
}

func fakeAPI(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if captured != nil {
			captured.auth = r.Header.Get("Authorization")
			captured.fields = map[string][]string{}

			_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil {
				t.Errorf("parse content type: %v", err)
			}
			reader := multipart.NewReader(r.Body, params["boundary"])
			for {
				part, err := reader.NextPart()
				if err != nil {
					break
				}
				data, _ := io.ReadAll(part)
				if part.FormName() == "file" {
					captured.fileName = part.FileName()
					captured.fileData = string(data)
					continue
				}
				captured.fields[part.FormName()] = append(captured.fields[part.FormName()], string(data))
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := t.TempDir() + "/talk.mp3"
	require.NoError(t, os.WriteFile(path, []byte("fake-audio-bytes"), 0o600))
	return path
}

func TestOpenAIClientSegmented(t *testing.T) {
	var captured capturedRequest
	srv := fakeAPI(t, http.StatusOK, `{
		"task": "transcribe",
		"language": "english",
		"duration": 4.5,
		"text": "Hello there. General Kenobi.",
		"segments": [
			{"id": 0, "start": 0.0, "end": 2.1, "text": " Hello there."},
			{"id": 1, "start": 2.1, "end": 4.5, "text": " General Kenobi."}
		]
	}`, &captured)

	client := NewOpenAIClient("test-key", srv.URL+"/v1", "whisper-1", time.Second)
	raw, err := client.TranscribeFile(context.Background(), writeAudio(t), models.TranscriptionOptions{
		Language:    "en",
		Temperature: 0.2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", captured.auth)
	assert.Equal(t, "talk.mp3", captured.fileName)
	assert.Equal(t, "fake-audio-bytes", captured.fileData)
	assert.Equal(t, []string{"whisper-1"}, captured.fields["model"])
	assert.Equal(t, []string{"en"}, captured.fields["language"])
	assert.Equal(t, []string{"verbose_json"}, captured.fields["response_format"])
	assert.Equal(t, []string{"segment"}, captured.fields["timestamp_granularities[]"])

	assert.Equal(t, "english", raw.Language)
	assert.Equal(t, 4.5, raw.Duration)
	require.Len(t, raw.Segments, 2)
	assert.Equal(t, models.TranscriptSegment{Start: 2.1, End: 4.5, Text: " General Kenobi."}, raw.Segments[1])
}

func TestOpenAIClientPlain(t *testing.T) {
	var captured capturedRequest
	srv := fakeAPI(t, http.StatusOK, `{"text": "just words"}`, &captured)

	client := NewOpenAIClient("test-key", srv.URL+"/v1/", "", time.Second)
	raw, err := client.TranscribeFile(context.Background(), writeAudio(t), models.TranscriptionOptions{
		ResponseFormat: models.ResponseFormatPlain,
		Model:          "gpt-4o-mini-transcribe",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"json"}, captured.fields["response_format"])
	assert.Equal(t, []string{"gpt-4o-mini-transcribe"}, captured.fields["model"])
	assert.Nil(t, captured.fields["timestamp_granularities[]"])
	assert.Equal(t, "just words", raw.Text)
	assert.Empty(t, raw.Segments)
}

func TestOpenAIClientErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   models.ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, models.KindAuth},
		{"forbidden", http.StatusForbidden, `{"error":{"message":"nope"}}`, models.KindAuth},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"requests"}}`, models.KindRateLimit},
		{"rate limited plain body", http.StatusTooManyRequests, `Too Many Requests`, models.KindRateLimit},
		{"bad file", http.StatusBadRequest, `{"error":{"message":"Invalid file format."}}`, models.KindUnsupportedMedia},
		{"too large", http.StatusRequestEntityTooLarge, `{"error":{"message":"too big"}}`, models.KindUnsupportedMedia},
		{"unknown endpoint", http.StatusNotFound, `{"error":{"message":"Invalid URL (POST /v1/audio/transcriptions)"}}`, models.KindNetwork},
		{"unknown endpoint plain body", http.StatusNotFound, `404 page not found`, models.KindNetwork},
		{"server error", http.StatusBadGateway, `{"error":{"message":"upstream"}}`, models.KindNetwork},
		{"garbled success", http.StatusOK, `{not json`, models.KindFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeAPI(t, tt.status, tt.body, nil)
			client := NewOpenAIClient("test-key", srv.URL+"/v1", "whisper-1", time.Second)

			_, err := client.TranscribeFile(context.Background(), writeAudio(t), models.TranscriptionOptions{})
			require.Error(t, err)
			assert.Equal(t, tt.want, models.KindOf(err))
			assert.NotEmpty(t, models.UserMessage(err))
		})
	}
}

func TestOpenAIClientMissingKey(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := NewOpenAIClient("", srv.URL+"/v1", "whisper-1", time.Second)
	_, err := client.TranscribeFile(context.Background(), writeAudio(t), models.TranscriptionOptions{})

	assert.Equal(t, models.KindAuth, models.KindOf(err))
	assert.Equal(t, int32(0), calls.Load())
}

func TestOpenAIClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewOpenAIClient("test-key", url+"/v1", "whisper-1", time.Second)
	_, err := client.TranscribeFile(context.Background(), writeAudio(t), models.TranscriptionOptions{})

	assert.Equal(t, models.KindNetwork, models.KindOf(err))
}

func TestOpenAIClientCancelled(t *testing.T) {
	srv := fakeAPI(t, http.StatusOK, `{"text":"late"}`, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewOpenAIClient("test-key", srv.URL+"/v1", "whisper-1", time.Second)
	_, err := client.TranscribeFile(ctx, writeAudio(t), models.TranscriptionOptions{})

	assert.Equal(t, models.KindNetwork, models.KindOf(err))
}

type stubPathTranscriber struct {
	seenPath   string
	seenData   string
	existedNow bool
	result     *models.RawTranscript
	err        error
}

func (s *stubPathTranscriber) TranscribeFile(_ context.Context, path string, _ models.TranscriptionOptions) (*models.RawTranscript, error) {
	s.seenPath = path
	data, err := os.ReadFile(path)
	s.existedNow = err == nil
	s.seenData = string(data)
	return s.result, s.err
}

func TestFileBridgeReleasesOnSuccess(t *testing.T) {
	dir := t.TempDir()
	stub := &stubPathTranscriber{result: &models.RawTranscript{Text: "ok"}}
	bridge := NewFileBridge(stub, dir, quietLogger())

	raw, err := bridge.Transcribe(context.Background(), models.MediaInput{Filename: "a.wav", Data: []byte("RIFF")}, models.TranscriptionOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ok", raw.Text)
	assert.True(t, stub.existedNow)
	assert.Equal(t, "RIFF", stub.seenData)
	assertNoLeftovers(t, dir, stub.seenPath)
}

func TestFileBridgeReleasesOnFailure(t *testing.T) {
	dir := t.TempDir()
	stub := &stubPathTranscriber{err: models.RateLimitError(errors.New("429"), "slow down")}
	bridge := NewFileBridge(stub, dir, quietLogger())

	_, err := bridge.Transcribe(context.Background(), models.MediaInput{Filename: "a.wav", Data: []byte("RIFF")}, models.TranscriptionOptions{})
	assert.Equal(t, models.KindRateLimit, models.KindOf(err))
	assert.True(t, stub.existedNow)
	assertNoLeftovers(t, dir, stub.seenPath)
}

func assertNoLeftovers(t *testing.T, dir, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "staged file still exists")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenAIClientNotFoundNamesStatus(t *testing.T) {
	srv := fakeAPI(t, http.StatusNotFound, `{"error":{"message":"The model 'whisper-9' does not exist"}}`, nil)
	client := NewOpenAIClient("test-key", srv.URL+"/v1", "whisper-9", time.Second)

	_, err := client.TranscribeFile(context.Background(), writeAudio(t), models.TranscriptionOptions{})
	require.Error(t, err)
	assert.Equal(t, models.KindNetwork, models.KindOf(err))
	assert.Contains(t, models.UserMessage(err), "HTTP 404")
}
