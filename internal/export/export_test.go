package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnathanacortesd/johnascriber-sub000/internal/formatter"
	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

func timestamped() *models.FormattedTranscript {
	t, err := formatter.Format(&models.RawTranscript{
		Language: "english",
		Duration: 7.25,
		Segments: []models.TranscriptSegment{
			{Start: 0, End: 2.5, Text: "Hello there."},
			{Start: 2.5, End: 4, Text: ""},
			{Start: 4, End: 7.25, Text: "Cue --> arrow & <b>tags</b>"},
		},
	}, "talk.wav")
	if err != nil {
		panic(err)
	}
	return t
}

func TestJSONRoundTrip(t *testing.T) {
	cases := map[string]*models.FormattedTranscript{
		"no segments": {Source: "empty.wav", Segments: []models.FormattedSegment{}},
		"plain":       {Source: "memo.mp3", Text: "just words", Segments: []models.FormattedSegment{{Text: "just words"}}},
		"timestamped": timestamped(),
		"silent": {
			Source:        "silence.wav",
			HasTimestamps: true,
			Segments:      []models.FormattedSegment{{Start: "0:00", End: "0:10", EndSeconds: 10}},
		},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := JSON(in)
			require.NoError(t, err)

			out, err := ParseJSON(b)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestJSONShape(t *testing.T) {
	b, err := JSON(&models.FormattedTranscript{})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"segments": []`)
	assert.Contains(t, string(b), `"has_timestamps": false`)

	b, err = JSON(timestamped())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"start": "0:04"`)
	assert.Contains(t, string(b), `<b>tags</b>`)

	_, err = JSON(nil)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestParseJSONRejects(t *testing.T) {
	docs := []string{
		`{not json`,
		`{"text":"a","segments":[],"extra":1}`,
		`{"text":"a","segments":[]} {}`,
		`{"has_timestamps":true,"text":"","segments":[{"start":"x","end":"0:01","text":""}]}`,
		`{"has_timestamps":true,"text":"","segments":[{"start":"0:05","end":"0:01","text":""}]}`,
	}
	for _, doc := range docs {
		_, err := ParseJSON([]byte(doc))
		assert.Equal(t, models.KindFormat, models.KindOf(err), "doc %s", doc)
	}
}

func TestSRT(t *testing.T) {
	b, err := SRT(timestamped())
	require.NoError(t, err)

	want := "1\n00:00:00,000 --> 00:00:02,500\nHello there.\n\n" +
		"2\n00:00:04,000 --> 00:00:07,250\nCue --> arrow & <b>tags</b>\n\n"
	assert.Equal(t, want, string(b))
}

func TestWebVTT(t *testing.T) {
	b, err := WebVTT(timestamped())
	require.NoError(t, err)

	want := "WEBVTT\n\n" +
		"00:00:00.000 --> 00:00:02.500\nHello there.\n\n" +
		"00:00:04.000 --> 00:00:07.250\nCue -> arrow & <b>tags</b>\n\n"
	assert.Equal(t, want, string(b))
}

func TestSubtitlesNeedTimestamps(t *testing.T) {
	plain := &models.FormattedTranscript{Text: "words", Segments: []models.FormattedSegment{{Text: "words"}}}

	_, err := SRT(plain)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
	_, err = WebVTT(plain)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
	_, err = SRT(nil)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}
