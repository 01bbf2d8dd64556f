// Package mediatest builds media fixtures for tests.
package mediatest

import (
	"os"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const sampleRate = 16000

// SilentWAV returns a mono 16 bit PCM WAV file of the given length.
func SilentWAV(tb testing.TB, seconds int) []byte {
	tb.Helper()

	f, err := os.CreateTemp(tb.TempDir(), "silence-*.wav")
	if err != nil {
		tb.Fatalf("create wav fixture: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, sampleRate*seconds),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		tb.Fatalf("encode wav fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("close wav encoder: %v", err)
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		tb.Fatalf("read wav fixture: %v", err)
	}
	return data
}
