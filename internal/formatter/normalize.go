package formatter

import (
	"regexp"
	"strings"
)

var (
	// Whisper style control tokens such as <|endoftext|> or <|0.00|>.
	controlTokens = regexp.MustCompile(`<\|[^|>]*\|>`)
	// Non speech annotations emitted for silence, music and noise.
	nonSpeech = regexp.MustCompile(`(?i)[\[(]\s*(?:blank_audio|blank audio|silence|music|music playing|applause|laughter|noise|inaudible|no speech)\s*[\])]`)

	musicGlyphs      = regexp.MustCompile(`[♪♫♬]+`)
	whitespace       = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(` ([,.!?;:])`)
	repeatedEllipsis = regexp.MustCompile(`\.{4,}`)
)

// Normalize cleans transcript text. It is deterministic and idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	// Each pass only deletes text or shrinks whitespace runs, so a fixed point
	// is reached within len(text)+2 passes.
	limit := len(text) + 2
	for i := 0; i < limit; i++ {
		next := normalizeOnce(text)
		if next == text {
			return next
		}
		text = next
	}
	return text
}

func normalizeOnce(text string) string {
	text = controlTokens.ReplaceAllString(text, " ")
	text = nonSpeech.ReplaceAllString(text, " ")
	text = musicGlyphs.ReplaceAllString(text, " ")
	text = repeatedEllipsis.ReplaceAllString(text, "...")
	text = whitespace.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
