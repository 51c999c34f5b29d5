// Package transcriber turns captured PCM clips into text via Google
// Cloud Speech-to-Text, biased toward the route-instruction vocabulary.
package transcriber

import "context"

// Result is the best-effort transcript for one clip. Confidence is the
// backend's score for the chosen alternative, 0 when not reported.
// LowConfidence flags scores under the configured floor; the transcript
// is still returned.
type Result struct {
	Text          string
	Confidence    float32
	LowConfidence bool
}

type Transcriber interface {
	Transcribe(ctx context.Context, pcm []byte) (Result, error)
}

type Config struct {
	SampleRate       int
	LanguageCode     string
	Model            string
	PhraseHints      []string
	Boost            float32 // bias weight for the phrase hints
	StreamChunkBytes int     // chunk size for the streaming fallback
	MinConfidence    float32 // below this the result is flagged, not rejected
}

func DefaultConfig() Config {
	return Config{
		SampleRate:       16000,
		LanguageCode:     "en-US",
		Model:            "video", // long-form model handles route readouts better
		PhraseHints:      DefaultPhraseHints(),
		Boost:            10,
		StreamChunkBytes: 4096,
		MinConfidence:    0.6,
	}
}

// DefaultPhraseHints is the domain vocabulary used to bias recognition:
// highway identifiers, direction codes and the place names that come up
// in route readouts.
func DefaultPhraseHints() []string {
	return []string{
		"INTERSECTION", "STATE BORDER", "NORTHBOUND", "SOUTHBOUND",
		"EASTBOUND", "WESTBOUND", "START ON", "END ON", "AT",
		"IN", "SB", "EB", "NB", "WB", "A10", "B62", "QUAIL AVE",
		"LYON", "ROCK RAPIDS", "SANBORN", "EMMETSBURG", "HANCOCK",
		"UNION STREET", "EASTERN STREET", "BROADWAY",
	}
}
