package config

import (
	"time"

	"github.com/routevoice/routevoice/internal/transcriber"
)

// DefaultConfig is the working configuration used when no config file
// exists yet.
func DefaultConfig() *Config {
	return &Config{
		Recording: RecordingConfig{
			SampleRate:        16000,
			Channels:          1,
			Format:            "s16le",
			FrameSize:         2048,
			Device:            "",
			ChannelBufferSize: 30,
		},
		Capture: CaptureConfig{
			MaxDuration:     3 * time.Minute,
			SilenceWindow:   10 * time.Second,
			SpeechThreshold: 1500,
			HangoverFrames:  5,
			Enhance:         true,
		},
		Transcription: TranscriptionConfig{
			Language:         "en-US",
			Model:            "video",
			PhraseHints:      transcriber.DefaultPhraseHints(),
			Boost:            10,
			StreamChunkBytes: 4096,
			MinConfidence:    0.6,
		},
		Extraction: ExtractionConfig{
			Model:         "gpt-4o",
			FallbackModel: "gpt-3.5-turbo",
			Temperature:   0.2,
			MaxTokens:     800,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Type:    "log",
		},
	}
}
