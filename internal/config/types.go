package config

import "time"

type Config struct {
	Recording     RecordingConfig     `toml:"recording"`
	Capture       CaptureConfig       `toml:"capture"`
	Transcription TranscriptionConfig `toml:"transcription"`
	Extraction    ExtractionConfig    `toml:"extraction"`
	Notifications NotificationsConfig `toml:"notifications"`
	Debug         DebugConfig         `toml:"debug"`
}

type RecordingConfig struct {
	SampleRate        int    `toml:"sample_rate"`
	Channels          int    `toml:"channels"`
	Format            string `toml:"format"`
	FrameSize         int    `toml:"frame_size"` // samples per frame
	Device            string `toml:"device"`
	ChannelBufferSize int    `toml:"channel_buffer_size"`
}

type CaptureConfig struct {
	MaxDuration     time.Duration `toml:"max_duration"`
	SilenceWindow   time.Duration `toml:"silence_window"`
	SpeechThreshold float64       `toml:"speech_threshold"`
	HangoverFrames  int           `toml:"hangover_frames"`
	Enhance         bool          `toml:"enhance"`
}

type TranscriptionConfig struct {
	Language         string   `toml:"language"`
	Model            string   `toml:"model"`
	PhraseHints      []string `toml:"phrase_hints"`
	Boost            float32  `toml:"boost"`
	StreamChunkBytes int      `toml:"stream_chunk_bytes"`
	MinConfidence    float32  `toml:"min_confidence"`
}

type ExtractionConfig struct {
	APIKey        string  `toml:"api_key"` // falls back to OPENAI_API_KEY
	Model         string  `toml:"model"`
	FallbackModel string  `toml:"fallback_model"`
	Temperature   float32 `toml:"temperature"`
	MaxTokens     int     `toml:"max_tokens"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"` // "desktop", "log", "none"
}

type DebugConfig struct {
	DumpDir string `toml:"dump_dir"` // save captured clips as WAV when set
}
