package config

import "fmt"

func (c *Config) Validate() error {
	if c.Recording.SampleRate <= 0 {
		return fmt.Errorf("invalid recording.sample_rate: %d", c.Recording.SampleRate)
	}
	if c.Recording.Channels != 1 {
		return fmt.Errorf("invalid recording.channels: %d (mono only)", c.Recording.Channels)
	}
	if c.Recording.Format != "s16le" {
		return fmt.Errorf("invalid recording.format: %s (must be s16le)", c.Recording.Format)
	}
	if c.Recording.FrameSize <= 0 {
		return fmt.Errorf("invalid recording.frame_size: %d", c.Recording.FrameSize)
	}
	if c.Recording.ChannelBufferSize <= 0 {
		return fmt.Errorf("invalid recording.channel_buffer_size: %d", c.Recording.ChannelBufferSize)
	}

	if c.Capture.MaxDuration <= 0 {
		return fmt.Errorf("invalid capture.max_duration: %v", c.Capture.MaxDuration)
	}
	if c.Capture.SilenceWindow <= 0 {
		return fmt.Errorf("invalid capture.silence_window: %v", c.Capture.SilenceWindow)
	}
	if c.Capture.SilenceWindow >= c.Capture.MaxDuration {
		return fmt.Errorf("capture.silence_window (%v) must be shorter than capture.max_duration (%v)",
			c.Capture.SilenceWindow, c.Capture.MaxDuration)
	}
	if c.Capture.SpeechThreshold <= 0 {
		return fmt.Errorf("invalid capture.speech_threshold: %v", c.Capture.SpeechThreshold)
	}
	if c.Capture.HangoverFrames < 0 {
		return fmt.Errorf("invalid capture.hangover_frames: %d", c.Capture.HangoverFrames)
	}

	if c.Transcription.Language == "" {
		return fmt.Errorf("invalid transcription.language: empty")
	}
	if c.Transcription.Model == "" {
		return fmt.Errorf("invalid transcription.model: empty")
	}
	if c.Transcription.StreamChunkBytes <= 0 {
		return fmt.Errorf("invalid transcription.stream_chunk_bytes: %d", c.Transcription.StreamChunkBytes)
	}
	if c.Transcription.MinConfidence < 0 || c.Transcription.MinConfidence > 1 {
		return fmt.Errorf("invalid transcription.min_confidence: %v (must be 0..1)", c.Transcription.MinConfidence)
	}

	if c.Extraction.APIKey == "" {
		return fmt.Errorf("OpenAI API key required: not found in config (extraction.api_key) or environment variable (%s)", APIKeyEnv)
	}
	if c.Extraction.Model == "" {
		return fmt.Errorf("invalid extraction.model: empty")
	}
	if c.Extraction.Temperature < 0 || c.Extraction.Temperature > 2 {
		return fmt.Errorf("invalid extraction.temperature: %v (must be 0..2)", c.Extraction.Temperature)
	}
	if c.Extraction.MaxTokens <= 0 {
		return fmt.Errorf("invalid extraction.max_tokens: %d", c.Extraction.MaxTokens)
	}

	if c.Notifications.Enabled {
		validTypes := map[string]bool{"desktop": true, "log": true, "none": true}
		if !validTypes[c.Notifications.Type] {
			return fmt.Errorf("invalid notifications.type: %s (must be desktop, log, or none)", c.Notifications.Type)
		}
	}

	return nil
}
