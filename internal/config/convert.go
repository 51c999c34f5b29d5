package config

import (
	"github.com/routevoice/routevoice/internal/capture"
	"github.com/routevoice/routevoice/internal/extractor"
	"github.com/routevoice/routevoice/internal/notify"
	"github.com/routevoice/routevoice/internal/pipeline"
	"github.com/routevoice/routevoice/internal/recording"
	"github.com/routevoice/routevoice/internal/transcriber"
)

// The converters map the file-level configuration onto each component's
// own config type, so the components stay ignorant of TOML.

func (c *Config) RecordingConfig() recording.Config {
	return recording.Config{
		SampleRate:        c.Recording.SampleRate,
		Channels:          c.Recording.Channels,
		Format:            c.Recording.Format,
		FrameSize:         c.Recording.FrameSize,
		Device:            c.Recording.Device,
		ChannelBufferSize: c.Recording.ChannelBufferSize,
	}
}

func (c *Config) CaptureConfig() capture.Config {
	return capture.Config{
		SampleRate:      c.Recording.SampleRate,
		ChunkSize:       c.Recording.FrameSize,
		MaxDuration:     c.Capture.MaxDuration,
		SilenceWindow:   c.Capture.SilenceWindow,
		SpeechThreshold: c.Capture.SpeechThreshold,
		HangoverFrames:  c.Capture.HangoverFrames,
		Enhance:         c.Capture.Enhance,
	}
}

func (c *Config) TranscriberConfig() transcriber.Config {
	hints := c.Transcription.PhraseHints
	if len(hints) == 0 {
		hints = transcriber.DefaultPhraseHints()
	}
	return transcriber.Config{
		SampleRate:       c.Recording.SampleRate,
		LanguageCode:     c.Transcription.Language,
		Model:            c.Transcription.Model,
		PhraseHints:      hints,
		Boost:            c.Transcription.Boost,
		StreamChunkBytes: c.Transcription.StreamChunkBytes,
		MinConfidence:    c.Transcription.MinConfidence,
	}
}

func (c *Config) ExtractorConfig() extractor.Config {
	return extractor.Config{
		APIKey:        c.Extraction.APIKey,
		Model:         c.Extraction.Model,
		FallbackModel: c.Extraction.FallbackModel,
		Temperature:   c.Extraction.Temperature,
		MaxTokens:     c.Extraction.MaxTokens,
	}
}

func (c *Config) NotifyKind() notify.Kind {
	if !c.Notifications.Enabled {
		return notify.KindNone
	}
	return notify.Kind(c.Notifications.Type)
}

func (c *Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{DumpDir: c.Debug.DumpDir}
}
