// Package capture runs the record-until-silence loop: it pulls fixed
// frames from a Recorder, feeds their energy to the VAD detector and
// assembles the spoken portion into a single PCM clip.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/routevoice/routevoice/internal/audio"
	"github.com/routevoice/routevoice/internal/recording"
	"github.com/routevoice/routevoice/internal/vad"
)

// Clip is the captured audio buffer. Immutable once returned; ownership
// passes to the transcription stage.
type Clip struct {
	PCM        []byte
	SampleRate int
	Frames     int
}

func (c Clip) Empty() bool { return len(c.PCM) == 0 }

func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	samples := len(c.PCM) / 2
	return time.Duration(samples) * time.Second / time.Duration(c.SampleRate)
}

type Config struct {
	SampleRate      int
	ChunkSize       int // samples per frame
	MaxDuration     time.Duration
	SilenceWindow   time.Duration // trailing silence that ends the recording
	SpeechThreshold float64
	HangoverFrames  int
	Enhance         bool
}

func DefaultConfig() Config {
	return Config{
		SampleRate:      16000,
		ChunkSize:       2048,
		MaxDuration:     3 * time.Minute,
		SilenceWindow:   10 * time.Second,
		SpeechThreshold: 1500,
		HangoverFrames:  5,
		Enhance:         true,
	}
}

// Session captures one clip at a time from an injected Recorder.
type Session struct {
	cfg      Config
	recorder recording.Recorder
}

func New(cfg Config, recorder recording.Recorder) (*Session, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", cfg.SampleRate)
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("invalid chunk size: %d", cfg.ChunkSize)
	}
	if cfg.MaxDuration <= 0 {
		return nil, fmt.Errorf("invalid max duration: %v", cfg.MaxDuration)
	}
	if cfg.SilenceWindow <= 0 {
		return nil, fmt.Errorf("invalid silence window: %v", cfg.SilenceWindow)
	}
	if recorder == nil {
		return nil, fmt.Errorf("recorder is required")
	}
	return &Session{cfg: cfg, recorder: recorder}, nil
}

// framesPerSecond is fractional on purpose: frame counts derived from
// durations would otherwise drift for chunk sizes that do not divide
// the sample rate.
func (s *Session) framesFor(d time.Duration) int {
	perSecond := float64(s.cfg.SampleRate) / float64(s.cfg.ChunkSize)
	return int(math.Round(perSecond * d.Seconds()))
}

// Capture records until sustained trailing silence, the duration cap,
// or cancellation. Cancellation returns whatever was captured so far
// (empty if nothing was spoken yet), never an error. The microphone is
// released on every exit path.
func (s *Session) Capture(ctx context.Context) (Clip, error) {
	detector, err := vad.New(vad.Config{
		SpeechThreshold: s.cfg.SpeechThreshold,
		SilenceFrames:   s.framesFor(s.cfg.SilenceWindow),
		HangoverFrames:  s.cfg.HangoverFrames,
	})
	if err != nil {
		return Clip{}, err
	}
	maxFrames := s.framesFor(s.cfg.MaxDuration)

	frameCh, errCh, err := s.recorder.Start(ctx)
	if err != nil {
		return Clip{}, &DeviceError{Err: err}
	}
	defer s.recorder.Stop()

	frameBytes := s.cfg.ChunkSize * 2
	var captured bytes.Buffer
	var pending []byte
	frames := 0
	interrupted := false

	log.Printf("capture: recording up to %v, auto-stop after %v of silence",
		s.cfg.MaxDuration, s.cfg.SilenceWindow)

loop:
	for frames < maxFrames {
		select {
		case <-ctx.Done():
			log.Printf("capture: interrupted")
			interrupted = true
			break loop

		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err == nil {
				continue
			}
			if frames == 0 {
				return Clip{}, &DeviceError{Err: err}
			}
			// Device died mid-capture; keep what we have.
			log.Printf("capture: device error after %d frames: %v", frames, err)
			break loop

		case frame, ok := <-frameCh:
			if !ok {
				break loop
			}
			pending = append(pending, frame.Data...)
			for len(pending) >= frameBytes && frames < maxFrames {
				chunk := pending[:frameBytes]
				pending = pending[frameBytes:]
				captured.Write(chunk)
				frames++
				if detector.Feed(audio.Samples(chunk)) {
					log.Printf("capture: silence detected after %d frames", frames)
					break loop
				}
			}
		}
	}

	if interrupted && !detector.SpeechDetected() {
		return Clip{SampleRate: s.cfg.SampleRate}, nil
	}
	if frames == 0 {
		return Clip{SampleRate: s.cfg.SampleRate}, nil
	}

	pcm := captured.Bytes()
	if s.cfg.Enhance {
		pcm = audio.Bytes(audio.Enhance(audio.Samples(pcm), s.cfg.SampleRate))
	}

	clip := Clip{PCM: pcm, SampleRate: s.cfg.SampleRate, Frames: frames}
	log.Printf("capture: complete, %d frames (%v)", clip.Frames, clip.Duration())
	return clip, nil
}
