// Package vad implements energy-based voice activity detection over
// fixed-size frames of 16-bit PCM audio.
package vad

import (
	"fmt"

	"github.com/routevoice/routevoice/internal/audio"
)

// Config controls the detector thresholds. All frame counts are in
// units of capture frames, not samples.
type Config struct {
	// SpeechThreshold is the RMS energy at or above which a frame
	// counts as speech. 1500 works well for clear speech on 16-bit
	// PCM with typical laptop microphones.
	SpeechThreshold float64

	// SilenceFrames is the run of trailing sub-threshold frames that
	// ends a recording once speech has been heard.
	SilenceFrames int

	// HangoverFrames is the grace period granted after each speech
	// frame so trailing consonants are not clipped.
	HangoverFrames int
}

func DefaultConfig() Config {
	return Config{
		SpeechThreshold: 1500,
		SilenceFrames:   60, // ~7.7s at 16kHz / 2048-sample frames
		HangoverFrames:  5,
	}
}

// Detector tracks speech/silence state across a frame sequence.
//
// The silence run resets to zero on every frame at or above the speech
// threshold. Recording terminates only when speech has been detected
// AND the silence run has reached SilenceFrames AND the hangover
// countdown has drained. This distinguishes "never spoke" (no early
// termination), "spoke then paused" (terminates after sustained
// trailing silence) and "spoke continuously" (ignores brief dips).
type Detector struct {
	cfg Config

	speechDetected bool
	silenceRun     int
	hangover       int
	totalFrames    int
}

func New(cfg Config) (*Detector, error) {
	if cfg.SpeechThreshold <= 0 {
		return nil, fmt.Errorf("invalid speech threshold: %v", cfg.SpeechThreshold)
	}
	if cfg.SilenceFrames <= 0 {
		return nil, fmt.Errorf("invalid silence frame limit: %d", cfg.SilenceFrames)
	}
	if cfg.HangoverFrames < 0 {
		return nil, fmt.Errorf("invalid hangover frames: %d", cfg.HangoverFrames)
	}
	return &Detector{cfg: cfg}, nil
}

// Feed advances the detector with one frame and reports whether the
// recording should end.
func (d *Detector) Feed(frame []int16) bool {
	return d.FeedRMS(audio.RMS(frame))
}

// FeedRMS advances the detector with a precomputed frame energy.
func (d *Detector) FeedRMS(rms float64) bool {
	d.totalFrames++

	if rms >= d.cfg.SpeechThreshold {
		d.speechDetected = true
		d.silenceRun = 0
		d.hangover = d.cfg.HangoverFrames
	} else if d.hangover > 0 {
		d.hangover--
	} else if d.speechDetected {
		d.silenceRun++
	}

	return d.speechDetected && d.hangover == 0 && d.silenceRun >= d.cfg.SilenceFrames
}

// SpeechDetected reports whether any frame so far crossed the speech
// threshold.
func (d *Detector) SpeechDetected() bool { return d.speechDetected }

// TotalFrames returns the number of frames fed so far.
func (d *Detector) TotalFrames() int { return d.totalFrames }

// SilenceRun returns the current run of trailing silence frames.
func (d *Detector) SilenceRun() int { return d.silenceRun }

// Reset clears all state so the detector can be reused.
func (d *Detector) Reset() {
	d.speechDetected = false
	d.silenceRun = 0
	d.hangover = 0
	d.totalFrames = 0
}
