// Package pipeline wires the capture, transcription, extraction and
// rendering stages into the single voice-to-route flow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/routevoice/routevoice/internal/audio"
	"github.com/routevoice/routevoice/internal/capture"
	"github.com/routevoice/routevoice/internal/extractor"
	"github.com/routevoice/routevoice/internal/format"
	"github.com/routevoice/routevoice/internal/notify"
	"github.com/routevoice/routevoice/internal/transcriber"
)

// ErrNoSpeech reports a capture that ended without any detected speech.
var ErrNoSpeech = errors.New("no speech detected")

// Capturer records one clip per call.
type Capturer interface {
	Capture(ctx context.Context) (capture.Clip, error)
}

// Result carries everything the run produced, including the no-route
// outcome, which is a result rather than a failure.
type Result struct {
	Transcript    string
	LowConfidence bool
	Record        *extractor.RouteRecord
	NoRoute       *extractor.NoRouteError
	Output        string
}

type Config struct {
	// DumpDir, when set, receives a WAV copy of every captured clip.
	DumpDir string
}

type Pipeline struct {
	cfg         Config
	capturer    Capturer
	transcriber transcriber.Transcriber
	extractor   extractor.Extractor
	notifier    notify.Notifier
}

func New(cfg Config, c Capturer, t transcriber.Transcriber, e extractor.Extractor, n notify.Notifier) (*Pipeline, error) {
	if c == nil {
		return nil, fmt.Errorf("capturer is required")
	}
	if t == nil {
		return nil, fmt.Errorf("transcriber is required")
	}
	if e == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if n == nil {
		n = notify.Nop{}
	}
	return &Pipeline{cfg: cfg, capturer: c, transcriber: t, extractor: e, notifier: n}, nil
}

// Run executes the full voice path: record until silence, transcribe,
// extract and render. A clip with no speech returns ErrNoSpeech; a
// transcript with no route instructions returns a Result with NoRoute
// set and a nil error.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.notifier.Stage("Listening... speak the route now")
	clip, err := p.capturer.Capture(ctx)
	if err != nil {
		p.notifier.Error(fmt.Sprintf("Recording failed: %v", err))
		return nil, err
	}
	if clip.Empty() {
		p.notifier.Error("No speech detected")
		return nil, ErrNoSpeech
	}
	log.Printf("pipeline: captured %v of audio", clip.Duration())
	p.dumpClip(clip)

	p.notifier.Stage("Transcribing...")
	res, err := p.transcriber.Transcribe(ctx, clip.PCM)
	if err != nil {
		p.notifier.Error("Transcription failed")
		return nil, err
	}
	if res.LowConfidence {
		log.Printf("pipeline: low transcription confidence (%.2f), continuing", res.Confidence)
	}

	result, err := p.process(ctx, res.Text)
	if err != nil {
		return nil, err
	}
	result.LowConfidence = res.LowConfidence
	return result, nil
}

// RunText skips capture and transcription, parsing the given text
// directly. Used by the sample and custom-text entry points.
func (p *Pipeline) RunText(ctx context.Context, text string) (*Result, error) {
	return p.process(ctx, text)
}

func (p *Pipeline) process(ctx context.Context, transcript string) (*Result, error) {
	result := &Result{Transcript: transcript}

	p.notifier.Stage("Extracting route information...")
	record, err := p.extractor.Extract(ctx, transcript)
	if err != nil {
		if nr, ok := extractor.AsNoRoute(err); ok {
			result.NoRoute = nr
			result.Output = format.RenderNoRoute(nr)
			p.notifier.Stage("No route instructions in the input")
			return result, nil
		}
		p.notifier.Error("Route extraction failed")
		return nil, err
	}

	result.Record = record
	result.Output = format.Render(record)
	p.notifier.Stage("Route parsed")
	return result, nil
}

func (p *Pipeline) dumpClip(clip capture.Clip) {
	if p.cfg.DumpDir == "" {
		return
	}
	if err := os.MkdirAll(p.cfg.DumpDir, 0o755); err != nil {
		log.Printf("pipeline: dump dir: %v", err)
		return
	}
	name := filepath.Join(p.cfg.DumpDir, time.Now().Format("20060102-150405")+".wav")
	if err := os.WriteFile(name, audio.EncodeWAV(clip.PCM, clip.SampleRate), 0o644); err != nil {
		log.Printf("pipeline: dump clip: %v", err)
		return
	}
	log.Printf("pipeline: clip saved to %s", name)
}
