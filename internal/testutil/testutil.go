// Package testutil provides shared mocks for the pipeline stages.
//
// Config fixtures live in the config package's own tests instead: the
// config converters import every stage package, so a helper here that
// touched config would cycle back into the packages under test.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/routevoice/routevoice/internal/extractor"
	"github.com/routevoice/routevoice/internal/recording"
	"github.com/routevoice/routevoice/internal/transcriber"
)

// MockFrame builds a test audio frame. A nil data slice yields a
// deterministic 1024-byte pattern.
func MockFrame(data []byte) recording.Frame {
	if data == nil {
		data = make([]byte, 1024)
		for i := range data {
			data[i] = byte(i % 256)
		}
	}
	return recording.Frame{Data: data, Timestamp: time.Now()}
}

// MockRecorder implements recording.Recorder, replaying a fixed frame
// script. All frames are buffered up front and the channels close when
// the script ends, so it suits tests where capture terminates on its
// own; tests that need a source that stays open like a live microphone
// script their own recorder.
type MockRecorder struct {
	Frames     []recording.Frame
	StartError error

	mu      sync.Mutex
	stopped bool
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{Frames: []recording.Frame{MockFrame(nil)}}
}

func (m *MockRecorder) Start(ctx context.Context) (<-chan recording.Frame, <-chan error, error) {
	if m.StartError != nil {
		return nil, nil, m.StartError
	}

	frameCh := make(chan recording.Frame, len(m.Frames)+1)
	errCh := make(chan error, 1)

	for _, frame := range m.Frames {
		frameCh <- frame
	}
	close(frameCh)
	close(errCh)

	return frameCh, errCh, nil
}

func (m *MockRecorder) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	return nil
}

func (m *MockRecorder) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// MockTranscriber implements transcriber.Transcriber.
type MockTranscriber struct {
	TranscribeFunc func(ctx context.Context, pcm []byte) (transcriber.Result, error)
}

func (m *MockTranscriber) Transcribe(ctx context.Context, pcm []byte) (transcriber.Result, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, pcm)
	}
	return transcriber.Result{Text: "mock transcription", Confidence: 0.9}, nil
}

// MockExtractor implements extractor.Extractor.
type MockExtractor struct {
	ExtractFunc func(ctx context.Context, transcript string) (*extractor.RouteRecord, error)
}

func (m *MockExtractor) Extract(ctx context.Context, transcript string) (*extractor.RouteRecord, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, transcript)
	}
	return &extractor.RouteRecord{
		StartPoint: "START ON IA-9 EB",
		EndPoint:   "END ON B62 WB",
		Segments:   []string{"IA-9 EB", "B62 WB"},
		HasRoutes:  true,
	}, nil
}

// MockNotifier records notifications for assertions.
type MockNotifier struct {
	mu     sync.Mutex
	Stages []string
	Errors []string
}

func (n *MockNotifier) Stage(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Stages = append(n.Stages, msg)
}

func (n *MockNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Errors = append(n.Errors, msg)
}

// TestContext returns a context with a timeout suited to unit tests.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
