package vad

import "testing"

func testConfig() Config {
	return Config{
		SpeechThreshold: 1500,
		SilenceFrames:   8,
		HangoverFrames:  5,
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "zero threshold", cfg: Config{SpeechThreshold: 0, SilenceFrames: 8, HangoverFrames: 5}},
		{name: "zero silence limit", cfg: Config{SpeechThreshold: 1500, SilenceFrames: 0, HangoverFrames: 5}},
		{name: "negative hangover", cfg: Config{SpeechThreshold: 1500, SilenceFrames: 8, HangoverFrames: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNeverTerminatesWithoutSpeech(t *testing.T) {
	d, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		if d.FeedRMS(100) {
			t.Fatalf("terminated at frame %d without any speech", i)
		}
	}
	if d.SpeechDetected() {
		t.Error("speech flagged on sub-threshold frames")
	}
	if d.TotalFrames() != 1000 {
		t.Errorf("total frames = %d, want 1000", d.TotalFrames())
	}
}

func TestTerminatesAfterTrailingSilence(t *testing.T) {
	cfg := testConfig()
	d, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// loud for frames 0-9, then silent: termination must land exactly
	// at frame 10 + hangover + silence limit.
	for i := 0; i < 10; i++ {
		if d.FeedRMS(3000) {
			t.Fatalf("terminated during speech at frame %d", i)
		}
	}
	wantStop := 10 + cfg.HangoverFrames + cfg.SilenceFrames
	for i := 10; i < wantStop+20; i++ {
		stop := d.FeedRMS(50)
		if stop {
			if d.TotalFrames() != wantStop {
				t.Fatalf("terminated at frame %d, want %d", d.TotalFrames(), wantStop)
			}
			return
		}
		if d.TotalFrames() >= wantStop {
			t.Fatalf("no termination by frame %d", d.TotalFrames())
		}
	}
	t.Fatal("detector never terminated")
}

func TestBriefDipsDoNotTerminate(t *testing.T) {
	cfg := testConfig()
	d, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// speech with dips shorter than hangover+silence window
	for cycle := 0; cycle < 50; cycle++ {
		if d.FeedRMS(4000) {
			t.Fatalf("terminated on speech frame in cycle %d", cycle)
		}
		for i := 0; i < cfg.HangoverFrames+cfg.SilenceFrames-1; i++ {
			if d.FeedRMS(10) {
				t.Fatalf("terminated during brief dip in cycle %d", cycle)
			}
		}
	}
}

func TestSilenceRunResetsOnSpeech(t *testing.T) {
	d, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	d.FeedRMS(5000)
	for i := 0; i < 9; i++ { // drain hangover, build some silence
		d.FeedRMS(0)
	}
	if d.SilenceRun() == 0 {
		t.Fatal("expected a silence run to accumulate")
	}
	d.FeedRMS(5000)
	if d.SilenceRun() != 0 {
		t.Errorf("silence run = %d after speech frame, want 0", d.SilenceRun())
	}
}

func TestFeedUsesFrameEnergy(t *testing.T) {
	d, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	loud := make([]int16, 256)
	for i := range loud {
		loud[i] = 4000
	}
	d.Feed(loud)
	if !d.SpeechDetected() {
		t.Error("loud frame not detected as speech")
	}

	d.Reset()
	quiet := make([]int16, 256)
	d.Feed(quiet)
	if d.SpeechDetected() {
		t.Error("silent frame detected as speech")
	}
	if d.TotalFrames() != 1 {
		t.Errorf("total frames after reset = %d, want 1", d.TotalFrames())
	}
}
