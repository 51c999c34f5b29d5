package transcriber

import (
	"context"
	"errors"
	"io"
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
)

type fakeStream struct {
	sent      []*speechpb.StreamingRecognizeRequest
	responses []*speechpb.StreamingRecognizeResponse
	recvIdx   int
	sendErr   error
}

func (s *fakeStream) Send(req *speechpb.StreamingRecognizeRequest) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, req)
	return nil
}

func (s *fakeStream) Recv() (*speechpb.StreamingRecognizeResponse, error) {
	if s.recvIdx >= len(s.responses) {
		return nil, io.EOF
	}
	resp := s.responses[s.recvIdx]
	s.recvIdx++
	return resp, nil
}

func (s *fakeStream) CloseSend() error { return nil }

type fakeRecognizer struct {
	batchResp  *speechpb.RecognizeResponse
	batchErr   error
	batchCalls int

	stream      *fakeStream
	streamErr   error
	streamCalls int
}

func (f *fakeRecognizer) Recognize(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	f.batchCalls++
	return f.batchResp, f.batchErr
}

func (f *fakeRecognizer) StreamingRecognize(ctx context.Context) (recognizeStream, error) {
	f.streamCalls++
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return f.stream, nil
}

func (f *fakeRecognizer) Close() error { return nil }

func newTestGoogle(f *fakeRecognizer) *Google {
	cfg := DefaultConfig()
	cfg.StreamChunkBytes = 4
	return &Google{client: f, cfg: cfg}
}

func batchResponse(text string, confidence float32) *speechpb.RecognizeResponse {
	return &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{Transcript: text, Confidence: confidence},
			}},
		},
	}
}

func finalResult(text string) *speechpb.StreamingRecognizeResponse {
	return &speechpb.StreamingRecognizeResponse{
		Results: []*speechpb.StreamingRecognitionResult{
			{IsFinal: true, Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{Transcript: text, Confidence: 0.9},
			}},
		},
	}
}

func TestTranscribeEmptyInputNoNetworkCall(t *testing.T) {
	f := &fakeRecognizer{}
	g := newTestGoogle(f)

	_, err := g.Transcribe(context.Background(), nil)
	if !errors.Is(err, ErrEmptyAudio) {
		t.Fatalf("expected ErrEmptyAudio, got %v", err)
	}
	if f.batchCalls != 0 || f.streamCalls != 0 {
		t.Errorf("network calls made for empty input: batch=%d stream=%d", f.batchCalls, f.streamCalls)
	}
}

func TestTranscribeBatchSuccess(t *testing.T) {
	f := &fakeRecognizer{batchResp: batchResponse("START ON IA-9 EB", 0.92)}
	g := newTestGoogle(f)

	res, err := g.Transcribe(context.Background(), []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Text != "START ON IA-9 EB" {
		t.Errorf("text = %q", res.Text)
	}
	if res.LowConfidence {
		t.Error("high-confidence result flagged as low")
	}
	if f.streamCalls != 0 {
		t.Error("streaming fallback used despite batch success")
	}
}

func TestTranscribeFlagsLowConfidence(t *testing.T) {
	f := &fakeRecognizer{batchResp: batchResponse("mumbled route", 0.3)}
	g := newTestGoogle(f)

	res, err := g.Transcribe(context.Background(), []byte{1, 2})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if !res.LowConfidence {
		t.Error("confidence 0.3 not flagged")
	}
	if res.Text != "mumbled route" {
		t.Error("low confidence must not drop the transcript")
	}
}

func TestTranscribeStreamingFallbackOnBatchError(t *testing.T) {
	stream := &fakeStream{responses: []*speechpb.StreamingRecognizeResponse{
		finalResult("START ON IA-9 EB"),
		finalResult("US-75 SB"),
	}}
	f := &fakeRecognizer{batchErr: errors.New("deadline exceeded"), stream: stream}
	g := newTestGoogle(f)

	res, err := g.Transcribe(context.Background(), []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Text != "START ON IA-9 EB US-75 SB" {
		t.Errorf("final results not concatenated in order: %q", res.Text)
	}

	// first message must carry the streaming config, then the chunks
	if len(stream.sent) < 2 {
		t.Fatalf("expected config + audio messages, got %d", len(stream.sent))
	}
	if stream.sent[0].GetStreamingConfig() == nil {
		t.Error("first streaming message is not the config")
	}
	audioMsgs := stream.sent[1:]
	// 10 bytes in chunks of 4: 4+4+2
	if len(audioMsgs) != 3 {
		t.Errorf("expected 3 audio chunks, got %d", len(audioMsgs))
	}
	var rejoined []byte
	for _, m := range audioMsgs {
		rejoined = append(rejoined, m.GetAudioContent()...)
	}
	if len(rejoined) != 10 {
		t.Errorf("chunks dropped audio: %d bytes", len(rejoined))
	}
}

func TestTranscribeFallbackOnEmptyBatchResult(t *testing.T) {
	stream := &fakeStream{responses: []*speechpb.StreamingRecognizeResponse{finalResult("B62 WB")}}
	f := &fakeRecognizer{batchResp: &speechpb.RecognizeResponse{}, stream: stream}
	g := newTestGoogle(f)

	res, err := g.Transcribe(context.Background(), []byte{1, 2})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Text != "B62 WB" {
		t.Errorf("text = %q", res.Text)
	}
}

func TestTranscribeFallbackOnBlankBatchTranscript(t *testing.T) {
	stream := &fakeStream{responses: []*speechpb.StreamingRecognizeResponse{finalResult("IA-9 EB")}}
	f := &fakeRecognizer{batchResp: batchResponse("   ", 0.8), stream: stream}
	g := newTestGoogle(f)

	res, err := g.Transcribe(context.Background(), []byte{1, 2})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Text != "IA-9 EB" {
		t.Errorf("blank batch transcript must fall back to streaming, got %q", res.Text)
	}
	if f.streamCalls != 1 {
		t.Errorf("streaming fallback not used: %d calls", f.streamCalls)
	}
}

func TestTranscribeBothPathsFail(t *testing.T) {
	batchErr := errors.New("batch down")
	f := &fakeRecognizer{batchErr: batchErr, streamErr: errors.New("stream down")}
	g := newTestGoogle(f)

	_, err := g.Transcribe(context.Background(), []byte{1})
	if !IsTranscriptionError(err) {
		t.Fatalf("expected TranscriptionError, got %v", err)
	}
	if !errors.Is(err, batchErr) {
		t.Error("TranscriptionError must unwrap to the batch cause")
	}
}

func TestRecognitionConfigCarriesHints(t *testing.T) {
	g := newTestGoogle(&fakeRecognizer{})
	cfg := g.recognitionConfig()

	if cfg.Encoding != speechpb.RecognitionConfig_LINEAR16 {
		t.Error("expected LINEAR16 encoding")
	}
	if cfg.SampleRateHertz != 16000 {
		t.Errorf("sample rate = %d", cfg.SampleRateHertz)
	}
	if len(cfg.SpeechContexts) != 1 || len(cfg.SpeechContexts[0].Phrases) == 0 {
		t.Fatal("phrase hints missing")
	}
	if cfg.SpeechContexts[0].Boost != 10 {
		t.Errorf("boost = %v", cfg.SpeechContexts[0].Boost)
	}
}
