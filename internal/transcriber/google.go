package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"

	"github.com/routevoice/routevoice/internal/audio"
)

// CredentialsEnv holds either inline service-account JSON or a path to
// a credentials file. When unset the default application credentials
// chain is used.
const CredentialsEnv = "GOOGLE_CLOUD_CREDENTIALS"

// recognizer is the slice of the Google Speech client the adapter
// needs. Tests provide fakes; production wraps *speech.Client.
type recognizer interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)
	StreamingRecognize(ctx context.Context) (recognizeStream, error)
	Close() error
}

type recognizeStream interface {
	Send(*speechpb.StreamingRecognizeRequest) error
	Recv() (*speechpb.StreamingRecognizeResponse, error)
	CloseSend() error
}

type googleClient struct {
	c *speech.Client
}

func (g googleClient) Recognize(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	return g.c.Recognize(ctx, req)
}

func (g googleClient) StreamingRecognize(ctx context.Context) (recognizeStream, error) {
	return g.c.StreamingRecognize(ctx)
}

func (g googleClient) Close() error { return g.c.Close() }

// Google transcribes clips with Google Cloud Speech-to-Text. The batch
// path is tried first; on error or an empty result the clip is re-sent
// chunked over the streaming API.
type Google struct {
	client recognizer
	cfg    Config
}

// NewGoogle builds the adapter with its own gRPC client. The client is
// constructed here and injected into the adapter rather than held as
// package state, so callers own its lifetime.
func NewGoogle(ctx context.Context, cfg Config) (*Google, error) {
	client, err := newSpeechClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return &Google{client: googleClient{c: client}, cfg: cfg}, nil
}

func newSpeechClient(ctx context.Context) (*speech.Client, error) {
	if creds := os.Getenv(CredentialsEnv); creds != "" {
		if json.Valid([]byte(creds)) {
			return speech.NewClient(ctx, option.WithCredentialsJSON([]byte(creds)))
		}
		return speech.NewClient(ctx, option.WithCredentialsFile(creds))
	}
	return speech.NewClient(ctx)
}

func (g *Google) Close() error {
	return g.client.Close()
}

func (g *Google) Transcribe(ctx context.Context, pcm []byte) (Result, error) {
	if len(pcm) == 0 {
		return Result{}, ErrEmptyAudio
	}

	res, batchErr := g.recognizeBatch(ctx, pcm)
	if batchErr == nil {
		return g.flagConfidence(res), nil
	}
	log.Printf("transcriber: batch recognition failed, falling back to streaming: %v", batchErr)

	res, streamErr := g.recognizeStreaming(ctx, pcm)
	if streamErr == nil {
		return g.flagConfidence(res), nil
	}

	return Result{}, &TranscriptionError{Batch: batchErr, Streaming: streamErr}
}

func (g *Google) recognitionConfig() *speechpb.RecognitionConfig {
	return &speechpb.RecognitionConfig{
		Encoding:                   speechpb.RecognitionConfig_LINEAR16,
		SampleRateHertz:            int32(g.cfg.SampleRate),
		LanguageCode:               g.cfg.LanguageCode,
		EnableAutomaticPunctuation: true,
		UseEnhanced:                true,
		Model:                      g.cfg.Model,
		SpeechContexts: []*speechpb.SpeechContext{
			{Phrases: g.cfg.PhraseHints, Boost: g.cfg.Boost},
		},
	}
}

func (g *Google) recognizeBatch(ctx context.Context, pcm []byte) (Result, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: g.recognitionConfig(),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: pcm},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("batch recognize: %w", err)
	}
	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		return Result{}, errors.New("batch recognize: no results")
	}

	alt := resp.Results[0].Alternatives[0]
	// An empty transcript is as useless as no result; let the streaming
	// path have its chance.
	if strings.TrimSpace(alt.Transcript) == "" {
		return Result{}, errors.New("batch recognize: empty transcript")
	}
	return Result{Text: alt.Transcript, Confidence: alt.Confidence}, nil
}

// recognizeStreaming re-submits the clip as a sequence of fixed-size
// chunks and concatenates the final partial results in arrival order.
func (g *Google) recognizeStreaming(ctx context.Context, pcm []byte) (Result, error) {
	stream, err := g.client.StreamingRecognize(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("open stream: %w", err)
	}

	if err := stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: &speechpb.StreamingRecognitionConfig{
				Config:         g.recognitionConfig(),
				InterimResults: false,
			},
		},
	}); err != nil {
		return Result{}, fmt.Errorf("send streaming config: %w", err)
	}

	for _, chunk := range audio.Chunks(pcm, g.cfg.StreamChunkBytes) {
		if err := stream.Send(&speechpb.StreamingRecognizeRequest{
			StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{
				AudioContent: chunk,
			},
		}); err != nil {
			return Result{}, fmt.Errorf("send audio chunk: %w", err)
		}
	}
	if err := stream.CloseSend(); err != nil {
		return Result{}, fmt.Errorf("close send: %w", err)
	}

	var parts []string
	var confidence float32
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("receive: %w", err)
		}
		for _, result := range resp.Results {
			if !result.IsFinal || len(result.Alternatives) == 0 {
				continue
			}
			parts = append(parts, result.Alternatives[0].Transcript)
			if confidence == 0 {
				confidence = result.Alternatives[0].Confidence
			}
		}
	}

	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return Result{}, errors.New("streaming recognize: no final results")
	}
	return Result{Text: text, Confidence: confidence}, nil
}

func (g *Google) flagConfidence(res Result) Result {
	if res.Confidence > 0 && res.Confidence < g.cfg.MinConfidence {
		res.LowConfidence = true
		log.Printf("transcriber: low confidence %.2f for %q", res.Confidence, res.Text)
	}
	return res
}
