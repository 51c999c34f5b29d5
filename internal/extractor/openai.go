package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// completer is the slice of the OpenAI client the adapter needs.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI implements Extractor against the chat completions API.
type OpenAI struct {
	client completer
	cfg    Config
}

func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	return &OpenAI{client: openai.NewClient(cfg.APIKey), cfg: cfg}, nil
}

// payload accepts both field spellings the backend has been observed
// to produce, plus the error shape for route-free input.
type payload struct {
	Error         string   `json:"error"`
	HasRoutes     *bool    `json:"has_routes"`
	InputWas      string   `json:"input_was"`
	StartPoint    string   `json:"start_point"`
	StartLocation string   `json:"start_location"`
	EndPoint      string   `json:"end_point"`
	EndLocation   string   `json:"end_location"`
	Segments      []string `json:"route_segments"`
	CorrectedText string   `json:"corrected_text"`
}

func (e *OpenAI) Extract(ctx context.Context, transcript string) (*RouteRecord, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	content, err := e.complete(ctx, e.cfg.Model, transcript)
	if err != nil {
		if !isModelUnavailable(err) || e.cfg.FallbackModel == "" {
			return nil, err
		}
		// one downgrade retry, identical prompt; if it also fails the
		// original failure surfaces
		log.Printf("extractor: model %s unavailable, retrying with %s", e.cfg.Model, e.cfg.FallbackModel)
		fallbackContent, fallbackErr := e.complete(ctx, e.cfg.FallbackModel, transcript)
		if fallbackErr != nil {
			return nil, &ModelUnavailableError{Model: e.cfg.Model, Err: err}
		}
		content = fallbackContent
	}

	return parseRecord(content, transcript)
}

func (e *OpenAI) complete(ctx context.Context, model, transcript string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(transcript)},
		},
		Temperature: e.cfg.Temperature,
		MaxTokens:   e.cfg.MaxTokens,
	}

	start := time.Now()
	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("extractor: completion with %s failed after %v: %v", model, time.Since(start), err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no response choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func parseRecord(content, transcript string) (*RouteRecord, error) {
	var p payload
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return nil, &MalformedResponseError{Raw: content, Err: err}
	}

	if p.Error != "" || (p.HasRoutes != nil && !*p.HasRoutes) {
		inputWas := p.InputWas
		if inputWas == "" {
			inputWas = transcript
		}
		return nil, &NoRouteError{Reason: p.Error, InputWas: inputWas}
	}

	record := &RouteRecord{
		StartPoint:    firstNonEmpty(p.StartPoint, p.StartLocation, Placeholder),
		EndPoint:      firstNonEmpty(p.EndPoint, p.EndLocation, Placeholder),
		Segments:      p.Segments,
		CorrectedText: p.CorrectedText,
		HasRoutes:     true,
	}
	if record.Segments == nil {
		record.Segments = []string{}
	}
	return record, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// isModelUnavailable recognizes the backend failure category that
// justifies the downgrade retry.
func isModelUnavailable(err error) bool {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if code, ok := apiErr.Code.(string); ok && code == "model_not_found" {
		return true
	}
	return apiErr.HTTPStatusCode == http.StatusNotFound
}
