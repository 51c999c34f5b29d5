package extractor

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
)

type scriptedCompleter struct {
	responses map[string]string // model -> content
	errs      map[string]error  // model -> error
	calls     []string          // models in call order
}

func (c *scriptedCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.calls = append(c.calls, req.Model)
	if err, ok := c.errs[req.Model]; ok && err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: c.responses[req.Model]}},
		},
	}, nil
}

func newTestExtractor(c *scriptedCompleter) *OpenAI {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	return &OpenAI{client: c, cfg: cfg}
}

const routeSentence = "START ON IA-9 EB AT A10 INTERSECTION LYON IOWA, US-75 SB, END ON B62 WB AT QUAIL AVE INTERSECTION HANCOCK IOWA"

const wellFormedJSON = `{
	"start_point": "START ON IA-9 EB AT A10 INTERSECTION (LYON) (IOWA)",
	"end_point": "END ON B62 WB AT QUAIL AVE INTERSECTION (HANCOCK) (IOWA)",
	"route_segments": ["IA-9 EB", "US-75 SB", "B62 WB"],
	"corrected_text": "START ON IA-9 EB AT A10 INTERSECTION (LYON) (IOWA), US-75 SB, END ON B62 WB"
}`

func TestExtractWellFormedRoute(t *testing.T) {
	c := &scriptedCompleter{responses: map[string]string{"gpt-4o": wellFormedJSON}}
	e := newTestExtractor(c)

	record, err := e.Extract(context.Background(), routeSentence)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !record.HasRoutes {
		t.Error("HasRoutes = false")
	}
	if len(record.Segments) != 3 {
		t.Errorf("segments = %v", record.Segments)
	}
	if record.Segments[0] != "IA-9 EB" || record.Segments[2] != "B62 WB" {
		t.Errorf("segment order not preserved: %v", record.Segments)
	}
	if record.StartPoint == Placeholder || record.EndPoint == Placeholder {
		t.Error("start/end should not be placeholders for a full response")
	}
}

func TestExtractAcceptsAlternateFieldSpellings(t *testing.T) {
	c := &scriptedCompleter{responses: map[string]string{
		"gpt-4o": `{"start_location": "START ON US-75 SB", "end_location": "END ON B62 WB", "route_segments": ["US-75 SB"]}`,
	}}
	e := newTestExtractor(c)

	record, err := e.Extract(context.Background(), routeSentence)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if record.StartPoint != "START ON US-75 SB" {
		t.Errorf("start = %q", record.StartPoint)
	}
	if record.EndPoint != "END ON B62 WB" {
		t.Errorf("end = %q", record.EndPoint)
	}
}

func TestExtractToleratesMissingFields(t *testing.T) {
	c := &scriptedCompleter{responses: map[string]string{
		"gpt-4o": `{"route_segments": ["IA-9 EB"]}`,
	}}
	e := newTestExtractor(c)

	record, err := e.Extract(context.Background(), routeSentence)
	if err != nil {
		t.Fatalf("missing fields must not be fatal: %v", err)
	}
	if record.StartPoint != Placeholder || record.EndPoint != Placeholder {
		t.Errorf("expected placeholders, got %q / %q", record.StartPoint, record.EndPoint)
	}
}

func TestExtractNilSegmentsBecomeEmptySlice(t *testing.T) {
	c := &scriptedCompleter{responses: map[string]string{
		"gpt-4o": `{"start_point": "START", "end_point": "END"}`,
	}}
	e := newTestExtractor(c)

	record, err := e.Extract(context.Background(), routeSentence)
	if err != nil {
		t.Fatal(err)
	}
	if record.Segments == nil {
		t.Error("segments should be an empty slice, not nil")
	}
}

func TestExtractNoRouteOutcome(t *testing.T) {
	c := &scriptedCompleter{responses: map[string]string{
		"gpt-4o": `{"error": "no route instructions found", "has_routes": false, "input_was": "The weather today is sunny"}`,
	}}
	e := newTestExtractor(c)

	_, err := e.Extract(context.Background(), "The weather today is sunny")
	nr, ok := AsNoRoute(err)
	if !ok {
		t.Fatalf("expected NoRouteError, got %v", err)
	}
	if nr.InputWas != "The weather today is sunny" {
		t.Errorf("InputWas = %q", nr.InputWas)
	}
}

func TestExtractNoRoutePreservesInputWhenOmitted(t *testing.T) {
	c := &scriptedCompleter{responses: map[string]string{
		"gpt-4o": `{"has_routes": false}`,
	}}
	e := newTestExtractor(c)

	_, err := e.Extract(context.Background(), "just chatting")
	nr, ok := AsNoRoute(err)
	if !ok {
		t.Fatalf("expected NoRouteError, got %v", err)
	}
	if nr.InputWas != "just chatting" {
		t.Errorf("InputWas = %q, want original transcript", nr.InputWas)
	}
}

func TestExtractMalformedResponseNotRetried(t *testing.T) {
	c := &scriptedCompleter{responses: map[string]string{
		"gpt-4o": `{"start_point": "START ON IA-9`, // truncated
	}}
	e := newTestExtractor(c)

	_, err := e.Extract(context.Background(), routeSentence)
	if !IsMalformedResponse(err) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if len(c.calls) != 1 {
		t.Errorf("malformed output must not be retried, got %d calls", len(c.calls))
	}
}

func TestExtractModelDowngradeRetry(t *testing.T) {
	c := &scriptedCompleter{
		responses: map[string]string{"gpt-3.5-turbo": wellFormedJSON},
		errs: map[string]error{
			"gpt-4o": &openai.APIError{Code: "model_not_found", HTTPStatusCode: http.StatusNotFound},
		},
	}
	e := newTestExtractor(c)

	record, err := e.Extract(context.Background(), routeSentence)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !record.HasRoutes {
		t.Error("fallback result discarded")
	}
	if len(c.calls) != 2 || c.calls[0] != "gpt-4o" || c.calls[1] != "gpt-3.5-turbo" {
		t.Errorf("calls = %v, want primary then fallback", c.calls)
	}
}

func TestExtractDowngradeFailureSurfacesOriginal(t *testing.T) {
	primaryErr := &openai.APIError{Code: "model_not_found", HTTPStatusCode: http.StatusNotFound}
	c := &scriptedCompleter{
		errs: map[string]error{
			"gpt-4o":        primaryErr,
			"gpt-3.5-turbo": errors.New("quota exceeded"),
		},
	}
	e := newTestExtractor(c)

	_, err := e.Extract(context.Background(), routeSentence)
	if !IsModelUnavailable(err) {
		t.Fatalf("expected ModelUnavailableError, got %v", err)
	}
	if !errors.Is(err, error(primaryErr)) {
		t.Error("expected the original primary failure to surface")
	}
}

func TestExtractOtherAPIErrorsNotRetried(t *testing.T) {
	c := &scriptedCompleter{
		errs: map[string]error{
			"gpt-4o": &openai.APIError{Code: "insufficient_quota", HTTPStatusCode: http.StatusTooManyRequests},
		},
	}
	e := newTestExtractor(c)

	_, err := e.Extract(context.Background(), routeSentence)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(c.calls) != 1 {
		t.Errorf("non-model errors must not trigger the downgrade, got %d calls", len(c.calls))
	}
}

func TestExtractEmptyTranscript(t *testing.T) {
	c := &scriptedCompleter{}
	e := newTestExtractor(c)

	_, err := e.Extract(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript, got %v", err)
	}
	if len(c.calls) != 0 {
		t.Error("network call made for empty transcript")
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI(Config{}); err == nil {
		t.Error("expected error without API key")
	}
}
