package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/config"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/resilience"
)

const (
	serviceDownMessage = "The assistant is currently unavailable. Please try again in a moment, or use your bedside call button for urgent needs."
	streamErrorMessage = "An error occurred while processing your message."
	emptyReplyMessage  = "I apologize, but I was unable to generate a response. Please try again."
)

// Streamer is the chat-completion surface of the Ollama client.
type Streamer interface {
	Chat(ctx context.Context, req *api.ChatRequest, fn api.ChatResponseFunc) error
}

// Prober checks whether the model service is alive.
type Prober interface {
	Probe(ctx context.Context) error
}

// VersionProbe hits the Ollama version endpoint, the cheapest call the
// service answers.
type VersionProbe struct {
	client *resty.Client
}

// NewVersionProbe creates a probe against the given Ollama host.
func NewVersionProbe(host string) *VersionProbe {
	return &VersionProbe{client: resty.New().SetBaseURL(host)}
}

// Probe implements Prober. The caller bounds the duration via ctx.
func (p *VersionProbe) Probe(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return fmt.Errorf("model service ping failed: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("model service not responding: %s", resp.Status())
	}
	return nil
}

// NewOllamaClient constructs the streaming chat client for the given
// host.
func NewOllamaClient(host string) (*api.Client, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}
	return api.NewClient(base, http.DefaultClient), nil
}

// Bridge streams one model turn to a sink with strict Start/End
// framing. The liveness probe runs before streaming and is retried with
// backoff; the circuit breaker stops probing a service that is clearly
// down.
type Bridge struct {
	chat    Streamer
	probe   Prober
	tools   *Toolset
	cfg     config.OllamaConfig
	retry   resilience.Policy
	breaker *resilience.Breaker
	logger  *zap.Logger
}

// NewBridge wires the bridge from its collaborators.
func NewBridge(chat Streamer, probe Prober, tools *Toolset, cfg config.OllamaConfig, retry resilience.Policy, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		chat:  chat,
		probe: probe,
		tools: tools,
		cfg:   cfg,
		retry: retry,
		breaker: resilience.NewBreaker(resilience.BreakerConfig{
			FailureThreshold: 3,
			OnStateChange: func(from, to resilience.BreakerState) {
				logger.Warn("model service breaker state changed",
					zap.Stringer("from", from), zap.Stringer("to", to))
			},
		}),
		logger: logger,
	}
}

// Stream sends one user message to the model and forwards every content
// token to sink in emission order.
//
// Framing guarantees, on every exit path:
//   - exactly one ChunkStart first and one ChunkEnd last;
//   - a stream with zero content tokens carries exactly one fallback
//     apology token;
//   - failures surface as a ChunkError before ChunkEnd, then as the
//     returned error, never as a panic through the sink.
func (b *Bridge) Stream(ctx context.Context, userMessage string, sess *Session, sink Sink) (err error) {
	if strings.TrimSpace(userMessage) == "" {
		return ErrInvalidInput
	}

	if err := sink(Chunk{Kind: ChunkStart}); err != nil {
		return err
	}
	// End is owed from here on, no matter how we leave.
	defer func() {
		if endErr := sink(Chunk{Kind: ChunkEnd}); endErr != nil && err == nil {
			err = endErr
		}
	}()

	if probeErr := b.probeWithRetry(ctx); probeErr != nil {
		b.logger.Error("model service probe failed", zap.Error(probeErr))
		_ = sink(Chunk{Kind: ChunkError, Payload: serviceDownMessage})
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, probeErr)
	}

	req := &api.ChatRequest{
		Model:    b.cfg.Model,
		Messages: sess.BuildRequest(userMessage),
		Stream:   boolPtr(true),
		Format:   json.RawMessage(`"json"`),
		Tools:    b.tools.Tools(),
		Options: map[string]any{
			"temperature":    b.cfg.Temperature,
			"top_k":          b.cfg.TopK,
			"top_p":          b.cfg.TopP,
			"num_ctx":        b.cfg.NumCtx,
			"repeat_penalty": b.cfg.RepeatPenalty,
		},
	}

	hasContent := false
	streamErr := b.chat.Chat(ctx, req, func(resp api.ChatResponse) error {
		if resp.Message.Content == "" {
			return nil
		}
		hasContent = true
		return sink(Chunk{Kind: ChunkToken, Payload: resp.Message.Content})
	})
	if streamErr != nil {
		b.logger.Error("model stream failed", zap.Error(streamErr))
		_ = sink(Chunk{Kind: ChunkError, Payload: streamErrorMessage})
		return streamErr
	}

	if !hasContent {
		return sink(Chunk{Kind: ChunkToken, Payload: emptyReplyMessage})
	}
	return nil
}

// probeWithRetry runs the liveness probe under the retry policy and
// circuit breaker. Only the connection attempt is retried; once tokens
// flow, a failure is surfaced rather than silently retried, which could
// duplicate partial output.
func (b *Bridge) probeWithRetry(ctx context.Context) error {
	_, err := resilience.Retry(ctx, b.retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, b.breaker.Do(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, b.cfg.ProbeTimeout)
			defer cancel()
			return b.probe.Probe(probeCtx)
		})
	})
	return err
}

func boolPtr(v bool) *bool { return &v }
