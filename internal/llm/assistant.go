package llm

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/monitoring"
)

const genericApology = "I'm sorry, I had trouble understanding that. Could you rephrase your request?"

// Assistant runs one full chat turn: stream the model's envelope,
// interpret it, execute any tool call, and emit the user-visible reply
// to the client sink.
//
// The model turn is buffered in full before parsing, so a tool call is
// only ever executed once the envelope is complete and there is no
// partial-tool-call hazard. The client still observes strict framing:
// one Start, reply or error text, one End.
type Assistant struct {
	bridge  *Bridge
	interp  *Interpreter
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewAssistant composes the bridge and interpreter.
func NewAssistant(bridge *Bridge, interp *Interpreter, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{bridge: bridge, interp: interp, logger: logger}
}

// WithMetrics attaches a metrics collector.
func (a *Assistant) WithMetrics(m *monitoring.Metrics) *Assistant {
	a.metrics = m
	return a
}

// Chat processes one user message and streams the reply to sink. The
// error return reports what went wrong for logging; everything the
// patient should see has already been emitted through the sink by the
// time Chat returns.
func (a *Assistant) Chat(ctx context.Context, userMessage string, sess *Session, sink Sink) (err error) {
	if err := sink(Chunk{Kind: ChunkStart}); err != nil {
		return err
	}
	// An interpret failure keeps the turn alive for the patient but
	// still counts as a failed turn.
	var interpFailure error
	defer func() {
		if endErr := sink(Chunk{Kind: ChunkEnd}); endErr != nil && err == nil {
			err = endErr
		}
		if err != nil {
			a.countTurn(err)
		} else {
			a.countTurn(interpFailure)
		}
	}()

	// Buffer the model's envelope; bridge errors reach the client as
	// error chunks, content stays internal until interpreted.
	var buf strings.Builder
	streamErr := a.bridge.Stream(ctx, userMessage, sess, func(c Chunk) error {
		switch c.Kind {
		case ChunkToken:
			buf.WriteString(c.Payload)
			a.countToken()
		case ChunkError:
			return sink(c)
		}
		return nil
	})
	if streamErr != nil {
		if errors.Is(streamErr, ErrInvalidInput) {
			_ = sink(Chunk{Kind: ChunkError, Payload: "Please enter a message."})
		}
		return streamErr
	}

	result, interpErr := a.interp.Interpret(ctx, buf.String(), sess)
	if interpErr != nil {
		// The model broke the envelope contract or hallucinated a
		// tool. Log the anomaly, keep the turn alive with an apology.
		interpFailure = interpErr
		a.logger.Error("model turn could not be interpreted",
			zap.String("patient_id", sess.PatientID),
			zap.Error(interpErr),
		)
		return sink(Chunk{Kind: ChunkToken, Payload: genericApology})
	}

	if err := sink(Chunk{Kind: ChunkToken, Payload: result.Text}); err != nil {
		return err
	}
	sess.Append(userMessage, result.Text)
	return nil
}

func (a *Assistant) countTurn(err error) {
	if a.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	a.metrics.ChatTurns.WithLabelValues(status).Inc()
}

func (a *Assistant) countToken() {
	if a.metrics != nil {
		a.metrics.ChatTokens.Inc()
	}
}
