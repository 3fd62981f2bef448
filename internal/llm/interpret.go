package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/monitoring"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/store"
)

const (
	apologyCreate = "I apologize, but I encountered an error while creating your request. Please try again or call for assistance using your bedside button."
	apologyQuery  = "I apologize, but I encountered an error while retrieving your requests. Please try again or call for assistance using your bedside button."
)

// RequestStore is the slice of the domain store the interpreter needs.
type RequestStore interface {
	CreateRequest(ctx context.Context, p store.CreateRequestParams) (*domain.Request, error)
	FindRequests(ctx context.Context, f store.RequestFilter) ([]domain.Request, error)
}

// Result is the outcome of interpreting one model turn.
type Result struct {
	// Text is the full user-visible reply: the model's response plus
	// any tool outcome appended to it.
	Text string
	// RequestID is set when a new request was persisted this turn.
	RequestID string
}

// envelope is the JSON shape the system prompt demands from the model.
type envelope struct {
	Thoughts     string        `json:"thoughts"`
	Response     string        `json:"response"`
	FunctionCall *functionCall `json:"function_call,omitempty"`
}

type functionCall struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// Interpreter turns raw model output into a reply, executing any tool
// call against the store along the way.
type Interpreter struct {
	tools   *Toolset
	store   RequestStore
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewInterpreter creates an interpreter over the given toolset and
// store.
func NewInterpreter(tools *Toolset, requestStore RequestStore, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{tools: tools, store: requestStore, logger: logger}
}

// WithMetrics attaches a metrics collector.
func (i *Interpreter) WithMetrics(m *monitoring.Metrics) *Interpreter {
	i.metrics = m
	return i
}

func (i *Interpreter) countTool(tool string, err error) {
	if i.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	i.metrics.ToolCalls.WithLabelValues(tool, status).Inc()
}

// Interpret parses one complete model turn. Malformed JSON or a schema
// violation fails the turn with ErrParse; a hallucinated tool name
// fails with ErrUnknownTool. Store failures do not fail the turn: the
// tool outcome becomes an apology directing the patient to the manual
// fallback, because this is a safety-relevant path.
func (i *Interpreter) Interpret(ctx context.Context, raw string, sess *Session) (Result, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if env.FunctionCall == nil {
		return Result{Text: env.Response}, nil
	}

	invocation, err := i.tools.Decode(env.FunctionCall.Name, env.FunctionCall.Parameters)
	if err != nil {
		return Result{}, err
	}

	switch call := invocation.(type) {
	case CreateRequestCall:
		return i.createRequest(ctx, env.Response, call, sess)
	case GetPatientRequestsCall:
		return i.getPatientRequests(ctx, env.Response, call, sess)
	default:
		// Unreachable while Decode and the variants stay in sync.
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownTool, invocation)
	}
}

func (i *Interpreter) createRequest(ctx context.Context, response string, call CreateRequestCall, sess *Session) (Result, error) {
	room := sess.Room
	if room == "" {
		room = "Unknown"
	}

	request, err := i.store.CreateRequest(ctx, store.CreateRequestParams{
		PatientID:   sess.PatientID,
		Priority:    call.Priority,
		Description: call.Description,
		Department:  call.Department,
		Room:        room,
	})
	i.countTool(toolCreateRequest, err)
	if err != nil {
		i.logger.Error("tool create_request failed",
			zap.String("patient_id", sess.PatientID),
			zap.Error(err),
		)
		return Result{Text: response + "\n" + apologyCreate}, nil
	}

	confirmation := fmt.Sprintf(
		"I've created a request for nursing assistance:\n\n"+
			"Priority: %s\nDepartment: %s\nDescription: %s\nRoom: %s\n\n"+
			"A nurse will be notified and will assist you soon.",
		call.Priority.Lower(), call.Department, call.Description, room,
	)
	return Result{Text: response + "\n" + confirmation, RequestID: request.ID}, nil
}

func (i *Interpreter) getPatientRequests(ctx context.Context, response string, call GetPatientRequestsCall, sess *Session) (Result, error) {
	requests, err := i.store.FindRequests(ctx, store.RequestFilter{
		PatientID: sess.PatientID,
		Status:    call.Status,
	})
	i.countTool(toolGetPatientRequests, err)
	if err != nil {
		i.logger.Error("tool get_patient_requests failed",
			zap.String("patient_id", sess.PatientID),
			zap.Error(err),
		)
		return Result{Text: response + "\n" + apologyQuery}, nil
	}

	if len(requests) == 0 {
		return Result{Text: response + "\nYou have no requests on file."}, nil
	}

	var listing strings.Builder
	listing.WriteString("Here are your requests:\n")
	for _, req := range requests {
		fmt.Fprintf(&listing, "\nPriority: %s\nDepartment: %s\nDescription: %s\nRoom: %s\nStatus: %s\n",
			req.Priority.Lower(), req.Department, req.Description, req.Room, req.Status.Lower())
	}
	return Result{Text: response + "\n" + listing.String()}, nil
}
