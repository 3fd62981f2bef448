package llm

import "errors"

var (
	// ErrInvalidInput rejects an empty or whitespace-only user message
	// before any network activity.
	ErrInvalidInput = errors.New("empty message provided")

	// ErrServiceUnavailable means the model service failed its liveness
	// probe, including retries.
	ErrServiceUnavailable = errors.New("model service is not available")

	// ErrParse means the model emitted output that is not valid JSON or
	// violates the envelope schema. Terminal for the turn; retrying
	// cannot help since the bad output was already generated.
	ErrParse = errors.New("model output could not be parsed")

	// ErrUnknownTool means the model invoked a tool that was never
	// declared. A contract violation, logged loudly, never a crash.
	ErrUnknownTool = errors.New("model invoked an undeclared tool")
)
