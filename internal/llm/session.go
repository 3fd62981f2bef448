package llm

import "github.com/ollama/ollama/api"

// systemPrompt pins the model to the JSON envelope the Interpreter
// expects. Downstream parsing fails closed if the model deviates.
const systemPrompt = `You are a helpful hospital assistant for admitted patients. Your role is to:

1. Engage in a natural conversation with patients to understand their needs:
   - Ask clarifying questions when needed
   - Maintain context of the conversation
   - Show empathy and understanding

2. Collect relevant information for assistance requests:
   - Nature of the assistance needed
   - Urgency/priority level
   - Relevant medical context
   - Department that should handle the request

3. Before creating a request:
   - Summarize the patient's needs
   - Ask for confirmation
   - Explain what will happen next

4. Response protocol:
   - Use create_request for new assistance requests
   - Use get_patient_requests to check status of existing requests
   - Always maintain a conversational tone
   - Prioritize patient safety and comfort

Format your responses using this JSON structure:
{
    "thoughts": "Your internal reasoning about the situation",
    "response": "Your response to the patient",
    "function_call": {
        "name": "function_name",
        "parameters": {}
    }
}`

// Session holds the context of one patient conversation. Each live
// connection owns exactly one Session; nothing here is shared between
// connections, so concurrent chats cannot cross-talk.
type Session struct {
	PatientID      string
	Room           string
	DepartmentHint string

	prior []api.Message
}

// NewSession creates a session for a patient connection.
func NewSession(patientID, room string) *Session {
	return &Session{PatientID: patientID, Room: room}
}

// BuildRequest returns the ordered message sequence for one model call:
// system prompt, prior turns, then the new user message. No side
// effects; the turn is recorded only after it completes, via Append.
func (s *Session) BuildRequest(userMessage string) []api.Message {
	messages := make([]api.Message, 0, len(s.prior)+2)
	messages = append(messages, api.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, s.prior...)
	messages = append(messages, api.Message{Role: "user", Content: userMessage})
	return messages
}

// Append records a completed exchange so later turns carry it as
// context.
func (s *Session) Append(userMessage, assistantReply string) {
	s.prior = append(s.prior,
		api.Message{Role: "user", Content: userMessage},
		api.Message{Role: "assistant", Content: assistantReply},
	)
}
