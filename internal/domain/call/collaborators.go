package call

import (
	"context"

	"voxassist/call-api/internal/domain/intent"
)

// ToolDefinition describes a callable tool offered to the responder.
// Parameters follows JSON Schema conventions.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolRequest is the responder asking for a tool to be executed before
// it can finish its reply.
type ToolRequest struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// ResponderReply is one completion from the language-model responder.
type ResponderReply struct {
	Text        string
	Sentiment   intent.Sentiment
	ToolRequest *ToolRequest
}

// Responder generates assistant replies. Implementations wrap a remote
// LLM API; every call must respect the context deadline.
type Responder interface {
	// Respond produces a reply to userText given the ordered
	// conversation history. It may return a ToolRequest instead of
	// final text.
	Respond(ctx context.Context, userText string, history []Message, callCtx map[string]any, tools []ToolDefinition) (*ResponderReply, error)

	// RespondWithToolResult finishes a reply after a requested tool
	// has been executed.
	RespondWithToolResult(ctx context.Context, userText string, history []Message, req *ToolRequest, result map[string]any) (*ResponderReply, error)

	// ClassifyAdvanced is the higher-fidelity intent path. Callers
	// must tolerate failure and fall back to keyword classification.
	ClassifyAdvanced(ctx context.Context, text string) (*intent.AdvancedResult, error)
}

// ToolExecutor dispatches named tool calls requested by the responder.
type ToolExecutor interface {
	Definitions() []ToolDefinition
	Execute(ctx context.Context, name string, args map[string]any) (map[string]any, error)
}

// Transcription is the outcome of a speech-to-text call.
type Transcription struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// Transcriber converts caller audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (*Transcription, error)
}

// Speech is synthesized audio for an assistant reply.
type Speech struct {
	Audio  []byte `json:"-"`
	Format string `json:"format"`
}

// Synthesizer converts assistant text to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, language string) (*Speech, error)
}

// Handoff is the result of routing a call toward a human agent.
type Handoff struct {
	TransferID           string
	AgentID              string
	AgentName            string
	EstimatedWaitSeconds int
}

// HandoffRequester finds a human agent for an escalated call. A nil
// error with a populated Handoff means an agent accepted the call.
type HandoffRequester interface {
	RequestHandoff(ctx context.Context, callID, reason, priority string) (*Handoff, error)
}

// Archive receives finished call snapshots and transcript entries.
// Implementations are best-effort from the core's point of view.
type Archive interface {
	SaveCall(ctx context.Context, snapshot *Session) error
	SaveMessage(ctx context.Context, callID string, msg Message) error
	GetCall(ctx context.Context, callID string) (*Session, error)
}
