// Package llm implements the assistant responder on top of the OpenAI
// chat completions API.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"voxassist/call-api/internal/config"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/intent"
	"voxassist/call-api/internal/utils/platformerrors"
)

// defaultSystemPrompt is used when no prompt file is configured or the
// configured file cannot be read.
const defaultSystemPrompt = `You are VoxAssist AI, a polite and professional call support agent.
Your goals:
- Answer clearly and concisely
- Be helpful and empathetic
- Ask follow-up questions if needed
- Escalate to a human if unsure or if the user is upset
- Never hallucinate or make up information
- Use tools when required to fetch real data

Keep responses brief and natural for voice conversation.`

// maxReplyTokens keeps responses short enough to speak.
const maxReplyTokens = 200

// OpenAIResponder generates replies and advanced intent classifications
// through an OpenAI-compatible endpoint.
type OpenAIResponder struct {
	client       *openai.Client
	model        string
	systemPrompt string
	log          zerolog.Logger
}

var _ call.Responder = (*OpenAIResponder)(nil)

// NewOpenAIResponder builds a responder from the service configuration.
func NewOpenAIResponder(cfg *config.Config, log zerolog.Logger) *OpenAIResponder {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	l := log.With().Str("component", "openai-responder").Logger()

	prompt := defaultSystemPrompt
	if cfg.PromptFile != "" {
		if data, err := os.ReadFile(cfg.PromptFile); err == nil {
			prompt = string(data)
		} else {
			l.Warn().Err(err).Str("path", cfg.PromptFile).Msg("prompt file unavailable, using default")
		}
	}

	return &OpenAIResponder{
		client:       openai.NewClientWithConfig(clientCfg),
		model:        cfg.OpenAIModel,
		systemPrompt: prompt,
		log:          l,
	}
}

func (r *OpenAIResponder) Respond(ctx context.Context, userText string, history []call.Message, callCtx map[string]any, tools []call.ToolDefinition) (*call.ResponderReply, error) {
	messages := r.buildMessages(userText, history, callCtx)

	req := openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   maxReplyTokens,
	}
	if len(tools) > 0 {
		req.Tools = convertTools(tools)
	}

	resp, err := r.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, wrapUpstream(ctx, "chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0].Message
	reply := &call.ResponderReply{Text: choice.Content}
	if len(choice.ToolCalls) > 0 {
		tc := choice.ToolCalls[0]
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("decode tool arguments for %s: %w", tc.Function.Name, err)
			}
		}
		reply.ToolRequest = &call.ToolRequest{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		}
	}
	return reply, nil
}

func (r *OpenAIResponder) RespondWithToolResult(ctx context.Context, userText string, history []call.Message, toolReq *call.ToolRequest, result map[string]any) (*call.ResponderReply, error) {
	messages := r.buildMessages(userText, history, nil)

	argsJSON, err := json.Marshal(toolReq.Arguments)
	if err != nil {
		return nil, fmt.Errorf("encode tool arguments: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}

	messages = append(messages,
		openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleAssistant,
			ToolCalls: []openai.ToolCall{{
				ID:   toolReq.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      toolReq.Name,
					Arguments: string(argsJSON),
				},
			}},
		},
		openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			ToolCallID: toolReq.ID,
			Content:    string(resultJSON),
		},
	)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   maxReplyTokens,
	})
	if err != nil {
		return nil, wrapUpstream(ctx, "chat completion with tool result", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	return &call.ResponderReply{Text: resp.Choices[0].Message.Content}, nil
}

func (r *OpenAIResponder) ClassifyAdvanced(ctx context.Context, text string) (*intent.AdvancedResult, error) {
	prompt := fmt.Sprintf(`Analyze this user message and determine the intent.

Message: %q

Respond with JSON:
{
    "intent": "business_hours|appointment_booking|job_inquiry|complaint|faq|transfer|unknown",
    "confidence": 0.0-1.0,
    "entities": {},
    "sentiment": "positive|neutral|negative|angry|frustrated|upset"
}`, text)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an intent classification system. Respond only with valid JSON.",
			},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, wrapUpstream(ctx, "classify intent", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("classify intent returned no choices")
	}

	var parsed struct {
		Intent     string         `json:"intent"`
		Confidence float64        `json:"confidence"`
		Entities   map[string]any `json:"entities"`
		Sentiment  string         `json:"sentiment"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}

	return &intent.AdvancedResult{
		Intent:     intent.Intent(parsed.Intent),
		Confidence: parsed.Confidence,
		Entities:   parsed.Entities,
		Sentiment:  intent.Sentiment(parsed.Sentiment),
	}, nil
}

func (r *OpenAIResponder) buildMessages(userText string, history []call.Message, callCtx map[string]any) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: r.systemPrompt},
	}

	if len(callCtx) > 0 {
		if ctxJSON, err := json.Marshal(callCtx); err == nil {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Call context: " + string(ctxJSON),
			})
		}
	}

	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Speaker == call.SpeakerAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Text})
	}

	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})
}

// wrapUpstream types a completion failure so handlers surfacing it can
// map it to 502/504 instead of a generic 500.
func wrapUpstream(ctx context.Context, op string, err error) error {
	errType := platformerrors.ErrorTypeExternal
	if errors.Is(err, context.DeadlineExceeded) {
		errType = platformerrors.ErrorTypeTimeout
	}
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, errType, op+" failed", err)
}

func convertTools(defs []call.ToolDefinition) []openai.Tool {
	tools := make([]openai.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return tools
}
