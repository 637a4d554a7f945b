package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/infrastructure/store"
	"voxassist/call-api/internal/interfaces/httpserver/requests"
)

// streamReply is one outbound frame on the call stream.
type streamReply struct {
	Type       string    `json:"type"`
	CallID     string    `json:"call_id,omitempty"`
	Text       string    `json:"text,omitempty"`
	Intent     string    `json:"intent,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	Escalate   bool      `json:"escalate,omitempty"`
	ToolUsed   string    `json:"tool_used,omitempty"`
	Audio      string    `json:"audio,omitempty"`
	Message    string    `json:"message,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// StreamHandler drives turns over a WebSocket connection. Each inbound
// frame is one caller utterance; frames on one socket are processed
// sequentially.
type StreamHandler struct {
	orchestrator *call.Orchestrator
	voice        *VoiceHandler
	upgrader     websocket.Upgrader
	log          zerolog.Logger
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(orchestrator *call.Orchestrator, voice *VoiceHandler, log zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		orchestrator: orchestrator,
		voice:        voice,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log.With().Str("component", "call-stream").Logger(),
	}
}

// Handle upgrades the request and processes turn frames until the
// client disconnects or the call leaves the registry.
func (h *StreamHandler) Handle(c *gin.Context) {
	callID := c.Param("id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("call_id", callID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := h.log.With().Str("call_id", callID).Logger()
	log.Info().Msg("call stream opened")

	for {
		var msg requests.StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("call stream read failed")
			}
			return
		}

		text := msg.Text
		if text == "" && msg.Audio != "" {
			text, err = h.transcribeFrame(c, &msg)
			if err != nil {
				h.writeError(conn, "could not transcribe audio")
				continue
			}
		}
		if text == "" {
			h.writeError(conn, "frame needs text or audio")
			continue
		}

		turn, err := h.orchestrator.HandleTurn(c.Request.Context(), callID, text)
		if err != nil {
			h.writeError(conn, turnErrorMessage(err))
			if errors.Is(err, store.ErrCallNotFound) || errors.Is(err, call.ErrCallNotActive) {
				return
			}
			continue
		}

		reply := &streamReply{
			Type:       "response",
			CallID:     turn.CallID,
			Text:       turn.Reply,
			Intent:     string(turn.Intent),
			Confidence: turn.Confidence,
			Escalate:   turn.Escalate,
			ToolUsed:   turn.ToolUsed,
			Timestamp:  time.Now(),
		}
		if msg.Speak && h.voice != nil {
			if speech, err := h.voice.Synthesize(c.Request.Context(), turn.Reply, "", msg.Language); err == nil {
				reply.Audio = base64.StdEncoding.EncodeToString(speech.Audio)
			} else {
				log.Warn().Err(err).Msg("reply synthesis failed")
			}
		}

		if err := conn.WriteJSON(reply); err != nil {
			log.Warn().Err(err).Msg("call stream write failed")
			return
		}
	}
}

func (h *StreamHandler) transcribeFrame(c *gin.Context, msg *requests.StreamMessage) (string, error) {
	if h.voice == nil {
		return "", errors.New("transcription unavailable")
	}
	audio, err := base64.StdEncoding.DecodeString(msg.Audio)
	if err != nil {
		return "", err
	}
	transcription, err := h.voice.Transcribe(c.Request.Context(), audio, msg.Language)
	if err != nil {
		return "", err
	}
	return transcription.Text, nil
}

func (h *StreamHandler) writeError(conn *websocket.Conn, message string) {
	_ = conn.WriteJSON(&streamReply{
		Type:      "error",
		Message:   message,
		Timestamp: time.Now(),
	})
}

func turnErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrCallNotFound):
		return "call not found"
	case errors.Is(err, call.ErrCallNotActive):
		return "call is no longer active"
	default:
		return "turn processing failed"
	}
}
