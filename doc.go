// Package callapi implements the call-api service which provides
// AI-assisted customer support call orchestration.
//
// The service provides:
//   - Call session lifecycle management (start, get, list, end)
//   - Per-turn processing: intent classification, escalation checks and
//     AI response generation with tool calling
//   - Handoff of escalated calls to human agents
//   - FAQ knowledge-base search and management
//   - Speech-to-text and text-to-speech endpoints plus a WebSocket
//     streaming surface
package callapi
