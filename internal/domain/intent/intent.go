// Package intent classifies caller utterances and decides when a call
// should be handed to a human agent.
package intent

// Intent is a closed set of caller intents the assistant understands.
type Intent string

const (
	IntentBusinessHours      Intent = "business_hours"
	IntentAppointmentBooking Intent = "appointment_booking"
	IntentJobInquiry         Intent = "job_inquiry"
	IntentComplaint          Intent = "complaint"
	IntentFAQ                Intent = "faq"
	IntentTransfer           Intent = "transfer"
	IntentGreeting           Intent = "greeting"
	IntentGoodbye            Intent = "goodbye"
	IntentUnknown            Intent = "unknown"
)

// Sentiment is the detected mood of the caller. The empty value means
// no sentiment has been detected yet.
type Sentiment string

const (
	SentimentPositive   Sentiment = "positive"
	SentimentNeutral    Sentiment = "neutral"
	SentimentNegative   Sentiment = "negative"
	SentimentAngry      Sentiment = "angry"
	SentimentFrustrated Sentiment = "frustrated"
	SentimentUpset      Sentiment = "upset"
)

// Result is the outcome of a single classification.
type Result struct {
	Intent                Intent  `json:"intent"`
	Confidence            float64 `json:"confidence"`
	RequiresClarification bool    `json:"requires_clarification"`
}

// AdvancedResult is the richer classification returned by the LLM
// fallback path. Entities and Sentiment are best-effort.
type AdvancedResult struct {
	Intent     Intent         `json:"intent"`
	Confidence float64        `json:"confidence"`
	Entities   map[string]any `json:"entities"`
	Sentiment  Sentiment      `json:"sentiment"`
}
