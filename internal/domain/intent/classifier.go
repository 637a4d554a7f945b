package intent

import "strings"

// classifierOrder fixes the tie-break order for equally scored intents:
// the first intent in this list wins. Keyword tables are keyed off this
// order so classification stays deterministic.
var classifierOrder = []Intent{
	IntentBusinessHours,
	IntentAppointmentBooking,
	IntentJobInquiry,
	IntentComplaint,
	IntentFAQ,
	IntentTransfer,
	IntentGreeting,
	IntentGoodbye,
}

var defaultKeywords = map[Intent][]string{
	IntentBusinessHours:      {"hours", "open", "close", "when", "time", "available"},
	IntentAppointmentBooking: {"appointment", "schedule", "book", "reserve", "meeting"},
	IntentJobInquiry:         {"job", "career", "position", "hiring", "apply", "employment"},
	IntentComplaint:          {"complaint", "problem", "issue", "wrong", "bad", "angry", "upset"},
	IntentFAQ:                {"what", "how", "why", "where", "question", "tell me"},
	IntentTransfer:           {"human", "agent", "person", "speak to", "transfer"},
	IntentGreeting:           {"hello", "hi", "hey", "good morning", "good afternoon"},
	IntentGoodbye:            {"bye", "goodbye", "thanks", "thank you", "see you"},
}

// fullConfidenceMatches is the number of distinct keyword matches that
// saturates the confidence score at 1.0.
const fullConfidenceMatches = 3.0

// Classifier maps free text to an intent via keyword scoring. The
// keyword table is read-only after construction, so a single Classifier
// is safe to share across concurrent turns.
type Classifier struct {
	keywords map[Intent][]string
}

// NewClassifier returns a classifier with the default keyword table.
func NewClassifier() *Classifier {
	return &Classifier{keywords: defaultKeywords}
}

// Classify scores the text against every intent's keyword set and
// returns the best match. The score counts distinct keyword types found
// as substrings; repeated occurrences of the same keyword count once.
// Equal scores resolve to the earliest intent in classifierOrder.
func (c *Classifier) Classify(text string) Result {
	lower := strings.ToLower(text)

	best := IntentUnknown
	bestScore := 0
	for _, in := range classifierOrder {
		score := 0
		for _, kw := range c.keywords[in] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = in
			bestScore = score
		}
	}

	if bestScore == 0 {
		return Result{
			Intent:                IntentUnknown,
			Confidence:            0.0,
			RequiresClarification: true,
		}
	}

	confidence := float64(bestScore) / fullConfidenceMatches
	if confidence > 1.0 {
		confidence = 1.0
	}

	return Result{
		Intent:                best,
		Confidence:            confidence,
		RequiresClarification: confidence < 0.5,
	}
}
