package intent

import "strings"

// escalationSentiments are the moods that force a human handoff
// regardless of intent. Matching is case-insensitive so sentiments
// reported verbatim by the LLM still trigger.
var escalationSentiments = map[Sentiment]struct{}{
	SentimentAngry:      {},
	SentimentFrustrated: {},
	SentimentUpset:      {},
}

// ShouldEscalate reports whether the call should be routed to a human
// agent. It is recomputed from scratch every turn from the turn's
// intent and the session's current sentiment; there is no memory across
// calls.
func ShouldEscalate(in Intent, sentiment Sentiment) bool {
	if in == IntentComplaint || in == IntentTransfer {
		return true
	}

	normalized := Sentiment(strings.ToLower(string(sentiment)))
	_, ok := escalationSentiments[normalized]
	return ok
}
