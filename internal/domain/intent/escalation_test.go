package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxassist/call-api/internal/domain/intent"
)

func TestShouldEscalate(t *testing.T) {
	tests := []struct {
		name      string
		intent    intent.Intent
		sentiment intent.Sentiment
		want      bool
	}{
		{"complaint escalates regardless of sentiment", intent.IntentComplaint, intent.SentimentPositive, true},
		{"transfer escalates regardless of sentiment", intent.IntentTransfer, intent.SentimentNeutral, true},
		{"faq with positive sentiment does not escalate", intent.IntentFAQ, intent.SentimentPositive, false},
		{"faq with angry sentiment escalates", intent.IntentFAQ, intent.SentimentAngry, true},
		{"frustrated sentiment escalates", intent.IntentBusinessHours, intent.SentimentFrustrated, true},
		{"upset sentiment escalates", intent.IntentGreeting, intent.SentimentUpset, true},
		{"negative sentiment alone does not escalate", intent.IntentFAQ, intent.SentimentNegative, false},
		{"unknown intent with neutral sentiment does not escalate", intent.IntentUnknown, intent.SentimentNeutral, false},
		{"sentiment matching is case insensitive", intent.IntentFAQ, intent.Sentiment("Angry"), true},
		{"empty sentiment does not escalate", intent.IntentGoodbye, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intent.ShouldEscalate(tt.intent, tt.sentiment))
		})
	}
}
