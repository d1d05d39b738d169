package triage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCasual(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"plain greeting", "Hi there!", true},
		{"greeting with punctuation", "Hello!!!", true},
		{"how are you", "how are u doing", true},
		{"thanks", "Thanks a lot for the detailed answer, that cleared everything up", true},
		{"identity question", "who are you exactly", true},
		{"goodbye", "ok bye", true},
		{"short without digits", "hmm not sure", true},
		{"short with digits stays substantive", "5 lakh possible?", false},
		{"finance question", "What documents do I need for a home loan application?", false},
		{"off topic question", "Can you recommend a good movie for tonight at 9pm?", false},
		// Substring matching is deliberately loose: "history" contains "hi".
		{"greeting substring inside a word", "Can you tell me about the history of Rome?", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCasual(tt.message))
		})
	}
}

func TestIsFinanceRelated(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"loan query", "I want to apply for a personal loan of 5 lakhs", true},
		{"emi query", "what will my EMI be for 10 years", true},
		{"cibil query", "my CIBIL dropped below 700, what happened", true},
		{"bank name", "is HDFC better for this amount of 500000", true},
		{"weather", "What's the weather today in Mumbai city 400001", false},
		{"cooking", "Give me a recipe for biryani serving 4 people tonight", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFinanceRelated(tt.message))
		})
	}
}

func TestFriendlyReply_Contextual(t *testing.T) {
	assert.Contains(t, FriendlyReply("Hello!"), "Hello! I'm CredNest AI")
	assert.Contains(t, FriendlyReply("how are you?"), "I'm doing great")
	assert.Contains(t, FriendlyReply("thanks a ton"), "You're very welcome")
	assert.Contains(t, FriendlyReply("who are you?"), "intelligent financial assistant")
	assert.Contains(t, FriendlyReply("bye for now"), "Take care")

	// Anything else gets the generic nudge towards finance topics.
	assert.Contains(t, FriendlyReply("hmm okay"), "finance-related question")
}

func TestFriendlyReply_Deterministic(t *testing.T) {
	assert.Equal(t, FriendlyReply("Hi there"), FriendlyReply("Hi there"))
}

func TestOffTopicReply(t *testing.T) {
	reply := OffTopicReply()
	assert.Contains(t, reply, "financial topics only")
	assert.True(t, strings.Contains(reply, "Loans"))
}
