// Package triage performs the heuristic pre-classification that runs before
// the generative backend is ever consulted. Every message resolves to exactly
// one of three verdicts: casual small talk, off-topic, or a finance query.
// Classification is total and deterministic; no state is kept across calls.
package triage

import (
	"strings"
	"unicode"
)

var greetings = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	"how are you", "how are u", "whats up", "what's up", "sup", "howdy",
	"greetings", "hola", "namaste", "namaskar",
	"how do you do", "nice to meet you", "pleasure to meet you",
}

var casualPhrases = []string{
	"thank you", "thanks", "thank u", "thnks", "thnx", "appreciate",
	"great", "awesome", "cool", "nice", "perfect", "excellent",
	"bye", "goodbye", "see you", "take care", "later",
	"who are you", "what can you do", "help me", "what is your name",
}

var financeKeywords = []string{
	"loan", "emi", "interest", "bank", "credit", "cibil", "score", "mortgage",
	"finance", "financial", "savings", "investment", "insurance", "money", "budget",
	"debt", "eligibility", "document", "rate", "home loan", "personal loan",
	"car loan", "education loan", "repayment", "tenure", "processing fee",
	"mutual fund", "stock", "equity", "fd", "fixed deposit", "tax", "deduction",
	"sbi", "hdfc", "icici", "axis", "kotak", "calculate", "compare", "apply",
	"income", "salary", "expense", "save", "invest", "payment", "account",
	"rupee", "lakh", "crore", "how much", "best bank", "which bank", "should i",
}

// IsCasual reports whether the message is small talk rather than a substantive
// question. A message matches when it contains any known greeting or casual
// phrase, or when it has three or fewer tokens and no digits: short queries
// without numbers ("ok", "cool", "nice") are safe to answer generically
// instead of risking a wasted model invocation.
func IsCasual(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))

	for _, phrase := range greetings {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, phrase := range casualPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	if len(strings.Fields(lower)) <= 3 && !containsDigit(lower) {
		return true
	}

	return false
}

// IsFinanceRelated reports whether the message mentions anything from the
// fixed finance vocabulary. Only consulted when IsCasual returned false.
func IsFinanceRelated(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range financeKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// FriendlyReply returns a contextual canned response for casual messages.
func FriendlyReply(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))

	if containsAny(lower, "hello", "hi", "hey", "good morning", "good afternoon", "good evening") {
		return "Hello! I'm CredNest AI, your personal finance assistant!\n\n" +
			"I'm here to help you with:\n" +
			"- **Loans** - Personal, Home, Car, Education\n" +
			"- **CIBIL Score** - Check, improve, understand\n" +
			"- **Banking** - Compare rates, eligibility\n" +
			"- **EMI Calculations** - Plan your finances\n" +
			"- **Documentation** - Know what you need\n\n" +
			"What would you like to know about today?"
	}

	if strings.Contains(lower, "how are you") || strings.Contains(lower, "how are u") {
		return "I'm doing great, thank you for asking!\n\n" +
			"I'm always excited to help people with their financial questions! " +
			"Whether it's finding the best loan rates, understanding CIBIL scores, " +
			"or planning your finances, I'm here for you.\n\n" +
			"What financial question can I help you with today?"
	}

	if containsAny(lower, "thank you", "thanks", "thank u", "thnx", "appreciate") {
		return "You're very welcome!\n\n" +
			"I'm glad I could help! If you have any more questions about " +
			"loans, banking, CIBIL scores, or anything finance-related, " +
			"feel free to ask anytime. I'm here to help!\n\n" +
			"Is there anything else you'd like to know?"
	}

	if containsAny(lower, "who are you", "what can you do", "what is your name", "introduce yourself") {
		return "I'm **CredNest AI** - your intelligent financial assistant!\n\n" +
			"**What I do:**\n" +
			"- Help you find the best loans across all major Indian banks\n" +
			"- Explain CIBIL scores and how to improve them\n" +
			"- Calculate EMIs and loan eligibility\n" +
			"- Guide you on required documents\n" +
			"- Provide personalized financial advice\n" +
			"- Compare interest rates and loan options\n\n" +
			"**I remember** our conversation, so you can ask follow-up questions!\n\n" +
			"What would you like help with?"
	}

	if containsAny(lower, "bye", "goodbye", "see you", "take care") {
		return "Take care!\n\n" +
			"Remember, I'm always here when you need financial guidance. " +
			"Come back anytime you have questions about loans, banking, or finances!\n\n" +
			"Wishing you financial success!"
	}

	return "I'd love to help you!\n\n" +
		"I specialize in financial topics like:\n" +
		"- **Loans** (personal, home, car, education)\n" +
		"- **CIBIL scores** and credit management\n" +
		"- **Banking** advice and comparisons\n" +
		"- **EMI calculations** and planning\n\n" +
		"Could you please ask me a finance-related question?"
}

// OffTopicReply is the fixed redirect returned for non-finance questions,
// listing what the assistant actually supports.
func OffTopicReply() string {
	return "I appreciate your question! However, I specialize in **financial topics only**.\n\n" +
		"I can help you with:\n" +
		"- **Loans** - Personal, Home, Car, Education\n" +
		"- **CIBIL Scores** - Understanding and improving\n" +
		"- **Banking** - Rates, eligibility, comparisons\n" +
		"- **EMI Calculations** - Planning your payments\n" +
		"- **Financial Documentation** - What you need\n\n" +
		"Could you ask me a finance-related question? I'd love to help!"
}

func containsAny(s string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
