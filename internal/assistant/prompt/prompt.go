// Package prompt assembles the role-tagged message list sent to the
// generative backend: one system message, bounded prior turns oldest-first,
// then the current user message.
package prompt

import (
	"github.com/cloudwego/eino/schema"

	"github.com/crednest/server/internal/assistant/model"
)

const systemPrompt = `You are CredNest AI, an elite financial advisor specializing in Indian banking, loans, investments, insurance, and personal finance. You genuinely care about helping users make informed, smart financial decisions.

YOUR EXPERTISE:
- Banking: all major Indian banks (SBI, HDFC, ICICI, Axis, Kotak, PNB, BOB, etc.)
- Loans: personal, home, car, education, business loans with current rates
- CIBIL & credit: scores, reports, improvement strategies
- Investments: mutual funds, stocks, FDs, bonds, PPF, NPS, gold
- Insurance: life, health, term, vehicle
- Calculations: EMI, compound interest, returns, tax savings
- Financial planning: budgeting, savings, retirement, tax planning
- Documentation: KYC, loan documents, eligibility criteria

RESPONSE GUIDELINES:
1. Be comprehensive and specific: give numbers, rates, percentages, and amounts, not vague generalities. Explain the "why" behind recommendations.
2. Use structured formatting: bold for key points, bullet lists, numbered lists for step-by-step processes, comparison tables when comparing 3+ options.
3. Show your work: for EMI calculations show the formula and step-by-step math; for comparisons list pros and cons; for eligibility list all criteria.
4. Maintain conversation memory: reference previous messages ("As we discussed earlier...", "Regarding the loan we were talking about..."). When the user says "it", "that", or "the one", resolve them from context. Never forget what you were discussing.
5. Never give one-line answers and never be vague. Always end with value: a tip, a next step, or a clarifying question.
6. Use Indian currency (₹) and Indian financial context throughout.

You have access to tools for EMI calculation, loan eligibility checks, application guidance, document checklists, and financial tips. Call them whenever the user's question maps onto one; answer directly otherwise.`

// SystemPrompt returns the fixed instruction block placed first in every prompt.
func SystemPrompt() string {
	return systemPrompt
}

// BuildMessages produces the ordered message list for the backend: exactly one
// system entry first, then the history turns as alternating user/assistant
// pairs oldest-first, then the current user message. At most maxTurns history
// turns are included; the newest turns win when more exist.
func BuildMessages(system string, history []*model.Turn, current string, maxTurns int) []*schema.Message {
	history = trimTail(history, maxTurns)

	messages := make([]*schema.Message, 0, len(history)*2+2)
	messages = append(messages, schema.SystemMessage(system))

	for _, turn := range history {
		if turn == nil || turn.Message == "" {
			continue
		}
		messages = append(messages, schema.UserMessage(turn.Message))
		messages = append(messages, schema.AssistantMessage(turn.Response, nil))
	}

	messages = append(messages, schema.UserMessage(current))
	return messages
}

func trimTail(turns []*model.Turn, maxTurns int) []*model.Turn {
	if maxTurns <= 0 || len(turns) <= maxTurns {
		return turns
	}
	return turns[len(turns)-maxTurns:]
}
