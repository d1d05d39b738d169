package tools

import (
	"context"
	"fmt"
	"math"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// ===================================
// Loan Eligibility Checker Tool
// ===================================

const (
	// Maximum loan is a fixed multiple of monthly income.
	maxIncomeMultiple = 50
	// Flat-rate EMI estimate used only for the affordability ratio. This is a
	// rough 1.5%-of-principal heuristic, intentionally distinct from the
	// amortized figure the EMI calculator produces.
	estimatedEMIRate = 0.015

	minCreditScore  = 600
	goodCreditScore = 700

	maxEMIRatio     = 50.0
	cautionEMIRatio = 40.0
)

// EligibilityAllClear is the single reason entry returned when every check passes.
const EligibilityAllClear = "✓ All basic eligibility criteria met"

type EligibilityInput struct {
	MonthlyIncome  float64 `json:"monthly_income"`
	LoanAmount     float64 `json:"loan_amount"`
	LoanType       string  `json:"loan_type"`
	CreditScore    int     `json:"credit_score,omitempty"`
	EmploymentType string  `json:"employment_type,omitempty"`
	ExistingLoans  bool    `json:"existing_loans,omitempty"`
}

type EligibilityOutput struct {
	Eligible            bool     `json:"eligible"`
	RiskLevel           string   `json:"risk_level"`
	LoanType            string   `json:"loan_type"`
	RequestedAmount     float64  `json:"requested_amount"`
	MaxEligibleAmount   float64  `json:"max_eligible_amount"`
	MonthlyIncome       float64  `json:"monthly_income"`
	CreditScore         int      `json:"credit_score,omitempty"`
	EstimatedMonthlyEMI float64  `json:"estimated_monthly_emi"`
	EMIToIncomeRatio    float64  `json:"emi_to_income_ratio"`
	Reasons             []string `json:"reasons"`
	Suggestions         []string `json:"suggestions"`
	LoanSpecificTips    []string `json:"loan_specific_tips"`
	NextSteps           []string `json:"next_steps"`
}

var loanSpecificTips = map[string][]string{
	"personal":  {"No collateral required", "Quick approval (2-7 days)", "Use for emergencies or consolidation"},
	"home":      {"Requires property as collateral", "Longer tenure (up to 30 years)", "Tax benefits under Section 80C and 24(b)"},
	"car":       {"Vehicle is collateral", "Quick approval (2-5 days)", "Covers up to 90% of vehicle cost"},
	"business":  {"Business plan required", "Collateral usually needed", "Use for working capital or expansion"},
	"education": {"Covers tuition + living expenses", "Moratorium period available", "Some loans have govt subsidy"},
}

// CheckLoanEligibility evaluates all eligibility rules independently rather
// than short-circuiting, so every applicable reason and suggestion surfaces
// together in one verdict.
func CheckLoanEligibility(in *EligibilityInput) (*EligibilityOutput, error) {
	if in.MonthlyIncome <= 0 {
		return nil, fmt.Errorf("monthly_income must be positive, got %v", in.MonthlyIncome)
	}
	if in.LoanAmount <= 0 {
		return nil, fmt.Errorf("loan_amount must be positive, got %v", in.LoanAmount)
	}

	maxEligible := in.MonthlyIncome * maxIncomeMultiple
	estimatedEMI := in.LoanAmount * estimatedEMIRate
	emiRatio := estimatedEMI / in.MonthlyIncome * 100

	eligible := true
	riskLevel := "Low"
	var reasons, suggestions []string

	// Check 1: loan amount vs income.
	if in.LoanAmount > maxEligible {
		eligible = false
		reasons = append(reasons, fmt.Sprintf("Requested ₹%.0f exceeds max eligible ₹%.0f", in.LoanAmount, maxEligible))
		suggestions = append(suggestions, fmt.Sprintf("Consider reducing loan amount to ₹%.0f or below", maxEligible))
	}

	// Check 2: credit score, when provided.
	if in.CreditScore > 0 {
		switch {
		case in.CreditScore < minCreditScore:
			eligible = false
			riskLevel = "High"
			reasons = append(reasons, fmt.Sprintf("Credit score %d is too low (minimum %d required)", in.CreditScore, minCreditScore))
			suggestions = append(suggestions, "Improve credit score before applying - pay bills on time, reduce credit utilization")
		case in.CreditScore < goodCreditScore:
			riskLevel = "Medium"
			suggestions = append(suggestions, fmt.Sprintf("Credit score %d is acceptable but improving to %d+ will get better rates", in.CreditScore, goodCreditScore))
		default:
			suggestions = append(suggestions, fmt.Sprintf("Excellent credit score %d! You qualify for best interest rates", in.CreditScore))
		}
	}

	// Check 3: EMI to income ratio.
	switch {
	case emiRatio > maxEMIRatio:
		eligible = false
		reasons = append(reasons, fmt.Sprintf("EMI would be %.1f%% of income (max allowed: %.0f%%)", emiRatio, maxEMIRatio))
		suggestions = append(suggestions, "Reduce loan amount or extend tenure to lower EMI")
	case emiRatio > cautionEMIRatio:
		if riskLevel == "Low" {
			riskLevel = "Medium"
		}
		suggestions = append(suggestions, fmt.Sprintf("EMI is %.1f%% of income - manageable but leaves little room for savings", emiRatio))
	}

	// Check 4: existing obligations.
	if in.ExistingLoans {
		suggestions = append(suggestions, "Existing loans will be considered - ensure combined EMI stays under 50% of income")
	}

	if eligible {
		reasons = []string{EligibilityAllClear}
	}

	nextSteps := []string{
		"1. Gather required documents (PAN, Aadhaar, income proof)",
		"2. Check with 3-4 banks for best rates",
		"3. Get pre-approval to know exact loan amount",
		"4. Compare processing fees and hidden charges",
		"5. Read loan agreement carefully before signing",
	}
	if !eligible {
		nextSteps = []string{
			"1. Address the eligibility issues mentioned above",
			"2. Improve credit score if needed",
			"3. Reduce loan amount or increase income",
			"4. Consider a co-applicant for better eligibility",
			"5. Consult with a financial advisor",
		}
	}

	return &EligibilityOutput{
		Eligible:            eligible,
		RiskLevel:           riskLevel,
		LoanType:            in.LoanType,
		RequestedAmount:     in.LoanAmount,
		MaxEligibleAmount:   maxEligible,
		MonthlyIncome:       in.MonthlyIncome,
		CreditScore:         in.CreditScore,
		EstimatedMonthlyEMI: round2(estimatedEMI),
		EMIToIncomeRatio:    math.Round(emiRatio*10) / 10,
		Reasons:             reasons,
		Suggestions:         suggestions,
		LoanSpecificTips:    loanSpecificTips[in.LoanType],
		NextSteps:           nextSteps,
	}, nil
}

func createEligibilityTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: "check_loan_eligibility",
			Desc: "Check if user is eligible for a loan based on their financial profile. Use when user asks about loan eligibility, qualification, or whether they can get approved for a loan. Covers personal loans, home loans, car loans, business loans, and education loans.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"monthly_income": {
					Type:     "number",
					Desc:     "User's monthly income in Indian Rupees (INR)",
					Required: true,
				},
				"loan_amount": {
					Type:     "number",
					Desc:     "Desired loan amount in Indian Rupees",
					Required: true,
				},
				"loan_type": {
					Type:     "string",
					Desc:     "Type of loan needed",
					Enum:     []string{"personal", "home", "car", "business", "education"},
					Required: true,
				},
				"credit_score": {
					Type: "number",
					Desc: "CIBIL credit score between 300-900. Higher is better. 750+ is excellent.",
				},
				"employment_type": {
					Type: "string",
					Desc: "Type of employment: salaried (job), self_employed (freelancer/professional), business (owns company)",
					Enum: []string{"salaried", "self_employed", "business"},
				},
				"existing_loans": {
					Type: "boolean",
					Desc: "Whether user has existing loans or EMIs",
				},
			}),
		},
		func(ctx context.Context, in *EligibilityInput) (*EligibilityOutput, error) {
			return CheckLoanEligibility(in)
		},
	)
}

func renderEligibility(out *EligibilityOutput) string {
	verdict := "you are **eligible**"
	if !out.Eligible {
		verdict = "you are **not eligible** yet"
	}
	text := fmt.Sprintf(
		"**Loan Eligibility Check**\n\nBased on a monthly income of ₹%.0f and a requested %s loan of ₹%.0f, %s (risk level: %s).\n\n",
		out.MonthlyIncome, out.LoanType, out.RequestedAmount, verdict, out.RiskLevel,
	)
	text += "Findings:\n"
	for _, r := range out.Reasons {
		text += "- " + r + "\n"
	}
	if len(out.Suggestions) > 0 {
		text += "\nSuggestions:\n"
		for _, s := range out.Suggestions {
			text += "- " + s + "\n"
		}
	}
	return text
}
