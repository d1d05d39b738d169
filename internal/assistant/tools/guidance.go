package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// ===================================
// Application Guidance Tool
// ===================================

type GuidanceInput struct {
	LoanType       string `json:"loan_type"`
	EmploymentType string `json:"employment_type,omitempty"`
}

type Timeline struct {
	Approval     string `json:"approval"`
	Disbursement string `json:"disbursement"`
	Total        string `json:"total"`
}

type ApplicationStep struct {
	Step    int    `json:"step"`
	Title   string `json:"title"`
	Details string `json:"details"`
	Time    string `json:"time"`
}

type GuidanceOutput struct {
	LoanType        string            `json:"loan_type"`
	EmploymentType  string            `json:"employment_type,omitempty"`
	Timeline        Timeline          `json:"timeline"`
	Steps           []ApplicationStep `json:"steps"`
	TotalSteps      int               `json:"total_steps"`
	ProTips         []string          `json:"pro_tips"`
	CommonMistakes  []string          `json:"common_mistakes"`
	QuickWins       []string          `json:"quick_wins"`
	NegotiationTips []string          `json:"negotiation_tips"`
}

var applicationTimelines = map[string]Timeline{
	"personal":  {Approval: "2-7 days", Disbursement: "24-48 hours after approval", Total: "3-10 days"},
	"home":      {Approval: "2-4 weeks", Disbursement: "In tranches over 6-24 months", Total: "1-3 months for sanction"},
	"car":       {Approval: "2-5 days", Disbursement: "Same day as approval", Total: "3-7 days"},
	"education": {Approval: "1-2 weeks", Disbursement: "Directly to institution", Total: "2-3 weeks"},
	"business":  {Approval: "2-3 weeks", Disbursement: "7-10 days after approval", Total: "3-4 weeks"},
}

// Only the personal flow is spelled out step by step; other loan types fall
// back to it, matching the coverage the guidance content actually has.
var applicationSteps = map[string][]ApplicationStep{
	"personal": {
		{Step: 1, Title: "Check Your Credit Score", Details: "Free on CIBIL.com - 750+ is ideal for best rates", Time: "5 minutes"},
		{Step: 2, Title: "Calculate Affordability", Details: "EMI should be <40% of monthly income. Use online calculators", Time: "10 minutes"},
		{Step: 3, Title: "Compare Banks", Details: "Check rates from SBI, HDFC, ICICI, Kotak, Axis (minimum 3 banks)", Time: "1-2 hours"},
		{Step: 4, Title: "Check Eligibility", Details: "Use bank's online eligibility calculator - saves rejection", Time: "15 minutes"},
		{Step: 5, Title: "Gather Documents", Details: "PAN, Aadhaar, salary slips (3 months), bank statements (6 months)", Time: "1-2 hours"},
		{Step: 6, Title: "Apply Online/Offline", Details: "Online is faster but branch visit may get better negotiation", Time: "30 minutes"},
		{Step: 7, Title: "Bank Verification", Details: "Bank verifies employment (HR call), residence (sometimes field visit)", Time: "2-3 days"},
		{Step: 8, Title: "Credit Appraisal", Details: "Bank checks CIBIL, repayment capacity, existing loans", Time: "2-4 days"},
		{Step: 9, Title: "Loan Approval", Details: "Sanction letter issued with final approved amount and rate", Time: "Same day"},
		{Step: 10, Title: "Agreement Signing", Details: "Read loan agreement, ECS mandate, insurance (optional but pushed)", Time: "1 hour"},
		{Step: 11, Title: "Disbursement", Details: "Amount credited to your bank account directly", Time: "24-48 hours"},
	},
}

var applicationProTips = map[string][]string{
	"personal": {
		"Apply to bank where you have salary account - better chances + lower rate",
		"Pre-approved offers from existing bank are fastest",
		"Salaried from top companies (MNCs, PSUs, Govt) get preferential rates",
		"Co-applicant (spouse) improves eligibility up to 100%",
		"Avoid multiple applications in one month - each hurts CIBIL score by 5-10 points",
	},
	"home": {
		"Get pre-approval BEFORE selecting property - avoids last-minute rejection",
		"Bank sends valuer to assess property - ensure all paperwork is ready",
		"Processing fee is 0.5-1% of loan - negotiate for waiver/reduction",
		"Many banks fund only 75-80% of property value - arrange 20-25% down payment",
		"Joint home loan with spouse doubles eligibility + both get tax benefits",
	},
}

var applicationCommonMistakes = []string{
	"Applying to 5+ banks simultaneously - looks desperate, hurts credit score",
	"Hiding existing loans - bank will find out in CIBIL check",
	"Providing wrong employment/income info - leads to instant rejection",
	"Not reading loan agreement - hidden charges and clauses bite later",
	"Taking loan insurance from bank - 2-3x more expensive than term insurance",
	"Not comparing processing fees - can vary from 0% to 2%",
}

// GetApplicationGuidance returns the step-by-step application guide for a
// loan type. Unrecognized loan types fall back to the personal-loan guide.
func GetApplicationGuidance(in *GuidanceInput) (*GuidanceOutput, error) {
	if in.LoanType == "" {
		return nil, fmt.Errorf("loan_type is required")
	}

	timeline, ok := applicationTimelines[in.LoanType]
	if !ok {
		timeline = applicationTimelines["personal"]
	}
	steps, ok := applicationSteps[in.LoanType]
	if !ok {
		steps = applicationSteps["personal"]
	}
	proTips, ok := applicationProTips[in.LoanType]
	if !ok {
		proTips = applicationProTips["personal"]
	}

	return &GuidanceOutput{
		LoanType:       in.LoanType,
		EmploymentType: in.EmploymentType,
		Timeline:       timeline,
		Steps:          steps,
		TotalSteps:     len(steps),
		ProTips:        proTips,
		CommonMistakes: applicationCommonMistakes,
		QuickWins: []string{
			"Check credit score today - free and instant",
			"Use online EMI calculator to know affordable amount",
			"Get salary slips and bank statements ready",
			"Compare 3 banks before applying",
			"Read online reviews of bank's loan process",
		},
		NegotiationTips: []string{
			"Ask for processing fee waiver (works for good CIBIL scores)",
			"Negotiate interest rate - 0.25-0.5% reduction possible",
			"Request for waiver of prepayment charges",
			"Compare and show competitor's offer - banks may match",
			"Larger loan amount gives better bargaining power",
		},
	}, nil
}

func createGuidanceTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: "get_application_guidance",
			Desc: "Provide step-by-step loan application process guidance including timeline, documents, and tips. Use when user asks how to apply for loan, application steps, process, or timeline.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"loan_type": {
					Type:     "string",
					Desc:     "Type of loan",
					Enum:     []string{"personal", "home", "car", "business", "education"},
					Required: true,
				},
				"employment_type": {
					Type: "string",
					Desc: "Employment type for personalized guidance",
					Enum: []string{"salaried", "self_employed", "business"},
				},
			}),
		},
		func(ctx context.Context, in *GuidanceInput) (*GuidanceOutput, error) {
			return GetApplicationGuidance(in)
		},
	)
}

func renderGuidance(out *GuidanceOutput) string {
	text := fmt.Sprintf(
		"**How to apply for a %s loan**\n\nTypical timeline: approval in %s, disbursement %s (total %s).\n\nSteps:\n",
		out.LoanType, out.Timeline.Approval, out.Timeline.Disbursement, out.Timeline.Total,
	)
	for _, s := range out.Steps {
		text += fmt.Sprintf("%d. **%s** - %s (%s)\n", s.Step, s.Title, s.Details, s.Time)
	}
	text += "\nPro tips:\n"
	for _, tip := range out.ProTips {
		text += "- " + tip + "\n"
	}
	return text
}
