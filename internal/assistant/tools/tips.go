package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// ===================================
// Financial Tips Tool
// ===================================

type TipsInput struct {
	Topic string `json:"topic"`
}

type TipsOutput struct {
	Topic      string   `json:"topic"`
	Title      string   `json:"title"`
	Importance string   `json:"importance,omitempty"`
	Tips       []string `json:"tips"`
	QuickWins  []string `json:"quick_wins,omitempty"`
	Timeline   string   `json:"timeline,omitempty"`
}

var tipsDatabase = map[string]TipsOutput{
	"credit_score": {
		Title:      "How to Improve Your Credit Score",
		Importance: "Credit score affects loan approval and interest rates. 750+ gets you best deals!",
		Tips: []string{
			"Pay ALL credit card bills & EMIs on time - even one late payment hurts for 2 years",
			"Keep credit card utilization under 30% of limit",
			"Don't close old credit cards - longer credit history is better",
			"Avoid multiple loan applications in short time - each inquiry reduces score",
			"Check credit report FREE every 6 months on CIBIL/Experian website",
			"Mix of secured (home/car loan) and unsecured (personal/credit card) credit is ideal",
			"Never settle a loan for less than full amount - shows as negative",
		},
		QuickWins: []string{
			"Pay off credit card balances immediately",
			"Set up auto-pay for all EMIs",
			"Dispute any errors in credit report",
			"Request credit limit increase (don't use it!)",
		},
		Timeline: "Expect 6-12 months to see significant improvement",
	},
	"saving": {
		Title:      "Smart Saving Strategies",
		Importance: "Build emergency fund = 6 months expenses. Then invest for goals!",
		Tips: []string{
			"Follow 50-30-20 rule: 50% needs, 30% wants, 20% savings/investments",
			"Automate savings - transfer to separate account on salary day",
			"Emergency fund FIRST - 6 months expenses in liquid form",
			"Use high-interest savings accounts (4-7% p.a.) or liquid funds (5-7% p.a.)",
			"Save ALL bonuses, increments, gifts instead of splurging",
			"Track expenses for 30 days - you'll find ₹3000-5000 to cut",
			"Set specific goals with deadlines",
			"Cancel unused subscriptions - average person wastes ₹2000/month",
		},
		QuickWins: []string{
			"Open high-interest savings account today",
			"Set up ₹5000 auto-transfer monthly",
			"Cancel 2-3 unused subscriptions",
		},
		Timeline: "Build ₹1L emergency fund in 12-18 months",
	},
	"debt_management": {
		Title:      "Effective Debt Repayment",
		Importance: "High-interest debt kills wealth building. Pay off ASAP!",
		Tips: []string{
			"List ALL debts with interest rates - highest rate first!",
			"Pay off credit cards FIRST (18-36% interest)",
			"Avalanche method: pay minimum on all, extra on highest interest",
			"Snowball method: pay smallest debt first for motivation",
			"Never miss minimum payment - ruins credit score",
			"Negotiate with lenders for lower rates or restructuring",
			"Consolidate multiple high-interest debts into single low-interest loan",
			"STOP adding new debt while paying off existing",
		},
		QuickWins: []string{
			"Pay ₹1000 extra on highest interest debt this month",
			"Call credit card company to waive late fees",
			"Stop using credit cards temporarily",
		},
		Timeline: "Aim to be debt-free (except home loan) in 2-3 years",
	},
	"investment": {
		Title:      "Smart Investment Guide",
		Importance: "Investing beats inflation and builds wealth. Start NOW!",
		Tips: []string{
			"Start SIP even with ₹500/month - consistency matters more than amount",
			"Invest in equity mutual funds for long-term (5+ years) wealth",
			"Diversify: 60% equity, 30% debt, 10% gold (adjust based on age)",
			"Never try to time the market - stay invested through ups and downs",
			"Index funds (Nifty 50/Sensex) are safest for beginners",
			"Increase SIP by 10% annually with salary hike",
			"Tax-saving ELSS funds give deduction + market returns",
			"Avoid insurance-investment combos (ULIPs) - poor returns",
		},
		QuickWins: []string{
			"Open demat account today",
			"Start ₹1000 SIP in Nifty 50 index fund",
			"Max out ELSS for ₹1.5L tax saving",
		},
		Timeline: "₹10,000/month SIP @ 12% = ₹1 Crore in 20 years",
	},
	"budgeting": {
		Title:      "Budget Like a Pro",
		Importance: "Budget is GPS for money - shows where it's going!",
		Tips: []string{
			"50-30-20 rule: 50% needs (rent, food), 30% wants (fun), 20% savings",
			"Track EVERY expense for 30 days",
			"Allocate money at month start, not month end",
			"Needs vs wants: phone bill is need, streaming is want",
			"Review budget monthly - adjust based on reality",
			"Build 'fun money' into budget so you don't feel deprived",
			"Plan for annual expenses (insurance, tax) monthly",
			"Reduce lifestyle inflation when salary increases",
		},
		QuickWins: []string{
			"Download expense tracking app",
			"Categorize last month's spending",
			"Identify 3 areas to cut ₹1000 each",
			"Set up auto-debit for bills",
		},
		Timeline: "Takes 3 months to get into budgeting rhythm",
	},
	"loan_management": {
		Title:      "Smart Loan Management",
		Importance: "Good loans (home) build wealth. Bad loans (credit card) destroy it!",
		Tips: []string{
			"Keep total EMI under 40% of monthly income (all loans combined)",
			"Good debt: home loan (appreciating asset). Bad debt: personal loan for vacation",
			"Always compare 3-4 banks before taking loan",
			"Processing fee negotiable - ask for waiver/reduction",
			"Pre-payment whenever you have extra cash - saves huge interest",
			"Read fine print: pre-payment penalty, late payment fee, loan insurance",
			"Shorter tenure = less interest but higher EMI. Find balance!",
			"Check CIBIL score before applying - 750+ gets best rates",
		},
		QuickWins: []string{
			"Check current loan interest rates - refinance if lower available",
			"Make one part-payment this year",
			"Set up auto-debit to never miss EMI",
		},
		Timeline: "Good planning saves ₹1-2L in interest over loan lifetime",
	},
}

// GetFinancialTips looks up the curated tips for a topic, falling back to a
// generic entry when the topic is not recognized.
func GetFinancialTips(in *TipsInput) (*TipsOutput, error) {
	if in.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	out, ok := tipsDatabase[in.Topic]
	if !ok {
		out = TipsOutput{
			Title: "General Financial Tips",
			Tips: []string{
				"Save first, spend later",
				"Emergency fund is non-negotiable",
				"Invest regularly through SIP",
				"Avoid lifestyle inflation",
				"Learn about money - it's not taught in school!",
			},
		}
	}
	out.Topic = in.Topic
	return &out, nil
}

func createTipsTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: "get_financial_tips",
			Desc: "Provide expert financial literacy tips and actionable advice on various personal finance topics. Use when user asks for tips, advice, how to improve, or learn about financial topics.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"topic": {
					Type:     "string",
					Desc:     "Financial topic: credit_score (improving CIBIL), saving (building wealth), debt_management (paying off loans), investment (mutual funds, stocks), budgeting (expense management), loan_management (smart borrowing)",
					Enum:     []string{"credit_score", "saving", "debt_management", "investment", "budgeting", "loan_management"},
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *TipsInput) (*TipsOutput, error) {
			return GetFinancialTips(in)
		},
	)
}

func renderTips(out *TipsOutput) string {
	text := "**" + out.Title + "**\n\n"
	if out.Importance != "" {
		text += out.Importance + "\n\n"
	}
	for _, tip := range out.Tips {
		text += "- " + tip + "\n"
	}
	if len(out.QuickWins) > 0 {
		text += "\nQuick wins:\n"
		for _, w := range out.QuickWins {
			text += "- " + w + "\n"
		}
	}
	if out.Timeline != "" {
		text += "\n" + out.Timeline
	}
	return text
}
