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
// EMI Calculator Tool
// ===================================

type EMIInput struct {
	LoanAmount   float64 `json:"loan_amount"`
	InterestRate float64 `json:"interest_rate"`
	TenureMonths int     `json:"tenure_months"`
}

type YearRow struct {
	Year           int     `json:"year"`
	OpeningBalance float64 `json:"opening_balance"`
	PrincipalPaid  float64 `json:"principal_paid"`
	InterestPaid   float64 `json:"interest_paid"`
	TotalPaid      float64 `json:"total_paid"`
	ClosingBalance float64 `json:"closing_balance"`
}

type EMIOutput struct {
	LoanAmount         float64   `json:"loan_amount"`
	InterestRate       float64   `json:"interest_rate"`
	TenureMonths       int       `json:"tenure_months"`
	TenureYears        float64   `json:"tenure_years"`
	MonthlyEMI         float64   `json:"monthly_emi"`
	TotalAmountPayable float64   `json:"total_amount_payable"`
	TotalInterest      float64   `json:"total_interest"`
	InterestPercentage float64   `json:"interest_percentage"`
	YearlyBreakdown    []YearRow `json:"yearly_breakdown"`
	Tips               []string  `json:"tips"`
}

// CalculateEMI computes the equated monthly installment with the standard
// amortization formula, degrading to simple division when the rate is zero.
// The yearly breakdown iterates monthly balances within each 12-month band;
// a tenure that is not a multiple of 12 gets a final partial-year row.
func CalculateEMI(in *EMIInput) (*EMIOutput, error) {
	if in.LoanAmount <= 0 {
		return nil, fmt.Errorf("loan_amount must be positive, got %v", in.LoanAmount)
	}
	if in.InterestRate < 0 {
		return nil, fmt.Errorf("interest_rate must not be negative, got %v", in.InterestRate)
	}
	if in.TenureMonths < 1 {
		return nil, fmt.Errorf("tenure_months must be at least 1, got %d", in.TenureMonths)
	}

	monthlyRate := in.InterestRate / 12 / 100

	var emi float64
	if monthlyRate == 0 {
		emi = in.LoanAmount / float64(in.TenureMonths)
	} else {
		pow := math.Pow(1+monthlyRate, float64(in.TenureMonths))
		emi = in.LoanAmount * monthlyRate * pow / (pow - 1)
	}

	totalAmount := emi * float64(in.TenureMonths)
	totalInterest := totalAmount - in.LoanAmount

	var breakdown []YearRow
	remaining := in.LoanAmount
	for year := 1; ; year++ {
		startMonth := (year-1)*12 + 1
		if startMonth > in.TenureMonths {
			break
		}
		endMonth := year * 12
		if endMonth > in.TenureMonths {
			endMonth = in.TenureMonths
		}

		var yearInterest, yearPrincipal float64
		for month := startMonth; month <= endMonth; month++ {
			monthInterest := remaining * monthlyRate
			monthPrincipal := emi - monthInterest
			yearInterest += monthInterest
			yearPrincipal += monthPrincipal
			remaining -= monthPrincipal
		}

		breakdown = append(breakdown, YearRow{
			Year:           year,
			OpeningBalance: round2(remaining + yearPrincipal),
			PrincipalPaid:  round2(yearPrincipal),
			InterestPaid:   round2(yearInterest),
			TotalPaid:      round2(yearPrincipal + yearInterest),
			ClosingBalance: round2(math.Max(0, remaining)),
		})
	}

	return &EMIOutput{
		LoanAmount:         round2(in.LoanAmount),
		InterestRate:       in.InterestRate,
		TenureMonths:       in.TenureMonths,
		TenureYears:        math.Round(float64(in.TenureMonths)/12*10) / 10,
		MonthlyEMI:         round2(emi),
		TotalAmountPayable: round2(totalAmount),
		TotalInterest:      round2(totalInterest),
		InterestPercentage: math.Round(totalInterest/in.LoanAmount*100*10) / 10,
		YearlyBreakdown:    breakdown,
		Tips: []string{
			fmt.Sprintf("Your EMI of ₹%.0f should be <40%% of your monthly income", emi),
			"Consider part-payment to reduce interest burden",
			"Check if your bank charges pre-payment penalties",
			fmt.Sprintf("Total interest of ₹%.0f is %.1f%% of principal", totalInterest, totalInterest/in.LoanAmount*100),
		},
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func createEMITool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: "calculate_emi",
			Desc: "Calculate monthly EMI (Equated Monthly Installment) for a loan. Use when user wants to know monthly payment amount, total interest payable, or yearly breakdown. Works for all loan types - personal, home, car, business, education.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"loan_amount": {
					Type:     "number",
					Desc:     "Principal loan amount in Indian Rupees",
					Required: true,
				},
				"interest_rate": {
					Type:     "number",
					Desc:     "Annual interest rate as percentage (e.g., 10.5 for 10.5% per annum). Typical ranges: Personal loan 10-16%, Home loan 8-10%, Car loan 8-12%",
					Required: true,
				},
				"tenure_months": {
					Type:     "number",
					Desc:     "Loan tenure in months. Example: 60 months = 5 years, 240 months = 20 years",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *EMIInput) (*EMIOutput, error) {
			return CalculateEMI(in)
		},
	)
}

func renderEMI(out *EMIOutput) string {
	return fmt.Sprintf(
		"**EMI Calculation**\n\n"+
			"For a loan of ₹%.0f at %.2f%% p.a. over %d months (%.1f years):\n\n"+
			"- Monthly EMI: **₹%.2f**\n"+
			"- Total amount payable: ₹%.2f\n"+
			"- Total interest: ₹%.2f (%.1f%% of principal)\n\n"+
			"Tip: %s",
		out.LoanAmount, out.InterestRate, out.TenureMonths, out.TenureYears,
		out.MonthlyEMI, out.TotalAmountPayable, out.TotalInterest,
		out.InterestPercentage, out.Tips[0],
	)
}
