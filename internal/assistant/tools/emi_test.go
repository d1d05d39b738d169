package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEMI_StandardLoan(t *testing.T) {
	out, err := CalculateEMI(&EMIInput{
		LoanAmount:   500000,
		InterestRate: 10,
		TenureMonths: 60,
	})
	require.NoError(t, err)

	assert.InDelta(t, 10623.52, out.MonthlyEMI, 1.0)
	assert.InDelta(t, 137411.34, out.TotalInterest, 1.0)
	assert.InDelta(t, 637411.34, out.TotalAmountPayable, 1.0)
	assert.InDelta(t, out.MonthlyEMI*60, out.TotalAmountPayable, 1.0)
	assert.Equal(t, 5.0, out.TenureYears)
	assert.InDelta(t, 27.5, out.InterestPercentage, 0.1)
}

func TestCalculateEMI_ZeroRate(t *testing.T) {
	out, err := CalculateEMI(&EMIInput{
		LoanAmount:   120000,
		InterestRate: 0,
		TenureMonths: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, 10000.0, out.MonthlyEMI)
	assert.Equal(t, 120000.0, out.TotalAmountPayable)
	assert.Equal(t, 0.0, out.TotalInterest)
}

func TestCalculateEMI_YearlyBreakdown(t *testing.T) {
	out, err := CalculateEMI(&EMIInput{
		LoanAmount:   500000,
		InterestRate: 10,
		TenureMonths: 60,
	})
	require.NoError(t, err)
	require.Len(t, out.YearlyBreakdown, 5)

	var principal, interest float64
	for _, row := range out.YearlyBreakdown {
		principal += row.PrincipalPaid
		interest += row.InterestPaid
	}
	assert.InDelta(t, 500000, principal, 1.0)
	assert.InDelta(t, out.TotalInterest, interest, 1.0)

	first := out.YearlyBreakdown[0]
	last := out.YearlyBreakdown[4]
	assert.Equal(t, 500000.0, first.OpeningBalance)
	assert.Equal(t, 0.0, last.ClosingBalance)

	// Declining-balance amortization pays more interest early on.
	assert.Greater(t, first.InterestPaid, last.InterestPaid)
	assert.Less(t, first.PrincipalPaid, last.PrincipalPaid)

	for i := 1; i < len(out.YearlyBreakdown); i++ {
		prev := out.YearlyBreakdown[i-1]
		cur := out.YearlyBreakdown[i]
		assert.Equal(t, i+1, cur.Year)
		assert.InDelta(t, prev.ClosingBalance, cur.OpeningBalance, 0.01)
	}
}

func TestCalculateEMI_PartialFinalYear(t *testing.T) {
	out, err := CalculateEMI(&EMIInput{
		LoanAmount:   200000,
		InterestRate: 12,
		TenureMonths: 18,
	})
	require.NoError(t, err)

	// 18 months spans one full year plus a 6-month remainder row.
	require.Len(t, out.YearlyBreakdown, 2)
	assert.Equal(t, 1.5, out.TenureYears)
	assert.Equal(t, 0.0, out.YearlyBreakdown[1].ClosingBalance)
}

func TestCalculateEMI_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   EMIInput
	}{
		{"zero loan amount", EMIInput{LoanAmount: 0, InterestRate: 10, TenureMonths: 12}},
		{"negative loan amount", EMIInput{LoanAmount: -1000, InterestRate: 10, TenureMonths: 12}},
		{"negative rate", EMIInput{LoanAmount: 1000, InterestRate: -1, TenureMonths: 12}},
		{"zero tenure", EMIInput{LoanAmount: 1000, InterestRate: 10, TenureMonths: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := CalculateEMI(&tt.in)
			assert.Error(t, err)
			assert.Nil(t, out)
		})
	}
}
