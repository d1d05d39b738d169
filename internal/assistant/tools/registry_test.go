package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_RegistersAllTools(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{
		"calculate_emi",
		"check_loan_eligibility",
		"get_application_guidance",
		"get_document_checklist",
		"get_financial_tips",
	}, r.Names())
}

func TestRegistry_Infos(t *testing.T) {
	r := NewRegistry()

	infos, err := r.Infos(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 5)

	for _, info := range infos {
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Desc)
	}
}

func TestRegistry_ExecuteEMI(t *testing.T) {
	r := NewRegistry()

	args := `{"loan_amount": 500000, "interest_rate": 10, "tenure_months": 60}`
	data, text, err := r.Execute(context.Background(), "calculate_emi", args)
	require.NoError(t, err)

	var out EMIOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.InDelta(t, 10623.52, out.MonthlyEMI, 1.0)

	assert.Contains(t, text, "EMI Calculation")
	assert.Contains(t, text, "Monthly EMI")
}

func TestRegistry_ExecuteEligibility(t *testing.T) {
	r := NewRegistry()

	args := `{"monthly_income": 80000, "loan_amount": 500000, "loan_type": "personal", "credit_score": 760}`
	data, text, err := r.Execute(context.Background(), "check_loan_eligibility", args)
	require.NoError(t, err)

	var out EligibilityOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Eligible)

	assert.Contains(t, text, "Loan Eligibility Check")
	assert.Contains(t, text, "eligible")
}

func TestRegistry_ExecuteUnknownTool(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.Execute(context.Background(), "no_such_tool", `{}`)
	assert.ErrorContains(t, err, "unknown tool")
}

func TestRegistry_ExecuteInvalidArguments(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.Execute(context.Background(), "calculate_emi", `{"loan_amount": -5}`)
	assert.Error(t, err)
}
