package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// ===================================
// Document Checklist Tool
// ===================================

type DocumentsInput struct {
	LoanType       string `json:"loan_type"`
	EmploymentType string `json:"employment_type"`
}

type Document struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Period   string `json:"period,omitempty"`
	Why      string `json:"why,omitempty"`
}

type DocumentsSummary struct {
	TotalDocuments int `json:"total_documents"`
	Mandatory      int `json:"mandatory"`
	Optional       int `json:"optional"`
}

type DocumentsOutput struct {
	LoanType            string           `json:"loan_type"`
	EmploymentType      string           `json:"employment_type"`
	Summary             DocumentsSummary `json:"summary"`
	CommonDocuments     []Document       `json:"common_documents"`
	EmploymentDocuments []Document       `json:"employment_documents"`
	LoanSpecific        []Document       `json:"loan_specific_documents"`
	ProTips             []string         `json:"pro_tips"`
	CommonMistakes      []string         `json:"common_mistakes"`
}

var commonDocuments = []Document{
	{Name: "PAN Card", Required: true, Why: "Mandatory for all financial transactions"},
	{Name: "Aadhaar Card", Required: true, Why: "Identity and address proof (e-KYC enabled)"},
	{Name: "Passport size photos", Required: true, Why: "2 recent color photos"},
	{Name: "Bank statements", Required: true, Period: "Last 6 months", Why: "Shows income and spending patterns"},
	{Name: "Address proof", Required: true, Why: "Aadhaar, passport, utility bill, or rent agreement"},
}

var employmentDocuments = map[string][]Document{
	"salaried": {
		{Name: "Salary slips", Required: true, Period: "Last 3 months", Why: "Proof of current income"},
		{Name: "Form 16", Required: true, Period: "Last 2 years", Why: "Annual income proof with tax deduction"},
		{Name: "Employment certificate", Required: true, Why: "Confirms job and designation"},
		{Name: "Employee ID card", Required: false, Why: "Additional employment proof"},
		{Name: "Appointment letter", Required: false, Why: "Shows job start date and salary"},
	},
	"self_employed": {
		{Name: "ITR (Income Tax Returns)", Required: true, Period: "Last 2-3 years", Why: "Primary income proof"},
		{Name: "Computation of income", Required: true, Why: "Detailed income calculation"},
		{Name: "Business registration certificate", Required: true, Why: "Proves business legitimacy"},
		{Name: "GST returns", Required: true, Period: "Last 12 months", Why: "If GST registered"},
		{Name: "Audited financial statements", Required: true, Period: "Last 2 years", Why: "Balance sheet and P&L statement"},
		{Name: "Business bank statements", Required: true, Period: "Last 12 months"},
	},
	"business": {
		{Name: "Business PAN", Required: true},
		{Name: "GST Registration certificate", Required: true, Why: "If applicable"},
		{Name: "Partnership deed / MOA & AOA", Required: true, Why: "Business structure proof"},
		{Name: "ITR of business", Required: true, Period: "Last 3 years"},
		{Name: "Audited financials", Required: true, Period: "Last 2 years"},
		{Name: "Business continuity proof", Required: true, Why: "Shop license, office lease, or client contracts"},
		{Name: "Current liabilities statement", Required: true, Why: "Shows existing business loans"},
	},
}

var loanSpecificDocuments = map[string][]Document{
	"personal": {},
	"home": {
		{Name: "Property documents", Required: true, Why: "Sale agreement, approved plan, NOC, ownership chain, tax receipts, possession and encumbrance certificates"},
		{Name: "Property valuation report", Required: true, Why: "By bank-approved valuer"},
		{Name: "Builder registration", Required: true, Why: "RERA registration for under-construction property"},
	},
	"car": {
		{Name: "Vehicle quotation", Required: true, Why: "From dealer, including on-road price, insurance, registration"},
		{Name: "Proforma invoice", Required: true},
		{Name: "Vehicle insurance", Required: true, Why: "Comprehensive cover required by lender"},
		{Name: "RC (Registration Certificate)", Required: true, Why: "For used car"},
		{Name: "Previous loan closure certificate", Required: true, Why: "If used car had a loan"},
	},
	"education": {
		{Name: "Admission letter", Required: true, Why: "From educational institution"},
		{Name: "Fee structure", Required: true, Why: "Tuition, hostel, and other expenses"},
		{Name: "Mark sheets", Required: true, Why: "10th, 12th, graduation if applicable"},
		{Name: "Entrance exam scorecard", Required: true, Why: "CAT, GMAT, GRE, JEE, NEET"},
		{Name: "Co-applicant income proof", Required: true, Why: "Parent/guardian financials"},
		{Name: "Passport and visa documents", Required: true, Why: "For foreign education"},
		{Name: "Scholarship letter", Required: false, Why: "Reduces loan amount"},
	},
	"business": {
		{Name: "Detailed business plan", Required: true, Why: "Model, market analysis, projections, use of funds, risks"},
		{Name: "Existing loan statements", Required: true, Why: "All business and personal loans"},
		{Name: "Collateral documents", Required: true, Why: "Property papers, FDs, machinery invoices, or inventory valuation"},
		{Name: "Client contracts / Purchase orders", Required: false, Why: "Shows business viability"},
		{Name: "CIBIL report", Required: true, Why: "Business and all directors/partners"},
	},
}

// GetDocumentChecklist assembles the full document list for a loan and
// employment type. Unknown employment types fall back to salaried; unknown
// loan types get only the common and employment documents.
func GetDocumentChecklist(in *DocumentsInput) (*DocumentsOutput, error) {
	if in.LoanType == "" || in.EmploymentType == "" {
		return nil, fmt.Errorf("loan_type and employment_type are required")
	}

	employment, ok := employmentDocuments[in.EmploymentType]
	if !ok {
		employment = employmentDocuments["salaried"]
	}
	loanSpecific := loanSpecificDocuments[in.LoanType]

	var mandatory, optional int
	for _, d := range all(commonDocuments, employment, loanSpecific) {
		if d.Required {
			mandatory++
		} else {
			optional++
		}
	}

	return &DocumentsOutput{
		LoanType:       in.LoanType,
		EmploymentType: in.EmploymentType,
		Summary: DocumentsSummary{
			TotalDocuments: mandatory + optional,
			Mandatory:      mandatory,
			Optional:       optional,
		},
		CommonDocuments:     commonDocuments,
		EmploymentDocuments: employment,
		LoanSpecific:        loanSpecific,
		ProTips: []string{
			"Self-attest all photocopies - saves time at bank",
			"Carry original documents for verification",
			"Keep 3-4 sets of all documents ready",
			"Digital copies (PDF) handy for online applications",
			"Ensure all documents have same name as per PAN",
			"Current address should match across all documents",
			"Get missing documents BEFORE applying - incomplete applications get rejected",
		},
		CommonMistakes: []string{
			"Mismatched signatures across documents",
			"Old photos or wrong size",
			"Bank statements without bank stamp",
			"Unsigned Form 16 or ITR",
			"Property documents not in applicant's name",
			"Expired address proofs",
		},
	}, nil
}

func all(lists ...[]Document) []Document {
	var out []Document
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func createDocumentsTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: "get_document_checklist",
			Desc: "Get complete list of required documents for loan application with explanations. Use when user asks what documents are needed, required papers, or documentation.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"loan_type": {
					Type:     "string",
					Desc:     "Type of loan",
					Enum:     []string{"personal", "home", "car", "business", "education"},
					Required: true,
				},
				"employment_type": {
					Type:     "string",
					Desc:     "Employment type as document requirements differ",
					Enum:     []string{"salaried", "self_employed", "business"},
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *DocumentsInput) (*DocumentsOutput, error) {
			return GetDocumentChecklist(in)
		},
	)
}

func renderDocuments(out *DocumentsOutput) string {
	text := fmt.Sprintf(
		"**Documents for a %s loan (%s)**\n\nYou will need %d documents in total (%d mandatory, %d optional).\n\n",
		out.LoanType, out.EmploymentType,
		out.Summary.TotalDocuments, out.Summary.Mandatory, out.Summary.Optional,
	)
	for _, section := range []struct {
		title string
		docs  []Document
	}{
		{"Common documents", out.CommonDocuments},
		{"Employment documents", out.EmploymentDocuments},
		{"Loan-specific documents", out.LoanSpecific},
	} {
		if len(section.docs) == 0 {
			continue
		}
		text += section.title + ":\n"
		for _, d := range section.docs {
			marker := "optional"
			if d.Required {
				marker = "required"
			}
			text += fmt.Sprintf("- %s (%s)\n", d.Name, marker)
		}
		text += "\n"
	}
	return text
}
