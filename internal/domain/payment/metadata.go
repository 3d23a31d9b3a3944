package payment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MetaUserEmail     = "userEmail"
	MetaUserID        = "userId"
	MetaLoanID        = "loanId"
	MetaLoanTitle     = "loanTitle"
	MetaApplicantName = "applicantName"
	MetaInterestRate  = "interestRate"
	MetaDraft         = "applicationData"

	// processor limit on a single metadata value, in characters
	maxMetadataValue = 500
)

// Draft is the applicant-entered form carried through checkout metadata.
type Draft struct {
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	ContactNumber string          `json:"contactNumber"`
	NationalID    string          `json:"nationalId"`
	IncomeSource  string          `json:"incomeSource"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	LoanAmount    decimal.Decimal `json:"loanAmount"`
	Reason        string          `json:"reason"`
	Address       string          `json:"address"`
	ExtraNotes    string          `json:"extraNotes"`
}

// CheckoutMetadata is everything needed to rebuild an application from a
// confirmation event alone.
type CheckoutMetadata struct {
	UserEmail     string
	UserID        string
	LoanID        string
	LoanTitle     string
	ApplicantName string
	InterestRate  decimal.Decimal
	Draft         Draft
}

// Encode flattens m into processor metadata. The serialized draft goes under
// applicationData and spills into applicationData_1, _2, ... when it exceeds
// the per-value limit.
func (m CheckoutMetadata) Encode() (map[string]string, error) {
	raw, err := json.Marshal(m.Draft)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	out := map[string]string{
		MetaUserEmail:     m.UserEmail,
		MetaUserID:        m.UserID,
		MetaLoanID:        m.LoanID,
		MetaLoanTitle:     truncate(m.LoanTitle, maxMetadataValue),
		MetaApplicantName: truncate(m.ApplicantName, maxMetadataValue),
		MetaInterestRate:  m.InterestRate.String(),
	}
	for i, chunk := range chunkRunes(string(raw), maxMetadataValue) {
		out[draftKey(i)] = chunk
	}
	return out, nil
}

func DecodeMetadata(md map[string]string) (CheckoutMetadata, error) {
	m := CheckoutMetadata{
		UserEmail:     md[MetaUserEmail],
		UserID:        md[MetaUserID],
		LoanID:        md[MetaLoanID],
		LoanTitle:     md[MetaLoanTitle],
		ApplicantName: md[MetaApplicantName],
	}
	if m.UserEmail == "" || m.UserID == "" || m.LoanID == "" {
		return m, ErrBadMetadata
	}
	// sessions opened before the rate was carried decode with a zero rate
	if v := md[MetaInterestRate]; v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return m, fmt.Errorf("%w: interest rate: %v", ErrBadMetadata, err)
		}
		m.InterestRate = rate
	}
	var sb strings.Builder
	for i := 0; ; i++ {
		chunk, ok := md[draftKey(i)]
		if !ok {
			break
		}
		sb.WriteString(chunk)
	}
	if sb.Len() == 0 {
		return m, ErrBadMetadata
	}
	if err := json.Unmarshal([]byte(sb.String()), &m.Draft); err != nil {
		return m, fmt.Errorf("%w: %v", ErrBadMetadata, err)
	}
	if m.Draft.FirstName == "" || m.Draft.LastName == "" {
		return m, ErrBadMetadata
	}
	return m, nil
}

func draftKey(i int) string {
	if i == 0 {
		return MetaDraft
	}
	return fmt.Sprintf("%s_%d", MetaDraft, i)
}

func chunkRunes(s string, size int) []string {
	r := []rune(s)
	var out []string
	for len(r) > size {
		out = append(out, string(r[:size]))
		r = r[size:]
	}
	return append(out, string(r))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
