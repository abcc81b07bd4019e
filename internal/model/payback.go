// Package model holds the payload schemas of the payback endpoint and the
// plain values passed to the scoring capability.
package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/deppfellow/credit-risk/internal/validation"
)

// ErrProbabilityOutOfRange is returned when a response probability is not in [0, 1].
var ErrProbabilityOutOfRange = errors.New("payback probability must be within [0, 1]")

// PaybackRequest is the inbound borrower payload.
//
// Numeric fields are pointers so that an absent value can be told apart
// from a legitimate zero.
type PaybackRequest struct {
	Gender           string `json:"gender" validate:"required"`
	MaritalStatus    string `json:"marital_status" validate:"required"`
	EducationLevel   string `json:"education_level" validate:"required"`
	EmploymentStatus string `json:"employment_status" validate:"required"`
	LoanPurpose      string `json:"loan_purpose" validate:"required"`
	GradeSubgrade    string `json:"grade_subgrade" validate:"required"`

	AnnualIncome      *float64 `json:"annual_income" validate:"required,gte=0"`
	DebtToIncomeRatio *float64 `json:"debt_to_income_ratio" validate:"required,gte=0"`
	CreditScore       *float64 `json:"credit_score" validate:"required,gte=0"`
	LoanAmount        *float64 `json:"loan_amount" validate:"required,gte=0"`
	InterestRate      *float64 `json:"interest_rate" validate:"required,gte=0"`
}

// Validate implements validation.Validatable.
func (r *PaybackRequest) Validate() error {
	return validation.Struct(r)
}

// Profile returns the borrower attributes of a validated request.
// It must only be called after Validate succeeded.
func (r *PaybackRequest) Profile() BorrowerProfile {
	return BorrowerProfile{
		Gender:            r.Gender,
		MaritalStatus:     r.MaritalStatus,
		EducationLevel:    r.EducationLevel,
		EmploymentStatus:  r.EmploymentStatus,
		LoanPurpose:       r.LoanPurpose,
		GradeSubgrade:     r.GradeSubgrade,
		AnnualIncome:      *r.AnnualIncome,
		DebtToIncomeRatio: *r.DebtToIncomeRatio,
		CreditScore:       *r.CreditScore,
		LoanAmount:        *r.LoanAmount,
		InterestRate:      *r.InterestRate,
	}
}

// BorrowerProfile is the set of borrower attributes a scorer works on.
type BorrowerProfile struct {
	Gender           string
	MaritalStatus    string
	EducationLevel   string
	EmploymentStatus string
	LoanPurpose      string
	GradeSubgrade    string

	AnnualIncome      float64
	DebtToIncomeRatio float64
	CreditScore       float64
	LoanAmount        float64
	InterestRate      float64
}

// Assessment is what a scorer concludes about a borrower.
type Assessment struct {
	LoanPaidBack bool
	Probability  float64
	Insights     []string
}

// PaybackResponse is the outbound prediction payload.
// Build it with NewPaybackResponse.
type PaybackResponse struct {
	// LoanPaidBack is true when the payback probability meets the decision threshold.
	LoanPaidBack bool `json:"loan_paid_back"`

	// PaybackProba is the payback probability, always within [0, 1].
	PaybackProba float64 `json:"payback_proba" validate:"gte=0,lte=1"`

	// Insights are free-text notes produced alongside the prediction.
	Insights []string `json:"insights"`
}

// PaybackResponseExample is the example payload published in the API docs.
var PaybackResponseExample = PaybackResponse{
	LoanPaidBack: false,
	PaybackProba: 0.8,
	Insights:     []string{"some insight1", "some insight2"},
}

// NewPaybackResponse builds a response from an assessment, rejecting a
// probability outside [0, 1]. The insights are copied.
func NewPaybackResponse(a Assessment) (PaybackResponse, error) {
	if math.IsNaN(a.Probability) {
		return PaybackResponse{}, fmt.Errorf("%w: got NaN", ErrProbabilityOutOfRange)
	}

	resp := PaybackResponse{
		LoanPaidBack: a.LoanPaidBack,
		PaybackProba: a.Probability,
		Insights:     append([]string{}, a.Insights...),
	}

	if err := validation.Struct(resp); err != nil {
		return PaybackResponse{}, fmt.Errorf("%w: got %v", ErrProbabilityOutOfRange, a.Probability)
	}

	return resp, nil
}
