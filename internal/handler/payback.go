package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/credit-risk/internal/middleware"
	"github.com/deppfellow/credit-risk/internal/model"
	"github.com/deppfellow/credit-risk/internal/server"
	"github.com/deppfellow/credit-risk/internal/service"
)

type PaybackHandler struct {
	Handler
	paybackService *service.PaybackService
}

func NewPaybackHandler(s *server.Server, paybackService *service.PaybackService) *PaybackHandler {
	return &PaybackHandler{
		Handler:        NewHandler(s),
		paybackService: paybackService,
	}
}

// Predict logs the borrower attributes and returns the scorer's verdict.
// It only runs once the request passed validation.
func (h *PaybackHandler) Predict(c echo.Context, req *model.PaybackRequest) (model.PaybackResponse, error) {
	profile := req.Profile()

	middleware.GetLogger(c).Info().
		Str("gender", profile.Gender).
		Str("marital_status", profile.MaritalStatus).
		Str("education_level", profile.EducationLevel).
		Str("employment_status", profile.EmploymentStatus).
		Str("loan_purpose", profile.LoanPurpose).
		Str("grade_subgrade", profile.GradeSubgrade).
		Float64("annual_income", profile.AnnualIncome).
		Float64("debt_to_income_ratio", profile.DebtToIncomeRatio).
		Float64("credit_score", profile.CreditScore).
		Float64("loan_amount", profile.LoanAmount).
		Float64("interest_rate", profile.InterestRate).
		Msg("Got payback request")

	return h.paybackService.Predict(c.Request().Context(), profile)
}
