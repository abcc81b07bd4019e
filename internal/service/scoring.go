package service

//go:generate mockgen -source=scoring.go -destination=mocks/scoring_mock.go -package=mocks Scorer

import (
	"context"

	"github.com/deppfellow/credit-risk/internal/model"
)

// Scorer assesses whether a borrower will pay a loan back.
//
// Implementations must be safe for concurrent use. A returned error is
// treated as an internal failure of the request.
type Scorer interface {
	Score(ctx context.Context, profile model.BorrowerProfile) (model.Assessment, error)
}

// PlaceholderInsight is the only insight the StubScorer emits.
const PlaceholderInsight = "none"

// StubScorer stands in until a real model is available: it never
// predicts a payback and reports zero probability.
type StubScorer struct{}

func (StubScorer) Score(ctx context.Context, _ model.BorrowerProfile) (model.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return model.Assessment{}, err
	}

	return model.Assessment{
		LoanPaidBack: false,
		Probability:  0.0,
		Insights:     []string{PlaceholderInsight},
	}, nil
}
