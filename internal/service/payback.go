package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/deppfellow/credit-risk/internal/metrics"
	"github.com/deppfellow/credit-risk/internal/model"
	"github.com/deppfellow/credit-risk/internal/server"
)

// ErrScoringFailed wraps every failure of the payback flow. The HTTP layer
// reports it as a generic internal error.
var ErrScoringFailed = errors.New("payback scoring failed")

type PaybackService struct {
	server *server.Server
	scorer Scorer
}

func NewPaybackService(s *server.Server, scorer Scorer) *PaybackService {
	return &PaybackService{
		server: s,
		scorer: scorer,
	}
}

// Predict scores profile and builds the response payload.
//
// Scorer errors and out-of-range probabilities both come back wrapping
// ErrScoringFailed, with the cause kept for logging.
func (s *PaybackService) Predict(ctx context.Context, profile model.BorrowerProfile) (model.PaybackResponse, error) {
	start := time.Now()
	assessment, err := s.scorer.Score(ctx, profile)
	s.server.Metrics.ObserveScoring(start)

	if err != nil {
		s.server.Metrics.IncrementPrediction(metrics.OutcomeFailed)
		return model.PaybackResponse{}, scoringError(err, "scorer returned an error")
	}

	resp, err := model.NewPaybackResponse(assessment)
	if err != nil {
		s.server.Metrics.IncrementPrediction(metrics.OutcomeFailed)
		return model.PaybackResponse{}, scoringError(err, "scorer returned an invalid assessment")
	}

	s.server.Metrics.IncrementPrediction(metrics.OutcomeScored)
	return resp, nil
}

// scoringError marks cause with ErrScoringFailed and records a stack trace.
func scoringError(cause error, msg string) error {
	return errors.WithStack(fmt.Errorf("%w: %s: %w", ErrScoringFailed, msg, cause))
}
