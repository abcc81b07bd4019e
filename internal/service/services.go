package service

import (
	"github.com/deppfellow/credit-risk/internal/server"
)

type Services struct {
	Payback *PaybackService
}

// NewService builds the service container. A nil scorer falls back to
// the StubScorer.
func NewService(s *server.Server, scorer Scorer) (*Services, error) {
	if scorer == nil {
		scorer = StubScorer{}
	}

	return &Services{
		Payback: NewPaybackService(s, scorer),
	}, nil
}
