// Package service contains the business logic.
//
// It sits between the handler layer and the scoring capability.
// It receives validated borrower attributes from the handler,
// asks a Scorer for an assessment and turns it into a response.
package service
