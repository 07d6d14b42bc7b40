// Package bkt implements the Bayesian Knowledge Tracing update: given a
// prior mastery probability and one correct/incorrect observation, it
// computes the posterior probability that the student knows the concept.
package bkt

import (
	"fmt"
	"math"
)

// Params are the BKT model parameters, per concept or global.
type Params struct {
	// Transit is P(T): probability of learning on an unmastered attempt.
	Transit float64

	// Slip is P(S): probability a mastered student answers wrong.
	Slip float64

	// Guess is P(G): probability an unmastered student answers right.
	Guess float64
}

// DefaultParams returns the standard parameter set.
func DefaultParams() Params {
	return Params{
		Transit: 0.1,
		Slip:    0.1,
		Guess:   0.2,
	}
}

// DefaultPrior is the flat starting mastery probability used when no
// depth-based prior is available.
const DefaultPrior = 0.3

// Posterior bounds. Clamping keeps the chain out of absorbing states so a
// student can always recover from (or lose) apparent mastery.
const (
	MinProbability = 0.001
	MaxProbability = 0.999
)

// InvalidObservationError reports an observation that cannot be applied:
// a prior outside [0,1] or a non-finite value. The mastery estimate must
// not be updated from such an event.
type InvalidObservationError struct {
	Prior float64
}

func (e *InvalidObservationError) Error() string {
	return fmt.Sprintf("invalid observation: prior %v outside [0,1]", e.Prior)
}

// Update computes the posterior mastery probability after one observation.
//
// First the prior is conditioned on the evidence:
//
//	correct:   p_obs = p(1-S) / (p(1-S) + (1-p)G)
//	incorrect: p_obs = pS / (pS + (1-p)(1-G))
//
// then the learning opportunity is applied:
//
//	p_new = p_obs + (1-p_obs)T
//
// The result is clamped to [MinProbability, MaxProbability].
func Update(prior float64, correct bool, params Params) (float64, error) {
	if math.IsNaN(prior) || prior < 0 || prior > 1 {
		return 0, &InvalidObservationError{Prior: prior}
	}

	var pObs float64
	if correct {
		num := prior * (1 - params.Slip)
		den := num + (1-prior)*params.Guess
		pObs = safeDivide(num, den, prior)
	} else {
		num := prior * params.Slip
		den := num + (1-prior)*(1-params.Guess)
		pObs = safeDivide(num, den, prior)
	}

	pNew := pObs + (1-pObs)*params.Transit
	return clamp(pNew), nil
}

// Sequence folds a series of observations over a prior, oldest first.
func Sequence(prior float64, observations []bool, params Params) (float64, error) {
	p := prior
	for _, correct := range observations {
		var err error
		p, err = Update(p, correct, params)
		if err != nil {
			return 0, err
		}
	}
	return p, nil
}

// safeDivide guards against a zero denominator (possible with degenerate
// parameters such as Guess=0 and prior=0); the prior passes through unchanged.
func safeDivide(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}

func clamp(p float64) float64 {
	if p < MinProbability {
		return MinProbability
	}
	if p > MaxProbability {
		return MaxProbability
	}
	return p
}
