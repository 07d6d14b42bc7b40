package bkt

import (
	"errors"
	"math"
	"testing"
)

func TestUpdate_KnownScenario(t *testing.T) {
	// prior=0.3, T=0.1, S=0.1, G=0.2, correct:
	// p_obs = (0.3*0.9)/(0.3*0.9 + 0.7*0.2) = 0.27/0.41 ≈ 0.6585
	// p_new = 0.6585 + 0.3415*0.1 ≈ 0.6927
	got, err := Update(0.3, true, DefaultParams())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := 0.27/0.41 + (1-0.27/0.41)*0.1
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("posterior = %v, want %v", got, want)
	}
	if math.Abs(got-0.6927) > 0.0005 {
		t.Errorf("posterior = %v, want ≈ 0.6927", got)
	}
}

func TestUpdate_CorrectNeverBelowIncorrect(t *testing.T) {
	params := DefaultParams()
	for prior := 0.0; prior <= 1.0; prior += 0.05 {
		pCorrect, err := Update(prior, true, params)
		if err != nil {
			t.Fatalf("update correct at %v: %v", prior, err)
		}
		pWrong, err := Update(prior, false, params)
		if err != nil {
			t.Fatalf("update incorrect at %v: %v", prior, err)
		}
		if pCorrect < pWrong {
			t.Errorf("prior %v: correct posterior %v < incorrect posterior %v", prior, pCorrect, pWrong)
		}
	}
}

func TestUpdate_AlwaysClamped(t *testing.T) {
	params := DefaultParams()
	for _, prior := range []float64{0, 0.001, 0.3, 0.5, 0.999, 1} {
		for _, correct := range []bool{true, false} {
			p, err := Update(prior, correct, params)
			if err != nil {
				t.Fatalf("update(%v, %v): %v", prior, correct, err)
			}
			if p < MinProbability || p > MaxProbability {
				t.Errorf("update(%v, %v) = %v outside [%v, %v]",
					prior, correct, p, MinProbability, MaxProbability)
			}
		}
	}
}

func TestUpdate_DegenerateParams(t *testing.T) {
	// Guess=0 with prior=0 would divide by zero on a correct answer.
	p, err := Update(0, true, Params{Transit: 0.1, Slip: 0, Guess: 0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p < MinProbability || p > MaxProbability {
		t.Errorf("posterior %v out of bounds", p)
	}
}

func TestUpdate_InvalidPrior(t *testing.T) {
	for _, prior := range []float64{-0.1, 1.1, math.NaN()} {
		_, err := Update(prior, true, DefaultParams())
		if err == nil {
			t.Errorf("update(%v) should fail", prior)
			continue
		}
		var inv *InvalidObservationError
		if !errors.As(err, &inv) {
			t.Errorf("error for prior %v is %T, want *InvalidObservationError", prior, err)
		}
	}
}

func TestSequence(t *testing.T) {
	params := DefaultParams()

	// Three correct answers strictly increase mastery.
	p := 0.3
	for i := 0; i < 3; i++ {
		next, err := Sequence(p, []bool{true}, params)
		if err != nil {
			t.Fatal(err)
		}
		if next <= p {
			t.Errorf("step %d: posterior %v did not increase from %v", i, next, p)
		}
		p = next
	}

	// Equivalent to folding one at a time.
	direct, err := Sequence(0.3, []bool{true, true, true}, params)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(direct-p) > 1e-12 {
		t.Errorf("Sequence = %v, stepwise = %v", direct, p)
	}
}

func TestUpdate_WrongAnswerLowersHighMastery(t *testing.T) {
	p, err := Update(0.9, false, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if p >= 0.9 {
		t.Errorf("posterior %v should drop below prior 0.9 after a wrong answer", p)
	}
}
