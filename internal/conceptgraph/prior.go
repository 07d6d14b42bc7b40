package conceptgraph

// InitialPrior estimates a starting mastery probability for a concept the
// student has never practiced. Shallow concepts start higher, and the gap
// between the student's grade and the concept's grade shifts the estimate:
// a student above the concept's grade likely saw the material before.
// The result is clamped to [0.05, 0.85] so no concept starts mastered or
// hopeless.
func (g *Graph) InitialPrior(conceptID, studentGrade string) float64 {
	var base float64
	switch g.Depth(conceptID) {
	case 0:
		base = 0.60
	case 1:
		base = 0.50
	case 2:
		base = 0.40
	default:
		base = 0.30
	}

	c, err := g.Concept(conceptID)
	if err == nil {
		delta := gradeNumber(studentGrade) - gradeNumber(c.Grade)
		switch {
		case delta > 0:
			if delta > 3 {
				delta = 3
			}
			base += 0.05 * float64(delta)
		case delta < 0:
			if delta < -2 {
				delta = -2
			}
			base -= 0.10 * float64(-delta)
		}
	}

	if base < 0.05 {
		base = 0.05
	}
	if base > 0.85 {
		base = 0.85
	}
	return base
}

// gradeNumber extracts the year from a grade label like "3ro de secundaria".
// Unrecognized labels default to 3 (middle of the range).
func gradeNumber(grade string) int {
	for _, r := range grade {
		if r >= '1' && r <= '5' {
			return int(r - '0')
		}
	}
	return 3
}
