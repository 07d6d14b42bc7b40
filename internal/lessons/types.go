package lessons

import "github.com/sabilabs/sabi/internal/conceptgraph"

// Lesson is an LLM-generated micro-lesson for one concept, served when
// the student is struggling or asks for a review.
type Lesson struct {
	ConceptID        string
	Title            string
	Explanation      string
	WorkedExample    string
	PracticeQuestion PracticeQuestion
}

// PracticeQuestion is the mini-exercise embedded in a lesson. Free-form
// answer, checked by the student themselves against the explanation.
type PracticeQuestion struct {
	Text        string
	Answer      string
	Explanation string
}

// LessonInput holds the context for generating one lesson.
type LessonInput struct {
	Concept      conceptgraph.Concept
	StudentGrade string

	// Accuracy is the student's recent accuracy on this concept, in [0,1].
	Accuracy float64

	// RecentErrors describes the student's latest mistakes on the concept.
	RecentErrors []string

	// WeakPrerequisites names prerequisite concepts below threshold, so
	// the lesson can bridge the gap instead of assuming them.
	WeakPrerequisites []string
}
