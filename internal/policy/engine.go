package policy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sabilabs/sabi/internal/conceptgraph"
	"github.com/sabilabs/sabi/internal/itembank"
	"github.com/sabilabs/sabi/internal/itemgen"
	"github.com/sabilabs/sabi/internal/mastery"
	"github.com/sabilabs/sabi/internal/store"
)

// Engine is the per-session selection policy. Not safe for concurrent
// use: one interaction loop drives it, async generation results come
// back through the itemgen service's token check.
type Engine struct {
	graph   *conceptgraph.Graph
	bank    *itembank.Bank
	mastery *mastery.Store
	gen     *itemgen.Service
	history ErrorHistory
	cfg     Config

	subject      string
	grade        string
	studentGrade string

	state      State
	pausedFrom State

	// pinned is the concept chosen via topic selection or the decision
	// gate; empty means the default graph-order rule picks.
	pinned  string
	current string
	item    *itembank.Item

	diffOverride *itembank.Difficulty

	served          map[string]bool
	servedQuestions map[string][]string
	recentErrors    map[string][]string

	answered     int
	correctCount int
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator enables on-demand item generation with local-bank
// fallback.
func WithGenerator(svc *itemgen.Service) Option {
	return func(e *Engine) { e.gen = svc }
}

// ErrorHistory loads descriptions of the student's recent mistakes on a
// concept from earlier sessions, newest first.
type ErrorHistory func(ctx context.Context, conceptID string, limit int) ([]string, error)

// WithErrorHistory personalizes generation prompts from archived
// responses until the running session produces mistakes of its own.
func WithErrorHistory(h ErrorHistory) Option {
	return func(e *Engine) { e.history = h }
}

// WithScope restricts selection to one subject and/or grade. Empty
// strings match everything.
func WithScope(subject, grade string) Option {
	return func(e *Engine) {
		e.subject = subject
		e.grade = grade
	}
}

// WithStudentGrade records the student's grade for generation prompts.
func WithStudentGrade(grade string) Option {
	return func(e *Engine) { e.studentGrade = grade }
}

// New creates an Engine in AwaitingTopicChoice.
func New(g *conceptgraph.Graph, bank *itembank.Bank, ms *mastery.Store, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		graph:           g,
		bank:            bank,
		mastery:         ms,
		cfg:             cfg,
		state:           StateAwaitingTopicChoice,
		served:          make(map[string]bool),
		servedQuestions: make(map[string][]string),
		recentErrors:    make(map[string][]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current session phase.
func (e *Engine) State() State { return e.state }

// CurrentConcept returns the concept being practiced, empty before the
// first selection.
func (e *Engine) CurrentConcept() string { return e.current }

// Progress reports answered and correct counts for the running quiz.
func (e *Engine) Progress() (answered, correct int) {
	return e.answered, e.correctCount
}

// SelectTopic pins the concept best matching a free-text topic within
// the session scope. Fails with ErrUnknownTopic when nothing matches.
func (e *Engine) SelectTopic(topic string) error {
	if e.state != StateAwaitingTopicChoice && e.state != StateSelectingConcept {
		return fmt.Errorf("%w: select topic in %s", ErrInvalidTransition, e.state)
	}
	id, ok := e.graph.MatchTopic(topic, e.subject, e.grade)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}
	e.pinned = id
	e.state = StateSelectingConcept
	return nil
}

// Explore pins the lowest-mastery ready concept in scope; ties break by
// topological order. With nothing unmastered the default rule reports
// goal completion on the next step.
func (e *Engine) Explore() error {
	if e.state != StateAwaitingTopicChoice && e.state != StateSelectingConcept {
		return fmt.Errorf("%w: explore in %s", ErrInvalidTransition, e.state)
	}
	e.pinned = e.lowestMasteryReady()
	e.state = StateSelectingConcept
	return nil
}

// SetDifficulty overrides the mastery-band difficulty until cleared.
func (e *Engine) SetDifficulty(d itembank.Difficulty) error {
	if e.state == StateFinished {
		return fmt.Errorf("%w: set difficulty in %s", ErrInvalidTransition, e.state)
	}
	e.diffOverride = &d
	return nil
}

// ClearDifficulty returns difficulty selection to the mastery bands.
func (e *Engine) ClearDifficulty() {
	e.diffOverride = nil
}

// SetQuizLength overrides how many answers finish the quiz.
func (e *Engine) SetQuizLength(n int) error {
	if n < 1 {
		return fmt.Errorf("quiz length must be positive, got %d", n)
	}
	e.cfg.QuizLength = n
	return nil
}

// Pause suspends the session from any non-terminal state.
func (e *Engine) Pause() error {
	if e.state == StatePaused || e.state == StateFinished {
		return fmt.Errorf("%w: pause in %s", ErrInvalidTransition, e.state)
	}
	e.pausedFrom = e.state
	e.state = StatePaused
	return nil
}

// Resume returns to the state the session paused from.
func (e *Engine) Resume() error {
	if e.state != StatePaused {
		return fmt.Errorf("%w: resume in %s", ErrInvalidTransition, e.state)
	}
	e.state = e.pausedFrom
	return nil
}

// NextItem selects the next concept and item, preferring a generated
// item and falling back to the local bank, one hop at most.
func (e *Engine) NextItem(ctx context.Context) (*Step, error) {
	if e.state != StateSelectingConcept {
		return nil, fmt.Errorf("%w: next item in %s", ErrInvalidTransition, e.state)
	}

	conceptID, ok := e.selectConcept()
	if !ok {
		e.state = StateFinished
		return &Step{State: e.state, GoalComplete: true}, nil
	}
	e.current = conceptID
	e.state = StateSelectingItem

	difficulty := e.difficultyFor(conceptID)

	item, degraded, err := e.acquireItem(ctx, conceptID, difficulty)
	if err != nil {
		e.state = StateSelectingConcept
		return nil, err
	}

	e.served[item.ID] = true
	e.servedQuestions[conceptID] = append(e.servedQuestions[conceptID], item.Question)
	e.item = &item
	e.state = StateAwaitingResponse

	return &Step{
		ConceptID: conceptID,
		Item:      item,
		State:     e.state,
		Degraded:  degraded,
	}, nil
}

// RecordResponse applies one answer: mastery update, failure propagation
// to prerequisites, quiz accounting, and the finish transition.
func (e *Engine) RecordResponse(ctx context.Context, resp Response) (*Outcome, error) {
	if e.state != StateAwaitingResponse {
		return nil, fmt.Errorf("%w: record response in %s", ErrInvalidTransition, e.state)
	}
	item := e.item

	var persistErrs []error

	update, err := e.mastery.RecordObservation(ctx, e.current, resp.Correct)
	if err != nil {
		var pe *store.PersistenceError
		if !errors.As(err, &pe) {
			return nil, err
		}
		persistErrs = append(persistErrs, err)
	}

	out := &Outcome{
		ConceptID: e.current,
		ItemID:    item.ID,
		Correct:   resp.Correct,
		Update:    update,
	}

	if !resp.Correct {
		e.noteError(item, resp.ChosenOption)
		for _, prereq := range e.graph.PrerequisitesOf(e.current) {
			du, err := e.mastery.Decay(ctx, prereq, e.cfg.PrereqDecay)
			if err != nil {
				var pe *store.PersistenceError
				if !errors.As(err, &pe) {
					return nil, err
				}
				persistErrs = append(persistErrs, err)
			}
			out.PrereqDecays = append(out.PrereqDecays, du)
		}
	}

	e.answered++
	if resp.Correct {
		e.correctCount++
	}
	e.item = nil

	if e.answered >= e.cfg.QuizLength {
		e.state = StateFinished
		out.Decision = e.decisionContext()
	} else {
		e.state = StateSelectingConcept
	}
	out.State = e.state
	out.PersistenceErr = errors.Join(persistErrs...)

	return out, nil
}

// Decide resolves the post-quiz gate and starts the next quiz. topic is
// optional; when set it names where to review or advance to.
func (e *Engine) Decide(d Decision, topic string) error {
	if e.state != StateFinished {
		return fmt.Errorf("%w: decide in %s", ErrInvalidTransition, e.state)
	}

	switch d {
	case DecideRetry:
		e.pinned = e.current

	case DecideReview:
		if topic != "" {
			id, ok := e.graph.MatchTopic(topic, e.subject, e.grade)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
			}
			e.pinned = id
		} else if weakest := e.weakestPrerequisite(e.current); weakest != "" {
			e.pinned = weakest
		} else {
			// Nothing below the concept to review; repeat it instead.
			e.pinned = e.current
		}

	case DecideAdvance:
		if topic != "" {
			id, ok := e.graph.MatchTopic(topic, e.subject, e.grade)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
			}
			e.pinned = id
		} else if ready := e.readySuccessors(e.current); len(ready) > 0 {
			e.pinned = ready[0]
		} else {
			// Let the default graph-order rule pick.
			e.pinned = ""
		}

	default:
		return fmt.Errorf("unknown decision %v", d)
	}

	e.answered = 0
	e.correctCount = 0
	e.state = StateSelectingConcept
	return nil
}

// selectConcept picks the concept to practice: the pinned one when set,
// otherwise the first ready concept in topological order whose mastery
// is below the threshold. Returns false when everything in scope is
// mastered.
func (e *Engine) selectConcept() (string, bool) {
	if e.pinned != "" {
		return e.pinned, true
	}

	lookup := e.mastery.Lookup()
	threshold := e.graph.MasteryThreshold()
	for _, c := range e.graph.Scope(e.subject, e.grade) {
		if lookup(c.ID) >= threshold {
			continue
		}
		if e.graph.IsReady(c.ID, lookup) {
			return c.ID, true
		}
	}
	return "", false
}

// lowestMasteryReady returns the ready, unmastered concept in scope with
// the lowest mastery; ties break by topological order. Empty when all
// are mastered.
func (e *Engine) lowestMasteryReady() string {
	lookup := e.mastery.Lookup()
	threshold := e.graph.MasteryThreshold()

	best := ""
	bestP := 2.0
	for _, c := range e.graph.Scope(e.subject, e.grade) {
		p := lookup(c.ID)
		if p >= threshold || !e.graph.IsReady(c.ID, lookup) {
			continue
		}
		if p < bestP {
			best = c.ID
			bestP = p
		}
	}
	return best
}

func (e *Engine) difficultyFor(conceptID string) itembank.Difficulty {
	if e.diffOverride != nil {
		return *e.diffOverride
	}
	return itembank.ForMastery(e.mastery.Probability(conceptID))
}

// acquireItem tries generation first when available, then the bank at
// the requested difficulty, then the bank at any difficulty.
func (e *Engine) acquireItem(ctx context.Context, conceptID string, difficulty itembank.Difficulty) (itembank.Item, bool, error) {
	degraded := false

	if e.gen != nil {
		concept, err := e.graph.Concept(conceptID)
		if err != nil {
			return itembank.Item{}, false, err
		}

		recent := e.recentErrors[conceptID]
		if len(recent) == 0 && e.history != nil {
			// No mistakes yet this session; personalize from the archive.
			if archived, err := e.history(ctx, conceptID, maxRecentErrors); err == nil {
				recent = archived
			}
		}

		token := e.gen.Request(ctx, itemgen.GenerateInput{
			Concept:        concept,
			Difficulty:     difficulty,
			PriorQuestions: e.servedQuestions[conceptID],
			RecentErrors:   recent,
			StudentGrade:   e.studentGrade,
		})

		waitCtx, cancel := context.WithTimeout(ctx, e.cfg.GenerationTimeout)
		res, ok := e.gen.Await(waitCtx, token)
		cancel()

		if ok && res.Err == nil {
			// Admit for later reuse; a duplicate just means the model
			// repeated itself.
			if err := e.bank.Add(res.Item); err != nil && !errors.Is(err, itembank.ErrDuplicateItem) {
				return itembank.Item{}, false, err
			}
			return res.Item, false, nil
		}
		degraded = true
	}

	item, err := e.bank.Pick(conceptID, difficulty, e.served)
	if errors.Is(err, itembank.ErrNoItemAvailable) {
		item, err = e.bank.PickAny(conceptID, e.served)
	}
	if err != nil {
		return itembank.Item{}, degraded, err
	}
	return item, degraded, nil
}

// maxRecentErrors bounds the mistake descriptions fed into generation
// prompts, in-session or archived.
const maxRecentErrors = 5

// maxSuggestions caps each decision-gate suggestion list.
const maxSuggestions = 4

func (e *Engine) noteError(item *itembank.Item, chosen string) {
	desc := fmt.Sprintf("eligió %q en %q (correcto: %q)", chosen, item.Question, item.CorrectAnswer)
	errs := append(e.recentErrors[item.ConceptID], desc)
	if len(errs) > maxRecentErrors {
		errs = errs[len(errs)-maxRecentErrors:]
	}
	e.recentErrors[item.ConceptID] = errs
}

// decisionContext computes the post-quiz suggestions.
func (e *Engine) decisionContext() *DecisionContext {
	lookup := e.mastery.Lookup()

	dc := &DecisionContext{ConceptID: e.current}
	if e.answered > 0 {
		dc.Accuracy = float64(e.correctCount) / float64(e.answered)
	}

	for _, p := range e.graph.PrerequisitesOf(e.current) {
		if lookup(p) < e.cfg.WeakThreshold {
			dc.WeakPrerequisites = append(dc.WeakPrerequisites, p)
		}
	}
	// Weakest first: that is the one to review.
	sort.SliceStable(dc.WeakPrerequisites, func(i, j int) bool {
		return lookup(dc.WeakPrerequisites[i]) < lookup(dc.WeakPrerequisites[j])
	})
	if len(dc.WeakPrerequisites) > maxSuggestions {
		dc.WeakPrerequisites = dc.WeakPrerequisites[:maxSuggestions]
	}

	dc.ReadySuccessors = e.readySuccessors(e.current)

	return dc
}

// readySuccessors lists direct dependents whose prerequisites are all at
// or above the ready threshold, strongest candidate first so Decide can
// advance to ready[0]. Ties break by topological order.
func (e *Engine) readySuccessors(conceptID string) []string {
	lookup := e.mastery.Lookup()

	var ready []string
	for _, s := range e.graph.SuccessorsOf(conceptID) {
		ok := true
		for _, p := range e.graph.PrerequisitesOf(s) {
			if lookup(p) < e.cfg.ReadyThreshold {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, s)
		}
	}

	sort.SliceStable(ready, func(i, j int) bool {
		pi, pj := lookup(ready[i]), lookup(ready[j])
		if pi != pj {
			return pi > pj
		}
		return e.graph.TopoIndex(ready[i]) < e.graph.TopoIndex(ready[j])
	})
	if len(ready) > maxSuggestions {
		ready = ready[:maxSuggestions]
	}
	return ready
}

// weakestPrerequisite returns the direct prerequisite with the lowest
// mastery, empty when the concept has none.
func (e *Engine) weakestPrerequisite(conceptID string) string {
	lookup := e.mastery.Lookup()

	best := ""
	bestP := 2.0
	for _, p := range e.graph.PrerequisitesOf(conceptID) {
		if lookup(p) < bestP {
			best = p
			bestP = lookup(p)
		}
	}
	return best
}
