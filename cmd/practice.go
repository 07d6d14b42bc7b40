package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sabilabs/sabi/internal/chat"
	"github.com/sabilabs/sabi/internal/cli"
	"github.com/sabilabs/sabi/internal/conceptgraph"
	"github.com/sabilabs/sabi/internal/itembank"
	"github.com/sabilabs/sabi/internal/itemgen"
	"github.com/sabilabs/sabi/internal/lessons"
	"github.com/sabilabs/sabi/internal/llm"
	"github.com/sabilabs/sabi/internal/mastery"
	"github.com/sabilabs/sabi/internal/policy"
	"github.com/sabilabs/sabi/internal/session"
	"github.com/sabilabs/sabi/internal/store"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start an interactive practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

func init() {
	practiceCmd.Flags().String("subject", "", "Restrict practice to one subject")
	practiceCmd.Flags().String("grade", "1ro de secundaria", "Student grade, used for priors and prompts")
	practiceCmd.Flags().String("topic", "", "Start directly on a topic")
	practiceCmd.Flags().Bool("resume", false, "Resume the most recent session")
	practiceCmd.Flags().String("session", "", "Resume a specific session by ID")
	practiceCmd.Flags().Int("quiz", 0, "Questions per quiz (default 5)")
}

// practiceSession holds everything the interactive loop needs.
type practiceSession struct {
	in  *bufio.Scanner
	out io.Writer

	graph   *conceptgraph.Graph
	mastery *mastery.Store
	engine  *policy.Engine
	tracker *session.Tracker
	lessons *lessons.Service
	tutor   *chat.Tutor

	studentGrade string
	// currentStep is the item on screen while awaiting an answer.
	currentStep *policy.Step
	askedAt     time.Time
	hintsUsed   int
	// lessonPrefetched marks a micro-lesson requested at the decision
	// gate, consumed if the student picks repasar.
	lessonPrefetched bool
}

func runPractice(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()
	repo := st.Repo()

	studentID := resolveStudent(cmd)
	if err := repo.EnsureUser(ctx, studentID, studentID); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not register student:", err)
	}

	g, err := conceptgraph.LoadDefault()
	if err != nil {
		return fmt.Errorf("load concept graph: %w", err)
	}

	subject, _ := cmd.Flags().GetString("subject")
	grade, _ := cmd.Flags().GetString("grade")
	topic, _ := cmd.Flags().GetString("topic")
	resume, _ := cmd.Flags().GetBool("resume")
	sessionID, _ := cmd.Flags().GetString("session")
	quizLen, _ := cmd.Flags().GetInt("quiz")

	ms := mastery.New(g, studentID, grade, mastery.WithPersister(repo))
	if err := ms.Hydrate(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not load saved progress:", err)
	}

	bank, err := itembank.NewSeededBank(rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return fmt.Errorf("load item bank: %w", err)
	}

	opts := []policy.Option{
		policy.WithScope(subject, ""),
		policy.WithStudentGrade(grade),
	}

	// LLM features are optional; without a key the session runs on the
	// local bank alone.
	ps := &practiceSession{
		in:           bufio.NewScanner(cmd.InOrStdin()),
		out:          cmd.OutOrStdout(),
		graph:        g,
		mastery:      ms,
		studentGrade: grade,
	}
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		var found bool
		if cfg, found = llm.DiscoverConfig(); !found {
			cfg = llm.Config{}
		}
	}
	if cfg.Provider != "" {
		provider, err := llm.NewProvider(ctx, cfg, repo)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Generated items, lessons, and chat are unavailable.")
		} else {
			genCfg := itemgen.DefaultConfig()
			opts = append(opts,
				policy.WithGenerator(itemgen.NewService(itemgen.New(provider, genCfg), genCfg.Timeout)),
				policy.WithErrorHistory(archivedErrors(repo, bank, studentID)))
			ps.lessons = lessons.NewService(provider, lessons.DefaultConfig())
			ps.tutor = chat.NewTutor(provider, chat.DefaultConfig())
		}
	} else {
		fmt.Fprintln(os.Stderr, "No LLM API key found; practicing with the local item bank only.")
	}

	ps.engine = policy.New(g, bank, ms, policy.DefaultConfig(), opts...)
	if quizLen > 0 {
		if err := ps.engine.SetQuizLength(quizLen); err != nil {
			return err
		}
	}

	if sessionID != "" {
		ps.tracker, err = session.Resume(ctx, repo, sessionID)
		if errors.Is(err, session.ErrNoSession) {
			return fmt.Errorf("no session %q to resume", sessionID)
		}
		if err != nil {
			if ps.tracker == nil {
				return fmt.Errorf("resume session: %w", err)
			}
			fmt.Fprintln(os.Stderr, "warning: resume:", err)
		}
	} else if resume {
		ps.tracker, err = session.ResumeLatest(ctx, repo, studentID)
		if errors.Is(err, session.ErrNoSession) {
			fmt.Fprintln(os.Stderr, "No session to resume; starting a new one.")
		} else if err != nil {
			fmt.Fprintln(os.Stderr, "warning: resume:", err)
		}
	}
	if ps.tracker == nil {
		ps.tracker, err = session.Start(ctx, repo, studentID, "práctica", subject, grade)
		if err != nil {
			fmt.Fprintln(os.Stderr, "warning: session will not be saved:", err)
		}
	}

	if topic != "" {
		if err := ps.engine.SelectTopic(topic); err != nil {
			return err
		}
		if err := ps.tracker.SetScope(ctx, subject, grade, topic); err != nil {
			fmt.Fprintln(os.Stderr, "warning:", err)
		}
	}

	return ps.run(ctx)
}

// archivedErrors feeds mistakes from earlier sessions into generation
// prompts, so personalization survives a restart.
func archivedErrors(repo store.Repo, bank *itembank.Bank, studentID string) policy.ErrorHistory {
	return func(ctx context.Context, conceptID string, limit int) ([]string, error) {
		rows, err := repo.RecentResponsesByConcept(ctx, studentID, conceptID, limit)
		if err != nil {
			return nil, err
		}
		// Rows come newest first; the prompt wants oldest to newest.
		var descs []string
		for i := len(rows) - 1; i >= 0; i-- {
			r := rows[i]
			if r.Correct {
				continue
			}
			if item, ok := bank.Get(r.ItemID); ok {
				descs = append(descs, fmt.Sprintf("eligió %q en %q (correcto: %q)", r.ChosenOption, item.Question, item.CorrectAnswer))
			} else {
				descs = append(descs, fmt.Sprintf("eligió %q", r.ChosenOption))
			}
		}
		return descs, nil
	}
}

func (p *practiceSession) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// run is the interactive loop. One iteration handles one line of input
// or one automatic step.
func (p *practiceSession) run(ctx context.Context) error {
	p.printf("¡Hola! Escribe \"tema: ...\" para elegir un tema, \"explorar\" para que yo elija, o haz una pregunta.\n")

	for {
		switch p.engine.State() {
		case policy.StateSelectingConcept:
			served, err := p.serveNext(ctx)
			if err != nil {
				return err
			}
			if served {
				continue
			}
		case policy.StateFinished:
			if p.currentStep != nil && p.currentStep.GoalComplete {
				p.printf("\n🎉 ¡Dominaste todos los conceptos de este alcance!\n")
				return p.finish(ctx)
			}
		}

		p.printf("> ")
		if !p.in.Scan() {
			return p.finish(ctx)
		}
		command, err := cli.Parse(p.in.Text())
		if err != nil {
			p.printf("%v\n", err)
			continue
		}

		done, err := p.handle(ctx, command)
		if err != nil {
			return err
		}
		if done {
			return p.finish(ctx)
		}
	}
}

// handle applies one parsed command. Returns done=true when the session
// should end.
func (p *practiceSession) handle(ctx context.Context, c cli.Command) (bool, error) {
	switch c.Kind {
	case cli.KindQuit:
		return true, nil

	case cli.KindTopic:
		if err := p.engine.SelectTopic(c.Topic); err != nil {
			p.printf("%v\n", err)
			return false, nil
		}
		if p.tutor != nil {
			p.tutor.Reset()
		}

	case cli.KindExplore:
		if err := p.engine.Explore(); err != nil {
			p.printf("%v\n", err)
		}

	case cli.KindDifficulty:
		if err := p.engine.SetDifficulty(c.Difficulty); err != nil {
			p.printf("%v\n", err)
		} else {
			p.printf("Dificultad fijada en %s.\n", c.Difficulty)
		}

	case cli.KindQuizLength:
		if err := p.engine.SetQuizLength(c.N); err != nil {
			p.printf("%v\n", err)
		} else {
			p.printf("Quiz de %d preguntas.\n", c.N)
		}

	case cli.KindPause:
		if err := p.engine.Pause(); err != nil {
			p.printf("%v\n", err)
			return false, nil
		}
		if err := p.tracker.Pause(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "warning:", err)
		}
		p.printf("Sesión en pausa. Escribe \"retomar\" para continuar o \"salir\" para terminar.\n")

	case cli.KindResume:
		if err := p.engine.Resume(); err != nil {
			p.printf("%v\n", err)
			return false, nil
		}
		if err := p.tracker.Resume(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "warning:", err)
		}
		if p.currentStep != nil && p.engine.State() == policy.StateAwaitingResponse {
			p.printItem(p.currentStep)
			p.askedAt = time.Now()
		}

	case cli.KindSummary:
		p.printSummary()

	case cli.KindAnswer:
		return false, p.answer(ctx, c.Text)

	case cli.KindHint:
		p.hint(ctx)

	case cli.KindLesson:
		p.lesson(ctx, p.engine.CurrentConcept(), nil)

	case cli.KindRetry:
		if err := p.engine.Decide(policy.DecideRetry, ""); err != nil {
			p.printf("%v\n", err)
		} else {
			p.lessonPrefetched = false
		}

	case cli.KindReview:
		if err := p.engine.Decide(policy.DecideReview, c.Topic); err != nil {
			p.printf("%v\n", err)
		} else {
			p.showPrefetchedLesson(ctx)
		}

	case cli.KindAdvance:
		if err := p.engine.Decide(policy.DecideAdvance, c.Topic); err != nil {
			p.printf("%v\n", err)
		} else {
			p.lessonPrefetched = false
		}

	case cli.KindQuestion:
		p.ask(ctx, c.Text)
	}
	return false, nil
}

// serveNext pulls the next item from the policy and puts it on screen.
// served=false means the loop should read input instead of stepping again.
func (p *practiceSession) serveNext(ctx context.Context) (bool, error) {
	step, err := p.engine.NextItem(ctx)
	if err != nil {
		if errors.Is(err, itembank.ErrNoItemAvailable) {
			p.printf("No quedan ejercicios nuevos para este concepto. Elige otro tema.\n")
			return false, nil
		}
		return false, err
	}
	p.currentStep = step
	if step.GoalComplete {
		return true, nil
	}

	concept, err := p.graph.Concept(step.ConceptID)
	if err == nil {
		p.printf("\n── %s (%s, %s) ──\n", concept.Name, concept.Subject, concept.Grade)
	}
	p.printItem(step)
	p.askedAt = time.Now()
	p.hintsUsed = 0
	return true, nil
}

func (p *practiceSession) printItem(step *policy.Step) {
	p.printf("\n%s\n", step.Item.Question)
	for i, opt := range step.Item.Options {
		p.printf("  %c) %s\n", 'A'+i, opt)
	}
	p.printf("Responde con la letra, pide una \"pista\", o haz una pregunta.\n")
}

// answer grades one option letter against the current item.
func (p *practiceSession) answer(ctx context.Context, letter string) error {
	if p.engine.State() != policy.StateAwaitingResponse || p.currentStep == nil {
		p.printf("No hay pregunta en curso.\n")
		return nil
	}
	item := p.currentStep.Item
	idx := int(letter[0] - 'A')
	if idx < 0 || idx >= len(item.Options) {
		p.printf("Opción %s fuera de rango.\n", letter)
		return nil
	}
	chosen := item.Options[idx]
	correct := chosen == item.CorrectAnswer

	out, err := p.engine.RecordResponse(ctx, policy.Response{
		Correct:      correct,
		ChosenOption: chosen,
		HintsUsed:    p.hintsUsed,
		Duration:     time.Since(p.askedAt),
	})
	if err != nil {
		return err
	}
	if out.PersistenceErr != nil {
		fmt.Fprintln(os.Stderr, "warning: progress not saved:", out.PersistenceErr)
	}

	updates := append([]mastery.Update{out.Update}, out.PrereqDecays...)
	if err := p.tracker.Record(ctx, session.Answer{
		ConceptID:    out.ConceptID,
		ItemID:       out.ItemID,
		Correct:      correct,
		ChosenOption: chosen,
		Difficulty:   string(item.Difficulty),
		HintsUsed:    p.hintsUsed,
		Duration:     time.Since(p.askedAt),
	}, updates...); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	if correct {
		p.printf("✓ ¡Correcto! Dominio: %.0f%% → %.0f%%\n", 100*out.Update.Before, 100*out.Update.After)
	} else {
		p.printf("✗ La respuesta correcta era %q.\n", item.CorrectAnswer)
		if item.Explanation != "" {
			p.printf("%s\n", item.Explanation)
		}
	}

	if out.Decision != nil {
		p.printDecisionGate(ctx, out.Decision)
	}
	return nil
}

func (p *practiceSession) printDecisionGate(ctx context.Context, dc *policy.DecisionContext) {
	p.printf("\nFin del quiz: %.0f%% de aciertos.\n", 100*dc.Accuracy)
	if len(dc.WeakPrerequisites) > 0 {
		p.printf("Bases que convendría repasar: %s\n", strings.Join(p.conceptNames(dc.WeakPrerequisites), ", "))
	}
	if len(dc.ReadySuccessors) > 0 {
		p.printf("Ya puedes avanzar a: %s\n", strings.Join(p.conceptNames(dc.ReadySuccessors), ", "))
	}
	p.printf("¿\"reintentar\", \"repasar\" o \"avanzar\"? También: \"resumen\", \"salir\".\n")

	// A weak quiz earns a micro-lesson; generation starts now so it is
	// ready by the time the student picks repasar.
	if p.lessons != nil && dc.Accuracy < 0.5 {
		if concept, err := p.graph.Concept(dc.ConceptID); err == nil {
			p.lessons.RequestLesson(ctx, lessons.LessonInput{
				Concept:           concept,
				StudentGrade:      p.studentGrade,
				Accuracy:          dc.Accuracy,
				WeakPrerequisites: p.conceptNames(dc.WeakPrerequisites),
			})
			p.lessonPrefetched = true
		}
	}
}

// showPrefetchedLesson waits briefly for the lesson requested at the
// decision gate and prints it.
func (p *practiceSession) showPrefetchedLesson(ctx context.Context) {
	if p.lessons == nil || !p.lessonPrefetched {
		return
	}
	p.lessonPrefetched = false

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if lesson, ok := p.lessons.AwaitLesson(waitCtx); ok {
		p.printLesson(lesson)
	}
}

func (p *practiceSession) conceptNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if c, err := p.graph.Concept(id); err == nil {
			names = append(names, c.Name)
		}
	}
	return names
}

// lesson prints a micro-lesson for the concept when an LLM is available.
func (p *practiceSession) lesson(ctx context.Context, conceptID string, weakPrereqs []string) {
	if p.lessons == nil {
		p.printf("Las lecciones necesitan un proveedor LLM configurado.\n")
		return
	}
	if conceptID == "" {
		p.printf("Primero elige un tema.\n")
		return
	}
	concept, err := p.graph.Concept(conceptID)
	if err != nil {
		p.printf("%v\n", err)
		return
	}

	lesson, err := p.lessons.Generate(ctx, lessons.LessonInput{
		Concept:           concept,
		StudentGrade:      p.studentGrade,
		WeakPrerequisites: p.conceptNames(weakPrereqs),
	})
	if err != nil {
		p.printf("No pude preparar la lección: %v\n", err)
		return
	}
	p.printLesson(lesson)
}

func (p *practiceSession) printLesson(lesson *lessons.Lesson) {
	p.printf("\n📘 %s\n\n%s\n\nEjemplo:\n%s\n", lesson.Title, lesson.Explanation, lesson.WorkedExample)
	if lesson.PracticeQuestion.Text != "" {
		p.printf("\nPara pensar: %s\n", lesson.PracticeQuestion.Text)
	}
}

func (p *practiceSession) hint(ctx context.Context) {
	if p.tutor == nil {
		p.printf("Las pistas necesitan un proveedor LLM configurado.\n")
		return
	}
	if p.engine.State() != policy.StateAwaitingResponse || p.currentStep == nil {
		p.printf("No hay pregunta en curso.\n")
		return
	}
	hint, err := p.tutor.Hint(ctx, p.currentStep.Item, p.hintsUsed)
	if err != nil {
		p.printf("No pude generar una pista: %v\n", err)
		return
	}
	p.hintsUsed++
	p.printf("💡 %s\n", hint)
}

func (p *practiceSession) ask(ctx context.Context, question string) {
	if p.tutor == nil {
		p.printf("El chat necesita un proveedor LLM configurado.\n")
		return
	}
	answer, err := p.tutor.Ask(ctx, question)
	if err != nil {
		p.printf("No pude responder: %v\n", err)
		return
	}
	p.printf("%s\n", answer)
}

func (p *practiceSession) printSummary() {
	s := p.tracker.Summary()
	p.printf("\nResumen de la sesión\n")
	p.printf("  Respondidas: %d (%.0f%% de aciertos)\n", s.Answered, 100*s.Accuracy)
	if s.AvgTime > 0 {
		p.printf("  Tiempo medio: %s\n", s.AvgTime.Round(time.Second))
	}
	if len(s.ConceptsCovered) > 0 {
		p.printf("  Conceptos: %s\n", strings.Join(p.conceptNames(s.ConceptsCovered), ", "))
	}
	for _, d := range s.MasteryDeltas {
		name := d.ConceptID
		if c, err := p.graph.Concept(d.ConceptID); err == nil {
			name = c.Name
		}
		p.printf("  %-30s %.0f%% → %.0f%%\n", name, 100*d.Before, 100*d.After)
	}
}

// finish ends the session, printing the summary when anything happened.
func (p *practiceSession) finish(ctx context.Context) error {
	if s := p.tracker.Summary(); s.Answered > 0 {
		p.printSummary()
	}
	if p.engine.State() == policy.StatePaused {
		// Leave a paused session resumable.
		p.printf("Sesión guardada. Vuelve con --resume.\n")
		return nil
	}
	if err := p.tracker.End(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	p.printf("¡Hasta la próxima!\n")
	return nil
}
