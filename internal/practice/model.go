package practice

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/prepiz/internal/engine"
	"github.com/abhisek/prepiz/internal/leveling"
	"github.com/abhisek/prepiz/internal/logger"
	"github.com/abhisek/prepiz/internal/progress"
	"github.com/abhisek/prepiz/internal/questions"
	"github.com/abhisek/prepiz/internal/selector"
	"github.com/abhisek/prepiz/internal/ui/components"
)

// DefaultCount is the number of questions in a session.
const DefaultCount = 10

type phase int

const (
	phasePickTopic phase = iota
	phaseLoading
	phaseQuestion
	phaseFeedback
	phaseSummary
	phaseError
)

// Options configures a practice session.
type Options struct {
	// TopicID skips the topic menu when set.
	TopicID string
	Count   int
	Select  selector.Options
}

// Summary is what the learner sees when the session ends.
type Summary struct {
	Answered     int
	Correct      int
	TimeSpent    int
	LevelUps     []*leveling.LevelUp
	Achievements []progress.Achievement
	NewDay       bool
	Streak       int
	Unsaved      int
}

// Accuracy is the session accuracy in [0,1].
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Model is the Bubble Tea model for one practice session.
type Model struct {
	eng       *engine.Engine
	bank      *questions.Bank
	opts      Options
	log       *logger.Logger
	now       func() time.Time
	sessionID string

	phase  phase
	width  int
	height int
	menu   components.Menu
	topic  questions.Topic

	batch      []questions.Question
	index      int
	mcActive   bool
	choice     components.MultiChoice
	input      components.TextInput
	shownAt    time.Time
	correct    bool
	lastResult *engine.AttemptResult

	// recording is true while an attempt is in flight. A key pressed during
	// feedback waits for it so the session is never counted before its
	// attempts are saved.
	recording   bool
	advanceWait bool
	quitConfirm bool

	summary Summary
	errMsg  string
}

// New creates a practice model over bank. A nil log discards output.
func New(eng *engine.Engine, bank *questions.Bank, opts Options, log *logger.Logger) *Model {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	m := &Model{
		eng:       eng,
		bank:      bank,
		opts:      opts,
		now:       time.Now,
		sessionID: uuid.NewString(),
	}
	m.log = log.With("session_id", m.sessionID)

	if opts.TopicID != "" {
		m.topic = m.lookupTopic(opts.TopicID)
		m.phase = phaseLoading
		return m
	}
	m.menu = m.buildMenu()
	m.phase = phasePickTopic
	return m
}

func (m *Model) lookupTopic(id string) questions.Topic {
	for _, t := range m.bank.Topics() {
		if t.ID == id {
			return t
		}
	}
	return questions.Topic{ID: id, Name: id}
}

func (m *Model) buildMenu() components.Menu {
	rec := m.eng.Progress(context.Background())
	var items []components.MenuItem
	for _, t := range m.bank.Topics() {
		level := leveling.MinLevel
		if tp := rec.Topic(t.ID); tp != nil {
			level = tp.Level
		}
		items = append(items, components.MenuItem{
			Label:  t.Name,
			Detail: fmt.Sprintf("%d questions · %s", t.Count, leveling.LevelName(level)),
			Action: func() tea.Cmd {
				return func() tea.Msg { return topicChosenMsg{Topic: t} }
			},
		})
	}
	return components.NewMenu(items)
}

// Summary returns the session summary so far.
func (m *Model) Summary() Summary {
	return m.summary
}

func (m *Model) Init() tea.Cmd {
	if m.phase == phaseLoading {
		return m.selectBatch()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case topicChosenMsg:
		m.topic = msg.Topic
		m.phase = phaseLoading
		return m, m.selectBatch()

	case batchReadyMsg:
		return m.handleBatch(msg)

	case attemptRecordedMsg:
		return m.handleRecorded(msg)

	case sessionDoneMsg:
		return m.handleDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseQuestion && !m.mcActive && !m.quitConfirm {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// selectBatch asks the engine for the session's questions.
func (m *Model) selectBatch() tea.Cmd {
	eng, topic, pool, count, opts := m.eng, m.topic, m.bank.ForTopic(m.topic.ID), m.opts.Count, m.opts.Select
	return func() tea.Msg {
		qs := eng.SelectQuestions(context.Background(), topic.ID, pool, count, opts)
		return batchReadyMsg{Questions: qs}
	}
}

func (m *Model) handleBatch(msg batchReadyMsg) (tea.Model, tea.Cmd) {
	if len(msg.Questions) == 0 {
		m.phase = phaseError
		m.errMsg = fmt.Sprintf("no questions available for %q", m.topic.Name)
		return m, nil
	}
	m.batch = msg.Questions
	m.index = 0
	m.log.Info("practice started", "topic", m.topic.ID, "questions", len(m.batch))
	return m, m.showQuestion()
}

func (m *Model) showQuestion() tea.Cmd {
	q := m.batch[m.index]
	m.phase = phaseQuestion
	m.shownAt = m.now()
	m.lastResult = nil
	m.mcActive = q.Format == questions.FormatMultipleChoice
	if m.mcActive {
		m.choice = components.NewMultiChoice(q.Choices, q.Answer)
		return nil
	}
	m.input = components.NewTextInput("Type your answer...", q.Format == questions.FormatNumeric, 40)
	return m.input.Init()
}

// Current returns the question on screen, if any.
func (m *Model) Current() (questions.Question, bool) {
	if m.index >= len(m.batch) || (m.phase != phaseQuestion && m.phase != phaseFeedback) {
		return questions.Question{}, false
	}
	return m.batch[m.index], true
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phasePickTopic:
		if key == "q" || key == "esc" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd

	case phaseLoading:
		return m, nil

	case phaseError, phaseSummary:
		return m, tea.Quit

	case phaseFeedback:
		if m.recording {
			m.advanceWait = true
			return m, nil
		}
		return m.advance()
	}

	// Question phase.
	if m.quitConfirm {
		switch key {
		case "y", "Y":
			m.quitConfirm = false
			return m.finish()
		case "n", "N", "esc":
			m.quitConfirm = false
		}
		return m, nil
	}

	if key == "esc" {
		m.quitConfirm = true
		return m, nil
	}

	if m.mcActive {
		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		if m.choice.Submitted {
			return m.submitAnswer(m.choice.Choice())
		}
		return m, cmd
	}

	if key == "enter" {
		if m.input.Value() == "" {
			return m, nil
		}
		return m.submitAnswer(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitAnswer grades locally and hands the attempt to the engine.
func (m *Model) submitAnswer(answer string) (tea.Model, tea.Cmd) {
	q := m.batch[m.index]
	m.correct = questions.Check(q, answer)
	if !m.mcActive {
		m.input.Submit(m.correct)
	}

	spent := int(m.now().Sub(m.shownAt).Round(time.Second).Seconds())
	m.summary.Answered++
	if m.correct {
		m.summary.Correct++
	}
	m.summary.TimeSpent += spent

	m.phase = phaseFeedback
	m.recording = true

	name := q.TopicName
	if name == "" {
		name = m.topic.Name
	}
	a := engine.Attempt{
		TopicID:          m.topic.ID,
		TopicName:        name,
		IsCorrect:        m.correct,
		TimeSpentSeconds: spent,
		QuestionType:     string(q.Format),
		QuestionID:       q.ID,
		Tags:             q.Tags,
	}
	eng := m.eng
	return m, func() tea.Msg {
		res, err := eng.RecordAttempt(context.Background(), a)
		return attemptRecordedMsg{Result: res, Err: err}
	}
}

func (m *Model) handleRecorded(msg attemptRecordedMsg) (tea.Model, tea.Cmd) {
	m.recording = false
	if msg.Err != nil {
		m.summary.Unsaved++
		m.log.Warn("attempt not saved", "topic", m.topic.ID, "error", msg.Err)
	}
	if res := msg.Result; res != nil {
		m.lastResult = res
		if res.LevelUp != nil {
			m.summary.LevelUps = append(m.summary.LevelUps, res.LevelUp)
		}
		m.summary.Achievements = append(m.summary.Achievements, res.Achievements...)
		if res.IsNewDay {
			m.summary.NewDay = true
		}
		if res.Record != nil {
			m.summary.Streak = res.Record.OverallStats.StudyStreak
		}
	}
	if m.advanceWait {
		m.advanceWait = false
		return m.advance()
	}
	return m, nil
}

func (m *Model) advance() (tea.Model, tea.Cmd) {
	m.index++
	if m.index >= len(m.batch) {
		return m.finish()
	}
	return m, m.showQuestion()
}

// finish counts the session. With nothing answered there is nothing to count.
func (m *Model) finish() (tea.Model, tea.Cmd) {
	m.phase = phaseSummary
	if m.summary.Answered == 0 {
		return m, nil
	}
	eng := m.eng
	return m, func() tea.Msg {
		rec, err := eng.CompleteSession(context.Background())
		return sessionDoneMsg{Record: rec, Err: err}
	}
}

func (m *Model) handleDone(msg sessionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn("session not counted", "error", msg.Err)
		return m, nil
	}
	if msg.Record != nil {
		m.summary.Streak = msg.Record.OverallStats.StudyStreak
	}
	m.log.Info("practice finished",
		"topic", m.topic.ID,
		"answered", m.summary.Answered,
		"correct", m.summary.Correct,
	)
	return m, nil
}

// Run starts the Bubble Tea program and returns the final summary.
func Run(m *Model) (Summary, error) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return Summary{}, fmt.Errorf("run practice: %w", err)
	}
	if fm, ok := final.(*Model); ok {
		return fm.Summary(), nil
	}
	return m.Summary(), nil
}
