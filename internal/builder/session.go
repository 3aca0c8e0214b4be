package builder

import (
	"context"
	"sync"
	"time"
)

// Theme carries the form's visual configuration.
type Theme struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	CardColor       string `json:"cardColor,omitempty"`
	AccentColor     string `json:"accentColor,omitempty"`
	BannerImage     string `json:"bannerImage,omitempty"`
}

// Meta is the non-question form metadata edited alongside the questions.
type Meta struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BannerImage string `json:"bannerImage,omitempty"`
}

// SavePayload is what one autosave tick persists.
type SavePayload struct {
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Theme       Theme      `json:"theme"`
	Questions   []Question `json:"questions"`
	BannerImage string     `json:"bannerImage,omitempty"`
}

// Saver persists the editing state. The first successful Create binds the
// session to the returned form id; every later save updates that id.
type Saver interface {
	CreateForm(ctx context.Context, payload SavePayload) (string, error)
	UpdateForm(ctx context.Context, id string, payload SavePayload) error
}

// snapshot is one undo/redo history entry: a deep copy of the whole
// editable state.
type snapshot struct {
	theme     Theme
	meta      Meta
	questions []Question
}

// Session owns one form document while it is being authored: the mutable
// state, the history stack, the active drag, and autosave scheduling.
// All methods are safe for the autosave timer goroutine to race with the
// editing goroutine.
type Session struct {
	mu sync.Mutex

	theme     Theme
	meta      Meta
	questions []Question

	history []snapshot
	cursor  int

	activeID int // question currently focused in the editor, 0 if none
	dragID   int // question being dragged, 0 outside a drag gesture

	formID string
	saver  Saver

	debounce time.Duration
	timer    *time.Timer
	inFlight bool
	onError  func(error)
}

// DefaultDebounce is the quiet period after the last edit before autosave
// fires.
const DefaultDebounce = 2 * time.Second

// Option configures a Session.
type Option func(*Session)

// WithDebounce overrides the autosave quiet period.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

// WithFormID starts the session bound to an already-persisted form.
func WithFormID(id string) Option {
	return func(s *Session) { s.formID = id }
}

// WithSaveErrorHandler installs the callback invoked when an autosave
// fails. Failures never roll back in-memory state.
func WithSaveErrorHandler(fn func(error)) Option {
	return func(s *Session) { s.onError = fn }
}

// NewSession opens an editing session over an existing document state. The
// initial state becomes the floor of the history stack, so the first Undo
// after one edit returns to it.
func NewSession(meta Meta, theme Theme, questions []Question, saver Saver, opts ...Option) *Session {
	s := &Session{
		meta:      meta,
		theme:     theme,
		questions: cloneQuestions(questions),
		saver:     saver,
		debounce:  DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = []snapshot{s.snapshotLocked()}
	s.cursor = 0
	return s
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

func (s *Session) snapshotLocked() snapshot {
	return snapshot{
		theme:     s.theme,
		meta:      s.meta,
		questions: cloneQuestions(s.questions),
	}
}

// pushHistoryLocked records the current state as a new history entry,
// discarding any redo tail.
func (s *Session) pushHistoryLocked() {
	s.history = append(s.history[:s.cursor+1], s.snapshotLocked())
	s.cursor = len(s.history) - 1
}

func (s *Session) restoreLocked(sn snapshot) {
	s.theme = sn.theme
	s.meta = sn.meta
	s.questions = cloneQuestions(sn.questions)
}

// nextIDLocked allocates max(id)+1, or 1 for an empty form. Deleted ids are
// never reused within the surviving set.
func (s *Session) nextIDLocked() int {
	max := 0
	for _, q := range s.questions {
		if q.ID > max {
			max = q.ID
		}
	}
	return max + 1
}

func (s *Session) indexOfLocked(id int) int {
	for i, q := range s.questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// AddQuestion splices a new question of the given type immediately after
// afterIndex (-1 prepends), pushes a history snapshot, and makes the new
// question active. It always succeeds and returns the new question.
func (s *Session) AddQuestion(afterIndex int, t QuestionType) Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := NewQuestion(s.nextIDLocked(), t)

	at := afterIndex + 1
	if at < 0 {
		at = 0
	}
	if at > len(s.questions) {
		at = len(s.questions)
	}
	s.questions = append(s.questions, Question{})
	copy(s.questions[at+1:], s.questions[at:])
	s.questions[at] = q

	s.pushHistoryLocked()
	s.activeID = q.ID
	s.scheduleSaveLocked()
	return q
}

// UpdateQuestion replaces the question with matching id wholesale. Callers
// carry forward unrelated fields themselves. It does NOT push history:
// commits happen on discrete boundaries (Commit, delete, duplicate, drag
// end) so keystrokes do not flood the undo stack.
func (s *Session) UpdateQuestion(id int, q Question) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return false
	}
	q.ID = id
	q.Normalize()
	s.questions[i] = q.Clone()
	s.scheduleSaveLocked()
	return true
}

// Commit pushes a history snapshot of the current state. The editor calls
// it on blur-style boundaries after a run of UpdateQuestion calls.
func (s *Session) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushHistoryLocked()
}

// UpdateTheme replaces the theme and commits.
func (s *Session) UpdateTheme(t Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	s.pushHistoryLocked()
	s.scheduleSaveLocked()
}

// UpdateMeta replaces the form metadata without committing; metadata edits
// share the keystroke rule with question titles.
func (s *Session) UpdateMeta(m Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = m
	s.scheduleSaveLocked()
}

// DeleteQuestion removes by id and pushes history. Returns false when the
// id is unknown.
func (s *Session) DeleteQuestion(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return false
	}
	s.questions = append(s.questions[:i], s.questions[i+1:]...)
	if s.activeID == id {
		s.activeID = 0
	}
	s.pushHistoryLocked()
	s.scheduleSaveLocked()
	return true
}

// DuplicateQuestion clones the question under a fresh id, suffixes the
// title, inserts the clone immediately after the original, pushes history,
// and activates the clone.
func (s *Session) DuplicateQuestion(id int) (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return Question{}, false
	}
	clone := s.questions[i].Clone()
	clone.ID = s.nextIDLocked()
	clone.Title += " (copy)"

	s.questions = append(s.questions, Question{})
	copy(s.questions[i+2:], s.questions[i+1:])
	s.questions[i+1] = clone

	s.pushHistoryLocked()
	s.activeID = clone.ID
	s.scheduleSaveLocked()
	return clone, true
}

// Reorder moves the dragged question to the target's position. Called
// repeatedly while a drag gesture is in progress (live reorder); history is
// only committed by EndReorder.
func (s *Session) Reorder(draggedID, targetID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draggedID == targetID {
		return
	}
	from := s.indexOfLocked(draggedID)
	to := s.indexOfLocked(targetID)
	if from < 0 || to < 0 {
		return
	}

	q := s.questions[from]
	s.questions = append(s.questions[:from], s.questions[from+1:]...)
	s.questions = append(s.questions, Question{})
	copy(s.questions[to+1:], s.questions[to:])
	s.questions[to] = q

	s.dragID = draggedID
}

// EndReorder commits the drag gesture to history.
func (s *Session) EndReorder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dragID == 0 {
		return
	}
	s.dragID = 0
	s.pushHistoryLocked()
	s.scheduleSaveLocked()
}

// Undo steps the history cursor back and restores that snapshot. No-op at
// the bottom of the stack.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	s.restoreLocked(s.history[s.cursor])
	s.scheduleSaveLocked()
	return true
}

// Redo steps the cursor forward. No-op at the top of the stack.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.history)-1 {
		return false
	}
	s.cursor++
	s.restoreLocked(s.history[s.cursor])
	s.scheduleSaveLocked()
	return true
}

// Paginate returns the current page structure.
func (s *Session) Paginate() []Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Paginate(cloneQuestions(s.questions))
}

// ValidatePage checks required answers for one page of the current state;
// the in-builder preview uses this exactly like the public renderer.
func (s *Session) ValidatePage(pageIndex int, answers AnswerSet) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ValidatePage(Paginate(s.questions), pageIndex, answers)
}

// Questions returns a copy of the current question order.
func (s *Session) Questions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneQuestions(s.questions)
}

// Meta returns the current form metadata.
func (s *Session) Meta() Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// Theme returns the current theme.
func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ActiveID returns the focused question id, 0 if none.
func (s *Session) ActiveID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// FormID returns the bound backend id, empty before the first successful
// save of a new form.
func (s *Session) FormID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formID
}

func (s *Session) payloadLocked() SavePayload {
	return SavePayload{
		Name:        s.meta.Name,
		Title:       s.meta.Title,
		Description: s.meta.Description,
		Theme:       s.theme,
		Questions:   cloneQuestions(s.questions),
		BannerImage: s.meta.BannerImage,
	}
}
