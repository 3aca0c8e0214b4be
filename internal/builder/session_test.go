package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(questions ...Question) *Session {
	return NewSession(Meta{Title: "Untitled form"}, Theme{}, questions, nil)
}

func ids(qs []Question) []int {
	out := make([]int, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func TestAddQuestionAllocatesMaxPlusOne(t *testing.T) {
	s := newTestSession()

	q1 := s.AddQuestion(-1, TypeShortText)
	assert.Equal(t, 1, q1.ID)

	q2 := s.AddQuestion(0, TypeRadio)
	assert.Equal(t, 2, q2.ID)

	// Deleting the highest id frees it for reuse; max+1 only ever looks at
	// the surviving set.
	require.True(t, s.DeleteQuestion(q2.ID))
	q3 := s.AddQuestion(0, TypeDate)
	assert.Equal(t, 2, q3.ID)

	// Deleting a lower id must not cause a collision.
	require.True(t, s.DeleteQuestion(q1.ID))
	q4 := s.AddQuestion(-1, TypeCheckbox)
	assert.Equal(t, 3, q4.ID)
	assert.Equal(t, []int{3, 2}, ids(s.Questions()))
}

func TestAddQuestionSplicePosition(t *testing.T) {
	s := newTestSession(
		NewQuestion(1, TypeShortText),
		NewQuestion(2, TypeShortText),
	)

	q := s.AddQuestion(0, TypeSection)
	assert.Equal(t, []int{1, q.ID, 2}, ids(s.Questions()))
	assert.Equal(t, q.ID, s.ActiveID())

	head := s.AddQuestion(-1, TypeText)
	assert.Equal(t, head.ID, ids(s.Questions())[0])

	tail := s.AddQuestion(99, TypeDate)
	got := ids(s.Questions())
	assert.Equal(t, tail.ID, got[len(got)-1])
}

func TestUpdateQuestionDoesNotPushHistory(t *testing.T) {
	s := newTestSession(NewQuestion(1, TypeShortText))

	q := s.Questions()[0]
	q.Title = "keystroke 1"
	require.True(t, s.UpdateQuestion(1, q))
	q.Title = "keystroke 12"
	require.True(t, s.UpdateQuestion(1, q))

	// No commit happened, so undo falls back to the opening state.
	require.True(t, s.Undo())
	assert.Equal(t, "Untitled question", s.Questions()[0].Title)
	assert.False(t, s.Undo(), "already at the bottom of the stack")
}

func TestCommitMakesUpdatesUndoable(t *testing.T) {
	s := newTestSession(NewQuestion(1, TypeShortText))

	q := s.Questions()[0]
	q.Title = "What is your name?"
	require.True(t, s.UpdateQuestion(1, q))
	s.Commit()

	q.Title = "What is your email?"
	require.True(t, s.UpdateQuestion(1, q))
	s.Commit()

	require.True(t, s.Undo())
	assert.Equal(t, "What is your name?", s.Questions()[0].Title)
	require.True(t, s.Undo())
	assert.Equal(t, "Untitled question", s.Questions()[0].Title)

	require.True(t, s.Redo())
	assert.Equal(t, "What is your name?", s.Questions()[0].Title)
	require.True(t, s.Redo())
	assert.Equal(t, "What is your email?", s.Questions()[0].Title)
	assert.False(t, s.Redo(), "already at the top of the stack")
}

func TestUpdateQuestionUnknownID(t *testing.T) {
	s := newTestSession(NewQuestion(1, TypeShortText))
	assert.False(t, s.UpdateQuestion(42, NewQuestion(42, TypeShortText)))
}

func TestUpdateQuestionNormalizes(t *testing.T) {
	s := newTestSession(NewQuestion(1, TypeImage))
	q := s.Questions()[0]
	q.Media.Width = 5000
	require.True(t, s.UpdateQuestion(1, q))
	assert.Equal(t, MaxMediaWidth, s.Questions()[0].Media.Width)
}

func TestDeleteQuestion(t *testing.T) {
	s := newTestSession(NewQuestion(1, TypeShortText), NewQuestion(2, TypeDate))

	assert.False(t, s.DeleteQuestion(42))
	require.True(t, s.DeleteQuestion(1))
	assert.Equal(t, []int{2}, ids(s.Questions()))

	require.True(t, s.Undo())
	assert.Equal(t, []int{1, 2}, ids(s.Questions()))
}

func TestDeleteClearsActive(t *testing.T) {
	s := newTestSession()
	q := s.AddQuestion(-1, TypeShortText)
	require.Equal(t, q.ID, s.ActiveID())
	require.True(t, s.DeleteQuestion(q.ID))
	assert.Zero(t, s.ActiveID())
}

func TestDuplicateQuestion(t *testing.T) {
	s := newTestSession(
		NewQuestion(1, TypeRadio),
		NewQuestion(2, TypeDate),
	)
	orig := s.Questions()[0]
	orig.Title = "Favorite color"
	orig.Choice.Options = []string{"red", "blue"}
	require.True(t, s.UpdateQuestion(1, orig))

	clone, ok := s.DuplicateQuestion(1)
	require.True(t, ok)
	assert.Equal(t, 3, clone.ID)
	assert.Equal(t, "Favorite color (copy)", clone.Title)
	assert.Equal(t, []int{1, 3, 2}, ids(s.Questions()))
	assert.Equal(t, clone.ID, s.ActiveID())

	// The clone's payload is independent of the original.
	clone.Choice.Options[0] = "green"
	require.True(t, s.UpdateQuestion(clone.ID, clone))
	assert.Equal(t, "red", s.Questions()[0].Choice.Options[0])

	_, ok = s.DuplicateQuestion(42)
	assert.False(t, ok)
}

func TestReorderGesture(t *testing.T) {
	s := newTestSession(
		NewQuestion(1, TypeShortText),
		NewQuestion(2, TypeLongText),
		NewQuestion(3, TypeDate),
	)

	// Live reorder while dragging: each hover moves the question without
	// touching history.
	s.Reorder(1, 2)
	assert.Equal(t, []int{2, 1, 3}, ids(s.Questions()))
	s.Reorder(1, 3)
	assert.Equal(t, []int{2, 3, 1}, ids(s.Questions()))

	s.EndReorder()

	// One undo rolls the whole gesture back.
	require.True(t, s.Undo())
	assert.Equal(t, []int{1, 2, 3}, ids(s.Questions()))
	require.True(t, s.Redo())
	assert.Equal(t, []int{2, 3, 1}, ids(s.Questions()))
}

func TestReorderNoops(t *testing.T) {
	s := newTestSession(NewQuestion(1, TypeShortText), NewQuestion(2, TypeDate))

	s.Reorder(1, 1)
	s.Reorder(1, 42)
	s.Reorder(42, 1)
	assert.Equal(t, []int{1, 2}, ids(s.Questions()))

	// EndReorder without a drag must not push a history entry.
	s.EndReorder()
	assert.False(t, s.Undo())
}

func TestUpdateThemeCommits(t *testing.T) {
	s := newTestSession()
	s.UpdateTheme(Theme{AccentColor: "#ff0000"})
	assert.Equal(t, "#ff0000", s.Theme().AccentColor)

	require.True(t, s.Undo())
	assert.Empty(t, s.Theme().AccentColor)
	require.True(t, s.Redo())
	assert.Equal(t, "#ff0000", s.Theme().AccentColor)
}

func TestUpdateMetaDoesNotCommit(t *testing.T) {
	s := newTestSession()
	s.UpdateMeta(Meta{Title: "Customer survey"})
	assert.Equal(t, "Customer survey", s.Meta().Title)
	assert.False(t, s.Undo())
}

func TestUndoDiscardsRedoTailOnNewEdit(t *testing.T) {
	s := newTestSession()
	s.AddQuestion(-1, TypeShortText)
	s.AddQuestion(0, TypeDate)

	require.True(t, s.Undo())
	s.AddQuestion(0, TypeRadio) // new edit forks the history

	assert.False(t, s.Redo(), "redo tail must be gone")
	got := ids(s.Questions())
	require.Len(t, got, 2)
}

func TestSessionPaginateAndValidate(t *testing.T) {
	s := newTestSession(
		Question{ID: 1, Type: TypeShortText, Required: true},
		Question{ID: 2, Type: TypeSection},
		Question{ID: 3, Type: TypeDate, Required: true},
	)
	pages := s.Paginate()
	require.Len(t, pages, 2)
	assert.Equal(t, []int{1}, s.ValidatePage(0, AnswerSet{}))
	assert.Nil(t, s.ValidatePage(0, AnswerSet{1: "x"}))
	assert.Equal(t, []int{3}, s.ValidatePage(1, AnswerSet{}))
}
