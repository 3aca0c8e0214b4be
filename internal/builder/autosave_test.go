package builder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaver struct {
	mu      sync.Mutex
	creates int
	updates int
	lastID  string
	last    SavePayload
	block   chan struct{} // when set, saves wait on it before returning
	err     error
}

func (f *fakeSaver) CreateForm(ctx context.Context, payload SavePayload) (string, error) {
	f.mu.Lock()
	block, err := f.block, f.err
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		return "", err
	}
	f.creates++
	f.last = payload
	return "form-abc", nil
}

func (f *fakeSaver) UpdateForm(ctx context.Context, id string, payload SavePayload) error {
	f.mu.Lock()
	block, err := f.block, f.err
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		return err
	}
	f.updates++
	f.lastID = id
	f.last = payload
	return nil
}

func (f *fakeSaver) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates, f.updates
}

func TestAutosaveCreatesThenBinds(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(Meta{Title: "Untitled form"}, Theme{}, nil, saver,
		WithDebounce(5*time.Millisecond))
	defer s.Close()

	s.AddQuestion(-1, TypeShortText)

	require.Eventually(t, func() bool {
		c, _ := saver.counts()
		return c == 1
	}, time.Second, time.Millisecond, "debounced save should create the form")
	assert.Equal(t, "form-abc", s.FormID())

	// The next edit saves against the bound id.
	s.AddQuestion(0, TypeDate)
	require.Eventually(t, func() bool {
		_, u := saver.counts()
		return u == 1
	}, time.Second, time.Millisecond)

	saver.mu.Lock()
	assert.Equal(t, "form-abc", saver.lastID)
	assert.Len(t, saver.last.Questions, 2)
	saver.mu.Unlock()

	c, _ := saver.counts()
	assert.Equal(t, 1, c, "the form is only ever created once")
}

func TestAutosaveDebounceCoalescesEdits(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(Meta{}, Theme{}, nil, saver,
		WithDebounce(30*time.Millisecond), WithFormID("existing"))
	defer s.Close()

	// A burst of edits inside the quiet period yields one save.
	for i := 0; i < 5; i++ {
		s.AddQuestion(i-1, TypeShortText)
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		_, u := saver.counts()
		return u >= 1
	}, time.Second, time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	_, u := saver.counts()
	assert.Equal(t, 1, u, "burst of edits must coalesce into one save")

	saver.mu.Lock()
	assert.Len(t, saver.last.Questions, 5)
	saver.mu.Unlock()
}

func TestSaveRejectsWhileInFlight(t *testing.T) {
	saver := &fakeSaver{block: make(chan struct{})}
	s := NewSession(Meta{}, Theme{}, nil, saver, WithFormID("existing"),
		WithDebounce(time.Hour))
	defer s.Close()

	done := make(chan error, 1)
	go func() { done <- s.Save(context.Background()) }()

	// Wait for the first save to reach the saver, then try to overlap it.
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.inFlight
	}, time.Second, time.Millisecond)

	err := s.Save(context.Background())
	assert.ErrorIs(t, err, ErrSaveInFlight)

	close(saver.block)
	require.NoError(t, <-done)

	// With the first save finished, saving works again.
	saver.mu.Lock()
	saver.block = nil
	saver.mu.Unlock()
	assert.NoError(t, s.Save(context.Background()))
}

func TestAutosaveFailureKeepsStateAndReportsError(t *testing.T) {
	saver := &fakeSaver{err: errors.New("backend down")}

	var mu sync.Mutex
	var reported error
	s := NewSession(Meta{}, Theme{}, nil, saver,
		WithDebounce(5*time.Millisecond), WithFormID("existing"),
		WithSaveErrorHandler(func(err error) {
			mu.Lock()
			reported = err
			mu.Unlock()
		}))
	defer s.Close()

	q := s.AddQuestion(-1, TypeShortText)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reported != nil
	}, time.Second, time.Millisecond)

	// The failed save never rolls back the in-memory document.
	assert.Equal(t, []int{q.ID}, ids(s.Questions()))

	// Once the backend recovers, the next edit saves the full state.
	saver.mu.Lock()
	saver.err = nil
	saver.mu.Unlock()
	s.AddQuestion(0, TypeDate)

	require.Eventually(t, func() bool {
		_, u := saver.counts()
		return u == 1
	}, time.Second, time.Millisecond)
	saver.mu.Lock()
	assert.Len(t, saver.last.Questions, 2)
	saver.mu.Unlock()
}

func TestManualSaveBypassesDebounce(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(Meta{Title: "t"}, Theme{}, nil, saver, WithDebounce(time.Hour))
	defer s.Close()

	s.AddQuestion(-1, TypeShortText)
	require.NoError(t, s.Save(context.Background()))

	c, _ := saver.counts()
	assert.Equal(t, 1, c)
	assert.Equal(t, "form-abc", s.FormID())
}

func TestCloseStopsPendingAutosave(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(Meta{}, Theme{}, nil, saver,
		WithDebounce(20*time.Millisecond), WithFormID("existing"))

	s.AddQuestion(-1, TypeShortText)
	s.Close()

	time.Sleep(50 * time.Millisecond)
	c, u := saver.counts()
	assert.Zero(t, c+u, "no save may fire after Close")
}
