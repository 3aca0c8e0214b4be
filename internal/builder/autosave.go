package builder

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// scheduleSaveLocked arms (or re-arms) the debounce timer. Every edit calls
// this, so the save fires a fixed quiet period after the last edit.
func (s *Session) scheduleSaveLocked() {
	if s.saver == nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.autosave()
	})
}

// autosave is the debounce timer body. A save triggered while another is in
// flight is dropped, not queued; the next debounce tick retries with
// whatever the state is by then.
func (s *Session) autosave() {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		log.Debug().Msg("autosave skipped, save already in flight")
		return
	}
	s.inFlight = true
	payload := s.payloadLocked()
	id := s.formID
	s.mu.Unlock()

	err := s.persist(context.Background(), id, payload)

	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Msg("autosave failed, will retry on next edit")
		if s.onError != nil {
			s.onError(err)
		}
	}
}

// Save persists the current state immediately, bypassing the debounce but
// honoring the single in-flight guard. The first successful save of a new
// form binds the session to the backend id.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.saver == nil {
		s.mu.Unlock()
		return nil
	}
	if s.inFlight {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.inFlight = true
	if s.timer != nil {
		s.timer.Stop()
	}
	payload := s.payloadLocked()
	id := s.formID
	s.mu.Unlock()

	err := s.persist(ctx, id, payload)

	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
	return err
}

func (s *Session) persist(ctx context.Context, id string, payload SavePayload) error {
	if id == "" {
		newID, err := s.saver.CreateForm(ctx, payload)
		if err != nil {
			return err
		}
		s.mu.Lock()
		// Bind once; later saves address this id, so repeated first-save
		// ticks stay idempotent.
		if s.formID == "" {
			s.formID = newID
		}
		s.mu.Unlock()
		return nil
	}
	return s.saver.UpdateForm(ctx, id, payload)
}

// Close stops the debounce timer. Pending edits are not flushed; callers
// wanting durability call Save first.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
