package builder

import "errors"

var (
	// ErrSaveInFlight is returned by Save when another save has not come
	// back yet. The caller waits for the next tick instead of queueing.
	ErrSaveInFlight = errors.New("save already in flight")

	// ErrMissingRequired is returned by FillSession when required questions
	// on the current page are unanswered.
	ErrMissingRequired = errors.New("required questions unanswered")

	// ErrAlreadySubmitted guards against double submission of a fill
	// session.
	ErrAlreadySubmitted = errors.New("response already submitted")
)
