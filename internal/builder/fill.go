package builder

import "context"

// FormDocument is the published form as the public renderer sees it.
type FormDocument struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Theme       Theme      `json:"theme"`
	BannerImage string     `json:"bannerImage,omitempty"`
	Questions   []Question `json:"questions"`
	Status      string     `json:"status"`
}

// Submitter posts a completed answer set as a new response.
type Submitter interface {
	SubmitResponse(ctx context.Context, formID string, answers AnswerSet) error
}

// FillState is the terminal/non-terminal state of a fill session.
type FillState string

const (
	FillInProgress FillState = "in_progress"
	FillSubmitted  FillState = "submitted"
	FillError      FillState = "error"
)

// FillSession walks a respondent through a published form: page by page,
// validating required questions before advancing, submitting once at the
// end. It is the renderer-side mirror of the builder Session and reuses its
// pagination and validation verbatim.
type FillSession struct {
	form      FormDocument
	pages     []Page
	page      int
	answers   AnswerSet
	missing   []int // ids highlighted on the current page after a failed advance
	state     FillState
	submitter Submitter
}

// NewFillSession prepares a fill-in pass over a fetched form document.
func NewFillSession(form FormDocument, submitter Submitter) *FillSession {
	return &FillSession{
		form:      form,
		pages:     Paginate(form.Questions),
		answers:   AnswerSet{},
		state:     FillInProgress,
		submitter: submitter,
	}
}

// Answer records the value for a question and clears its error highlight.
func (f *FillSession) Answer(questionID int, value any) {
	f.answers[questionID] = value
	for i, id := range f.missing {
		if id == questionID && !IsEmptyAnswer(value) {
			f.missing = append(f.missing[:i], f.missing[i+1:]...)
			break
		}
	}
}

// Page returns the current zero-based page index.
func (f *FillSession) Page() int { return f.page }

// PageCount returns the total number of pages.
func (f *FillSession) PageCount() int { return len(f.pages) }

// Missing returns the question ids currently highlighted as unanswered.
func (f *FillSession) Missing() []int { return append([]int(nil), f.missing...) }

// State returns the session state.
func (f *FillSession) State() FillState { return f.state }

// Answers returns a copy of the collected answer set.
func (f *FillSession) Answers() AnswerSet {
	out := make(AnswerSet, len(f.answers))
	for k, v := range f.answers {
		out[k] = v
	}
	return out
}

// NextPage validates the current page and advances when it is clean.
// On validation failure the session stays on the page with the offending
// ids recorded.
func (f *FillSession) NextPage() error {
	if missing := ValidatePage(f.pages, f.page, f.answers); len(missing) > 0 {
		f.missing = missing
		return ErrMissingRequired
	}
	f.missing = nil
	if f.page < len(f.pages)-1 {
		f.page++
	}
	return nil
}

// PrevPage moves back one page; answers are retained.
func (f *FillSession) PrevPage() {
	if f.page > 0 {
		f.page--
	}
}

// Submit validates the final page and posts the answer map. Validation
// failures never reach the network. A network or backend failure puts the
// session in the error state but keeps the answers, so the respondent can
// retry.
func (f *FillSession) Submit(ctx context.Context) error {
	if f.state == FillSubmitted {
		return ErrAlreadySubmitted
	}
	if missing := ValidatePage(f.pages, f.page, f.answers); len(missing) > 0 {
		f.missing = missing
		return ErrMissingRequired
	}
	f.missing = nil

	if err := f.submitter.SubmitResponse(ctx, f.form.ID, f.answers); err != nil {
		f.state = FillError
		return err
	}
	f.state = FillSubmitted
	return nil
}
