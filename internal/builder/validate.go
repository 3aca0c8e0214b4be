package builder

// AnswerSet maps question id to the collected answer value. Values are
// scalars (string, float64, bool), string lists for multi-select, or
// sentinel-prefixed "Other" strings.
type AnswerSet map[int]any

// IsEmptyAnswer reports whether a value counts as "unanswered": nil, an
// empty string, or an empty list.
func IsEmptyAnswer(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	}
	return false
}

// ValidatePage returns the ids of required, answerable questions on the
// given page whose answer is missing or empty. The builder preview and the
// public renderer share this exact check. An out-of-range page index yields
// nil.
func ValidatePage(pages []Page, pageIndex int, answers AnswerSet) []int {
	if pageIndex < 0 || pageIndex >= len(pages) {
		return nil
	}

	var missing []int
	for _, q := range pages[pageIndex] {
		if !q.Required || !q.Answerable() {
			continue
		}
		if IsEmptyAnswer(answers[q.ID]) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// ValidateAll runs ValidatePage over every page and returns the union of
// missing required question ids, in page order.
func ValidateAll(questions []Question, answers AnswerSet) []int {
	pages := Paginate(questions)
	var missing []int
	for i := range pages {
		missing = append(missing, ValidatePage(pages, i, answers)...)
	}
	return missing
}
