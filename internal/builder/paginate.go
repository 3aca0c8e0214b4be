package builder

// Page is an ordered slice of the questions shown together. A section
// question, when not the very first question, opens a new page and is
// rendered at the top of it.
type Page []Question

// Paginate derives the page structure from the question order. It is a pure
// function of its input; callers recompute it after every mutation instead
// of persisting it.
func Paginate(questions []Question) []Page {
	if len(questions) == 0 {
		return []Page{{}}
	}

	var pages []Page
	current := Page{}
	for i, q := range questions {
		if q.Type == TypeSection && i > 0 {
			pages = append(pages, current)
			current = Page{}
		}
		current = append(current, q)
	}
	pages = append(pages, current)
	return pages
}
