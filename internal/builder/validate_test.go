package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmptyAnswer(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"empty string slice", []string{}, true},
		{"empty any slice", []any{}, true},
		{"text", "hello", false},
		{"zero number counts as answered", float64(0), false},
		{"false counts as answered", false, false},
		{"one selection", []string{"a"}, false},
		{"other sentinel with no text", EncodeOther(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmptyAnswer(tt.value))
		})
	}
}

func TestValidatePage(t *testing.T) {
	req := func(id int, typ QuestionType) Question {
		return Question{ID: id, Type: typ, Required: true}
	}
	questions := []Question{
		req(1, TypeShortText),
		q(2, TypeLongText), // optional
		q(3, TypeSection),
		req(4, TypeCheckbox),
		req(5, TypeDate),
	}
	pages := Paginate(questions)

	t.Run("missing answers are reported in page order", func(t *testing.T) {
		assert.Equal(t, []int{1}, ValidatePage(pages, 0, AnswerSet{}))
		assert.Equal(t, []int{4, 5}, ValidatePage(pages, 1, AnswerSet{}))
	})

	t.Run("answered questions drop out", func(t *testing.T) {
		answers := AnswerSet{4: []string{"a"}}
		assert.Equal(t, []int{5}, ValidatePage(pages, 1, answers))
	})

	t.Run("empty values still count as missing", func(t *testing.T) {
		answers := AnswerSet{1: ""}
		assert.Equal(t, []int{1}, ValidatePage(pages, 0, answers))
	})

	t.Run("optional questions never block", func(t *testing.T) {
		answers := AnswerSet{1: "x"}
		assert.Nil(t, ValidatePage(pages, 0, answers))
	})

	t.Run("required flag on static content is ignored", func(t *testing.T) {
		p := Paginate([]Question{{ID: 1, Type: TypeText, Required: true}})
		assert.Nil(t, ValidatePage(p, 0, AnswerSet{}))
	})

	t.Run("out of range page index", func(t *testing.T) {
		assert.Nil(t, ValidatePage(pages, -1, AnswerSet{}))
		assert.Nil(t, ValidatePage(pages, 9, AnswerSet{}))
	})
}

func TestValidateAll(t *testing.T) {
	questions := []Question{
		{ID: 1, Type: TypeShortText, Required: true},
		{ID: 2, Type: TypeSection},
		{ID: 3, Type: TypeRating, Required: true},
	}
	assert.Equal(t, []int{1, 3}, ValidateAll(questions, AnswerSet{}))
	assert.Equal(t, []int{3}, ValidateAll(questions, AnswerSet{1: "yes"}))
	assert.Nil(t, ValidateAll(questions, AnswerSet{1: "yes", 3: float64(4)}))
}
