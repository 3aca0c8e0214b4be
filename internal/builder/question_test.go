package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionDefaults(t *testing.T) {
	for _, typ := range AllTypes {
		q := NewQuestion(7, typ)
		assert.Equal(t, 7, q.ID)
		assert.Equal(t, typ, q.Type)
		assert.NoError(t, q.Validate(), "default payload for %s must be valid", typ)
	}

	radio := NewQuestion(1, TypeRadio)
	require.NotNil(t, radio.Choice)
	assert.Equal(t, []string{"Option 1"}, radio.Choice.Options)

	scale := NewQuestion(2, TypeScale)
	require.NotNil(t, scale.Scale)
	assert.Equal(t, 1, scale.Scale.Min)
	assert.Equal(t, 5, scale.Scale.Max)

	img := NewQuestion(3, TypeImage)
	require.NotNil(t, img.Media)
	assert.Equal(t, "center", img.Media.Alignment)
	assert.Equal(t, 640, img.Media.Width)
}

func TestAnswerable(t *testing.T) {
	static := []QuestionType{TypeSection, TypeText, TypeImage, TypeVideo}
	for _, typ := range AllTypes {
		q := NewQuestion(1, typ)
		want := true
		for _, s := range static {
			if typ == s {
				want = false
			}
		}
		assert.Equal(t, want, q.Answerable(), "type %s", typ)
	}
}

func TestNormalizeClampsMediaWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"below minimum", 100, MinMediaWidth},
		{"at minimum", 240, 240},
		{"in range", 640, 640},
		{"at maximum", 960, 960},
		{"above maximum", 2000, MaxMediaWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuestion(1, TypeImage)
			q.Media.Width = tt.width
			q.Normalize()
			assert.Equal(t, tt.want, q.Media.Width)
		})
	}
}

func TestNormalizeClearsRequiredOnStaticContent(t *testing.T) {
	q := NewQuestion(1, TypeSection)
	q.Required = true
	q.Normalize()
	assert.False(t, q.Required)

	q = NewQuestion(2, TypeShortText)
	q.Required = true
	q.Normalize()
	assert.True(t, q.Required)
}

func TestNormalizeFixesDegenerateScale(t *testing.T) {
	q := NewQuestion(1, TypeScale)
	q.Scale.Min = 5
	q.Scale.Max = 5
	q.Normalize()
	assert.Equal(t, 6, q.Scale.Max)
}

func TestValidate(t *testing.T) {
	q := Question{ID: 1, Type: "banana"}
	assert.Error(t, q.Validate())

	q = Question{ID: 2, Type: TypeRadio}
	assert.Error(t, q.Validate(), "choice question without options")

	q = Question{ID: 3, Type: TypeRadio, Choice: &ChoiceConfig{Options: []string{}}}
	assert.Error(t, q.Validate())

	q = Question{ID: 4, Type: TypeDate}
	assert.NoError(t, q.Validate())
}

func TestCloneIsDeep(t *testing.T) {
	q := NewQuestion(1, TypeCheckbox)
	q.Choice.Options = []string{"a", "b"}

	c := q.Clone()
	c.Choice.Options[0] = "mutated"
	c.Choice.AllowOther = true

	assert.Equal(t, "a", q.Choice.Options[0])
	assert.False(t, q.Choice.AllowOther)
}

func TestOtherSentinel(t *testing.T) {
	v := EncodeOther("something else")
	text, ok := DecodeOther(v)
	assert.True(t, ok)
	assert.Equal(t, "something else", text)

	text, ok = DecodeOther("Option 1")
	assert.False(t, ok)
	assert.Empty(t, text)

	// An "Other" answer with empty text is still an answer.
	text, ok = DecodeOther(EncodeOther(""))
	assert.True(t, ok)
	assert.Empty(t, text)
}
