package builder

import (
	"fmt"
	"strings"
)

// QuestionType discriminates the Question union. Every switch over it in this
// package lists all thirteen variants so that adding one is a compile-guided
// change.
type QuestionType string

const (
	TypeSection   QuestionType = "section"
	TypeText      QuestionType = "text"
	TypeImage     QuestionType = "image"
	TypeVideo     QuestionType = "video"
	TypeShortText QuestionType = "short_text"
	TypeLongText  QuestionType = "long_text"
	TypeRadio     QuestionType = "radio"
	TypeCheckbox  QuestionType = "checkbox"
	TypeDropdown  QuestionType = "dropdown"
	TypeFile      QuestionType = "file"
	TypeScale     QuestionType = "scale"
	TypeRating    QuestionType = "rating"
	TypeDate      QuestionType = "date"
)

// AllTypes lists every valid question type, in builder palette order.
var AllTypes = []QuestionType{
	TypeSection, TypeText, TypeImage, TypeVideo,
	TypeShortText, TypeLongText,
	TypeRadio, TypeCheckbox, TypeDropdown,
	TypeFile, TypeScale, TypeRating, TypeDate,
}

// Media width bounds for interactive resize of image/video questions.
const (
	MinMediaWidth = 240
	MaxMediaWidth = 960
)

type ChoiceConfig struct {
	Options    []string `json:"options"`
	AllowOther bool     `json:"allowOther,omitempty"`
}

type ScaleConfig struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	MinLabel string `json:"minLabel,omitempty"`
	MaxLabel string `json:"maxLabel,omitempty"`
}

type RatingConfig struct {
	Levels int `json:"levels"`
}

type FileConfig struct {
	AllowedExtensions []string `json:"allowedExtensions,omitempty"`
	MaxFiles          int      `json:"maxFiles"`
	MaxSizeMB         int      `json:"maxSizeMB"`
}

type MediaConfig struct {
	URL       string `json:"url"`
	Alignment string `json:"alignment"` // left, center, right
	Width     int    `json:"width"`
}

// Question is one unit of content or input within a form. ID is sequential
// and unique within the owning form. Exactly one payload pointer is set,
// matching Type; the rest stay nil and are omitted from JSON.
type Question struct {
	ID       int          `json:"id"`
	Type     QuestionType `json:"type"`
	Title    string       `json:"title"`
	Required bool         `json:"required,omitempty"`

	Choice *ChoiceConfig `json:"choice,omitempty"`
	Scale  *ScaleConfig  `json:"scale,omitempty"`
	Rating *RatingConfig `json:"rating,omitempty"`
	File   *FileConfig   `json:"file,omitempty"`
	Media  *MediaConfig  `json:"media,omitempty"`
}

// NewQuestion builds a question of the given type with its default payload.
func NewQuestion(id int, t QuestionType) Question {
	q := Question{ID: id, Type: t}
	switch t {
	case TypeSection:
		q.Title = "New section"
	case TypeText:
		q.Title = "Text block"
	case TypeImage:
		q.Title = "Image"
		q.Media = &MediaConfig{Alignment: "center", Width: 640}
	case TypeVideo:
		q.Title = "Video"
		q.Media = &MediaConfig{Alignment: "center", Width: 640}
	case TypeShortText:
		q.Title = "Untitled question"
	case TypeLongText:
		q.Title = "Untitled question"
	case TypeRadio:
		q.Title = "Untitled question"
		q.Choice = &ChoiceConfig{Options: []string{"Option 1"}}
	case TypeCheckbox:
		q.Title = "Untitled question"
		q.Choice = &ChoiceConfig{Options: []string{"Option 1"}}
	case TypeDropdown:
		q.Title = "Untitled question"
		q.Choice = &ChoiceConfig{Options: []string{"Option 1"}}
	case TypeFile:
		q.Title = "Untitled question"
		q.File = &FileConfig{MaxFiles: 1, MaxSizeMB: 10}
	case TypeScale:
		q.Title = "Untitled question"
		q.Scale = &ScaleConfig{Min: 1, Max: 5}
	case TypeRating:
		q.Title = "Untitled question"
		q.Rating = &RatingConfig{Levels: 5}
	case TypeDate:
		q.Title = "Untitled question"
	}
	return q
}

// Answerable reports whether a question collects an answer. Section and the
// static content variants render but never validate or store anything.
func (q Question) Answerable() bool {
	switch q.Type {
	case TypeSection, TypeText, TypeImage, TypeVideo:
		return false
	case TypeShortText, TypeLongText, TypeRadio, TypeCheckbox, TypeDropdown,
		TypeFile, TypeScale, TypeRating, TypeDate:
		return true
	}
	return false
}

// Clone returns a deep copy, payloads included.
func (q Question) Clone() Question {
	c := q
	if q.Choice != nil {
		cc := *q.Choice
		cc.Options = append([]string(nil), q.Choice.Options...)
		c.Choice = &cc
	}
	if q.Scale != nil {
		sc := *q.Scale
		c.Scale = &sc
	}
	if q.Rating != nil {
		rc := *q.Rating
		c.Rating = &rc
	}
	if q.File != nil {
		fc := *q.File
		fc.AllowedExtensions = append([]string(nil), q.File.AllowedExtensions...)
		c.File = &fc
	}
	if q.Media != nil {
		mc := *q.Media
		c.Media = &mc
	}
	return c
}

// Normalize clamps payload values into their supported ranges and clears
// flags that do not apply to the question type. Runs on every update so a
// stored form never carries out-of-range media geometry.
func (q *Question) Normalize() {
	if !q.Answerable() {
		q.Required = false
	}
	if q.Media != nil {
		if q.Media.Width < MinMediaWidth {
			q.Media.Width = MinMediaWidth
		}
		if q.Media.Width > MaxMediaWidth {
			q.Media.Width = MaxMediaWidth
		}
		switch q.Media.Alignment {
		case "left", "center", "right":
		default:
			q.Media.Alignment = "center"
		}
	}
	if q.Rating != nil && q.Rating.Levels < 1 {
		q.Rating.Levels = 1
	}
	if q.Scale != nil && q.Scale.Max <= q.Scale.Min {
		q.Scale.Max = q.Scale.Min + 1
	}
}

// Validate checks structural consistency: a known type and the payload that
// belongs to it.
func (q Question) Validate() error {
	known := false
	for _, t := range AllTypes {
		if q.Type == t {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown question type %q", q.Type)
	}

	switch q.Type {
	case TypeRadio, TypeCheckbox, TypeDropdown:
		if q.Choice == nil || len(q.Choice.Options) == 0 {
			return fmt.Errorf("question %d: %s requires at least one option", q.ID, q.Type)
		}
	case TypeScale:
		if q.Scale == nil {
			return fmt.Errorf("question %d: scale config missing", q.ID)
		}
	case TypeRating:
		if q.Rating == nil {
			return fmt.Errorf("question %d: rating config missing", q.ID)
		}
	case TypeFile:
		if q.File == nil {
			return fmt.Errorf("question %d: file config missing", q.ID)
		}
	case TypeImage, TypeVideo:
		if q.Media == nil {
			return fmt.Errorf("question %d: media config missing", q.ID)
		}
	case TypeSection, TypeText, TypeShortText, TypeLongText, TypeDate:
	}
	return nil
}

// OtherPrefix marks a free-text "Other" answer on choice questions. The
// respondent's text rides behind the sentinel inside the ordinary answer
// value, so storage stays a plain string or string list.
const OtherPrefix = "__other__:"

// EncodeOther wraps free text as an "Other" answer value.
func EncodeOther(text string) string {
	return OtherPrefix + text
}

// DecodeOther splits an answer value into (text, true) when it is an "Other"
// answer, or ("", false) otherwise.
func DecodeOther(value string) (string, bool) {
	if strings.HasPrefix(value, OtherPrefix) {
		return strings.TrimPrefix(value, OtherPrefix), true
	}
	return "", false
}
