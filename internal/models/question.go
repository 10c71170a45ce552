package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	Ordering       QuestionType = "ordering"
	Matching       QuestionType = "matching"
	FillBlank      QuestionType = "fill_blank"
	TrueFalseGroup QuestionType = "true_false_group"
	TrueFalse      QuestionType = "true_false"
	FreeText       QuestionType = "free_text"
)

// AllQuestionTypes lists every type the evaluation engine can grade.
var AllQuestionTypes = []QuestionType{
	MultipleChoice,
	Ordering,
	Matching,
	FillBlank,
	TrueFalseGroup,
	TrueFalse,
	FreeText,
}

func (t QuestionType) Valid() bool {
	for _, known := range AllQuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Question is one entry of a catalog. Content carries the type-specific
// payload as JSONB; use DecodeContent to get the typed form.
type Question struct {
	ID        string       `json:"id" gorm:"primaryKey;size:64"`
	CatalogID uint         `json:"catalog_id" gorm:"not null;index"`
	Type      QuestionType `json:"type" gorm:"not null;size:30;index" validate:"required,question_type"`
	Text      string       `json:"text" gorm:"not null;type:text" validate:"required,min=1"`
	Points    float64      `json:"points" gorm:"default:1" validate:"min=0,max=100"`
	Order     int          `json:"order" gorm:"default:0"`

	Content datatypes.JSON `json:"content" gorm:"type:jsonb" validate:"required"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// ===== TYPE-SPECIFIC CONTENT PAYLOADS =====

type ChoiceOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type ChoiceContent struct {
	Options []ChoiceOption `json:"options"`
}

// CorrectCount reports how many options are flagged correct.
func (c ChoiceContent) CorrectCount() int {
	n := 0
	for _, opt := range c.Options {
		if opt.IsCorrect {
			n++
		}
	}
	return n
}

type OrderingStep struct {
	Text string `json:"text"`
	// CorrectPosition is 1-based and unique per step.
	CorrectPosition int `json:"correct_position"`
}

type OrderingContent struct {
	Steps []OrderingStep `json:"steps"`
}

type MatchItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// MatchPair maps one left item to the right ids it requires. Slot i of the
// user answer corresponds to RightIDs[i].
type MatchPair struct {
	LeftID   string   `json:"left_id"`
	RightIDs []string `json:"right_ids"`
}

type MatchingContent struct {
	LeftItems  []MatchItem `json:"left_items"`
	RightItems []MatchItem `json:"right_items"`
	Pairs      []MatchPair `json:"pairs"`
}

type Blank struct {
	Position int      `json:"position"`
	Accepted []string `json:"accepted"`
}

type BlankContent struct {
	Blanks []Blank `json:"blanks"`
}

type Statement struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// StatementContent backs both the single-list and the grouped true/false
// forms; the two types are semantically identical and kept separate for
// catalog compatibility.
type StatementContent struct {
	Statements []Statement `json:"statements"`
}

type FreeTextContent struct {
	Prompt   string   `json:"prompt"`
	Keywords []string `json:"keywords"`
	// MaxScore defaults to len(Keywords) when zero.
	MaxScore float64 `json:"max_score"`
}

// DecodeContent unmarshals the raw content payload into the struct matching
// the question type. The returned value is a pointer to one of the
// *Content types above.
func (q *Question) DecodeContent() (interface{}, error) {
	return DecodeContent(q.Type, q.Content)
}

func DecodeContent(t QuestionType, raw []byte) (interface{}, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty content for question type %s", t)
	}

	var dst interface{}
	switch t {
	case MultipleChoice:
		dst = &ChoiceContent{}
	case Ordering:
		dst = &OrderingContent{}
	case Matching:
		dst = &MatchingContent{}
	case FillBlank:
		dst = &BlankContent{}
	case TrueFalseGroup, TrueFalse:
		dst = &StatementContent{}
	case FreeText:
		dst = &FreeTextContent{}
	default:
		return nil, fmt.Errorf("unsupported question type: %s", t)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, fmt.Errorf("failed to decode %s content: %w", t, err)
	}
	return dst, nil
}
