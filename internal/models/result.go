package models

import "encoding/json"

// Outcome is the result of grading one question. PossibleScore is 1 for
// every gradable question; weighting by Question.Points happens at the
// reporting layer, not in the engine.
type Outcome struct {
	QuestionID    string       `json:"question_id"`
	Type          QuestionType `json:"type"`
	Score         float64      `json:"score"`
	PossibleScore float64      `json:"possible_score"`
	Unanswered    int          `json:"unanswered"`

	// Submission echoes the graded answer in its type-specific shape.
	Submission json.RawMessage `json:"submission,omitempty"`
	Details    string          `json:"details,omitempty"`
}

// TypeTotals accumulates score/possible per question type.
type TypeTotals struct {
	Score    float64 `json:"score"`
	Possible float64 `json:"possible"`
}

// SubmissionResult aggregates per-question outcomes for one submission.
// UnansweredCount above zero is a warning for the caller, never an error.
type SubmissionResult struct {
	TotalScore      float64                      `json:"total_score"`
	TotalPossible   float64                      `json:"total_possible"`
	UnansweredCount int                          `json:"unanswered_count"`
	SkippedCount    int                          `json:"skipped_count"`
	PerType         map[QuestionType]*TypeTotals `json:"per_type"`
	PerQuestion     []Outcome                    `json:"per_question"`
}
