package evaluation

import (
	"encoding/json"
	"log/slog"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// Evaluator grades submissions against a question catalog. It holds only
// immutable configuration (variant dictionary, ordering mode), so one
// instance is safe for concurrent use; every evaluation is a pure function
// of its (questions, answers) input.
type Evaluator struct {
	dict         VariantDictionary
	orderingMode OrderingMode
	logger       *slog.Logger
}

type Option func(*Evaluator)

// WithVariantDictionary replaces the built-in keyword-variant dictionary.
func WithVariantDictionary(dict VariantDictionary) Option {
	return func(e *Evaluator) { e.dict = dict }
}

// WithOrderingMode switches ordering questions between strict and
// proximity-tolerant credit. Strict is the grading default; proximity is
// meant for interactive previews.
func WithOrderingMode(mode OrderingMode) Option {
	return func(e *Evaluator) { e.orderingMode = mode }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = logger }
}

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		dict:         DefaultVariantDictionary(),
		orderingMode: OrderingStrict,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScoreQuestion grades one question against its raw answer payload. It
// never returns an error: malformed content degrades to a zero-score
// outcome with a diagnostic, and a malformed or empty answer payload
// grades as unanswered.
func (e *Evaluator) ScoreQuestion(question models.Question, rawAnswer json.RawMessage) models.Outcome {
	var out models.Outcome

	switch question.Type {
	case models.MultipleChoice:
		var content models.ChoiceContent
		var answer models.ChoiceAnswer
		if d := decodeBoth(json.RawMessage(question.Content), rawAnswer, &content, &answer); d != "" {
			out = degradedOutcome(d)
			break
		}
		out = ScoreChoice(content, answer)

	case models.Ordering:
		var content models.OrderingContent
		var answer models.OrderingAnswer
		if d := decodeBoth(json.RawMessage(question.Content), rawAnswer, &content, &answer); d != "" {
			out = degradedOutcome(d)
			break
		}
		out = ScoreOrdering(content, answer, e.orderingMode)

	case models.Matching:
		var content models.MatchingContent
		var answer models.MatchingAnswer
		if d := decodeBoth(json.RawMessage(question.Content), rawAnswer, &content, &answer); d != "" {
			out = degradedOutcome(d)
			break
		}
		out = ScoreMatching(content, answer)

	case models.FillBlank:
		var content models.BlankContent
		var answer models.BlankAnswer
		if d := decodeBoth(json.RawMessage(question.Content), rawAnswer, &content, &answer); d != "" {
			out = degradedOutcome(d)
			break
		}
		out = ScoreBlank(content, answer)

	case models.TrueFalseGroup, models.TrueFalse:
		var content models.StatementContent
		var answer models.StatementAnswer
		if d := decodeBoth(json.RawMessage(question.Content), rawAnswer, &content, &answer); d != "" {
			out = degradedOutcome(d)
			break
		}
		out = ScoreStatements(content, answer)

	case models.FreeText:
		var content models.FreeTextContent
		var answer models.FreeTextAnswer
		if d := decodeBoth(json.RawMessage(question.Content), rawAnswer, &content, &answer); d != "" {
			out = degradedOutcome(d)
			break
		}
		out = ScoreFreeText(content, answer, e.dict)

	default:
		// Unknown kinds are reported back to EvaluateSubmission via a
		// zero PossibleScore so they contribute to neither total.
		out = models.Outcome{Details: "unsupported question type"}
	}

	out.QuestionID = question.ID
	out.Type = question.Type
	return out
}

// EvaluateSubmission grades every question of the catalog against the
// answer map and folds the outcomes into a submission-level result.
// Unknown question types are skipped with a warning; they abort nothing.
func (e *Evaluator) EvaluateSubmission(questions []models.Question, answers models.AnswerMap) *models.SubmissionResult {
	result := &models.SubmissionResult{
		PerType:     make(map[models.QuestionType]*models.TypeTotals),
		PerQuestion: make([]models.Outcome, 0, len(questions)),
	}

	for _, question := range questions {
		if !question.Type.Valid() {
			e.logger.Warn("skipping question with unsupported type",
				"question_id", question.ID,
				"type", question.Type)
			result.SkippedCount++
			continue
		}

		outcome := e.ScoreQuestion(question, answers[question.ID])
		result.PerQuestion = append(result.PerQuestion, outcome)

		result.TotalScore += outcome.Score
		result.TotalPossible += outcome.PossibleScore
		result.UnansweredCount += outcome.Unanswered

		totals := result.PerType[question.Type]
		if totals == nil {
			totals = &models.TypeTotals{}
			result.PerType[question.Type] = totals
		}
		totals.Score += outcome.Score
		totals.Possible += outcome.PossibleScore
	}

	if result.UnansweredCount > 0 {
		e.logger.Warn("submission has unanswered questions",
			"unanswered", result.UnansweredCount,
			"total", len(result.PerQuestion))
	}

	return result
}

func degradedOutcome(details string) models.Outcome {
	out := models.Outcome{PossibleScore: 1, Details: details}
	if details == "unanswered" {
		out.Unanswered = 1
		out.Details = "no answer supplied"
	}
	return out
}

// decodeBoth unmarshals content and answer payloads. It returns "" on
// success, "unanswered" for a missing/empty answer, or a diagnostic for
// malformed data.
func decodeBoth(content, answer json.RawMessage, contentDst, answerDst interface{}) string {
	if len(content) == 0 {
		return "data error: question content is empty"
	}
	if err := json.Unmarshal(content, contentDst); err != nil {
		return "data error: malformed question content"
	}
	if len(answer) == 0 || string(answer) == "null" {
		return "unanswered"
	}
	if err := json.Unmarshal(answer, answerDst); err != nil {
		return "unanswered"
	}
	return ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mustMarshal(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
