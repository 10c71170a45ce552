package models

import "encoding/json"

// AnswerMap keys raw per-kind answer payloads by question id. Missing or
// empty entries are valid input and grade as unanswered.
type AnswerMap map[string]json.RawMessage

type ChoiceAnswer struct {
	// Selected holds option indices into ChoiceContent.Options.
	Selected []int `json:"selected"`
}

type OrderingAnswer struct {
	// Positions maps step text to the user-entered 1-based rank.
	// 0 or absent means the step was left unranked.
	Positions map[string]int `json:"positions"`
}

type MatchingAnswer struct {
	// Slots maps a left item id to the user entries, aligned with the
	// slot ordering of MatchPair.RightIDs.
	Slots map[string][]string `json:"slots"`
}

type BlankAnswer struct {
	// Entries maps blank position to the user text.
	Entries map[int]string `json:"entries"`
}

type StatementAnswer struct {
	// Values maps statement index to the user's answer; nil means the
	// statement was left unanswered.
	Values map[int]*bool `json:"values"`
}

type FreeTextAnswer struct {
	Text string `json:"text"`
}
