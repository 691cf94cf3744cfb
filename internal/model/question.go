// Package model defines the entities of the adaptive learning engine.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// QuestionType identifies how a question is answered and graded.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
	QuestionTypeEssay          QuestionType = "essay"
	QuestionTypeMatching       QuestionType = "matching"
)

// IsValid reports whether t is one of the known question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeShortAnswer,
		QuestionTypeEssay, QuestionTypeMatching:
		return true
	}
	return false
}

// IsAutoGradable reports whether answers of this type have a deterministic correctness check.
func (t QuestionType) IsAutoGradable() bool {
	return t.IsValid() && t != QuestionTypeEssay
}

// Option is a multiple-choice option.
type Option struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"is_correct" yaml:"is_correct"`
}

// MatchPair is a left-to-right pairing of a matching question.
type MatchPair struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// AnswerKey holds the type-specific correctness data of a question.
// It is stored as a JSON column.
type AnswerKey struct {
	Options         []Option    `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectBool     *bool       `json:"correct_bool,omitempty" yaml:"correct_bool,omitempty"`
	AcceptedAnswers []string    `json:"accepted_answers,omitempty" yaml:"accepted_answers,omitempty"`
	CaseSensitive   bool        `json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty"`
	Pairs           []MatchPair `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// Value implements driver.Valuer.
func (k AnswerKey) Value() (driver.Value, error) {
	return json.Marshal(k)
}

// Scan implements sql.Scanner.
func (k *AnswerKey) Scan(src any) error {
	return scanJSON(src, k)
}

// Question is an item of the content bank.
type Question struct {
	ID        string       `db:"id" json:"id" yaml:"id"`
	Type      QuestionType `db:"type" json:"type" yaml:"type"`
	Prompt    string       `db:"prompt" json:"prompt" yaml:"prompt"`
	Tags      []string     `db:"-" json:"tags" yaml:"tags"`
	Key       AnswerKey    `db:"answer_key" json:"answer_key" yaml:"answer_key"`
	CreatedAt time.Time    `db:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at" yaml:"-"`
}

// SharesTag reports whether the question carries at least one of tags.
func (q Question) SharesTag(tags []string) bool {
	for _, t := range q.Tags {
		for _, other := range tags {
			if t == other {
				return true
			}
		}
	}
	return false
}

// StringList is an ordered list of strings stored as a JSON column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

func scanJSON(src any, dest any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode JSON column: %w", err)
	}
	return nil
}
