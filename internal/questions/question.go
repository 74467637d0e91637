// Package questions defines practice questions and loads question banks.
package questions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Difficulty is a question's own difficulty tag.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists all difficulties from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty accepts easy, medium or hard in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// Label returns the capitalized name.
func (d Difficulty) Label() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return string(d)
	}
}

// DefaultLevel maps a difficulty to the topic level it belongs to when a
// question does not state one.
func (d Difficulty) DefaultLevel() int {
	switch d {
	case Medium:
		return 2
	case Hard:
		return 3
	default:
		return 1
	}
}

func (d *Difficulty) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Format describes how the learner answers.
type Format string

const (
	// FormatMultipleChoice means the learner picks one of Choices.
	FormatMultipleChoice Format = "multiple_choice"

	// FormatNumeric means the learner types a number or fraction.
	FormatNumeric Format = "numeric"

	// FormatText means the learner types a short free-text answer.
	FormatText Format = "text"
)

// Question is one practice item from a bank.
type Question struct {
	ID          string     `json:"id"`
	TopicID     string     `json:"topicId"`
	TopicName   string     `json:"topicName,omitempty"`
	Text        string     `json:"text"`
	Format      Format     `json:"format"`
	Difficulty  Difficulty `json:"difficulty"`
	Level       int        `json:"level,omitempty"`
	Choices     []string   `json:"choices,omitempty"`
	Answer      string     `json:"answer"`
	Tags        []string   `json:"tags,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
}

// EffectiveLevel is the topic level q is served at: its stated Level, or
// the level its difficulty maps to.
func (q Question) EffectiveLevel() int {
	if q.Level >= 1 && q.Level <= 3 {
		return q.Level
	}
	return q.Difficulty.DefaultLevel()
}

// HasAnyTag reports whether q carries at least one tag in tags.
func (q Question) HasAnyTag(tags map[string]struct{}) bool {
	for _, t := range q.Tags {
		if _, ok := tags[t]; ok {
			return true
		}
	}
	return false
}
