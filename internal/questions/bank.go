package questions

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/abhisek/prepiz/internal/schema"
)

// bankSchema is the boundary contract for a question bank file.
var bankSchema = schema.Schema{
	Name: "question-bank",
	Definition: `{
		"type": "object",
		"required": ["questions"],
		"properties": {
			"questions": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["id", "topicId", "text", "difficulty", "answer"],
					"properties": {
						"id": {"type": "string", "minLength": 1},
						"topicId": {"type": "string", "minLength": 1},
						"topicName": {"type": "string"},
						"text": {"type": "string", "minLength": 1},
						"format": {"enum": ["multiple_choice", "numeric", "text"]},
						"difficulty": {"type": "string", "minLength": 1},
						"level": {"type": "integer", "minimum": 1, "maximum": 3},
						"choices": {"type": "array", "items": {"type": "string"}},
						"answer": {"type": "string", "minLength": 1},
						"tags": {"type": "array", "items": {"type": "string"}},
						"explanation": {"type": "string"}
					}
				}
			}
		}
	}`,
}

// Bank is an in-memory question bank.
type Bank struct {
	Questions []Question `json:"questions"`

	byID map[string]int
}

// Parse validates and decodes a bank document. Questions without a level
// take the default level of their difficulty; questions without a format
// are multiple choice when they have choices and text otherwise.
func Parse(raw []byte) (*Bank, error) {
	if err := schema.Validate(bankSchema, raw); err != nil {
		return nil, fmt.Errorf("question bank: %w", err)
	}

	var b Bank
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("question bank: %w", err)
	}

	b.byID = make(map[string]int, len(b.Questions))
	for i := range b.Questions {
		q := &b.Questions[i]
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("question bank: duplicate id %q", q.ID)
		}
		b.byID[q.ID] = i

		if q.Level == 0 {
			q.Level = q.Difficulty.DefaultLevel()
		}
		if q.Format == "" {
			if len(q.Choices) > 0 {
				q.Format = FormatMultipleChoice
			} else {
				q.Format = FormatText
			}
		}
		if q.TopicName == "" {
			q.TopicName = q.TopicID
		}
		if err := checkQuestion(q); err != nil {
			return nil, fmt.Errorf("question bank: question %q: %w", q.ID, err)
		}
	}
	return &b, nil
}

// LoadFile reads and parses the bank at path.
func LoadFile(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Parse(raw)
}

func checkQuestion(q *Question) error {
	switch q.Format {
	case FormatMultipleChoice:
		if len(q.Choices) < 2 {
			return fmt.Errorf("multiple choice needs at least 2 choices")
		}
		for _, c := range q.Choices {
			if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(q.Answer)) {
				return nil
			}
		}
		return fmt.Errorf("answer %q is not one of the choices", q.Answer)
	case FormatNumeric:
		if _, err := parseNumber(q.Answer); err != nil {
			return fmt.Errorf("numeric answer: %w", err)
		}
	}
	return nil
}

// Lookup returns the question with id.
func (b *Bank) Lookup(id string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.Questions[i], true
}

// ForTopic returns the questions of topicID in bank order.
func (b *Bank) ForTopic(topicID string) []Question {
	var out []Question
	for _, q := range b.Questions {
		if q.TopicID == topicID {
			out = append(out, q)
		}
	}
	return out
}

// Topic is a topic present in the bank.
type Topic struct {
	ID    string
	Name  string
	Count int
}

// Topics lists the bank's topics sorted by ID.
func (b *Bank) Topics() []Topic {
	idx := make(map[string]int)
	var topics []Topic
	for _, q := range b.Questions {
		i, ok := idx[q.TopicID]
		if !ok {
			i = len(topics)
			idx[q.TopicID] = i
			topics = append(topics, Topic{ID: q.TopicID, Name: q.TopicName})
		}
		topics[i].Count++
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics
}
