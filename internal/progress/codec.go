package progress

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/prepiz/internal/schema"
)

// recordSchema is the boundary contract for a persisted or imported record.
var recordSchema = schema.Schema{
	Name: "progress-record",
	Definition: `{
		"type": "object",
		"required": ["userId", "overallStats"],
		"properties": {
			"userId": {"type": "string", "minLength": 1},
			"version": {"type": "integer", "minimum": 0},
			"overallStats": {
				"type": "object",
				"required": ["totalQuestions", "totalCorrect", "studyStreak"],
				"properties": {
					"totalQuestions": {"type": "integer", "minimum": 0},
					"totalCorrect": {"type": "integer", "minimum": 0},
					"studyStreak": {"type": "integer", "minimum": 0},
					"totalStudyDays": {"type": "integer", "minimum": 0},
					"lastStudyDate": {"$ref": "#/$defs/optionalDate"},
					"accountCreated": {"$ref": "#/$defs/optionalDate"}
				}
			},
			"topicProgress": {
				"type": ["object", "null"],
				"additionalProperties": {"$ref": "#/$defs/topic"}
			},
			"dailyStats": {
				"type": "object",
				"properties": {
					"date": {"$ref": "#/$defs/optionalDate"},
					"questionsAttempted": {"type": "integer", "minimum": 0},
					"questionsCorrect": {"type": "integer", "minimum": 0},
					"topicsStudied": {"type": ["array", "null"], "items": {"type": "string"}}
				}
			},
			"dailyHistory": {
				"type": ["object", "null"],
				"propertyNames": {"$ref": "#/$defs/date"},
				"additionalProperties": {
					"type": "object",
					"properties": {
						"questionsAttempted": {"type": "integer", "minimum": 0},
						"questionsCorrect": {"type": "integer", "minimum": 0}
					}
				}
			},
			"achievements": {
				"type": ["array", "null"],
				"items": {
					"type": "object",
					"required": ["id", "type", "timestamp"],
					"properties": {
						"id": {"type": "string", "minLength": 1},
						"type": {"type": "string", "minLength": 1},
						"seen": {"type": "boolean"}
					}
				}
			}
		},
		"$defs": {
			"date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
			"optionalDate": {"anyOf": [{"$ref": "#/$defs/date"}, {"const": ""}, {"type": "null"}]},
			"topic": {
				"type": "object",
				"required": ["level"],
				"properties": {
					"level": {"type": "integer", "minimum": 1, "maximum": 3},
					"levelUnlocked": {"type": ["array", "null"], "items": {"type": "integer", "minimum": 1, "maximum": 3}},
					"questionsAttempted": {"type": "integer", "minimum": 0},
					"questionsCorrect": {"type": "integer", "minimum": 0}
				}
			}
		}
	}`,
}

// Encode serializes rec. Set-valued fields become sorted arrays.
func Encode(rec *Record) ([]byte, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return b, nil
}

// Decode validates raw against the record schema, then parses and
// normalizes it. Validation failures are returned as *ValidationError.
func Decode(raw []byte) (*Record, error) {
	if err := schema.Validate(recordSchema, raw); err != nil {
		return nil, &ValidationError{Field: "record", Reason: err.Error(), Err: err}
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &ValidationError{Field: "record", Reason: err.Error(), Err: err}
	}
	if rec.OverallStats.TotalCorrect > rec.OverallStats.TotalQuestions {
		return nil, &ValidationError{Field: "overallStats", Reason: "totalCorrect exceeds totalQuestions"}
	}
	for id, tp := range rec.TopicProgress {
		if tp != nil && tp.QuestionsCorrect > tp.QuestionsAttempted {
			return nil, &ValidationError{Field: "topicProgress." + id, Reason: "questionsCorrect exceeds questionsAttempted"}
		}
	}
	rec.Normalize()
	return &rec, nil
}
