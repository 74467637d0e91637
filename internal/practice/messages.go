package practice

import (
	"github.com/abhisek/prepiz/internal/engine"
	"github.com/abhisek/prepiz/internal/progress"
	"github.com/abhisek/prepiz/internal/questions"
)

// topicChosenMsg is sent when the learner picks a topic from the menu.
type topicChosenMsg struct {
	Topic questions.Topic
}

// batchReadyMsg is sent when the engine has selected the session's questions.
type batchReadyMsg struct {
	Questions []questions.Question
}

// attemptRecordedMsg is sent once an answer has gone through the engine.
type attemptRecordedMsg struct {
	Result *engine.AttemptResult
	Err    error
}

// sessionDoneMsg is sent after the session has been counted.
type sessionDoneMsg struct {
	Record *progress.Record
	Err    error
}
