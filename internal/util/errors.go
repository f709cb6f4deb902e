package util

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountDisabled      = errors.New("account disabled")
	ErrCourseNotFound       = errors.New("course not found")
	ErrChapterNotFound      = errors.New("chapter not found")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrNoPurchase           = errors.New("course not purchased")
	ErrAttemptLimitReached  = errors.New("maximum attempts reached")
	ErrCodeNotFound         = errors.New("purchase code not found")
	ErrCodeAlreadyUsed      = errors.New("purchase code already used")
	ErrAlreadyPurchased     = errors.New("course already purchased")
	ErrInvalidImageExt      = errors.New("invalid image extension")
	ErrInvalidVideoExt      = errors.New("invalid video extension")
)

// QuestionValidationItem describes one rejected question by its index in
// the submitted question list.
type QuestionValidationItem struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// QuestionValidationError is returned when an assessment's question set
// fails authoring validation. Itemized per question index so the client
// can highlight the offending questions.
type QuestionValidationError struct {
	Items []QuestionValidationItem `json:"items"`
}

func (e *QuestionValidationError) Error() string {
	msgs := make([]string, len(e.Items))
	for i, item := range e.Items {
		msgs[i] = fmt.Sprintf("question %d: %s", item.Index, item.Message)
	}
	return "invalid questions: " + strings.Join(msgs, "; ")
}

func (e *QuestionValidationError) Add(index int, message string) {
	e.Items = append(e.Items, QuestionValidationItem{Index: index, Message: message})
}

func (e *QuestionValidationError) HasErrors() bool {
	return len(e.Items) > 0
}
