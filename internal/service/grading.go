package service

import (
	"manassa_backend/internal/model"
	"manassa_backend/internal/util"
	"strings"
)

// GradedAnswer is the outcome of grading one question.
type GradedAnswer struct {
	QuestionID    uint               `json:"questionId"`
	QuestionText  string             `json:"questionText"`
	QuestionType  model.QuestionType `json:"questionType"`
	Options       []string           `json:"options"`
	StudentAnswer string             `json:"studentAnswer"`
	CorrectAnswer string             `json:"correctAnswer"`
	IsCorrect     bool               `json:"isCorrect"`
	PointsEarned  int                `json:"pointsEarned"`
	Position      int                `json:"position"`
}

// GradedSubmission aggregates one full attempt.
type GradedSubmission struct {
	Answers     []GradedAnswer `json:"answers"`
	Score       int            `json:"score"`
	TotalPoints int            `json:"totalPoints"`
	Percentage  float64        `json:"percentage"`
}

// GradeSubmission grades every question against the submitted answers.
// It is a pure function of its inputs: no state, fully deterministic.
// Questions missing from the answer map grade against the empty string.
// Answers are one graded record per question in position order; there is
// no partial credit for any type.
func GradeSubmission(questions []model.Question, answers map[uint]string) GradedSubmission {
	graded := GradedSubmission{
		Answers: make([]GradedAnswer, 0, len(questions)),
	}

	for _, q := range questions {
		submitted := answers[q.ID]
		correct := gradeQuestion(q, submitted)

		pointsEarned := 0
		if correct {
			pointsEarned = q.Points
		}

		graded.Answers = append(graded.Answers, GradedAnswer{
			QuestionID:    q.ID,
			QuestionText:  q.Text,
			QuestionType:  q.Type,
			Options:       util.DecodeOptions(q.Options),
			StudentAnswer: submitted,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			PointsEarned:  pointsEarned,
			Position:      q.Position,
		})

		graded.TotalPoints += q.Points
		graded.Score += pointsEarned
	}

	if graded.TotalPoints > 0 {
		graded.Percentage = float64(graded.Score) / float64(graded.TotalPoints) * 100
	}

	return graded
}

func gradeQuestion(q model.Question, submitted string) bool {
	switch q.Type {
	case model.MultipleChoice:
		// The stored correct answer must also appear in the options
		// list; grading validates stored data rather than trusting it.
		answer := strings.TrimSpace(q.CorrectAnswer)
		if strings.TrimSpace(submitted) != answer {
			return false
		}
		for _, option := range util.DecodeOptions(q.Options) {
			if strings.TrimSpace(option) == answer {
				return true
			}
		}
		return false
	case model.TrueFalse:
		return strings.ToLower(submitted) == strings.ToLower(q.CorrectAnswer)
	case model.ShortAnswer:
		return normalize(submitted) == normalize(q.CorrectAnswer)
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
