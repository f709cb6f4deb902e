package service

import (
	"math"
	"testing"

	"manassa_backend/internal/model"
	"manassa_backend/internal/util"
)

func mcQuestion(t *testing.T, id uint, options []string, correct string, points int) model.Question {
	t.Helper()
	encoded, err := util.EncodeOptions(options)
	if err != nil {
		t.Fatalf("encode options: %v", err)
	}
	return model.Question{
		BaseModel:     model.BaseModel{ID: id},
		Type:          model.MultipleChoice,
		Options:       encoded,
		CorrectAnswer: correct,
		Points:        points,
	}
}

func TestGradeSubmissionMixedTypes(t *testing.T) {
	questions := []model.Question{
		mcQuestion(t, 1, []string{"2", "3", "4"}, "4", 10),
		{
			BaseModel:     model.BaseModel{ID: 2},
			Type:          model.TrueFalse,
			CorrectAnswer: "false",
			Points:        5,
		},
	}

	graded := GradeSubmission(questions, map[uint]string{1: "4", 2: "true"})

	if graded.Score != 10 {
		t.Errorf("score = %d, want 10", graded.Score)
	}
	if graded.TotalPoints != 15 {
		t.Errorf("totalPoints = %d, want 15", graded.TotalPoints)
	}
	if math.Abs(graded.Percentage-100.0*10/15) > 0.001 {
		t.Errorf("percentage = %f, want %f", graded.Percentage, 100.0*10/15)
	}
	if !graded.Answers[0].IsCorrect {
		t.Error("question 1 should be correct")
	}
	if graded.Answers[1].IsCorrect {
		t.Error("question 2 should be incorrect")
	}
}

func TestGradeSubmissionDeterministic(t *testing.T) {
	questions := []model.Question{
		mcQuestion(t, 1, []string{"a", "b"}, "a", 3),
		{BaseModel: model.BaseModel{ID: 2}, Type: model.ShortAnswer, CorrectAnswer: "Cairo", Points: 2},
	}
	answers := map[uint]string{1: "a", 2: "cairo "}

	first := GradeSubmission(questions, answers)
	for i := 0; i < 10; i++ {
		again := GradeSubmission(questions, answers)
		if again.Score != first.Score || again.Percentage != first.Percentage {
			t.Fatalf("grading is not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestGradeSubmissionNoPartialCredit(t *testing.T) {
	questions := []model.Question{
		mcQuestion(t, 1, []string{"x", "y"}, "x", 7),
	}

	graded := GradeSubmission(questions, map[uint]string{1: "y"})
	if graded.Answers[0].PointsEarned != 0 {
		t.Errorf("pointsEarned = %d, want 0", graded.Answers[0].PointsEarned)
	}

	graded = GradeSubmission(questions, map[uint]string{1: "x"})
	if graded.Answers[0].PointsEarned != 7 {
		t.Errorf("pointsEarned = %d, want 7", graded.Answers[0].PointsEarned)
	}
}

func TestGradeSubmissionMissingAnswers(t *testing.T) {
	questions := []model.Question{
		mcQuestion(t, 1, []string{"a", "b"}, "a", 5),
		{BaseModel: model.BaseModel{ID: 2}, Type: model.ShortAnswer, CorrectAnswer: "x", Points: 5},
	}

	graded := GradeSubmission(questions, nil)

	if graded.Score != 0 {
		t.Errorf("score = %d, want 0", graded.Score)
	}
	if len(graded.Answers) != 2 {
		t.Fatalf("answers = %d, want one per question", len(graded.Answers))
	}
	for _, a := range graded.Answers {
		if a.StudentAnswer != "" {
			t.Errorf("missing answer recorded as %q, want empty", a.StudentAnswer)
		}
	}
}

func TestGradeSubmissionZeroTotal(t *testing.T) {
	graded := GradeSubmission(nil, nil)
	if graded.Percentage != 0 {
		t.Errorf("percentage = %f, want 0 on empty question set", graded.Percentage)
	}
}

func TestGradeQuestionCaseRules(t *testing.T) {
	tests := []struct {
		name      string
		question  model.Question
		submitted string
		want      bool
	}{
		{
			name:      "true/false is case insensitive",
			question:  model.Question{Type: model.TrueFalse, CorrectAnswer: "true"},
			submitted: "TRUE",
			want:      true,
		},
		{
			name:      "short answer trims and lowercases",
			question:  model.Question{Type: model.ShortAnswer, CorrectAnswer: "Damascus"},
			submitted: "  damascus ",
			want:      true,
		},
		{
			name:      "short answer content must match",
			question:  model.Question{Type: model.ShortAnswer, CorrectAnswer: "Damascus"},
			submitted: "Aleppo",
			want:      false,
		},
		{
			name:      "multiple choice trims whitespace",
			question:  model.Question{Type: model.MultipleChoice, Options: `["a","b"]`, CorrectAnswer: "a"},
			submitted: " a ",
			want:      true,
		},
		{
			name:      "multiple choice rejects answer outside options",
			question:  model.Question{Type: model.MultipleChoice, Options: `["a","b"]`, CorrectAnswer: "c"},
			submitted: "c",
			want:      false,
		},
		{
			name:      "unknown type never grades correct",
			question:  model.Question{Type: "essay", CorrectAnswer: "anything"},
			submitted: "anything",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gradeQuestion(tt.question, tt.submitted); got != tt.want {
				t.Errorf("gradeQuestion() = %v, want %v", got, tt.want)
			}
		})
	}
}
