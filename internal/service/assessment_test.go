package service

import (
	"errors"
	"testing"

	"manassa_backend/internal/model"
	"manassa_backend/internal/util"
)

func validMC() QuestionReq {
	return QuestionReq{
		Text:          "What is 2 + 2?",
		Type:          string(model.MultipleChoice),
		Options:       []string{"3", "4", "5"},
		CorrectAnswer: "4",
		Points:        10,
	}
}

func questionErrors(t *testing.T, err error) []util.QuestionValidationItem {
	t.Helper()
	var verr *util.QuestionValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *util.QuestionValidationError", err)
	}
	return verr.Items
}

func TestBuildQuestionsValid(t *testing.T) {
	questions, err := buildQuestions([]QuestionReq{
		validMC(),
		{Text: "The earth is flat.", Type: string(model.TrueFalse), CorrectAnswer: "False", Points: 5},
		{Text: "Capital of Jordan?", Type: string(model.ShortAnswer), CorrectAnswer: "Amman", Points: 5},
	})
	if err != nil {
		t.Fatalf("buildQuestions: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(questions))
	}

	for i, q := range questions {
		if q.Position != i {
			t.Errorf("question %d position = %d", i, q.Position)
		}
	}
	if questions[1].CorrectAnswer != "false" {
		t.Errorf("true/false answer stored as %q, want lowercase", questions[1].CorrectAnswer)
	}
	if got := util.DecodeOptions(questions[0].Options); len(got) != 3 {
		t.Errorf("decoded options = %v, want 3 entries", got)
	}
}

func TestBuildQuestionsEmptySet(t *testing.T) {
	_, err := buildQuestions(nil)
	items := questionErrors(t, err)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
}

func TestBuildQuestionsCollectsAllProblems(t *testing.T) {
	bad1 := validMC()
	bad1.Options = []string{"only one"}
	bad1.CorrectAnswer = "only one"

	bad2 := QuestionReq{Text: "ok?", Type: string(model.TrueFalse), CorrectAnswer: "maybe", Points: 5}

	_, err := buildQuestions([]QuestionReq{validMC(), bad1, bad2})
	items := questionErrors(t, err)

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2: %+v", len(items), items)
	}
	if items[0].Index != 1 || items[1].Index != 2 {
		t.Errorf("indices = %d, %d, want 1, 2", items[0].Index, items[1].Index)
	}
}

func TestBuildQuestionRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*QuestionReq)
	}{
		{"no text and no image", func(q *QuestionReq) { q.Text = " "; q.ImageURL = "" }},
		{"zero points", func(q *QuestionReq) { q.Points = 0 }},
		{"negative points", func(q *QuestionReq) { q.Points = -5 }},
		{"answer not in options", func(q *QuestionReq) { q.CorrectAnswer = "7" }},
		{"fewer than two options", func(q *QuestionReq) { q.Options = []string{"4"} }},
		{"blank options ignored", func(q *QuestionReq) { q.Options = []string{"4", "", "  "} }},
		{"unknown type", func(q *QuestionReq) { q.Type = "essay" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validMC()
			tt.mutate(&req)
			if _, err := buildQuestion(req); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestBuildQuestionImageOnly(t *testing.T) {
	req := validMC()
	req.Text = ""
	req.ImageURL = "/uploads/questions/diagram.png"
	if _, err := buildQuestion(req); err != nil {
		t.Errorf("image-only question rejected: %v", err)
	}
}

func TestBuildQuestionShortAnswerNeedsKey(t *testing.T) {
	req := QuestionReq{Text: "Explain.", Type: string(model.ShortAnswer), CorrectAnswer: "  ", Points: 5}
	if _, err := buildQuestion(req); err == nil {
		t.Error("short answer without a key should be rejected")
	}
}

func TestParseKindDefaultsToQuiz(t *testing.T) {
	kind, err := parseKind("")
	if err != nil || kind != model.KindQuiz {
		t.Errorf("parseKind(\"\") = %v, %v", kind, err)
	}
	if _, err := parseKind("exam"); err == nil {
		t.Error("unknown kind should be rejected")
	}
}
