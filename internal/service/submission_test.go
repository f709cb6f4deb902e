package service

import "testing"

func TestAnswerMapLastEntryWins(t *testing.T) {
	req := SubmitReq{Answers: []SubmittedAnswer{
		{QuestionID: 1, Answer: "a"},
		{QuestionID: 2, Answer: "b"},
		{QuestionID: 1, Answer: "c"},
	}}

	m := req.answerMap()
	if len(m) != 2 {
		t.Fatalf("map size = %d, want 2", len(m))
	}
	if m[1] != "c" {
		t.Errorf("m[1] = %q, want later entry to win", m[1])
	}
	if m[2] != "b" {
		t.Errorf("m[2] = %q, want %q", m[2], "b")
	}
}

func TestAttemptGate(t *testing.T) {
	tests := []struct {
		name     string
		previous int
		max      int
		want     bool
	}{
		{"first of one", 0, 1, true},
		{"limit of one reached", 1, 1, false},
		{"last allowed attempt", 2, 3, true},
		{"limit reached", 3, 3, false},
		{"over the limit", 4, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := attemptGate(tt.previous, tt.max)
			if gate.CanAttempt != tt.want {
				t.Errorf("CanAttempt = %v, want %v", gate.CanAttempt, tt.want)
			}
			if gate.CurrentAttempt != tt.previous+1 {
				t.Errorf("CurrentAttempt = %d, want %d", gate.CurrentAttempt, tt.previous+1)
			}
			if gate.PreviousAttempts != tt.previous {
				t.Errorf("PreviousAttempts = %d, want %d", gate.PreviousAttempts, tt.previous)
			}
		})
	}
}
