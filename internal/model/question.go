package model

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

// Question belongs to exactly one assessment. Options is a JSON-encoded
// string array, present only for multiple-choice questions; decode it
// through util.DecodeOptions, never inline.
// swagger:model Question
type Question struct {
	BaseModel
	AssessmentID  uint         `gorm:"uniqueIndex:idx_question_assessment_position;type:bigint unsigned" json:"assessmentId"`
	Text          string       `gorm:"type:text" json:"text"` // Optional when ImageURL is set
	Type          QuestionType `gorm:"type:enum('multiple_choice','true_false','short_answer');not null" json:"type"`
	Options       string       `gorm:"type:text" json:"-"`
	CorrectAnswer string       `gorm:"type:text;not null" json:"correctAnswer"`
	Points        int          `gorm:"not null" json:"points"`
	ImageURL      string       `gorm:"size:255" json:"imageUrl"`
	Position      int          `gorm:"uniqueIndex:idx_question_assessment_position" json:"position"`
}

func (Question) TableName() string {
	return "questions"
}
