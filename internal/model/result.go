package model

import "time"

// Result is the persisted outcome of one attempt. Immutable once created:
// no update or delete path exists outside assessment cascade deletion.
// swagger:model Result
type Result struct {
	BaseModel
	UserID        uint           `gorm:"uniqueIndex:idx_result_user_assessment_attempt;type:bigint unsigned" json:"userId"`
	User          *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssessmentID  uint           `gorm:"uniqueIndex:idx_result_user_assessment_attempt;type:bigint unsigned" json:"assessmentId"`
	Score         int            `gorm:"not null" json:"score"`
	TotalPoints   int            `gorm:"not null" json:"totalPoints"`
	Percentage    float64        `gorm:"not null" json:"percentage"`
	AttemptNumber int            `gorm:"uniqueIndex:idx_result_user_assessment_attempt" json:"attemptNumber"`
	SubmittedAt   time.Time      `json:"submittedAt"`
	Answers       []ResultAnswer `gorm:"foreignKey:ResultID" json:"answers,omitempty"`
}

func (Result) TableName() string {
	return "results"
}

// ResultAnswer snapshots one question at submission time alongside the
// student's recorded answer, so grade review survives later edits to the
// assessment.
type ResultAnswer struct {
	BaseModel
	ResultID      uint         `gorm:"index;type:bigint unsigned" json:"resultId"`
	QuestionID    uint         `gorm:"index;type:bigint unsigned" json:"questionId"`
	QuestionText  string       `gorm:"type:text" json:"questionText"`
	QuestionType  QuestionType `gorm:"size:50" json:"questionType"`
	Options       string       `gorm:"type:text" json:"-"`
	StudentAnswer string       `gorm:"type:text" json:"studentAnswer"`
	CorrectAnswer string       `gorm:"type:text" json:"correctAnswer"`
	IsCorrect     bool         `gorm:"default:false" json:"isCorrect"`
	PointsEarned  int          `gorm:"default:0" json:"pointsEarned"`
	Position      int          `gorm:"default:0" json:"position"`
}

func (ResultAnswer) TableName() string {
	return "result_answers"
}
