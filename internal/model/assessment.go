package model

import "time"

type AssessmentKind string

const (
	KindQuiz     AssessmentKind = "quiz"
	KindHomework AssessmentKind = "homework"
)

// Assessment is a quiz or homework: a named, ordered set of questions
// belonging to a course. Position shares one ordering space with the
// course's chapters.
// swagger:model Assessment
type Assessment struct {
	BaseModel
	CourseID    uint           `gorm:"index;type:bigint unsigned" json:"courseId"`
	Kind        AssessmentKind `gorm:"type:enum('quiz','homework');not null" json:"kind"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Position    int            `gorm:"default:0" json:"position"`
	IsPublished bool           `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	MaxAttempts int            `gorm:"default:1" json:"maxAttempts"`
	TimeLimit   int            `gorm:"default:0" json:"timeLimit"` // Minutes, 0 means no timer
}

func (Assessment) TableName() string {
	return "assessments"
}

// AttemptCounter holds the number of accepted submissions per
// (student, assessment) pair. Incremented under row lock in the same
// transaction that inserts the result, so concurrent submissions cannot
// read a stale count.
type AttemptCounter struct {
	BaseModel
	UserID       uint `gorm:"uniqueIndex:idx_attempt_counter_user_assessment;type:bigint unsigned" json:"userId"`
	AssessmentID uint `gorm:"uniqueIndex:idx_attempt_counter_user_assessment;type:bigint unsigned" json:"assessmentId"`
	Count        int  `gorm:"default:0" json:"count"`
}

func (AttemptCounter) TableName() string {
	return "attempt_counters"
}
