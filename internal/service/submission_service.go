package service

import (
	"errors"
	"time"

	"manassa_backend/internal/model"
	"manassa_backend/internal/repository"
	"manassa_backend/internal/util"
	"manassa_backend/pkg/logger"
	"manassa_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionService struct {
	AssessmentRepo *repository.AssessmentRepository
	ResultRepo     *repository.ResultRepository
	Enrollment     *EnrollmentService
}

func NewSubmissionService(assessmentRepo *repository.AssessmentRepository, resultRepo *repository.ResultRepository, enrollment *EnrollmentService) *SubmissionService {
	return &SubmissionService{AssessmentRepo: assessmentRepo, ResultRepo: resultRepo, Enrollment: enrollment}
}

// AttemptInfo tells a student where they stand against the attempt
// limit before they start.
type AttemptInfo struct {
	PreviousAttempts int  `json:"previousAttempts"`
	CurrentAttempt   int  `json:"currentAttempt"`
	MaxAttempts      int  `json:"maxAttempts"`
	CanAttempt       bool `json:"canAttempt"`
}

// attemptGate computes attempt standing. An attempt is allowed only
// while strictly fewer than max attempts have been recorded.
func attemptGate(previous, max int) AttemptInfo {
	return AttemptInfo{
		PreviousAttempts: previous,
		CurrentAttempt:   previous + 1,
		MaxAttempts:      max,
		CanAttempt:       previous < max,
	}
}

// StudentQuestion is a question as shown during an attempt. Correct
// answers never leave the server here.
type StudentQuestion struct {
	ID       uint     `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Points   int      `json:"points"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Position int      `json:"position"`
}

type StudentAssessment struct {
	ID          uint                 `json:"id"`
	CourseID    uint                 `json:"courseId"`
	Kind        model.AssessmentKind `json:"kind"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	TimeLimit   int                  `json:"timeLimit"`
	Attempt     AttemptInfo          `json:"attempt"`
	Questions   []StudentQuestion    `json:"questions"`
}

// GetForStudent returns the attempt view of a published assessment.
// Unpublished assessments look like missing ones to students.
func (s *SubmissionService) GetForStudent(claims *util.Claims, assessmentID uint) (*StudentAssessment, error) {
	assessment, err := s.publishedAssessment(assessmentID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(claims, assessment.CourseID); err != nil {
		return nil, err
	}

	previous, err := s.ResultRepo.AttemptCount(claims.UserID, assessmentID)
	if err != nil {
		return nil, err
	}

	questions, err := s.AssessmentRepo.ListQuestions(assessmentID)
	if err != nil {
		return nil, err
	}

	view := &StudentAssessment{
		ID:          assessment.ID,
		CourseID:    assessment.CourseID,
		Kind:        assessment.Kind,
		Title:       assessment.Title,
		Description: assessment.Description,
		TimeLimit:   assessment.TimeLimit,
		Attempt:     attemptGate(previous, assessment.MaxAttempts),
		Questions:   make([]StudentQuestion, len(questions)),
	}
	for i, q := range questions {
		view.Questions[i] = StudentQuestion{
			ID:       q.ID,
			Text:     q.Text,
			Type:     string(q.Type),
			Options:  util.DecodeOptions(q.Options),
			Points:   q.Points,
			ImageURL: q.ImageURL,
			Position: q.Position,
		}
	}
	return view, nil
}

type SubmittedAnswer struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

type SubmitReq struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required"`
}

// answerMap keys answers by question ID. On duplicates the last entry
// wins.
func (r SubmitReq) answerMap() map[uint]string {
	m := make(map[uint]string, len(r.Answers))
	for _, a := range r.Answers {
		m[a.QuestionID] = a.Answer
	}
	return m
}

// Submit grades an attempt and persists the result. The attempt number
// is assigned inside the storage transaction, so two racing submissions
// cannot both land on the last allowed attempt.
func (s *SubmissionService) Submit(claims *util.Claims, assessmentID uint, req SubmitReq) (*model.Result, error) {
	assessment, err := s.publishedAssessment(assessmentID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(claims, assessment.CourseID); err != nil {
		return nil, err
	}

	// Cheap pre-check; the transaction re-checks under a row lock
	previous, err := s.ResultRepo.AttemptCount(claims.UserID, assessmentID)
	if err != nil {
		return nil, err
	}
	if !attemptGate(previous, assessment.MaxAttempts).CanAttempt {
		return nil, util.ErrAttemptLimitReached
	}

	questions, err := s.AssessmentRepo.ListQuestions(assessmentID)
	if err != nil {
		return nil, err
	}

	graded := GradeSubmission(questions, req.answerMap())

	result := &model.Result{
		UserID:       claims.UserID,
		AssessmentID: assessmentID,
		Score:        graded.Score,
		TotalPoints:  graded.TotalPoints,
		Percentage:   graded.Percentage,
		SubmittedAt:  time.Now(),
		Answers:      make([]model.ResultAnswer, len(graded.Answers)),
	}
	for i, a := range graded.Answers {
		encoded, err := util.EncodeOptions(a.Options)
		if err != nil {
			return nil, err
		}
		result.Answers[i] = model.ResultAnswer{
			QuestionID:    a.QuestionID,
			QuestionText:  a.QuestionText,
			QuestionType:  a.QuestionType,
			Options:       encoded,
			StudentAnswer: a.StudentAnswer,
			CorrectAnswer: a.CorrectAnswer,
			IsCorrect:     a.IsCorrect,
			PointsEarned:  a.PointsEarned,
			Position:      a.Position,
		}
	}

	if err := s.ResultRepo.CreateSubmission(result, assessment.MaxAttempts); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(string(assessment.Kind)).Inc()
	logger.Log.Info("submission graded",
		zap.Uint("userID", claims.UserID),
		zap.Uint("assessmentID", assessmentID),
		zap.Int("attempt", result.AttemptNumber),
		zap.Int("score", result.Score),
		zap.Int("totalPoints", result.TotalPoints))

	return result, nil
}

func (s *SubmissionService) publishedAssessment(assessmentID uint) (*model.Assessment, error) {
	assessment, err := s.AssessmentRepo.FindByID(assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !assessment.IsPublished {
		return nil, util.ErrAssessmentNotFound
	}
	return assessment, nil
}

func (s *SubmissionService) requireAccess(claims *util.Claims, courseID uint) error {
	ok, err := s.Enrollment.HasAccess(claims, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrNoPurchase
	}
	return nil
}
