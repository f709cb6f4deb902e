package service

import (
	"errors"

	"manassa_backend/internal/model"
	"manassa_backend/internal/repository"
	"manassa_backend/internal/util"

	"gorm.io/gorm"
)

type ResultService struct {
	ResultRepo     *repository.ResultRepository
	AssessmentRepo *repository.AssessmentRepository
	Enrollment     *EnrollmentService
}

func NewResultService(resultRepo *repository.ResultRepository, assessmentRepo *repository.AssessmentRepository, enrollment *EnrollmentService) *ResultService {
	return &ResultService{ResultRepo: resultRepo, AssessmentRepo: assessmentRepo, Enrollment: enrollment}
}

// ResultSummary is one row in a student's result list.
type ResultSummary struct {
	ID            uint    `json:"id"`
	AssessmentID  uint    `json:"assessmentId"`
	AttemptNumber int     `json:"attemptNumber"`
	Score         int     `json:"score"`
	TotalPoints   int     `json:"totalPoints"`
	Percentage    float64 `json:"percentage"`
	SubmittedAt   string  `json:"submittedAt"`
}

// ResultDetail is one fully expanded result, per-question breakdown
// included.
type ResultDetail struct {
	ResultSummary
	UserID      uint           `json:"userId"`
	UserName    string         `json:"userName,omitempty"`
	Answers     []GradedAnswer `json:"answers"`
}

// ListMine returns the student's own results for one assessment, most
// recent first.
func (s *ResultService) ListMine(userID, assessmentID uint) ([]ResultSummary, error) {
	results, err := s.ResultRepo.ListByUserAndAssessment(userID, assessmentID)
	if err != nil {
		return nil, err
	}
	summaries := make([]ResultSummary, len(results))
	for i, r := range results {
		summaries[i] = summarize(&r)
	}
	return summaries, nil
}

// OverviewEntry summarizes a student's standing on one assessment they
// can access.
type OverviewEntry struct {
	AssessmentID   uint                 `json:"assessmentId"`
	CourseID       uint                 `json:"courseId"`
	Kind           model.AssessmentKind `json:"kind"`
	Title          string               `json:"title"`
	MaxAttempts    int                  `json:"maxAttempts"`
	Attempts       int                  `json:"attempts"`
	BestPercentage float64              `json:"bestPercentage"`
	BestResultID   uint                 `json:"bestResultId,omitempty"`
	Attempted      bool                 `json:"attempted"`
}

// Overview covers every published assessment in the student's purchased
// courses, attempted or not.
func (s *ResultService) Overview(userID uint) ([]OverviewEntry, error) {
	courseIDs, err := s.Enrollment.PurchasedCourseIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return []OverviewEntry{}, nil
	}

	assessments, err := s.AssessmentRepo.ListPublishedByCourses(courseIDs)
	if err != nil {
		return nil, err
	}

	assessmentIDs := make([]uint, len(assessments))
	for i, a := range assessments {
		assessmentIDs[i] = a.ID
	}
	stats, err := s.ResultRepo.StatsByUser(userID, assessmentIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]OverviewEntry, len(assessments))
	for i, a := range assessments {
		stat := stats[a.ID]
		entries[i] = OverviewEntry{
			AssessmentID:   a.ID,
			CourseID:       a.CourseID,
			Kind:           a.Kind,
			Title:          a.Title,
			MaxAttempts:    a.MaxAttempts,
			Attempts:       stat.Attempts,
			BestPercentage: stat.BestPercentage,
			BestResultID:   stat.BestResultID,
			Attempted:      stat.Attempts > 0,
		}
	}
	return entries, nil
}

// ListAll is the teacher view: every student's results, optionally
// filtered by assessment, paginated.
func (s *ResultService) ListAll(assessmentID uint, page, limit int) ([]ResultDetail, int64, error) {
	results, total, err := s.ResultRepo.ListAll(assessmentID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	details := make([]ResultDetail, len(results))
	for i := range results {
		details[i] = expand(&results[i])
		// The list view stays light; answers come from GetDetail
		details[i].Answers = nil
	}
	return details, total, nil
}

// GetDetail returns one result with its per-question breakdown.
// Students may only read their own results.
func (s *ResultService) GetDetail(claims *util.Claims, resultID uint) (*ResultDetail, error) {
	result, err := s.ResultRepo.FindByID(resultID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if claims.Role == model.Student && result.UserID != claims.UserID {
		return nil, util.ErrUnauthorized
	}

	detail := expand(result)
	return &detail, nil
}

func summarize(r *model.Result) ResultSummary {
	return ResultSummary{
		ID:            r.ID,
		AssessmentID:  r.AssessmentID,
		AttemptNumber: r.AttemptNumber,
		Score:         r.Score,
		TotalPoints:   r.TotalPoints,
		Percentage:    r.Percentage,
		SubmittedAt:   r.SubmittedAt.Format(util.TimeFormat),
	}
}

func expand(r *model.Result) ResultDetail {
	detail := ResultDetail{
		ResultSummary: summarize(r),
		UserID:        r.UserID,
		Answers:       make([]GradedAnswer, len(r.Answers)),
	}
	if r.User != nil {
		detail.UserName = r.User.Name
	}
	for i, a := range r.Answers {
		detail.Answers[i] = GradedAnswer{
			QuestionID:    a.QuestionID,
			QuestionText:  a.QuestionText,
			QuestionType:  a.QuestionType,
			Options:       util.DecodeOptions(a.Options),
			StudentAnswer: a.StudentAnswer,
			CorrectAnswer: a.CorrectAnswer,
			IsCorrect:     a.IsCorrect,
			PointsEarned:  a.PointsEarned,
			Position:      a.Position,
		}
	}
	return detail
}
