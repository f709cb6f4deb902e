package service

import (
	"errors"
	"strings"
	"time"

	"manassa_backend/internal/model"
	"manassa_backend/internal/repository"
	"manassa_backend/internal/util"
	"manassa_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	CourseRepo     *repository.CourseRepository
	Content        *ContentService
}

func NewAssessmentService(assessmentRepo *repository.AssessmentRepository, courseRepo *repository.CourseRepository, content *ContentService) *AssessmentService {
	return &AssessmentService{AssessmentRepo: assessmentRepo, CourseRepo: courseRepo, Content: content}
}

type QuestionReq struct {
	Text          string   `json:"text"`
	Type          string   `json:"type" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Points        int      `json:"points"`
	ImageURL      string   `json:"imageUrl"`
}

type AssessmentReq struct {
	Kind        string        `json:"kind"`
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Position    int           `json:"position"`
	MaxAttempts int           `json:"maxAttempts"`
	TimeLimit   int           `json:"timeLimit"`
	Questions   []QuestionReq `json:"questions" binding:"required"`
}

// AssessmentDetail is the authoring view, correct answers included.
type AssessmentDetail struct {
	model.Assessment
	Questions []QuestionDetail `json:"questions"`
}

type QuestionDetail struct {
	ID            uint     `json:"id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Points        int      `json:"points"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Position      int      `json:"position"`
}

func (s *AssessmentService) Create(courseID uint, req AssessmentReq) (*AssessmentDetail, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	kind, err := parseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	assessment := &model.Assessment{
		CourseID:    courseID,
		Kind:        kind,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
		MaxAttempts: req.MaxAttempts,
		TimeLimit:   req.TimeLimit,
	}
	if assessment.MaxAttempts <= 0 {
		assessment.MaxAttempts = 1
	}

	if err := s.AssessmentRepo.CreateWithQuestions(assessment, questions); err != nil {
		return nil, err
	}

	logger.Log.Info("assessment created",
		zap.Uint("assessmentID", assessment.ID),
		zap.Uint("courseID", courseID),
		zap.String("kind", string(kind)),
		zap.Int("questions", len(questions)))

	s.Content.InvalidateCourseContent(courseID)
	return s.detail(assessment, questions), nil
}

// Update rewrites the assessment and replaces its question set
// wholesale. Existing results keep their snapshots, so edits never
// change already-graded work.
func (s *AssessmentService) Update(assessmentID uint, req AssessmentReq) (*AssessmentDetail, error) {
	assessment, err := s.findAssessment(assessmentID)
	if err != nil {
		return nil, err
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	assessment.Title = req.Title
	assessment.Description = req.Description
	assessment.Position = req.Position
	assessment.TimeLimit = req.TimeLimit
	if req.MaxAttempts > 0 {
		assessment.MaxAttempts = req.MaxAttempts
	}
	if req.Kind != "" {
		kind, err := parseKind(req.Kind)
		if err != nil {
			return nil, err
		}
		assessment.Kind = kind
	}

	if err := s.AssessmentRepo.ReplaceQuestions(assessment, questions); err != nil {
		return nil, err
	}

	s.Content.InvalidateCourseContent(assessment.CourseID)
	return s.detail(assessment, questions), nil
}

// SetPublished toggles visibility. Publishing an assessment with no
// questions is rejected.
func (s *AssessmentService) SetPublished(assessmentID uint, published bool) error {
	assessment, err := s.findAssessment(assessmentID)
	if err != nil {
		return err
	}

	if published {
		count, err := s.AssessmentRepo.CountQuestions(assessmentID)
		if err != nil {
			return err
		}
		if count == 0 {
			return errors.New("cannot publish an assessment with no questions")
		}
	}

	assessment.IsPublished = published
	if published && assessment.PublishedAt == nil {
		now := time.Now()
		assessment.PublishedAt = &now
	}

	if err := s.AssessmentRepo.Update(assessment); err != nil {
		return err
	}
	s.Content.InvalidateCourseContent(assessment.CourseID)
	return nil
}

func (s *AssessmentService) Delete(assessmentID uint) error {
	assessment, err := s.findAssessment(assessmentID)
	if err != nil {
		return err
	}
	if err := s.AssessmentRepo.Delete(assessmentID); err != nil {
		return err
	}
	s.Content.InvalidateCourseContent(assessment.CourseID)
	return nil
}

// GetForAuthor returns the full assessment with correct answers.
func (s *AssessmentService) GetForAuthor(assessmentID uint) (*AssessmentDetail, error) {
	assessment, err := s.findAssessment(assessmentID)
	if err != nil {
		return nil, err
	}
	questions, err := s.AssessmentRepo.ListQuestions(assessmentID)
	if err != nil {
		return nil, err
	}
	return s.detail(assessment, questions), nil
}

func (s *AssessmentService) ListByCourse(courseID uint) ([]model.Assessment, error) {
	return s.AssessmentRepo.ListByCourse(courseID)
}

func (s *AssessmentService) findAssessment(assessmentID uint) (*model.Assessment, error) {
	assessment, err := s.AssessmentRepo.FindByID(assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) detail(assessment *model.Assessment, questions []model.Question) *AssessmentDetail {
	detail := &AssessmentDetail{Assessment: *assessment, Questions: make([]QuestionDetail, len(questions))}
	for i, q := range questions {
		detail.Questions[i] = QuestionDetail{
			ID:            q.ID,
			Text:          q.Text,
			Type:          string(q.Type),
			Options:       util.DecodeOptions(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			ImageURL:      q.ImageURL,
			Position:      q.Position,
		}
	}
	return detail
}

func parseKind(kind string) (model.AssessmentKind, error) {
	switch model.AssessmentKind(kind) {
	case model.KindQuiz:
		return model.KindQuiz, nil
	case model.KindHomework:
		return model.KindHomework, nil
	case "":
		return model.KindQuiz, nil
	default:
		return "", errors.New("unknown assessment kind: " + kind)
	}
}

// buildQuestions validates the submitted question list and converts it
// to model rows. All problems are collected before returning, so the
// client sees every offending question at once.
func buildQuestions(reqs []QuestionReq) ([]model.Question, error) {
	verr := &util.QuestionValidationError{}

	if len(reqs) == 0 {
		verr.Add(0, "at least one question is required")
		return nil, verr
	}

	questions := make([]model.Question, 0, len(reqs))
	for i, req := range reqs {
		q, err := buildQuestion(req)
		if err != nil {
			verr.Add(i, err.Error())
			continue
		}
		q.Position = i
		questions = append(questions, q)
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return questions, nil
}

func buildQuestion(req QuestionReq) (model.Question, error) {
	var q model.Question

	if strings.TrimSpace(req.Text) == "" && req.ImageURL == "" {
		return q, errors.New("question needs text or an image")
	}
	if req.Points <= 0 {
		return q, errors.New("points must be positive")
	}

	answer := strings.TrimSpace(req.CorrectAnswer)

	switch model.QuestionType(req.Type) {
	case model.MultipleChoice:
		options := make([]string, 0, len(req.Options))
		for _, opt := range req.Options {
			if trimmed := strings.TrimSpace(opt); trimmed != "" {
				options = append(options, trimmed)
			}
		}
		if len(options) < 2 {
			return q, errors.New("multiple choice needs at least two options")
		}
		found := false
		for _, opt := range options {
			if opt == answer {
				found = true
				break
			}
		}
		if !found {
			return q, errors.New("correct answer must be one of the options")
		}
		encoded, err := util.EncodeOptions(options)
		if err != nil {
			return q, err
		}
		q.Options = encoded

	case model.TrueFalse:
		lowered := strings.ToLower(answer)
		if lowered != "true" && lowered != "false" {
			return q, errors.New("true/false answer must be \"true\" or \"false\"")
		}
		answer = lowered

	case model.ShortAnswer:
		if answer == "" {
			return q, errors.New("short answer questions need a correct answer")
		}

	default:
		return q, errors.New("unknown question type: " + req.Type)
	}

	q.Text = strings.TrimSpace(req.Text)
	q.Type = model.QuestionType(req.Type)
	q.CorrectAnswer = answer
	q.Points = req.Points
	q.ImageURL = req.ImageURL
	return q, nil
}
