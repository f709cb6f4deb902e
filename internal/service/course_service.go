package service

import (
	"errors"
	"manassa_backend/internal/model"
	"manassa_backend/internal/repository"
	"manassa_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo  *repository.CourseRepository
	ChapterRepo *repository.ChapterRepository
	Content     *ContentService
}

func NewCourseService(courseRepo *repository.CourseRepository, chapterRepo *repository.ChapterRepository, content *ContentService) *CourseService {
	return &CourseService{
		CourseRepo:  courseRepo,
		ChapterRepo: chapterRepo,
		Content:     content,
	}
}

type CourseReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

func (s *CourseService) Create(teacherID uint, req CourseReq) (*model.Course, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	course := &model.Course{
		Title:     *req.Title,
		TeacherID: teacherID,
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.ImageURL != nil {
		course.ImageURL = *req.ImageURL
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// Update mutates any teacher's course; teachers are mutually trusted,
// there is no per-teacher ownership check.
func (s *CourseService) Update(courseID uint, req CourseReq) (*model.Course, error) {
	course, err := s.findCourse(courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.ImageURL != nil {
		course.ImageURL = *req.ImageURL
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	s.Content.InvalidateCourseContent(courseID)
	return course, nil
}

func (s *CourseService) SetPublished(courseID uint, published bool) error {
	if _, err := s.findCourse(courseID); err != nil {
		return err
	}
	if err := s.CourseRepo.SetPublished(courseID, published); err != nil {
		return err
	}
	s.Content.InvalidateCourseContent(courseID)
	return nil
}

func (s *CourseService) Delete(courseID uint) error {
	if _, err := s.findCourse(courseID); err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(courseID); err != nil {
		return err
	}
	s.Content.InvalidateCourseContent(courseID)
	return nil
}

func (s *CourseService) Get(courseID uint) (*model.Course, error) {
	return s.findCourse(courseID)
}

func (s *CourseService) ListPublished(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListPublished(page, limit)
}

func (s *CourseService) ListAll(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListAll(page, limit)
}

func (s *CourseService) findCourse(courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}
