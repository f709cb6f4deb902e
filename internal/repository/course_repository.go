package repository

import (
	"manassa_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) SetPublished(id uint, published bool) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", id).
		Update("is_published", published).Error
}

func (r *CourseRepository) ListPublished(page, limit int) ([]model.Course, int64, error) {
	var total int64
	query := r.DB.Model(&model.Course{}).Where("is_published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListAll(page, limit int) ([]model.Course, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	offset := (page - 1) * limit
	err := r.DB.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

// Delete removes the course with its chapters, assessments, and all
// dependent rows in one transaction.
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uint
		if err := tx.Model(&model.Chapter{}).Where("course_id = ?", id).Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}
		if len(chapterIDs) > 0 {
			if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&model.ChapterProgress{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", id).Delete(&model.Chapter{}).Error; err != nil {
				return err
			}
		}

		var assessmentIDs []uint
		if err := tx.Model(&model.Assessment{}).Where("course_id = ?", id).Pluck("id", &assessmentIDs).Error; err != nil {
			return err
		}
		if len(assessmentIDs) > 0 {
			if err := deleteAssessmentRows(tx, assessmentIDs); err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", id).Delete(&model.PurchaseCode{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Purchase{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Course{}, id).Error
	})
}
