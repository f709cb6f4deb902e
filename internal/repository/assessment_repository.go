package repository

import (
	"manassa_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// CreateWithQuestions persists the assessment and its question set in
// one transaction.
func (r *AssessmentRepository) CreateWithQuestions(assessment *model.Assessment, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assessment).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].AssessmentID = assessment.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceQuestions deletes the assessment's existing questions and
// recreates the new set atomically. Authoring edits replace wholesale,
// they never diff.
func (r *AssessmentRepository) ReplaceQuestions(assessment *model.Assessment, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(assessment).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("assessment_id = ?", assessment.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].AssessmentID = assessment.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.DB.First(&assessment, id).Error
	return &assessment, err
}

func (r *AssessmentRepository) ListQuestions(assessmentID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("position asc").Find(&questions).Error
	return questions, err
}

func (r *AssessmentRepository) ListByCourse(courseID uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.Where("course_id = ?", courseID).
		Order("position asc").Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) ListPublishedByCourse(courseID uint, kind model.AssessmentKind) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.Where("course_id = ? AND kind = ? AND is_published = ?", courseID, kind, true).
		Order("position asc").Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) ListPublishedByCourses(courseIDs []uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	if len(courseIDs) == 0 {
		return assessments, nil
	}
	err := r.DB.Where("course_id IN ? AND is_published = ?", courseIDs, true).
		Order("course_id asc, position asc").Find(&assessments).Error
	return assessments, err
}

// QuestionCountMap returns assessmentID -> question count for a set of
// assessments in one query.
func (r *AssessmentRepository) QuestionCountMap(assessmentIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(assessmentIDs))
	if len(assessmentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AssessmentID uint
		Total        int
	}
	err := r.DB.Model(&model.Question{}).
		Select("assessment_id, COUNT(*) as total").
		Where("assessment_id IN ?", assessmentIDs).
		Group("assessment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.AssessmentID] = row.Total
	}
	return counts, nil
}

func (r *AssessmentRepository) Update(assessment *model.Assessment) error {
	return r.DB.Save(assessment).Error
}

func (r *AssessmentRepository) CountQuestions(assessmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("assessment_id = ?", assessmentID).Count(&count).Error
	return count, err
}

// Delete cascades to questions, results, answers, and attempt counters.
func (r *AssessmentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteAssessmentRows(tx, []uint{id})
	})
}

// deleteAssessmentRows removes assessments and every dependent row.
// Shared with course cascade deletion; callers supply the transaction.
func deleteAssessmentRows(tx *gorm.DB, assessmentIDs []uint) error {
	var resultIDs []uint
	if err := tx.Model(&model.Result{}).Where("assessment_id IN ?", assessmentIDs).Pluck("id", &resultIDs).Error; err != nil {
		return err
	}
	if len(resultIDs) > 0 {
		if err := tx.Where("result_id IN ?", resultIDs).Delete(&model.ResultAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assessment_id IN ?", assessmentIDs).Delete(&model.Result{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("assessment_id IN ?", assessmentIDs).Delete(&model.AttemptCounter{}).Error; err != nil {
		return err
	}
	if err := tx.Where("assessment_id IN ?", assessmentIDs).Delete(&model.Question{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", assessmentIDs).Delete(&model.Assessment{}).Error
}
