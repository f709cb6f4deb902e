package repository

import (
	"errors"
	"manassa_backend/internal/model"
	"manassa_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// CreateSubmission re-checks the attempt limit under a row lock on the
// (user, assessment) counter, assigns the attempt number, and inserts
// the result with its answer snapshot — all in one transaction. Two
// concurrent submissions serialize on the locked counter, so attempt
// numbers are never reused.
func (r *ResultRepository) CreateSubmission(result *model.Result, maxAttempts int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var counter model.AttemptCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND assessment_id = ?", result.UserID, result.AssessmentID).
			First(&counter).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			counter = model.AttemptCounter{
				UserID:       result.UserID,
				AssessmentID: result.AssessmentID,
				Count:        0,
			}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if counter.Count >= maxAttempts {
			return util.ErrAttemptLimitReached
		}

		result.AttemptNumber = counter.Count + 1
		if err := tx.Create(result).Error; err != nil {
			return err
		}

		return tx.Model(&model.AttemptCounter{}).Where("id = ?", counter.ID).
			Update("count", counter.Count+1).Error
	})
}

// AttemptCount returns the number of accepted submissions for the pair.
// Missing counter rows read as zero.
func (r *ResultRepository) AttemptCount(userID, assessmentID uint) (int, error) {
	var counter model.AttemptCounter
	err := r.DB.Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.Count, nil
}

func (r *ResultRepository) FindByID(id uint) (*model.Result, error) {
	var result model.Result
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("result_answers.position asc")
	}).Preload("User").First(&result, id).Error
	return &result, err
}

// ListByUserAndAssessment returns the student's own results, most
// recent first, with per-question answers.
func (r *ResultRepository) ListByUserAndAssessment(userID, assessmentID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("result_answers.position asc")
	}).
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Order("submitted_at desc").Find(&results).Error
	return results, err
}

// ListByUser returns every result the student owns, newest first,
// without answer rows.
func (r *ResultRepository) ListByUser(userID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Where("user_id = ?", userID).
		Order("submitted_at desc").Find(&results).Error
	return results, err
}

// ResultStats summarizes one student's standing on one assessment.
type ResultStats struct {
	Attempts       int     `json:"attempts"`
	BestPercentage float64 `json:"bestPercentage"`
	BestResultID   uint    `json:"bestResultId"`
}

// StatsByUser returns assessmentID -> attempt count and best percentage
// for one student across a set of assessments.
func (r *ResultRepository) StatsByUser(userID uint, assessmentIDs []uint) (map[uint]ResultStats, error) {
	stats := make(map[uint]ResultStats, len(assessmentIDs))
	if len(assessmentIDs) == 0 {
		return stats, nil
	}

	var results []model.Result
	err := r.DB.Where("user_id = ? AND assessment_id IN ?", userID, assessmentIDs).
		Order("submitted_at asc").Find(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		s := stats[res.AssessmentID]
		s.Attempts++
		if s.Attempts == 1 || res.Percentage > s.BestPercentage {
			s.BestPercentage = res.Percentage
			s.BestResultID = res.ID
		}
		stats[res.AssessmentID] = s
	}
	return stats, nil
}

// ListAll returns results across all students for the teacher review
// view, optionally filtered by assessment.
func (r *ResultRepository) ListAll(assessmentID uint, page, limit int) ([]model.Result, int64, error) {
	query := r.DB.Model(&model.Result{})
	if assessmentID != 0 {
		query = query.Where("assessment_id = ?", assessmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []model.Result
	offset := (page - 1) * limit
	err := query.Preload("User").
		Order("submitted_at desc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}
