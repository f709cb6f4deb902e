package repository

import (
	"errors"
	"manassa_backend/internal/model"
	"manassa_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

func (r *PurchaseRepository) CreateCodes(codes []model.PurchaseCode) error {
	return r.DB.Create(&codes).Error
}

func (r *PurchaseRepository) ListCodesByCourse(courseID uint, page, limit int) ([]model.PurchaseCode, int64, error) {
	query := r.DB.Model(&model.PurchaseCode{}).Where("course_id = ?", courseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var codes []model.PurchaseCode
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&codes).Error
	return codes, total, err
}

// Redeem marks the code used and creates the purchase row atomically.
// The code row is locked so a code can never enroll two students.
func (r *PurchaseRepository) Redeem(code string, userID uint) (*model.Purchase, error) {
	var purchase *model.Purchase
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var pc model.PurchaseCode
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code = ?", code).First(&pc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCodeNotFound
		}
		if err != nil {
			return err
		}
		if pc.IsUsed {
			return util.ErrCodeAlreadyUsed
		}

		var existing int64
		if err := tx.Model(&model.Purchase{}).
			Where("user_id = ? AND course_id = ?", userID, pc.CourseID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return util.ErrAlreadyPurchased
		}

		now := time.Now()
		pc.IsUsed = true
		pc.UsedByID = &userID
		pc.UsedAt = &now
		if err := tx.Save(&pc).Error; err != nil {
			return err
		}

		purchase = &model.Purchase{UserID: userID, CourseID: pc.CourseID}
		return tx.Create(purchase).Error
	})
	return purchase, err
}

func (r *PurchaseRepository) HasPurchase(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *PurchaseRepository) CourseIDsByUser(userID uint) ([]uint, error) {
	var courseIDs []uint
	err := r.DB.Model(&model.Purchase{}).Where("user_id = ?", userID).
		Pluck("course_id", &courseIDs).Error
	return courseIDs, err
}
