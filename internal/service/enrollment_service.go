package service

import (
	"errors"
	"manassa_backend/internal/model"
	"manassa_backend/internal/repository"
	"manassa_backend/internal/util"
	"manassa_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnrollmentService covers purchase-code generation and redemption.
// A code is the only enrollment path: no payment flow exists server-side.
type EnrollmentService struct {
	PurchaseRepo *repository.PurchaseRepository
	CourseRepo   *repository.CourseRepository
}

func NewEnrollmentService(purchaseRepo *repository.PurchaseRepository, courseRepo *repository.CourseRepository) *EnrollmentService {
	return &EnrollmentService{
		PurchaseRepo: purchaseRepo,
		CourseRepo:   courseRepo,
	}
}

const maxCodeBatch = 500

// GenerateCodes creates a batch of single-use UUID codes for a course.
func (s *EnrollmentService) GenerateCodes(courseID uint, count int) ([]model.PurchaseCode, error) {
	if count < 1 {
		count = 1
	}
	if count > maxCodeBatch {
		count = maxCodeBatch
	}

	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	codes := make([]model.PurchaseCode, count)
	for i := range codes {
		codes[i] = model.PurchaseCode{
			Code:     uuid.New().String(),
			CourseID: courseID,
		}
	}

	if err := s.PurchaseRepo.CreateCodes(codes); err != nil {
		return nil, err
	}

	logger.Log.Info("purchase codes generated",
		zap.Uint("courseID", courseID),
		zap.Int("count", count),
	)

	return codes, nil
}

func (s *EnrollmentService) ListCodes(courseID uint, page, limit int) ([]model.PurchaseCode, int64, error) {
	return s.PurchaseRepo.ListCodesByCourse(courseID, page, limit)
}

// Redeem enrolls the student in the code's course. The repository locks
// the code row, so double redemption loses deterministically.
func (s *EnrollmentService) Redeem(userID uint, code string) (*model.Purchase, error) {
	return s.PurchaseRepo.Redeem(code, userID)
}

// HasAccess reports whether the user may consume the course's paid
// content. Teachers and admins always pass.
func (s *EnrollmentService) HasAccess(claims *util.Claims, courseID uint) (bool, error) {
	if claims == nil {
		return false, nil
	}
	if claims.Role == model.Teacher || claims.Role == model.Admin {
		return true, nil
	}
	return s.PurchaseRepo.HasPurchase(claims.UserID, courseID)
}

func (s *EnrollmentService) PurchasedCourseIDs(userID uint) ([]uint, error) {
	return s.PurchaseRepo.CourseIDsByUser(userID)
}
