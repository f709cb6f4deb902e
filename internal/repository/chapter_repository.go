package repository

import (
	"manassa_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChapterRepository struct {
	DB *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) Create(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *ChapterRepository) FindByID(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.First(&chapter, id).Error
	return &chapter, err
}

func (r *ChapterRepository) Update(chapter *model.Chapter) error {
	return r.DB.Save(chapter).Error
}

func (r *ChapterRepository) SetPublished(id uint, published bool) error {
	return r.DB.Model(&model.Chapter{}).Where("id = ?", id).
		Update("is_published", published).Error
}

func (r *ChapterRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id = ?", id).Delete(&model.ChapterProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Chapter{}, id).Error
	})
}

func (r *ChapterRepository) ListByCourse(courseID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("course_id = ?", courseID).
		Order("position asc").Find(&chapters).Error
	return chapters, err
}

func (r *ChapterRepository) ListPublishedByCourse(courseID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("course_id = ? AND is_published = ?", courseID, true).
		Order("position asc").Find(&chapters).Error
	return chapters, err
}

// UpsertProgress marks a chapter complete or incomplete for one user.
func (r *ChapterRepository) UpsertProgress(userID, chapterID uint, completed bool) error {
	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	progress := model.ChapterProgress{
		UserID:      userID,
		ChapterID:   chapterID,
		IsCompleted: completed,
		CompletedAt: completedAt,
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_completed", "completed_at"}),
	}).Create(&progress).Error
}

// ProgressMap returns chapterID -> completion flag for one user over a
// chapter set.
func (r *ChapterRepository) ProgressMap(userID uint, chapterIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(chapterIDs))
	if len(chapterIDs) == 0 {
		return result, nil
	}

	var rows []model.ChapterProgress
	err := r.DB.Where("user_id = ? AND chapter_id IN ?", userID, chapterIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ChapterID] = row.IsCompleted
	}
	return result, nil
}
