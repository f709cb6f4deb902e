package model

import "time"

// swagger:model Chapter
type Chapter struct {
	BaseModel
	CourseID      uint    `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title         string  `gorm:"size:255;not null" json:"title"`
	Description   string  `gorm:"type:text" json:"description"`
	VideoURL      string  `gorm:"size:255" json:"videoUrl"`
	VideoDuration float64 `gorm:"default:0" json:"videoDuration"` // Seconds, probed at upload
	ThumbnailURL  string  `gorm:"size:255" json:"thumbnailUrl"`
	Position      int     `gorm:"default:0" json:"position"`
	IsPublished   bool    `gorm:"default:false" json:"isPublished"`
	IsFree        bool    `gorm:"default:false" json:"isFree"`
}

func (Chapter) TableName() string {
	return "chapters"
}

type ChapterProgress struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_chapter_progress_user_chapter;type:bigint unsigned" json:"userId"`
	ChapterID   uint       `gorm:"uniqueIndex:idx_chapter_progress_user_chapter;type:bigint unsigned" json:"chapterId"`
	IsCompleted bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (ChapterProgress) TableName() string {
	return "chapter_progress"
}
