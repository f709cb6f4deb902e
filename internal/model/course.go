package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:255" json:"imageUrl"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
	TeacherID   uint   `gorm:"index;type:bigint unsigned" json:"teacherId"`
}

func (Course) TableName() string {
	return "courses"
}
