package model

import "time"

// PurchaseCode is a single-use enrollment code for one course. Codes are
// generated in batches by teachers and handed out offline.
// swagger:model PurchaseCode
type PurchaseCode struct {
	BaseModel
	Code     string     `gorm:"size:36;uniqueIndex;not null" json:"code"`
	CourseID uint       `gorm:"index;type:bigint unsigned" json:"courseId"`
	IsUsed   bool       `gorm:"default:false" json:"isUsed"`
	UsedByID *uint      `gorm:"type:bigint unsigned" json:"usedById,omitempty"`
	UsedAt   *time.Time `json:"usedAt,omitempty"`
}

func (PurchaseCode) TableName() string {
	return "purchase_codes"
}

// Purchase grants a student access to a course's content.
type Purchase struct {
	BaseModel
	UserID   uint `gorm:"uniqueIndex:idx_purchase_user_course;type:bigint unsigned" json:"userId"`
	CourseID uint `gorm:"uniqueIndex:idx_purchase_user_course;type:bigint unsigned" json:"courseId"`
}

func (Purchase) TableName() string {
	return "purchases"
}
