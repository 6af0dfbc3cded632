package model

import "time"

// LessonCompletion 课时完成标记，(user, lesson) 唯一
// CompletedAt 与 Completed 同步设置：完成时间存在当且仅当已完成
// swagger:model LessonCompletion
type LessonCompletion struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"userId"`
	LessonID    uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`

	User   User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Lesson Lesson `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
