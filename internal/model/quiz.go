package model

const DefaultPassMark = 70

// Quiz 课时测验，与 Lesson 一对一，PassMark 为通过分数线（百分比，含等于）
// swagger:model Quiz
type Quiz struct {
	BaseModel
	LessonID uint   `gorm:"uniqueIndex;not null" json:"lessonId"`
	Title    string `gorm:"size:200;default:'Lesson Quiz'" json:"title"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
	PassMark int    `gorm:"default:70" json:"passMark"`

	Questions []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
