package model

import "gorm.io/datatypes"

// QuizAttempt 测验提交记录，只增不改，UserID 为空表示匿名练习
// RawAnswers 保存提交快照用于审计：题目ID -> 所选选项ID，或静态页的原始标签
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	QuizID     uint              `gorm:"index;not null" json:"quizId"`
	UserID     *uint             `gorm:"index" json:"userId"`
	Score      int               `gorm:"not null;default:0" json:"score"`
	Total      int               `gorm:"not null;default:0" json:"total"`
	Passed     bool              `gorm:"default:false" json:"passed"`
	RawAnswers datatypes.JSONMap `json:"rawAnswers"`

	Quiz Quiz `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
