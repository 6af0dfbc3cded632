package model

// Question 测验题目，Order 从 1 开始，相同时按 ID 稳定排序
// swagger:model Question
type Question struct {
	BaseModel
	QuizID uint   `gorm:"index;not null" json:"quizId"`
	Text   string `gorm:"type:text;not null" json:"text"`
	Order  int    `gorm:"column:sort_order;default:1" json:"order"`

	Choices []Choice `gorm:"constraint:OnDelete:CASCADE" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Choice
type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:500;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Choice) TableName() string {
	return "choices"
}
