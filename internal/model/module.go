package model

// Module 课程下的章节，Index 从 1 开始，决定展示顺序
// swagger:model Module
type Module struct {
	BaseModel
	CourseID uint   `gorm:"index:idx_course_index;not null" json:"courseId"`
	Index    int    `gorm:"index:idx_course_index;default:1" json:"index"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Intro    string `gorm:"type:text" json:"intro"`

	Lessons []Lesson `gorm:"constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}
