package model

// Lesson 章节下的课时，视频为外部链接，不在本系统存储
// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID uint   `gorm:"index:idx_module_index;not null" json:"moduleId"`
	Index    int    `gorm:"index:idx_module_index;default:1" json:"index"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Summary  string `gorm:"type:text" json:"summary"`
	VideoURL string `gorm:"size:255" json:"videoUrl"`

	Resources []Resource `gorm:"constraint:OnDelete:CASCADE" json:"resources,omitempty"`
	Quiz      *Quiz      `gorm:"constraint:OnDelete:CASCADE" json:"quiz,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
