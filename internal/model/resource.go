package model

// Resource 课时附件，文件内容由存储服务托管，这里只记录访问地址
// swagger:model Resource
type Resource struct {
	BaseModel
	LessonID uint   `gorm:"index;not null" json:"lessonId"`
	Name     string `gorm:"size:200;not null" json:"name"`
	URL      string `gorm:"size:255" json:"url"`
}

func (Resource) TableName() string {
	return "lesson_resources"
}
