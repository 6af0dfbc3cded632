package model

// ContactMessage 联系表单留言，只增不改，与其他实体无关联
// swagger:model ContactMessage
type ContactMessage struct {
	BaseModel
	Name    string `gorm:"size:150;not null" json:"name"`
	Email   string `gorm:"size:150;not null" json:"email"`
	Message string `gorm:"type:text;not null" json:"message"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
