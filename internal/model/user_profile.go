package model

import "gorm.io/datatypes"

// UserProfile 用户扩展资料，与 User 一对一，首次访问时惰性创建
// swagger:model UserProfile
type UserProfile struct {
	BaseModel
	UserID   uint              `gorm:"uniqueIndex;not null" json:"userId"`
	Country  string            `gorm:"size:64" json:"country"`
	Timezone string            `gorm:"size:64" json:"timezone"`
	Phone    string            `gorm:"size:32" json:"phone"`
	Bio      string            `gorm:"type:text" json:"bio"`
	Avatar   string            `gorm:"size:255" json:"avatar"`
	Prefs    datatypes.JSONMap `json:"prefs"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// 偏好设置的固定键及默认值。更新时四个键整体覆盖写入：
// 请求中缺失的键回落到这里的默认值，而不是之前存储的值。
const (
	PrefTheme         = "theme"
	PrefAnnouncements = "nAnnouncements"
	PrefReminders     = "nReminders"
	PrefMarketing     = "nMarketing"
)

func DefaultPrefs() datatypes.JSONMap {
	return datatypes.JSONMap{
		PrefTheme:         "light",
		PrefAnnouncements: true,
		PrefReminders:     true,
		PrefMarketing:     false,
	}
}
