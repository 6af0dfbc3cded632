package model

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Course 课程，软禁用通过 IsActive 实现，正常流程中不做物理删除
// swagger:model Course
type Course struct {
	BaseModel
	Slug      string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Category  string `gorm:"size:64" json:"category"`
	ShortDesc string `gorm:"type:text" json:"shortDesc"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	Modules []Module `gorm:"constraint:OnDelete:CASCADE" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// BeforeCreate slug 为空时从标题派生，创建后不再重新生成
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slugify(c.Title)
	}
	return nil
}

// slugify 把标题转成 URL slug：小写，字母数字保留，其余折叠为连字符
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
