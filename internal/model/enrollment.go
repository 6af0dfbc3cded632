package model

type EnrollmentStatus string

const (
	EnrollmentActive     EnrollmentStatus = "active"
	EnrollmentCompleted  EnrollmentStatus = "completed"
	EnrollmentNotStarted EnrollmentStatus = "not_started"
)

// Enrollment 选课记录，(user, course) 唯一，状态由调用方显式变更
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID   uint             `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID uint             `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
	Status   EnrollmentStatus `gorm:"size:20;default:'active'" json:"status"`

	User   User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Course Course `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
