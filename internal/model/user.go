package model

type UserRole string

const (
	Student UserRole = "student"
	Staff   UserRole = "staff"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Email     string   `gorm:"size:100;unique;not null" json:"email"`
	Password  string   `gorm:"size:100;not null" json:"-"`
	FirstName string   `gorm:"size:150" json:"firstName"`
	LastName  string   `gorm:"size:150" json:"lastName"`
	Role      UserRole `gorm:"size:20;default:'student'" json:"role"`
	Disabled  bool     `gorm:"default:false" json:"disabled"`
}

func (User) TableName() string {
	return "users"
}

// IsStaff 员工和管理员都拥有后台权限
func (u *User) IsStaff() bool {
	return u.Role == Staff || u.Role == Admin
}
