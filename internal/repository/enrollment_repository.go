package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// GetOrCreate 按 (user, course) 原子取或建。先走 OnConflict DoNothing 保证并发下
// 不会产生重复行，再回读判断这次调用是否真的创建了新行。
func (r *EnrollmentRepository) GetOrCreate(userID, courseID uint, status model.EnrollmentStatus) (*model.Enrollment, bool, error) {
	attempt := model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   status,
	}

	res := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&attempt)
	if res.Error != nil {
		return nil, false, res.Error
	}
	created := res.RowsAffected > 0

	var enrollment model.Enrollment
	if err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error; err != nil {
		return nil, false, err
	}
	return &enrollment, created, nil
}

func (r *EnrollmentRepository) Find(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) Exists(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// Delete 删除不存在的选课记录不算错误
func (r *EnrollmentRepository) Delete(userID, courseID uint) error {
	return r.DB.Unscoped().
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.Enrollment{}).Error
}

func (r *EnrollmentRepository) Save(enrollment *model.Enrollment) error {
	return r.DB.Save(enrollment).Error
}

// ListByUser 带启用课程的选课列表，按课程标题排序
func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.user_id = ? AND courses.is_active = ?", userID, true).
		Order("courses.title").
		Preload("Course").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) EnrolledSlugs(userID uint) ([]string, error) {
	var slugs []string
	err := r.DB.Model(&model.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.user_id = ?", userID).
		Pluck("courses.slug", &slugs).Error
	return slugs, err
}
