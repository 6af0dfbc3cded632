package repository

import (
	"learnhub_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Course{}, id).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindActiveBySlug 只返回启用状态的课程，未知或禁用的 slug 都按不存在处理
func (r *CourseRepository) FindActiveBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("slug = ? AND is_active = ?", slug, true).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("slug = ?", slug).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListActive 启用课程列表，支持标题/分类的大小写不敏感子串过滤，按标题排序
func (r *CourseRepository) ListActive(query string) ([]model.Course, error) {
	var courses []model.Course
	tx := r.DB.Where("is_active = ?", true)
	if q := strings.TrimSpace(query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(category) LIKE ?", like, like)
	}
	err := tx.Order("title").Find(&courses).Error
	return courses, err
}

// FindCurriculum 课程及其有序的章节→课时→附件树
func (r *CourseRepository) FindCurriculum(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("slug = ? AND is_active = ?", slug, true).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("modules.`index`")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.`index`")
		}).
		Preload("Modules.Lessons.Resources").
		Preload("Modules.Lessons.Quiz").
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// CountModulesAndLessons 去重计数，零章节课程返回 (0, 0) 而不是错误
func (r *CourseRepository) CountModulesAndLessons(courseID uint) (int64, int64, error) {
	var nModules int64
	if err := r.DB.Model(&model.Module{}).
		Where("course_id = ?", courseID).
		Count(&nModules).Error; err != nil {
		return 0, 0, err
	}

	var nLessons int64
	if err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&nLessons).Error; err != nil {
		return 0, 0, err
	}

	return nModules, nLessons, nil
}
