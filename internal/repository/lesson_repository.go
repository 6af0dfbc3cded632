package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Save(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Lesson{}, id).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// CourseID 课时所属课程，经由章节反查
func (r *LessonRepository) CourseID(lessonID uint) (uint, error) {
	var m model.Module
	err := r.DB.Select("modules.course_id").
		Joins("JOIN lessons ON lessons.module_id = modules.id").
		Where("lessons.id = ?", lessonID).
		First(&m).Error
	if err != nil {
		return 0, err
	}
	return m.CourseID, nil
}

// FirstOrCreateByIndex 按 (module, index) 取或建，用于静态测验的容器课时
func (r *LessonRepository) FirstOrCreateByIndex(moduleID uint, index int, defaults model.Lesson) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where(model.Lesson{ModuleID: moduleID, Index: index}).
		Attrs(defaults).
		FirstOrCreate(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) CreateResource(res *model.Resource) error {
	return r.DB.Create(res).Error
}

func (r *LessonRepository) DeleteResource(id uint) error {
	return r.DB.Unscoped().Delete(&model.Resource{}, id).Error
}

func (r *LessonRepository) FindResource(id uint) (*model.Resource, error) {
	var res model.Resource
	err := r.DB.First(&res, id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}
