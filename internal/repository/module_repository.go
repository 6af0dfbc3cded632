package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(m *model.Module) error {
	return r.DB.Create(m).Error
}

func (r *ModuleRepository) Save(m *model.Module) error {
	return r.DB.Save(m).Error
}

func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Module{}, id).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var m model.Module
	err := r.DB.First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FirstOrCreateByIndex 按 (course, index) 取或建，用于静态测验的容器章节
func (r *ModuleRepository) FirstOrCreateByIndex(courseID uint, index int, defaults model.Module) (*model.Module, error) {
	var m model.Module
	err := r.DB.Where(model.Module{CourseID: courseID, Index: index}).
		Attrs(defaults).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
