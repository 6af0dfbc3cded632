package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// GetOrCreate 首次访问时惰性创建资料行
func (r *ProfileRepository) GetOrCreate(userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.DB.Where(model.UserProfile{UserID: userID}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Save(profile *model.UserProfile) error {
	return r.DB.Save(profile).Error
}
