package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(msg *model.ContactMessage) error {
	return r.DB.Create(msg).Error
}

func (r *ContactRepository) List(limit int) ([]model.ContactMessage, error) {
	var msgs []model.ContactMessage
	tx := r.DB.Order("created_at DESC, id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&msgs).Error
	return msgs, err
}
