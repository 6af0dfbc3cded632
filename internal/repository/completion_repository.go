package repository

import (
	"learnhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

// Upsert 按 (user, lesson) 原子更新插入。重复标记完成会刷新时间戳，
// 即时间戳记录的是最近一次置为完成的时间，而不是第一次。
func (r *CompletionRepository) Upsert(userID, lessonID uint, completed bool) (*model.LessonCompletion, error) {
	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	row := model.LessonCompletion{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   completed,
		CompletedAt: completedAt,
	}

	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var out model.LessonCompletion
	if err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CompletionRepository) Find(userID, lessonID uint) (*model.LessonCompletion, error) {
	var row model.LessonCompletion
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CompletedLessonIDs 某课程下该用户已完成的课时ID集合
func (r *CompletionRepository) CompletedLessonIDs(userID, courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("lesson_completions.user_id = ? AND modules.course_id = ? AND lesson_completions.completed = ?",
			userID, courseID, true).
		Pluck("lesson_completions.lesson_id", &ids).Error
	return ids, err
}

func (r *CompletionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}
