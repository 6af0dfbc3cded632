package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// FindByID 测验及其有序题目和选项
func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.sort_order, questions.id")
		}).
		Preload("Questions.Choices").
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByLessonID(lessonID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("lesson_id = ?", lessonID).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FirstOrCreateForLesson 课时与测验一对一，取或建
func (r *QuizRepository) FirstOrCreateForLesson(lessonID uint, defaults model.Quiz) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where(model.Quiz{LessonID: lessonID}).
		Attrs(defaults).
		FirstOrCreate(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Save(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Quiz{}, id).Error
}

func (r *QuizRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuizRepository) SaveQuestion(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuizRepository) DeleteQuestion(id uint) error {
	return r.DB.Unscoped().Delete(&model.Question{}, id).Error
}

func (r *QuizRepository) CreateChoice(c *model.Choice) error {
	return r.DB.Create(c).Error
}

func (r *QuizRepository) DeleteChoice(id uint) error {
	return r.DB.Unscoped().Delete(&model.Choice{}, id).Error
}

// CreateAttempt 提交记录只插入，创建后不再修改
func (r *QuizRepository) CreateAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizRepository) FindAttemptByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// ListAttempts userID 为 0 时返回该测验的全部记录
func (r *QuizRepository) ListAttempts(quizID uint, userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	tx := r.DB.Where("quiz_id = ?", quizID)
	if userID != 0 {
		tx = tx.Where("user_id = ?", userID)
	}
	err := tx.Order("created_at DESC, id DESC").Find(&attempts).Error
	return attempts, err
}
