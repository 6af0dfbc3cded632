package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// ProgressService 课时完成进度。按 (user, lesson) 更新插入，重复调用幂等：
// 重复置为完成会刷新时间戳（记录最近一次完成），置为未完成会清空时间戳。
type ProgressService struct {
	CompletionRepo *repository.CompletionRepository
	LessonRepo     *repository.LessonRepository
}

func NewProgressService(completionRepo *repository.CompletionRepository, lessonRepo *repository.LessonRepository) *ProgressService {
	return &ProgressService{
		CompletionRepo: completionRepo,
		LessonRepo:     lessonRepo,
	}
}

func (s *ProgressService) SetLessonCompletion(userID, lessonID uint, completed bool) (*model.LessonCompletion, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	return s.CompletionRepo.Upsert(userID, lessonID, completed)
}

func (s *ProgressService) CompletedLessonIDs(userID, courseID uint) ([]uint, error) {
	return s.CompletionRepo.CompletedLessonIDs(userID, courseID)
}

// CourseCompletion 课时所在课程的完成课时ID集合，切换之后刷新播放页进度用
func (s *ProgressService) CourseCompletion(userID, lessonID uint) ([]uint, error) {
	courseID, err := s.LessonRepo.CourseID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return s.CompletionRepo.CompletedLessonIDs(userID, courseID)
}
