package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// EnrollmentService 选课台账。(user, course) 至多一行，重复选课是幂等成功，
// 退未选的课也是成功。状态不从进度自动推导，只由调用方显式变更。
type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	UserRepo       *repository.UserRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		UserRepo:       userRepo,
	}
}

// Enroll 幂等：已有记录原样返回且 created=false。课程不存在或被禁用报 NotFound。
func (s *EnrollmentService) Enroll(userID uint, slug string) (*model.Enrollment, bool, error) {
	course, err := s.CourseRepo.FindActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrCourseNotFound
		}
		return nil, false, err
	}

	return s.EnrollmentRepo.GetOrCreate(userID, course.ID, model.EnrollmentActive)
}

// Unenroll 删除不存在的记录按成功处理，不报错
func (s *EnrollmentService) Unenroll(userID uint, slug string) error {
	course, err := s.CourseRepo.FindActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	return s.EnrollmentRepo.Delete(userID, course.ID)
}

// EnrollUser 后台替指定用户选课，语义与 Enroll 一致
func (s *EnrollmentService) EnrollUser(targetUserID uint, slug string) (*model.Enrollment, bool, error) {
	if _, err := s.UserRepo.FindByID(targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrUserNotFound
		}
		return nil, false, err
	}
	return s.Enroll(targetUserID, slug)
}

func (s *EnrollmentService) UnenrollUser(targetUserID uint, slug string) error {
	if _, err := s.UserRepo.FindByID(targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return s.Unenroll(targetUserID, slug)
}

func (s *EnrollmentService) IsEnrolled(userID uint, courseID uint) (bool, error) {
	return s.EnrollmentRepo.Exists(userID, courseID)
}

func (s *EnrollmentService) ListForUser(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}

func (s *EnrollmentService) EnrolledSlugs(userID uint) ([]string, error) {
	return s.EnrollmentRepo.EnrolledSlugs(userID)
}

// SetStatus 显式状态变更（active → completed 等），不做状态机校验
func (s *EnrollmentService) SetStatus(userID, courseID uint, status model.EnrollmentStatus) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.Find(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}
	enrollment.Status = status
	if err := s.EnrollmentRepo.Save(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}
