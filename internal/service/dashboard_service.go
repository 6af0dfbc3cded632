package service

import (
	"learnhub_backend/internal/repository"
)

// DashboardItem 面板上的一门在学课程
type DashboardItem struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Desc     string `json:"desc"`
	Status   string `json:"status"`
	Progress int    `json:"progress"` // 已完成课时百分比
	NLessons int64  `json:"nLessons"`
}

type DashboardService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CompletionRepo *repository.CompletionRepository
	CourseRepo     *repository.CourseRepository
}

func NewDashboardService(
	enrollmentRepo *repository.EnrollmentRepository,
	completionRepo *repository.CompletionRepository,
	courseRepo *repository.CourseRepository,
) *DashboardService {
	return &DashboardService{
		EnrollmentRepo: enrollmentRepo,
		CompletionRepo: completionRepo,
		CourseRepo:     courseRepo,
	}
}

// GetDashboard 在学课程列表，进度按该课程下已完成课时数折算
func (s *DashboardService) GetDashboard(userID uint) ([]DashboardItem, error) {
	enrollments, err := s.EnrollmentRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]DashboardItem, 0, len(enrollments))
	for _, e := range enrollments {
		category := e.Course.Category
		if category == "" {
			category = "General"
		}

		_, nLessons, err := s.CourseRepo.CountModulesAndLessons(e.CourseID)
		if err != nil {
			return nil, err
		}

		progress := 0
		if nLessons > 0 {
			done, err := s.CompletionRepo.CompletedLessonIDs(userID, e.CourseID)
			if err != nil {
				return nil, err
			}
			progress = int(int64(len(done)) * 100 / nLessons)
		}

		items = append(items, DashboardItem{
			Slug:     e.Course.Slug,
			Title:    e.Course.Title,
			Category: category,
			Desc:     e.Course.ShortDesc,
			Status:   string(e.Status),
			Progress: progress,
			NLessons: nLessons,
		})
	}

	return items, nil
}
