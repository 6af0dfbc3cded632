package service

import (
	"context"
	"encoding/json"
	"errors"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogCachePrefix = "catalog:"
	catalogCacheTTL    = 5 * time.Minute
)

// CourseSummary 目录页条目，带去重后的章节/课时数
type CourseSummary struct {
	model.Course
	NModules int64 `json:"nModules"`
	NLessons int64 `json:"nLessons"`
}

// ContentService 课程内容的读多写少仓库门面。目录查询走 Redis 缓存，
// 任何后台写操作先同步失效缓存再返回，保证写入者读到自己的修改。
type ContentService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository
	Storage    *StorageService
	Cfg        *config.Config
	Redis      *redis.Client
}

func NewContentService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	storage *StorageService,
	cfg *config.Config,
	rdb *redis.Client,
) *ContentService {
	return &ContentService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
		Storage:    storage,
		Cfg:        cfg,
		Redis:      rdb,
	}
}

// ListActiveCourses 启用课程目录，大小写不敏感子串过滤，按标题排序
func (s *ContentService) ListActiveCourses(ctx context.Context, query string) ([]CourseSummary, error) {
	cacheKey := catalogCachePrefix + strings.ToLower(strings.TrimSpace(query))

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []CourseSummary
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	courses, err := s.CourseRepo.ListActive(query)
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		nModules, nLessons, err := s.CourseRepo.CountModulesAndLessons(course.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, CourseSummary{
			Course:   course,
			NModules: nModules,
			NLessons: nLessons,
		})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(summaries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache course catalog", zap.Error(err))
			}
		}
	}

	return summaries, nil
}

// invalidateCatalog 同步删除目录缓存，写路径返回前调用
func (s *ContentService) invalidateCatalog(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	keys, err := s.Redis.Keys(ctx, catalogCachePrefix+"*").Result()
	if err != nil {
		logger.Log.Warn("Failed to list catalog cache keys", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		s.Redis.Del(ctx, keys...)
	}
}

// GetCourseCurriculum slug 未知或课程被禁用都返回 ErrCourseNotFound
func (s *ContentService) GetCourseCurriculum(slug string) (*model.Course, error) {
	course, err := s.CourseRepo.FindCurriculum(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *ContentService) GetActiveCourse(slug string) (*model.Course, error) {
	course, err := s.CourseRepo.FindActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *ContentService) CountModulesAndLessons(courseID uint) (int64, int64, error) {
	return s.CourseRepo.CountModulesAndLessons(courseID)
}

// ----- 后台内容维护 -----

func (s *ContentService) CreateCourse(ctx context.Context, course *model.Course) error {
	if err := s.CourseRepo.Create(course); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// UpdateCourse slug 创建后不再重新生成，更新只改其余字段
func (s *ContentService) UpdateCourse(ctx context.Context, course *model.Course) error {
	if err := s.CourseRepo.Save(course); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ContentService) GetCourseByID(id uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(id)
}

func (s *ContentService) DeleteCourse(ctx context.Context, id uint) error {
	if err := s.CourseRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ContentService) CreateModule(ctx context.Context, m *model.Module) error {
	if err := s.ModuleRepo.Create(m); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ContentService) UpdateModule(ctx context.Context, m *model.Module) error {
	if err := s.ModuleRepo.Save(m); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ContentService) GetModule(id uint) (*model.Module, error) {
	return s.ModuleRepo.FindByID(id)
}

func (s *ContentService) DeleteModule(ctx context.Context, id uint) error {
	if err := s.ModuleRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ContentService) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	if err := s.LessonRepo.Create(lesson); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ContentService) UpdateLesson(ctx context.Context, lesson *model.Lesson) error {
	if err := s.LessonRepo.Save(lesson); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ContentService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

func (s *ContentService) DeleteLesson(ctx context.Context, id uint) error {
	if err := s.LessonRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// UploadResource 课时附件：文件经存储服务落盘，库里只记名字和地址
func (s *ContentService) UploadResource(ctx context.Context, lessonID uint, name string, file *multipart.FileHeader) (*model.Resource, error) {
	if _, err := s.GetLesson(lessonID); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	filename := "lesson_resources/" + uuid.New().String() + ext

	url, err := s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = file.Filename
	}
	res := &model.Resource{
		LessonID: lessonID,
		Name:     name,
		URL:      url,
	}
	if err := s.LessonRepo.CreateResource(res); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteResource 先尽力删掉落盘文件再删记录，文件删不掉不拦着记录删除
func (s *ContentService) DeleteResource(ctx context.Context, id uint) error {
	res, err := s.LessonRepo.FindResource(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if s.Storage != nil {
		if idx := strings.Index(res.URL, "lesson_resources/"); idx >= 0 {
			if err := s.Storage.Delete(ctx, res.URL[idx:]); err != nil {
				logger.Log.Warn("Failed to delete resource file",
					zap.String("url", res.URL), zap.Error(err))
			}
		}
	}

	return s.LessonRepo.DeleteResource(id)
}
