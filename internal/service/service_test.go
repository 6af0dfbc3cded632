package service

import (
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 内存 sqlite，限制单连接避免每个连接各见一个空库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newQuizService(db *gorm.DB) *QuizService {
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
	)
}

func newEnrollmentService(db *gorm.DB) *EnrollmentService {
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewUserRepository(db),
	)
}

func newProgressService(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewCompletionRepository(db),
		repository.NewLessonRepository(db),
	)
}

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
		nil,
	)
}

func createUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Password: "x", Role: model.Student}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// createCourse 一门启用课程：一个章节、两个课时
func createCourse(t *testing.T, db *gorm.DB, slug, title string) *model.Course {
	t.Helper()
	course := &model.Course{
		Slug:     slug,
		Title:    title,
		Category: "Test",
		IsActive: true,
		Modules: []model.Module{
			{
				Index: 1,
				Title: "Module 1",
				Lessons: []model.Lesson{
					{Index: 1, Title: "Lesson 1"},
					{Index: 2, Title: "Lesson 2"},
				},
			},
		},
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

// createQuiz 两道题、每题两个选项的测验，返回重新加载后的完整结构
func createQuiz(t *testing.T, db *gorm.DB, lessonID uint, passMark int) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		LessonID: lessonID,
		Title:    "Test Quiz",
		IsActive: true,
		PassMark: passMark,
		Questions: []model.Question{
			{
				Text:  "Q1",
				Order: 1,
				Choices: []model.Choice{
					{Text: "right", IsCorrect: true},
					{Text: "wrong", IsCorrect: false},
				},
			},
			{
				Text:  "Q2",
				Order: 2,
				Choices: []model.Choice{
					{Text: "wrong", IsCorrect: false},
					{Text: "right", IsCorrect: true},
				},
			},
		},
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

// correctChoice 返回某道题标记为正确的选项
func correctChoice(t *testing.T, q model.Question) model.Choice {
	t.Helper()
	for _, c := range q.Choices {
		if c.IsCorrect {
			return c
		}
	}
	t.Fatalf("question %d has no correct choice", q.ID)
	return model.Choice{}
}

func wrongChoice(t *testing.T, q model.Question) model.Choice {
	t.Helper()
	for _, c := range q.Choices {
		if !c.IsCorrect {
			return c
		}
	}
	t.Fatalf("question %d has no wrong choice", q.ID)
	return model.Choice{}
}
